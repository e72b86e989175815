// Package validation turns raw request input into normalized, default-filled
// values. Every Validate collects all field violations in one pass instead
// of failing on the first, and returns the normalized value only when the
// violation list is empty.
package validation

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"taskhub/backend/internal/apperrors"
)

// DateLayout is the accepted calendar-date format for due dates.
const DateLayout = "2006-01-02"

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func ValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// parseDate accepts a bare calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

type errorList struct {
	errs []apperrors.FieldError
}

func (l *errorList) add(field, message string) {
	l.errs = append(l.errs, apperrors.FieldError{Field: field, Message: message})
}

// NullableString distinguishes an absent JSON field from an explicit null
// and from a value. Needed where null is itself meaningful (clear the field).
type NullableString struct {
	Set   bool
	Valid bool
	Value string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// NullableInt is NullableString's integer counterpart (category_id).
type NullableInt struct {
	Set   bool
	Valid bool
	Value int64
}

func (n *NullableInt) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// OptionalTime carries a present/absent flag on top of a nullable time.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// OptionalUint carries a present/absent flag on top of a nullable id.
type OptionalUint struct {
	Set   bool
	Value *uint
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
