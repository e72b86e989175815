package validation

import (
	"strconv"
	"time"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"
)

type TaskCreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	CategoryID  *int64  `json:"category_id"`
}

// TaskCreate is the normalized task-creation payload with defaults applied.
type TaskCreate struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	CategoryID  *uint
}

func (in TaskCreateInput) Validate() (*TaskCreate, []apperrors.FieldError) {
	var list errorList
	out := TaskCreate{
		Status:   models.StatusPending,
		Priority: models.PriorityMedium,
	}

	out.Title = trimmed(in.Title)
	if len(out.Title) < 1 || len(out.Title) > 200 {
		list.add("title", "title must be between 1 and 200 characters")
	}

	if in.Description != nil {
		out.Description = trimmed(*in.Description)
		if len(out.Description) > 1000 {
			list.add("description", "description must be at most 1000 characters")
		}
	}

	if in.Status != nil {
		if !models.ValidStatus(*in.Status) {
			list.add("status", "status must be one of: pending, in_progress, completed")
		} else {
			out.Status = *in.Status
		}
	}

	if in.Priority != nil {
		if !models.ValidPriority(*in.Priority) {
			list.add("priority", "priority must be one of: low, medium, high")
		} else {
			out.Priority = *in.Priority
		}
	}

	if in.DueDate != nil {
		if t, ok := parseDate(*in.DueDate); ok {
			out.DueDate = &t
		} else {
			list.add("due_date", "due_date must be a valid ISO-8601 date")
		}
	}

	if in.CategoryID != nil {
		if *in.CategoryID < 1 {
			list.add("category_id", "category_id must be a positive integer")
		} else {
			id := uint(*in.CategoryID)
			out.CategoryID = &id
		}
	}

	if list.errs != nil {
		return nil, list.errs
	}
	return &out, nil
}

type TaskUpdateInput struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
	DueDate     NullableString `json:"due_date"`
	CategoryID  NullableInt    `json:"category_id"`
}

// TaskPatch holds only the fields the caller supplied. Absent fields stay
// nil/unset; due_date and category_id additionally distinguish an explicit
// null, which clears the stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     OptionalTime
	CategoryID  OptionalUint
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && !p.DueDate.Set && !p.CategoryID.Set
}

func (in TaskUpdateInput) Validate() (*TaskPatch, []apperrors.FieldError) {
	var list errorList
	var out TaskPatch

	if in.Title != nil {
		title := trimmed(*in.Title)
		if len(title) < 1 || len(title) > 200 {
			list.add("title", "title must be between 1 and 200 characters")
		} else {
			out.Title = &title
		}
	}

	if in.Description != nil {
		desc := trimmed(*in.Description)
		if len(desc) > 1000 {
			list.add("description", "description must be at most 1000 characters")
		} else {
			out.Description = &desc
		}
	}

	if in.Status != nil {
		if !models.ValidStatus(*in.Status) {
			list.add("status", "status must be one of: pending, in_progress, completed")
		} else {
			out.Status = in.Status
		}
	}

	if in.Priority != nil {
		if !models.ValidPriority(*in.Priority) {
			list.add("priority", "priority must be one of: low, medium, high")
		} else {
			out.Priority = in.Priority
		}
	}

	if in.DueDate.Set {
		out.DueDate.Set = true
		if in.DueDate.Valid {
			if t, ok := parseDate(in.DueDate.Value); ok {
				out.DueDate.Value = &t
			} else {
				out.DueDate.Set = false
				list.add("due_date", "due_date must be a valid ISO-8601 date or null")
			}
		}
	}

	if in.CategoryID.Set {
		out.CategoryID.Set = true
		if in.CategoryID.Valid {
			if in.CategoryID.Value < 1 {
				out.CategoryID.Set = false
				list.add("category_id", "category_id must be a positive integer or null")
			} else {
				id := uint(in.CategoryID.Value)
				out.CategoryID.Value = &id
			}
		}
	}

	if list.errs != nil {
		return nil, list.errs
	}
	return &out, nil
}

// taskSortFields is the allow-list for the list endpoint's sort key.
var taskSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"due_date":   true,
	"priority":   true,
}

type TaskListInput struct {
	Page        string `form:"page"`
	Limit       string `form:"limit"`
	Sort        string `form:"sort"`
	Order       string `form:"order"`
	Status      string `form:"status"`
	Priority    string `form:"priority"`
	CategoryID  string `form:"category_id"`
	DueDateFrom string `form:"due_date_from"`
	DueDateTo   string `form:"due_date_to"`
	Search      string `form:"search"`
}

// TaskListQuery is the normalized filter+pagination object. Empty string /
// nil filter fields mean "absent" and produce no condition at all.
type TaskListQuery struct {
	Page        int
	Limit       int
	Sort        string
	Order       string
	Status      string
	Priority    string
	CategoryID  *uint
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	Search      string
}

func (in TaskListInput) Validate() (*TaskListQuery, []apperrors.FieldError) {
	var list errorList
	out := TaskListQuery{
		Page:  1,
		Limit: 10,
		Sort:  "created_at",
		Order: "desc",
	}

	if in.Page != "" {
		if n, err := strconv.Atoi(in.Page); err != nil || n < 1 {
			list.add("page", "page must be a positive integer")
		} else {
			out.Page = n
		}
	}

	if in.Limit != "" {
		if n, err := strconv.Atoi(in.Limit); err != nil || n < 1 || n > 100 {
			list.add("limit", "limit must be an integer between 1 and 100")
		} else {
			out.Limit = n
		}
	}

	if in.Sort != "" {
		if !taskSortFields[in.Sort] {
			list.add("sort", "sort must be one of: created_at, updated_at, title, due_date, priority")
		} else {
			out.Sort = in.Sort
		}
	}

	if in.Order != "" {
		if in.Order != "asc" && in.Order != "desc" {
			list.add("order", "order must be asc or desc")
		} else {
			out.Order = in.Order
		}
	}

	if in.Status != "" {
		if !models.ValidStatus(in.Status) {
			list.add("status", "status must be one of: pending, in_progress, completed")
		} else {
			out.Status = in.Status
		}
	}

	if in.Priority != "" {
		if !models.ValidPriority(in.Priority) {
			list.add("priority", "priority must be one of: low, medium, high")
		} else {
			out.Priority = in.Priority
		}
	}

	if in.CategoryID != "" {
		if n, err := strconv.ParseInt(in.CategoryID, 10, 64); err != nil || n < 1 {
			list.add("category_id", "category_id must be a positive integer")
		} else {
			id := uint(n)
			out.CategoryID = &id
		}
	}

	if in.DueDateFrom != "" {
		if t, ok := parseDate(in.DueDateFrom); ok {
			out.DueDateFrom = &t
		} else {
			list.add("due_date_from", "due_date_from must be a valid ISO-8601 date")
		}
	}

	if in.DueDateTo != "" {
		if t, ok := parseDate(in.DueDateTo); ok {
			out.DueDateTo = &t
		} else {
			list.add("due_date_to", "due_date_to must be a valid ISO-8601 date")
		}
	}

	out.Search = trimmed(in.Search)

	if list.errs != nil {
		return nil, list.errs
	}
	return &out, nil
}
