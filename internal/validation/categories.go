package validation

import (
	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"
)

type CategoryCreateInput struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type CategoryCreate struct {
	Name  string
	Color string
}

func (in CategoryCreateInput) Validate() (*CategoryCreate, []apperrors.FieldError) {
	var list errorList
	out := CategoryCreate{Color: models.DefaultCategoryColor}

	out.Name = trimmed(in.Name)
	if len(out.Name) < 1 || len(out.Name) > 50 {
		list.add("name", "name must be between 1 and 50 characters")
	}

	if in.Color != nil {
		if !ValidHexColor(*in.Color) {
			list.add("color", "color must be a hex color in #RRGGBB format")
		} else {
			out.Color = *in.Color
		}
	}

	if list.errs != nil {
		return nil, list.errs
	}
	return &out, nil
}

type CategoryUpdateInput struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type CategoryPatch struct {
	Name  *string
	Color *string
}

func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Color == nil
}

func (in CategoryUpdateInput) Validate() (*CategoryPatch, []apperrors.FieldError) {
	var list errorList
	var out CategoryPatch

	if in.Name != nil {
		name := trimmed(*in.Name)
		if len(name) < 1 || len(name) > 50 {
			list.add("name", "name must be between 1 and 50 characters")
		} else {
			out.Name = &name
		}
	}

	if in.Color != nil {
		if !ValidHexColor(*in.Color) {
			list.add("color", "color must be a hex color in #RRGGBB format")
		} else {
			out.Color = in.Color
		}
	}

	if list.errs != nil {
		return nil, list.errs
	}
	return &out, nil
}
