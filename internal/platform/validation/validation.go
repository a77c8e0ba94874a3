// Package validation checks usecase inputs with go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "firstthought/internal/platform/errors"
	"firstthought/internal/platform/tagword"
)

type Validator struct {
	v *validator.Validate
}

// New registers the "tagword" rule and reports fields by their json name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("tagword", func(fl validator.FieldLevel) bool {
		return tagword.IsNormalized(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate returns an error wrapping apperrors.ErrInvalidInput on failure.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Field()+" "+friendlyMessage(fe))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, strings.Join(msgs, "; "))
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "gtefield":
		return "must not be before " + fe.Param()
	case "tagword":
		return "must be a single lower-case word"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
