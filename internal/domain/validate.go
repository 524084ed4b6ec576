package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sitecrew/gantt/internal/dateonly"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Dates validate as their text form, so "required" means "not zero".
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(dateonly.Date); ok {
			return d.String()
		}
		return nil
	}, dateonly.Date{})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		t := sl.Current().Interface().(ScheduleTask)
		if !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
			sl.ReportError(t.EndDate, "end_date", "EndDate", "gtestart", "")
		}
		if t.Predecessor != "" {
			if _, err := ParsePredecessor(t.Predecessor); err != nil {
				sl.ReportError(t.Predecessor, "predecessor", "Predecessor", "predecessor", "")
			}
		}
	}, ScheduleTask{})

	return v
}

// ValidateTask checks a task entering the system and returns one error per
// failing field.
func ValidateTask(t *ScheduleTask) []error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, describeFieldError(fe))
	}
	return out
}

func describeFieldError(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "gtestart":
		return fmt.Errorf("end_date must not be before start_date")
	case "predecessor":
		return fmt.Errorf("predecessor %q: %w", fe.Value(), ErrInvalidPredecessor)
	case "gte", "lte", "max":
		return fmt.Errorf("%s must satisfy %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", field, fe.Tag())
	}
}

// JoinErrors flattens a validation error list into a single error.
func JoinErrors(prefix string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msg := fmt.Sprintf("%s (%d errors):", prefix, len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return errors.New(msg)
}
