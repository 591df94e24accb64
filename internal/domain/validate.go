package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON field names so messages match what users see in stored data
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return IsExpenseCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("client_status", func(fl validator.FieldLevel) bool {
		_, err := ParseClientStatus(fl.Field().String())
		return err == nil
	})

	return v
}

// validateStruct runs the struct rules and turns the first failure into a
// readable error
func validateStruct(subject string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s %s is required", subject, field)
	case "gte":
		return fmt.Errorf("%s %s cannot be negative", subject, field)
	case "gt":
		return fmt.Errorf("%s %s must be greater than zero", subject, field)
	case "email":
		return fmt.Errorf("%s %s must be a valid email address", subject, field)
	case "datauri":
		return fmt.Errorf("%s %s must be a data URI", subject, field)
	case "expense_category":
		return fmt.Errorf("unknown expense category %q", fe.Value())
	case "client_status":
		return fmt.Errorf("unknown client status %q", fe.Value())
	default:
		return fmt.Errorf("%s %s is invalid (%s)", subject, field, fe.Tag())
	}
}
