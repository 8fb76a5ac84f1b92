package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages match the request payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns a readable error for the first failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	return errors.New(Message(ve[0]))
}

func Message(fe validator.FieldError) string {
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing mandatory field `%s`", field)
	case "email":
		return fmt.Sprintf("`%s` must be a valid email address", field)
	case "min":
		return fmt.Sprintf("`%s` must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("`%s` must be at most %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("`%s` must be exactly %s characters", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("`%s` must contain only digits", field)
	case "eqfield":
		return fmt.Sprintf("`%s` must match `%s`", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("`%s` must be one of [%s]", field, fe.Param())
	case "url":
		return fmt.Sprintf("`%s` must be a valid URL", field)
	default:
		return fmt.Sprintf("`%s` is invalid", field)
	}
}
