package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"cyber-kittens/internal/platform/apperr"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Reportar errores con el nombre JSON del campo, no el del struct.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return val
}

// Struct valida s según sus tags `validate` y devuelve un apperr BadRequest
// con un mensaje por campo inválido.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.KindInternal, "validate", err)
	}

	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe, fe.Field())
		names = append(names, fe.Field())
	}
	sort.Strings(names)
	return apperr.Invalid("invalid fields: "+strings.Join(names, ", "), fields)
}

func message(fe validator.FieldError, f string) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f)
	case "min":
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", f, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", f, fe.Param())
	default:
		return fmt.Sprintf("%s validation failed on '%s' tag", f, fe.Tag())
	}
}
