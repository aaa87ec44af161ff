package wire

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

	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks v against its `validate` struct tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// FieldErrors converts validator errors to the {field: [messages]} shape used in error bodies.
// It returns nil if err carries no field detail.
func FieldErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldName(fe)
		out[name] = append(out[name], fieldMessage(name, fe))
	}
	return out
}

func jsonFieldName(fe validator.FieldError) string {
	// drop the root struct name
	_, name, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return name
}

func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "min", "gte":
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", name, fe.Param())
	case "uuid":
		return fmt.Sprintf("The %s field must be a valid UUID.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}
