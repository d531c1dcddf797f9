package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the struct's validate tags and returns field:message
// pairs, or nil when the input is valid.
func ValidateStruct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": "invalid request body"}
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "is required"
		case "email":
			fields[name] = "must be a valid email address"
		case "min":
			fields[name] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			fields[name] = fmt.Sprintf("must be at most %s", fe.Param())
		case "oneof":
			fields[name] = fmt.Sprintf("must be one of: %s", fe.Param())
		default:
			fields[name] = "is invalid"
		}
	}
	return fields
}
