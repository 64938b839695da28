package errors

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldFailure names one failed validation rule, keyed by the field's JSON name.
type FieldFailure struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

func getJSONFieldName(structType reflect.Type, fieldName string) string {
	if structType == nil {
		return fieldName
	}

	field, found := structType.FieldByName(fieldName)
	if !found {
		return fieldName
	}

	jsonTag := field.Tag.Get("json")
	if jsonTag == "" || jsonTag == "-" {
		return fieldName
	}

	return strings.Split(jsonTag, ",")[0]
}

// ValidationFailures flattens validator errors produced while binding into
// model. It returns nil for anything that is not a validation failure (a JSON
// syntax error, a type mismatch, an empty body), which callers treat as an
// unparsable request.
func ValidationFailures(err error, model any) []FieldFailure {
	var validationErrors validator.ValidationErrors
	if err == nil || !errors.As(err, &validationErrors) {
		return nil
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	failures := make([]FieldFailure, len(validationErrors))
	for i, fieldError := range validationErrors {
		failures[i] = FieldFailure{
			Field: getJSONFieldName(structType, fieldError.StructField()),
			Tag:   fieldError.Tag(),
		}
	}

	return failures
}

// HasTag reports whether any failure was raised by the given validation tag.
func HasTag(failures []FieldFailure, tag string) bool {
	for _, f := range failures {
		if f.Tag == tag {
			return true
		}
	}
	return false
}
