// Package validator wraps go-playground/validator with field-level, human readable messages
package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validator defines the interface for validation operations
type Validator interface {
	ValidateStruct(s any) map[string]string
}

type validatorImpl struct {
	validate *validator.Validate
}

var (
	defaultOnce     sync.Once
	defaultInstance Validator
)

// NewValidator creates a validator that reports fields by their JSON names
// and understands the notblank tag
func NewValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("notblank", notBlank)
	return &validatorImpl{validate: v}
}

// ValidateStruct validates a struct and returns field-specific errors keyed
// by the JSON path of the offending field, e.g. "items[0].quantity"
func (v *validatorImpl) ValidateStruct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"request": err.Error()}
	}

	result := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		path := fieldPath(fieldErr.Namespace())
		result[path] = formatValidationError(fieldErr, prettifyFieldName(fieldErr.Field()))
	}
	return result
}

// ValidateStruct validates s with a shared validator instance
func ValidateStruct(s any) map[string]string {
	defaultOnce.Do(func() {
		defaultInstance = NewValidator()
	})
	return defaultInstance.ValidateStruct(s)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func formatValidationError(err validator.FieldError, fieldName string) string {
	switch err.Tag() {
	case "required":
		return fieldName + " is required"
	case "notblank":
		return fieldName + " must not be blank"
	case "email":
		return fieldName + " must be a valid email address"
	case "min":
		if isCollection(err.Kind()) {
			return fieldName + " must contain at least " + err.Param() + " item(s)"
		}
		if isNumber(err.Kind()) {
			return fieldName + " must be at least " + err.Param()
		}
		return fieldName + " must be at least " + err.Param() + " characters long"
	case "max":
		if isCollection(err.Kind()) {
			return fieldName + " must contain at most " + err.Param() + " item(s)"
		}
		if isNumber(err.Kind()) {
			return fieldName + " must be at most " + err.Param()
		}
		return fieldName + " must be at most " + err.Param() + " characters long"
	case "gt":
		return fieldName + " must be greater than " + err.Param()
	case "gte":
		return fieldName + " must be greater than or equal to " + err.Param()
	case "oneof":
		return fieldName + " must be one of the following: " + err.Param()
	case "unique":
		return fieldName + " must not contain duplicates"
	default:
		return fieldName + " is invalid"
	}
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map
}

func isNumber(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// prettifyFieldName turns snake_case or camelCase into a title-cased label
func prettifyFieldName(field string) string {
	var result []rune
	for i, r := range field {
		switch {
		case r == '_':
			result = append(result, ' ')
			continue
		case i > 0 && r >= 'A' && r <= 'Z' && field[i-1] >= 'a' && field[i-1] <= 'z':
			result = append(result, ' ')
		}
		result = append(result, r)
	}
	return cases.Title(language.Und, cases.NoLower).String(string(result))
}
