// Package validation wraps a single go-playground/validator instance and
// turns its field errors into short, client-facing messages.
//
// Field names in messages come from the json tag (or the query or koanf tag
// when there is none), so a failing CreateUserDTO.FullName is reported as
// "fullName".
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// RequestValidationError collects every failed rule of one struct.
type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// First returns the message of the first failed rule, the one shown to
// clients in the response envelope.
func (ve *RequestValidationError) First() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	return ve.Fields[0].Message
}

// GetValidator returns the shared validator.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "query", "koanf"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

// ValidateStruct returns nil when s passes every rule.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{Fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		}
	}
	return &RequestValidationError{Fields: out}
}

var plainMessages = map[string]string{
	"required":    "%s is required",
	"required_if": "%s is required",
	"email":       "%s must be a valid email",
	"url":         "%s must be a valid uri",
	"uri":         "%s must be a valid uri",
	"mongodb":     "%s must be a valid id",
	"numeric":     "%s must be a number",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of [%s]",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	field := fieldPath(fe)
	if tmpl, ok := plainMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}

	switch fe.Tag() {
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s length must be %s %s characters long", field, bound, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must contain %s %s items", field, bound, fe.Param())
		default:
			return fmt.Sprintf("%s must be %s %s", field, bound, fe.Param())
		}
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// fieldPath keeps slice indexes from dive rules ("tags[2]") but drops the
// struct name prefix.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
