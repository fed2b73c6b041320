// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/cinegraph/internal/models"
)

// CodeValidation is the APIError code for every failed validation.
const CodeValidation = "VALIDATION_ERROR"

// Validator returns the shared validator. It reports json field names and
// knows the notblank tag.
var Validator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("register notblank: %v", err))
	}
	return v
})

// FieldError is one failed constraint on one field.
type FieldError struct {
	Field   string      // json name of the field
	Tag     string      // failing tag, e.g. "lte"
	Param   string      // tag parameter, e.g. "11"
	Value   interface{} // offending value
	Message string
}

func (e FieldError) Error() string { return e.Message }

// RequestValidationError collects every FieldError of one struct.
type RequestValidationError struct {
	Fields []FieldError
}

func (e *RequestValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// ToAPIError renders the failure for the HTTP envelope. A single failure
// is reported flat; several are listed under details.fields.
func (e *RequestValidationError) ToAPIError() *models.APIError {
	switch len(e.Fields) {
	case 0:
		return &models.APIError{Code: CodeValidation, Message: "Validation failed"}
	case 1:
		f := e.Fields[0]
		return &models.APIError{
			Code:    CodeValidation,
			Message: f.Message,
			Details: map[string]interface{}{"field": f.Field, "tag": f.Tag, "value": f.Value},
		}
	}

	fields := make([]map[string]interface{}, len(e.Fields))
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		fields[i] = map[string]interface{}{"field": f.Field, "tag": f.Tag, "message": f.Message}
		msgs[i] = f.Field + ": " + f.Message
	}
	return &models.APIError{
		Code:    CodeValidation,
		Message: strings.Join(msgs, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// ValidateStruct checks s against its validate tags. It returns nil when s
// is valid; the typed nil is never returned as an error interface.
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondValidationError(w, verr.ToAPIError())
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{Fields: []FieldError{{Message: err.Error()}}}
	}

	out := &RequestValidationError{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return out
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// notBlank passes non-string fields; strings need a non-space character.
func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	return f.Kind() != reflect.String || strings.TrimSpace(f.String()) != ""
}

// phrases completes "<field> ..." for each tag; %s is the tag parameter.
var phrases = map[string]string{
	"required": "is required",
	"notblank": "must not be blank",
	"oneof":    "must be one of: %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"gt":       "must be greater than %s",
	"lt":       "must be less than %s",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
}

func message(fe validator.FieldError) string {
	phrase, ok := phrases[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
	if strings.Contains(phrase, "%s") {
		phrase = fmt.Sprintf(phrase, fe.Param())
	}
	if (fe.Tag() == "min" || fe.Tag() == "max") && fe.Kind() == reflect.String {
		phrase += " characters"
	}
	return fe.Field() + " " + phrase
}
