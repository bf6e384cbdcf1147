// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator and translates field errors into
// human-readable messages keyed by the dotted field path:
//
//	type StageConfig struct {
//	    TopN int `validate:"gte=1"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    return fmt.Errorf("invalid config: %w", verr)
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the dotted path of the field that failed validation.
func (e *FieldError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string { return e.tag }

// Param returns the parameter for the validation tag (e.g., "1" for "gte=1").
func (e *FieldError) Param() string { return e.param }

// Value returns the actual value that failed validation.
func (e *FieldError) Value() interface{} { return e.value }

// Error returns a human-readable error message.
func (e *FieldError) Error() string { return e.message }

// StructError collects every field failure of one ValidateStruct call.
type StructError struct {
	errors []FieldError
}

// Errors returns the individual field failures.
func (se *StructError) Errors() []FieldError {
	return se.errors
}

// Error joins all field messages.
func (se *StructError) Error() string {
	if len(se.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(se.errors))
	for i := range se.errors {
		messages = append(messages, se.errors[i].Error())
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates s against its `validate` tags.
// Returns nil when s is valid.
func ValidateStruct(s interface{}) *StructError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &StructError{
			errors: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		field := fieldPath(fe)
		fieldErrors[i] = FieldError{
			field:   field,
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe, field),
		}
	}

	return &StructError{errors: fieldErrors}
}

// fieldPath drops the root struct name from the namespace: "Config.Database.Path" -> "Database.Path".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError, field string) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	switch tag {
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s entries", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at most %s entries", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
