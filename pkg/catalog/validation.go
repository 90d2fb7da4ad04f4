// Dorkroom Core
// Copyright (c) 2026 The Dorkroom Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dorkroom Core.
//
// Dorkroom Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dorkroom Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dorkroom Core.  If not, see <http://www.gnu.org/licenses/>.

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single failed validation rule.
type FieldError struct {
	Value   any
	Field   string
	Tag     string
	Message string
}

// ValidationError lists every rule a record failed. It matches
// ErrInvalidRecord with errors.Is.
type ValidationError struct {
	Kind   Kind
	ID     string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("invalid %s %q", e.Kind, e.ID)
	}
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Message
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, strings.Join(msgs, "; "))
}

func (*ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateDilutionIDs, Developer{})
	return v
}

// validateDilutionIDs enforces unique dilution ids within a developer.
func validateDilutionIDs(sl validator.StructLevel) {
	dev, ok := sl.Current().Interface().(Developer)
	if !ok {
		return
	}
	seen := make(map[int]struct{}, len(dev.Dilutions))
	for _, dil := range dev.Dilutions {
		if _, dup := seen[dil.ID]; dup {
			sl.ReportError(dil.ID, "Dilutions", "Dilutions", "uniqueid", fmt.Sprint(dil.ID))
			return
		}
		seen[dil.ID] = struct{}{}
	}
}

// Validate checks a record's required fields and value ranges.
func Validate(r Record) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	ve := &ValidationError{
		Kind:   r.Kind(),
		ID:     r.RecordID(),
		Fields: make([]FieldError, len(verrs)),
	}
	for i, fe := range verrs {
		ve.Fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: formatFieldError(fe),
		}
	}
	return ve
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got %q", field, fe.Value())
	case "uniqueid":
		return fmt.Sprintf("dilution id %s is used more than once", fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
