/*
 * Copyright 2026 The ZoneSync Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package validation provides the validation functions for user-provided
// fields such as member names and timezones.
package validation

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// defaultValidator is the default validation instance. Some fields are
	// provided by the user and need to be validated before they reach the
	// team state.
	defaultValidator = validator.New()

	// defaultEn is the default translator instance for the 'en' locale.
	defaultEn = en.New()

	// uni is the UniversalTranslator instance set with the fallback locale
	// and locales it should support.
	uni = ut.New(defaultEn, defaultEn)

	// trans is the specified translator for the given locale, or fallback
	// if not found.
	trans, _ = uni.GetTranslator(defaultEn.Locale())
)

// Violation is a single invalid field of a validated struct.
type Violation struct {
	Tag         string
	Field       string
	Description string
}

// StructError is the error returned by ValidateStruct. It aggregates the
// violations of all invalid fields.
type StructError struct {
	Violations []Violation
}

// Error returns the error message.
func (s *StructError) Error() string {
	descs := make([]string, len(s.Violations))
	for i, v := range s.Violations {
		descs[i] = v.Description
	}
	return strings.Join(descs, ", ")
}

// CustomRuleFunc is a custom rule check function.
type CustomRuleFunc = validator.Func

// FieldLevel is the field level interface.
type FieldLevel = validator.FieldLevel

// RegisterValidation registers a custom validation with the given tag.
func RegisterValidation(tag string, fn CustomRuleFunc) {
	if err := defaultValidator.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// RegisterTranslation registers the translation for the given tag.
func RegisterTranslation(tag, message string) {
	if err := defaultValidator.RegisterTranslation(
		tag,
		trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return t
		},
	); err != nil {
		panic(err)
	}
}

// ValidateStruct validates the given struct against its validate tags and
// returns a StructError describing every invalid field.
func ValidateStruct(s interface{}) error {
	if err := defaultValidator.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}

		structError := &StructError{}
		for _, fieldErr := range validationErrs {
			structError.Violations = append(structError.Violations, Violation{
				Tag:         fieldErr.Tag(),
				Field:       fieldErr.StructField(),
				Description: fieldErr.Translate(trans),
			})
		}
		return structError
	}

	return nil
}

func init() {
	if err := entranslations.RegisterDefaultTranslations(defaultValidator, trans); err != nil {
		panic(err)
	}

	RegisterValidation("tzname", func(level FieldLevel) bool {
		_, err := time.LoadLocation(level.Field().String())
		return err == nil
	})
	RegisterTranslation("tzname", "{0} must be a valid IANA timezone name")

	RegisterValidation("hourslot", func(level FieldLevel) bool {
		hour := level.Field().Int()
		return hour >= 0 && hour < 24
	})
	RegisterTranslation("hourslot", "{0} must be an hour slot in [0, 24)")

	RegisterValidation("trimmed", func(level FieldLevel) bool {
		return strings.TrimSpace(level.Field().String()) != ""
	})
	RegisterTranslation("trimmed", "{0} must not be empty after trimming")
}
