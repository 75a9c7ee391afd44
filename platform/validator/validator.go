// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"phonenumber_backend/platform/phone"

	"github.com/go-playground/validator/v10"
)

const (
	// TagRegion accepts strings the phone region resolver recognises.
	TagRegion = "phone_region"
	// TagFormat accepts the four phone format names, case-sensitive.
	TagFormat = "phone_format"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator with the phone tags registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation(TagRegion, validateRegion)
	_ = v.RegisterValidation(TagFormat, validateFormat)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

func validateRegion(fl validator.FieldLevel) bool {
	_, err := phone.ResolveRegion(fl.Field().String())
	return err == nil
}

func validateFormat(fl validator.FieldLevel) bool {
	return phone.Format(fl.Field().String()).Valid()
}
