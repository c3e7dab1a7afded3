// Package validate holds input validation shared by both workflows.
package validate

import (
	"errors"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var ErrBadPhone = errors.New("invalid phone number")

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// At least seven digits somewhere in the value; formatting characters
	// between them are allowed.
	_ = val.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		digits := 0
		for _, r := range fl.Field().String() {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		return digits >= 7
	})
	return val
}

type phoneInput struct {
	Phone string `validate:"required,max=100,phonedigits"`
}

// Phone checks a user-supplied phone number: at least seven digits, at most
// a hundred characters.
func Phone(s string) error {
	if err := v.Struct(phoneInput{Phone: s}); err != nil {
		return ErrBadPhone
	}
	return nil
}
