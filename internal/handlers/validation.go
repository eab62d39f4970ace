package handlers

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Messages shown inline on the account forms.
const (
	msgFillForm      = "Please fill out the form!"
	msgInvalidEmail  = "Invalid email address!"
	msgAccountExists = "Account already exists with this email!"
	msgEmailInUse    = "Email already in use by another account."
	msgBadLogin      = "Incorrect email/password!"
)

// emailPattern accepts anything shaped like local@domain.tld.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

// RegisterValidators adds the custom binding rules used by the forms.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("marketemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
}

// formMessage turns a binding error into the message for the form.
// Missing fields win over malformed ones.
func formMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgFillForm
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return msgFillForm
		}
	}
	for _, fe := range verrs {
		if fe.Tag() == "marketemail" {
			return msgInvalidEmail
		}
	}
	return msgFillForm
}

// normalizeEmail makes email comparison case-insensitive on every driver.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
