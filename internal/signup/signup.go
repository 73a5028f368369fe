// Package signup validates and submits the account-creation form.
package signup

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ruminaider/devlinks/internal/api"
)

// Field messages shown next to the offending input.
const (
	MsgEmpty            = "Can't be empty"
	MsgInvalidEmail     = "Invalid email"
	MsgInvalidPassword  = "Invalid password"
	MsgPasswordMismatch = "Passwords must match"
)

// MsgFailed is shown when the server rejects a signup without a message.
const MsgFailed = "Something went wrong"

// Password length bounds, inclusive.
const (
	MinPassword = 8
	MaxPassword = 50
)

// Form fields, in display order.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

var fieldOrder = []string{FieldEmail, FieldPassword, FieldConfirmPassword}

const (
	emailRules    = "required,email"
	passwordRules = "required,min=8,max=50"
)

// Form is the user input.
type Form struct {
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8,max=50"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,min=8,max=50,eqfield=Password"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// ValidationError maps fields to their messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var parts []string
	for _, f := range fieldOrder {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "invalid signup form: " + strings.Join(parts, "; ")
}

// message turns the first failed rule of a field into its display text.
func message(tag string) string {
	switch tag {
	case "required":
		return MsgEmpty
	case "email":
		return MsgInvalidEmail
	case "eqfield":
		return MsgPasswordMismatch
	}
	return MsgInvalidPassword
}

func check(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(message(verrs[0].Tag()))
	}
	return err
}

// ValidateEmail checks the email input.
func ValidateEmail(s string) error {
	return check(validate.Var(strings.TrimSpace(s), emailRules))
}

// ValidatePassword checks the password input.
func ValidatePassword(s string) error {
	return check(validate.Var(s, passwordRules))
}

// ValidateConfirm returns a validator for the confirmation input. It obeys
// the password length rules and must equal *password, which is read on every
// call so it can follow a form field.
func ValidateConfirm(password *string) func(string) error {
	return func(s string) error {
		return check(validate.VarWithValue(s, *password, passwordRules+",eqfield"))
	}
}

// Validate checks every field and returns a *ValidationError, or nil.
func (f Form) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating signup form: %w", err)
	}
	fields := map[string]string{}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe.Tag())
		}
	}
	return &ValidationError{Fields: fields}
}

// Message returns the text to show for a failed Submit.
func Message(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var remote *api.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return MsgFailed
}

// Submitter creates accounts.
type Submitter interface {
	Signup(ctx context.Context, req api.SignupRequest) error
}

// Submit validates f and creates the account. Server failures are returned
// wrapped; Message picks the text to show.
func Submit(ctx context.Context, s Submitter, f Form) error {
	if err := f.Validate(); err != nil {
		return err
	}
	req := api.SignupRequest{
		Email:           strings.TrimSpace(f.Email),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	}
	if err := s.Signup(ctx, req); err != nil {
		return fmt.Errorf("creating account: %w", err)
	}
	return nil
}
