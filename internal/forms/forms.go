// Package forms validates the auth forms and keeps their drafts.
package forms

import (
	"strings"

	"github.com/spec-kit/creatorhub/internal/domain"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// FieldGeneral keys the banner message of a form.
const FieldGeneral = "general"

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// Errors maps a field name to its message. It is empty when a form is valid.
type Errors map[string]string

// Valid reports whether no field has a message.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Clear drops the message of field, as when the user edits it.
func (e Errors) Clear(field string) {
	delete(e, field)
}

// RegisterForm is the sign-up form.
type RegisterForm struct {
	Name            string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	IsCreator       bool
}

// Validate checks every field.
func (f RegisterForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Full name is required"
	}
	switch {
	case strings.TrimSpace(f.Username) == "":
		errs["username"] = "Username is required"
	case len(f.Username) < minUsernameLength:
		errs["username"] = "Username must be at least 3 characters"
	}
	if msg := emailError(f.Email, "Email is invalid"); msg != "" {
		errs["email"] = msg
	}
	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case len(f.Password) < minPasswordLength:
		errs["password"] = "Password must be at least 6 characters"
	}
	switch {
	case f.ConfirmPassword == "":
		errs["confirmPassword"] = "Please confirm your password"
	case f.ConfirmPassword != f.Password:
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs
}

// ConfirmError is the live check shown while either password field is
// edited.
func (f RegisterForm) ConfirmError() string {
	if f.ConfirmPassword != "" && f.ConfirmPassword != f.Password {
		return "Passwords do not match"
	}
	return ""
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks every field.
func (f LoginForm) Validate() Errors {
	errs := Errors{}
	if msg := emailError(f.Email, "Email is invalid"); msg != "" {
		errs["email"] = msg
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// ForgotPasswordForm asks for a reset link.
type ForgotPasswordForm struct {
	Email string
}

// Validate checks the email.
func (f ForgotPasswordForm) Validate() Errors {
	errs := Errors{}
	if msg := emailError(f.Email, "Please enter a valid email address"); msg != "" {
		errs["email"] = msg
	}
	return errs
}

func emailError(email, invalid string) string {
	switch {
	case strings.TrimSpace(email) == "":
		return "Email is required"
	case !domain.ValidEmail(email):
		return invalid
	}
	return ""
}

const unexpectedError = "An unexpected error occurred. Please try again."

// RegisterErrors maps a failed registration onto the form. Per-field
// server messages win over the banner.
func RegisterErrors(err error) Errors {
	if fields := apperrors.FieldErrors(err); len(fields) > 0 {
		return Errors(fields)
	}
	msg := apperrors.UserMessage(err, "")
	switch {
	case msg == "":
		return Errors{FieldGeneral: unexpectedError}
	case strings.Contains(msg, "User already exists"):
		return Errors{FieldGeneral: "This email or username is already registered"}
	default:
		return Errors{FieldGeneral: msg}
	}
}

// LoginErrors maps a failed login onto the form.
func LoginErrors(err error) Errors {
	msg := apperrors.UserMessage(err, "")
	switch {
	case msg == "":
		return Errors{FieldGeneral: unexpectedError}
	case strings.Contains(msg, "User not found"):
		return Errors{"email": "No account found with this email"}
	default:
		return Errors{FieldGeneral: msg}
	}
}
