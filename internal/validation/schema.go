// Package validation holds the login and signup schemas. Validation is a
// pure function of its input: it returns either a normalized value or a
// list of field-path errors, and never touches the network or storage.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joblane/joblane-api/internal/constants"
)

// Validation messages, verbatim product strings.
const (
	MsgInvalidEmail     = "Enter a valid email."
	MsgPasswordTooShort = "Password should at least be 6 characters."
	MsgPasswordTooLong  = "Maximium 24 characters are allowed."
	MsgFirstNameLength  = "First Name should have minimum of 3 characters."
	MsgLastNameLength   = "Last Name should have minimum of 3 characters."
	MsgNameTooLong      = "Maximium of 18 characters are allowed."
	MsgPasswordMismatch = "Passwords don't match."
	MsgSameNames        = "First and Last name cannot be the same."
)

// FieldError attaches a message to the field path it belongs to.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// First returns the first error message, the one forms surface inline.
func (e FieldErrors) First() string {
	return e.Error()
}

// ByPath returns the message attached to a field path, if any.
func (e FieldErrors) ByPath(path string) (string, bool) {
	for _, fe := range e {
		if fe.Path == path {
			return fe.Message, true
		}
	}
	return "", false
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,max=24"`
}

type SignupInput struct {
	FirstName       string `json:"firstName" validate:"min=3,max=18"`
	LastName        string `json:"lastName" validate:"min=3,max=18"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"min=6,max=24"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Name composes the display name persisted on the user row.
func (in SignupInput) Name() string {
	return in.FirstName + " " + in.LastName
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateLogin trims the email and checks the login schema.
func ValidateLogin(in LoginInput) (LoginInput, FieldErrors) {
	in.Email = strings.TrimSpace(in.Email)

	var errs FieldErrors
	if verrs := structErrors(in); verrs != nil {
		for _, fe := range verrs {
			errs = append(errs, FieldError{Path: fe.Field(), Message: loginMessage(fe)})
		}
	}
	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

// ValidateSignup trims names and email, checks per-field rules, and applies
// both cross-field rules regardless of other field validity.
func ValidateSignup(in SignupInput) (SignupInput, FieldErrors) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	var errs FieldErrors
	if verrs := structErrors(in); verrs != nil {
		for _, fe := range verrs {
			errs = append(errs, FieldError{Path: fe.Field(), Message: signupMessage(fe)})
		}
	}

	if in.Password != in.ConfirmPassword {
		errs = append(errs, FieldError{Path: "confirmPassword", Message: MsgPasswordMismatch})
	}
	if in.FirstName == in.LastName {
		errs = append(errs, FieldError{Path: "lastName", Message: MsgSameNames})
	}

	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

func structErrors(in interface{}) validator.ValidationErrors {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	return verrs
}

func loginMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		return MsgInvalidEmail
	case "password":
		if fe.Tag() == "max" {
			return MsgPasswordTooLong
		}
		return MsgPasswordTooShort
	}
	return fe.Error()
}

func signupMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "firstName":
		if fe.Tag() == "max" {
			return MsgNameTooLong
		}
		return MsgFirstNameLength
	case "lastName":
		if fe.Tag() == "max" {
			return MsgNameTooLong
		}
		return MsgLastNameLength
	default:
		return loginMessage(fe)
	}
}

// Bounds re-exported for handlers that report them.
const (
	MinPasswordLength = constants.MinPasswordLength
	MaxPasswordLength = constants.MaxPasswordLength
)
