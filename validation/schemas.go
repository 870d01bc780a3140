package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/identkit/identkit"
)

// Fixed user-facing messages. These are part of the contract with the UI;
// tests pin them.
const (
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Please enter a valid email address"
	msgPasswordRequired = "Password is required"
	msgPasswordTooShort = "Password must be at least 6 characters"
	msgPasswordInvalid  = "Your password is not valid"
	msgConfirmRequired  = "Password confirm is required"
	msgPasswordsMatch   = "Passwords must match"
	msgChangeMatch      = "Password and Confirm Password must match"
	msgTerms            = "You must accept the terms & privacy policy"
	msgRole             = "You must have a role"
)

// passwordSymbols is the accepted symbol class. A password needs at least
// one rune from it, plus an uppercase letter, a lowercase letter, and a
// digit; other characters are allowed but count toward nothing.
const passwordSymbols = "#?!@$%^&*-"

// User is the base form shape. Role defaults to admin when absent; derived
// schemas drop the field and therefore never apply the default.
type User struct {
	Email           string        `json:"email" validate:"required,email"`
	Password        string        `json:"password" validate:"required,min=6,passwordchars"`
	ConfirmPassword string        `json:"confirmPassword" validate:"required"`
	Role            identkit.Role `json:"role" validate:"omitempty,oneof=user editor admin"`
	Verified        bool          `json:"verified"`
	Terms           bool          `json:"terms" validate:"eq=true"`
	ReceiveEmail    bool          `json:"receiveEmail"`
}

// Credentials is the login form shape. Transient; used only to validate
// before the login call.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,passwordchars"`
}

// Registration is the sign-up form shape. Terms must be literally true.
type Registration struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,passwordchars"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Terms           bool   `json:"terms" validate:"eq=true"`
}

// PasswordChange is the change-password form shape.
type PasswordChange struct {
	Password        string `json:"password" validate:"required,min=6,passwordchars"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field paths by json tag so error paths match what the UI binds.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("passwordchars", func(fl validator.FieldLevel) bool {
		return passwordClassesOK(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

func passwordClassesOK(password string) bool {
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// UserSchema validates the base form. Whitespace around passwords is
// trimmed before checking; an absent role defaults to admin.
func UserSchema(in User) (User, FieldErrors) {
	in.Password = strings.TrimSpace(in.Password)
	in.ConfirmPassword = strings.TrimSpace(in.ConfirmPassword)
	if in.Role == "" {
		in.Role = identkit.RoleAdmin
	}

	errs := collect(validate.Struct(in))
	if len(errs) == 0 {
		return in, nil
	}
	return in, errs
}

// LoginSchema validates login credentials.
func LoginSchema(in Credentials) (Credentials, FieldErrors) {
	in.Password = strings.TrimSpace(in.Password)

	errs := collect(validate.Struct(in))
	if len(errs) == 0 {
		return in, nil
	}
	return in, errs
}

// RegisterSchema validates the sign-up form. A password/confirmation
// mismatch attaches its message to the confirmPassword path only.
func RegisterSchema(in Registration) (Registration, FieldErrors) {
	in.Password = strings.TrimSpace(in.Password)
	in.ConfirmPassword = strings.TrimSpace(in.ConfirmPassword)

	errs := collect(validate.Struct(in))
	if in.ConfirmPassword != in.Password {
		errs.Add("confirmPassword", msgPasswordsMatch)
	}
	if len(errs) == 0 {
		return in, nil
	}
	return in, errs
}

// UserUpdatePasswordSchema validates the change-password form. Unlike
// registration, a mismatch attaches its message to BOTH the password and
// confirmPassword paths; the asymmetry is intentional.
func UserUpdatePasswordSchema(in PasswordChange) (PasswordChange, FieldErrors) {
	in.Password = strings.TrimSpace(in.Password)
	in.ConfirmPassword = strings.TrimSpace(in.ConfirmPassword)

	errs := collect(validate.Struct(in))
	if in.ConfirmPassword != in.Password {
		errs.Add("password", msgChangeMatch)
		errs.Add("confirmPassword", msgChangeMatch)
	}
	if len(errs) == 0 {
		return in, nil
	}
	return in, errs
}

// collect converts validator output into FieldErrors with the fixed
// messages. It always returns a usable (possibly empty) map so callers can
// append cross-field findings.
func collect(err error) FieldErrors {
	errs := FieldErrors{}
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("", err.Error())
		return errs
	}

	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		if fe.Tag() == "required" {
			return msgEmailRequired
		}
		return msgEmailInvalid
	case "password":
		switch fe.Tag() {
		case "required":
			return msgPasswordRequired
		case "min":
			return msgPasswordTooShort
		default:
			return msgPasswordInvalid
		}
	case "confirmPassword":
		return msgConfirmRequired
	case "terms":
		return msgTerms
	case "role":
		return msgRole
	default:
		return fe.Field() + " failed validation (" + fe.Tag() + ")"
	}
}

// MinPasswordLength is exported for UIs that render the rule up front.
const MinPasswordLength = 6
