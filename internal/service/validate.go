package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

const msgInvalidEmail = "Please enter a valid email address."

var (
	validate = newValidator()

	// same shape the landing page accepts: something@something.something, no spaces
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

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

// validateStruct runs struct tags and reports the first failure as a validation error
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return errs.Validation("", err.Error())
	}

	fe := ve[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return errs.Validation(field, fmt.Sprintf("%s is required.", humanize(field)))
	case "email":
		return errs.Validation(field, msgInvalidEmail)
	case "oneof":
		return errs.Validation(field, fmt.Sprintf("%s must be one of: %s.", humanize(field), strings.ReplaceAll(fe.Param(), " ", ", ")))
	default:
		return errs.Validation(field, fmt.Sprintf("%s is invalid.", humanize(field)))
	}
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ValidEmail landing and registration email shape
func ValidEmail(email string) bool {
	e := strings.TrimSpace(email)
	return e != "" && emailPattern.MatchString(e)
}

// Password rules, checked in this order
const (
	MsgPasswordLength    = "Password must be at least 8 characters long."
	MsgPasswordUppercase = "Password must contain at least one uppercase letter."
	MsgPasswordSpecial   = "Password must contain at least one special character."
	MsgPasswordMismatch  = "Passwords do not match."
)

// ValidatePassword returns the first rule password breaks
func ValidatePassword(password string) error {
	if len([]rune(password)) < 8 {
		return errs.Validation("password", MsgPasswordLength)
	}
	var upper, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r):
			special = true
		}
	}
	if !upper {
		return errs.Validation("password", MsgPasswordUppercase)
	}
	if !special {
		return errs.Validation("password", MsgPasswordSpecial)
	}
	return nil
}
