package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"hotel/errors"

	"github.com/go-playground/validator/v10"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	once     sync.Once
	validate *validator.Validate
)

func passwordLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxPasswordBytes
}

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("password", passwordLength)
	})
	return validate
}

// Struct validates s by its `validate` tags and reports the first failing
// field as a VALIDATION_ERROR.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()), err)
	}
	return errors.NewAppError(errors.ErrCodeValidation, "invalid input", err)
}

// ValidateEmail checks a single address.
func ValidateEmail(email string) error {
	if err := instance().Var(email, "required,email"); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "email is invalid", err)
	}
	return nil
}

// ValidatePassword checks a single password against the rules of
// RegisterInput.Password.
func ValidatePassword(password string) error {
	if err := instance().Var(password, "required,password"); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "password is empty or too long", err)
	}
	return nil
}

// ValidatePrice rejects negative prices.
func ValidatePrice(price float64) error {
	if price < 0 {
		return errors.New(errors.ErrCodeValidation, "price must not be negative")
	}
	return nil
}
