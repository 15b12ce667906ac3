// Package validation holds the shared struct validator and its storefront tags.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
)

var (
	cardNumberPattern = regexp.MustCompile(`^(?:\d{4} ?){3}\d{4}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVCPattern    = regexp.MustCompile(`^\d{3,4}$`)
	phonePattern      = regexp.MustCompile(`^\d{11}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "card_number", matches(cardNumberPattern))
	mustRegister(v, "card_expiry", matches(cardExpiryPattern))
	mustRegister(v, "card_cvc", matches(cardCVCPattern))
	mustRegister(v, "phone11", matches(phonePattern))
	mustRegister(v, "device_condition", func(fl validator.FieldLevel) bool {
		return enums.DeviceCondition(fl.Field().String()).IsValid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Struct validates dest and converts failures into a CodeValidation error
// whose details map field names to messages.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return FormatErrors(err)
	}
	return nil
}

func FormatErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = message(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "card_number":
		return "must be a 16-digit card number"
	case "card_expiry":
		return "must be in MM/YY format"
	case "card_cvc":
		return "must be 3 or 4 digits"
	case "phone11":
		return "must be an 11-digit phone number"
	case "device_condition":
		return "must be one of Like New, Good, Fair, Needs Repair"
	}
	return "is invalid"
}
