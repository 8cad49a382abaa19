package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// saudiMobile accepts 05XXXXXXXX, 9665XXXXXXXX and +9665XXXXXXXX.
var saudiMobile = regexp.MustCompile(`^(05|\+9665|9665)\d{8}$`)

var hhmm = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("saphone", func(fl validator.FieldLevel) bool {
		return IsSaudiMobile(fl.Field().String())
	})
	_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmm.MatchString(fl.Field().String())
	})
}

// FieldError is one failed rule, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate struct fields. Returns nil when v is valid.
func Validate(v interface{}) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "saphone":
		return "must be a valid Saudi mobile number (05XXXXXXXX)"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "datetime":
		return fmt.Sprintf("must match format %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s'", fe.Tag())
	}
}

// IsSaudiMobile reports whether phone is a Saudi mobile number in any accepted form.
func IsSaudiMobile(phone string) bool {
	return saudiMobile.MatchString(strings.TrimSpace(phone))
}

// NormalizePhone converts an accepted Saudi mobile number to the local 05XXXXXXXX form.
func NormalizePhone(phone string) string {
	p := strings.TrimSpace(phone)
	switch {
	case strings.HasPrefix(p, "+966"):
		return "0" + strings.TrimPrefix(p, "+966")
	case strings.HasPrefix(p, "966"):
		return "0" + strings.TrimPrefix(p, "966")
	default:
		return p
	}
}
