package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
	Tag     string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// formatTags are the tags whose failure means the value could not be parsed at all.
var formatTags = map[string]bool{
	"date":           true,
	"month":          true,
	"datetime_local": true,
	"payperiod":      true,
}

// HasFormatError reports whether any field failed to parse as a date, month or period.
func (v ValidationErrors) HasFormatError() bool {
	for _, err := range v {
		if formatTags[err.Tag] {
			return true
		}
	}
	return false
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

var structValidator = newStructValidator()

func newStructValidator() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("date", func(fl playground.FieldLevel) bool {
		_, ok := IsValidDate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("month", func(fl playground.FieldLevel) bool {
		_, ok := IsValidMonth(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("datetime_local", func(fl playground.FieldLevel) bool {
		_, ok := IsValidLocalDateTime(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("payperiod", func(fl playground.FieldLevel) bool {
		return IsValidPayPeriod(fl.Field().String())
	})

	return v
}

// Struct runs the `validate` tags of s and converts failures into ValidationErrors.
func Struct(s interface{}) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Tag:     fe.Tag(),
		})
	}
	return errs
}

func messageFor(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "date":
		return field + " must be in YYYY-MM-DD format"
	case "month":
		return field + " must be in YYYY-MM format"
	case "datetime_local":
		return field + " must be in YYYY-MM-DD HH:mm format"
	case "payperiod":
		return field + " must be in YYYYMM format"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return field + " must not exceed " + fe.Param() + " characters"
	case "len":
		return field + " must be exactly " + fe.Param() + " characters"
	case "numeric":
		return field + " must be numeric"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be at least " + fe.Param()
	case "lte":
		return field + " must not exceed " + fe.Param()
	case "dive", "min":
		return field + " must contain at least " + fe.Param() + " item(s)"
	default:
		return field + " is invalid"
	}
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidMonth validates a "YYYY-MM" month.
func IsValidMonth(monthStr string) (time.Time, bool) {
	month, err := time.Parse("2006-01", monthStr)
	return month, err == nil
}

// IsValidLocalDateTime validates "YYYY-MM-DD HH:mm" as sent by the mobile client.
func IsValidLocalDateTime(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	return t, err == nil
}

// IsValidPayPeriod validates a "YYYYMM" pay period.
func IsValidPayPeriod(s string) bool {
	if len(s) != 6 || !IsNumeric(s) {
		return false
	}
	_, err := time.Parse("200601", s)
	return err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
