// Package validation holds the write-time validator shared by every input
// path: CLI flags, the huh form, import files and the HTTP API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	notBlankTag    = "notblank"
	dayTag         = "day"
	spanOrderTag   = "span_order"
	dayLayout      = "2006-01-02"
	defaultMessage = "invalid value"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report fields by their json names so messages match the input keys.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterValidation(dayTag, isDay)

	registerCustomTranslations(notBlankTag, dayTag, spanOrderTag)
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// RegisterSpan adds a struct-level check that the day string in endField is
// not before the one in startField. Both fields are read by Go name.
func RegisterSpan(sample any, startField, endField string) {
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		v := sl.Current()
		start, err1 := time.Parse(dayLayout, v.FieldByName(startField).String())
		end, err2 := time.Parse(dayLayout, v.FieldByName(endField).String())
		if err1 != nil || err2 != nil {
			return
		}
		if end.Before(start) {
			f, _ := v.Type().FieldByName(endField)
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			sl.ReportError(v.FieldByName(endField).Interface(), name, endField, spanOrderTag, "")
		}
	}, sample)
}

// FieldErrors flattens a validation error into json-field -> message.
// It returns nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(translator)
	}
	return out
}

// Describe renders a validation error as "field: message" lines sorted by
// field, prefixed with the given path. Other errors pass through unchanged.
func Describe(prefix string, err error) []error {
	fields := FieldErrors(err)
	if fields == nil {
		if err == nil {
			return nil
		}
		return []error{err}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	errs := make([]error, 0, len(keys))
	for _, k := range keys {
		field := k
		if prefix != "" {
			field = prefix + "." + k
		}
		errs = append(errs, fmt.Errorf("%s: %s", field, fields[k]))
	}
	return errs
}

func registerCustomTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case dayTag:
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	case spanOrderTag:
		return fe.Field() + " must not be before the start date"
	default:
		return defaultMessage
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func isDay(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(dayLayout, str)
	return err == nil
}
