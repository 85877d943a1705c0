package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

var (
	// Up to 15 digits with an optional leading +, international format.
	mobileRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)
	aadharRegex = regexp.MustCompile(`^\d{12}$`)
)

// Setup registers the validator with English translations and the custom
// rules on Gin's binding engine. Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		v.RegisterValidation("mobile", func(fl govalidator.FieldLevel) bool {
			return mobileRegex.MatchString(fl.Field().String())
		})
		v.RegisterValidation("aadhar", func(fl govalidator.FieldLevel) bool {
			return aadharRegex.MatchString(fl.Field().String())
		})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		en_translations.RegisterDefaultTranslations(v, trans)

		registerCustomTranslation(v, "mobile", "{0} must be a valid mobile number")
		registerCustomTranslation(v, "aadhar", "{0} must be a 12-digit aadhar number")
	}
}

func registerCustomTranslation(v *govalidator.Validate, tag, msg string) {
	v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		})
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
