package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
)

var (
	// custom validation tags & texts
	phoneTag   = "phone"
	phoneText  = "numéro de téléphone invalide"
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ().-]{6,20}$`)

	requiredTag  = "required"
	requiredText = "ce champ est obligatoire"

	emailTag  = "email"
	emailText = "adresse e-mail invalide"
)

// NewTranslator returns the French translator used for validation messages.
func NewTranslator() ut.Translator {
	_fr := fr.New()
	uni := ut.New(_fr, _fr)
	translator, _ := uni.GetTranslator("fr")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = fr_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	RegisterCustomTranslation(validate, translator, phoneTag, phoneText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, emailTag, emailText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// CheckVar validates a single value against `tag` and appends a translated FieldError
// named `field` to `errs` on failure. It returns true when the value is valid.
func CheckVar(
	validate *validator.Validate,
	translator ut.Translator,
	errs *[]FieldError,
	field string,
	value interface{},
	tag string,
) bool {
	err := validate.Var(value, tag)
	if err == nil {
		return true
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrs) == 0 {
		*errs = append(*errs, FieldError{Field: field, Error: err.Error()})
		return false
	}
	// single values have no field name to prefix the message with
	msg := strings.TrimSpace(vErrs[0].Translate(translator))
	*errs = append(*errs, FieldError{Field: field, Error: msg})
	return false
}

// Custom Global Validators

// phoneValidation allows digits, spaces, dots, dashes, parentheses and a leading "+".
func phoneValidation(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
