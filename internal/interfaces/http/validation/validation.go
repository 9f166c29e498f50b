// Package validation configures gin's request binding validator: JSON field
// names in messages, English translations and the domain-specific tags.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	vo "edulearn/internal/domain/subscription/valueobjects"
)

const billingCycleTag = "billingcycle"

var (
	translator ut.Translator
	once       sync.Once
	setupErr   error
)

// Register installs the custom tags on gin's default validator. Safe to call
// more than once.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin binding validator is not go-playground/validator")
			return
		}
		setupErr = configure(v)
	})
	return setupErr
}

func configure(v *validator.Validate) error {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(v, translator); err != nil {
		return err
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(billingCycleTag, func(fl validator.FieldLevel) bool {
		_, err := vo.ParseBillingCycle(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	return v.RegisterTranslation(billingCycleTag, translator,
		func(t ut.Translator) error {
			return t.Add(billingCycleTag, "{0} must be either monthly or yearly", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(billingCycleTag, fe.Field())
			return msg
		},
	)
}

// Describe flattens a binding error into a single readable line. Errors that
// are not field validation failures (malformed JSON) are returned as is.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || translator == nil {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(translator))
	}
	return strings.Join(msgs, "; ")
}
