package colourdb

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	vOnce sync.Once
	v     *validator.Validate
	trans ut.Translator
)

// vInit initializes the singleton validator with english translations and yaml tag names
func vInit() {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ = uni.GetTranslator("en")

		v = validator.New(validator.WithRequiredStructEnabled())

		// prefer yaml tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
	})
}

// checkRecord validates one parsed row and reports the first failure
func checkRecord(row fileRecord) (field, msg string, ok bool) {
	vInit()
	err := v.Struct(row)
	if err == nil {
		return "", "", true
	}
	if verrs, isV := err.(validator.ValidationErrors); isV {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(trans), false
		}
	}
	return "", err.Error(), false
}
