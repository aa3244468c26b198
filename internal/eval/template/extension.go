package template

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aymerick/raymond"
)

const localeKey = "locale"

// Extension contributes helpers to every template compiled by an Engine
type Extension interface {
	Helpers() map[string]interface{}
}

// Translator resolves a message id for a locale
type Translator interface {
	Translate(locale, msgid string) string
}

// I18nExtension provides the trans helper and the {{#translate}} block
type I18nExtension struct {
	translator    Translator
	defaultLocale string
}

// NewI18nExtension creates a translation extension
func NewI18nExtension(translator Translator, defaultLocale string) *I18nExtension {
	return &I18nExtension{
		translator:    translator,
		defaultLocale: defaultLocale,
	}
}

// Helpers implements Extension
func (x *I18nExtension) Helpers() map[string]interface{} {
	return map[string]interface{}{
		// {{trans "Sign out"}} / {{trans title}}
		"trans": func(text interface{}, options *raymond.Options) string {
			return x.translate(x.locale(options), raymond.Str(text))
		},

		// {{#translate}}...{{/translate}}
		"translate": func(options *raymond.Options) raymond.SafeString {
			body := strings.TrimSpace(options.Fn())
			return raymond.SafeString(x.translate(x.locale(options), body))
		},
	}
}

func (x *I18nExtension) locale(options *raymond.Options) string {
	if locale := options.DataStr(localeKey); locale != "" {
		return locale
	}
	return x.defaultLocale
}

func (x *I18nExtension) translate(locale, msgid string) string {
	if x.translator == nil || msgid == "" {
		return msgid
	}
	return x.translator.Translate(locale, msgid)
}

// coreExtension carries the helpers every template gets
type coreExtension struct{}

func (coreExtension) Helpers() map[string]interface{} {
	return map[string]interface{}{
		// uppercase helper
		"uppercase": func(value interface{}) string {
			return strings.ToUpper(raymond.Str(value))
		},

		// lowercase helper
		"lowercase": func(value interface{}) string {
			return strings.ToLower(raymond.Str(value))
		},

		// trim helper
		"trim": func(value interface{}) string {
			return strings.TrimSpace(raymond.Str(value))
		},

		// default helper - return default value if first arg is empty
		"default": func(value interface{}, defaultValue interface{}) interface{} {
			if value == nil || value == "" {
				return defaultValue
			}
			return value
		},

		// eq helper - equality comparison
		"eq": func(a, b interface{}) bool {
			return a == b
		},

		// ne helper - inequality comparison
		"ne": func(a, b interface{}) bool {
			return a != b
		},

		// contains helper - check if string contains substring
		"contains": func(str, substr interface{}) bool {
			return strings.Contains(raymond.Str(str), raymond.Str(substr))
		},

		// join helper - join array elements with separator
		"join": func(arr interface{}, sep interface{}) string {
			v := reflect.ValueOf(arr)
			if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
				return raymond.Str(arr)
			}
			strs := make([]string, v.Len())
			for i := 0; i < v.Len(); i++ {
				strs[i] = fmt.Sprint(v.Index(i).Interface())
			}
			return strings.Join(strs, raymond.Str(sep))
		},

		// len helper - get length of array/string/map
		"len": func(value interface{}) int {
			v := reflect.ValueOf(value)
			switch v.Kind() {
			case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
				return v.Len()
			default:
				return 0
			}
		},
	}
}
