// Package i18n provides the message catalog behind the template `trans` extension.
//
// Catalogs are loaded from one YAML file per locale, named after the language tag:
//
//	locales/
//	  en.yaml
//	  de.yaml
//
// Each file is a flat mapping from message id to translated text:
//
//	"Hello": "Hallo"
//	"Sign out": "Abmelden"
//
// Lookups negotiate the requested locale against the loaded ones (so "de-AT"
// resolves to "de") and fall back to the default locale. Message ids with no
// translation are returned unchanged. Translated text is a format string; write
// a literal percent sign as "%%".
package i18n
