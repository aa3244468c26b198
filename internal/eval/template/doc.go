// Package template provides the compiled-template engine used by views.
//
// Templates are Handlebars files with the ".hbs" extension, resolved relative to a
// root directory. Compiled templates are cached by name and recompiled when the
// file's modification time or size changes. Output from {{ }} expressions is
// HTML-escaped; use {{{ }}} for trusted markup.
//
// Example usage:
//
//	catalog, _ := i18n.LoadDir("locales", "en")
//	engine := template.NewEngine("templates",
//	    template.WithExtension(template.NewI18nExtension(catalog, "en")),
//	    template.WithLogger(logger),
//	)
//
//	// templates/user/card.hbs: <p>{{trans "Hello"}}, {{uppercase username}}</p>
//	result, err := engine.Render("user/card", map[string]interface{}{
//	    "username": "ada",
//	    "locale":   "de",
//	})
//	// result: <p>Hallo, ADA</p>
//
// Built-in helpers:
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - trim - Trim whitespace from string
//   - default - Return default value if first arg is empty
//   - eq - Equality comparison
//   - ne - Inequality comparison
//   - contains - Check if string contains substring
//   - join - Join array elements with separator
//   - len - Get length of array/string/map
//
// Translation extension:
//
//	{{trans "Sign out"}}                   # gettext-style lookup of a literal
//	{{trans title}}                        # lookup of a context value
//	{{#translate}}Welcome back{{/translate}} # block form, translates the rendered body
//
// The locale is taken from the "locale" key of the render data, falling back to the
// extension's default locale.
package template
