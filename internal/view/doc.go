// Package view implements the template view: one named template plus the data
// and helpers it is rendered with.
//
// A view is backed by one of two engines, chosen at render time by probing the
// template root:
//   - Compiled: <root>/<name>.hbs exists, rendered by the Handlebars engine
//   - Raw: otherwise <root>/<name>.rtpl, executed as a raw script with the
//     view's helpers callable by name
//
// If neither file exists, Render fails with ErrTemplateNotFound naming the raw
// script path.
//
// Example usage:
//
//	views := view.NewFactory("templates", view.WithLogger(logger))
//
//	v := views.Get("legacy/footer", map[string]interface{}{"site": "example.org"}, nil)
//	v.SetOne("year", 2024)
//	if err := v.SetHelper("copyrightLine", func(args ...any) (any, error) {
//	    return "(c) 2024", nil
//	}); err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := v.Render(nil, nil)
//
// Helpers can also be called directly through the view:
//
//	line, err := v.Invoke("copyrightLine")
//
// Data set on a view persists across renders; data passed to Render is merged
// into it, overwriting keys with the same name. Helpers passed to Render are
// merged into the view's helper table for raw scripts only; compiled templates
// use the engine's extensions instead.
package view
