// Package script renders legacy raw-script templates.
//
// A raw-script template (".rtpl") is literal text with embedded tags:
//
//	<?= expr ?>   evaluate expr and write its value
//	<? expr ?>    evaluate expr for its side effects, discard the value
//
// Expressions are CEL. Every data key that is a valid identifier is bound as a
// variable, and the whole mapping is reachable as data["key"]. Every registered
// helper is callable by name, and echo(value) writes to the output. A helper named
// like a CEL builtin or macro (size, string, has) is called as helper("size", x).
// A single newline directly after a closing "?>" is dropped so statement-only lines
// leave no blank line.
//
// Example usage:
//
//	// templates/legacy/footer.rtpl:
//	// <footer><?= copyrightLine() ?> (<?= year ?>)</footer>
//
//	renderer := script.NewRenderer(logger)
//	out, err := renderer.Render(ctx, "templates/legacy/footer.rtpl",
//	    map[string]interface{}{"year": 2024},
//	    registry,
//	)
//
// All output is captured into a buffer that is discarded if execution fails, so a
// failed render never returns partial output.
package script
