// Package cel provides a CEL (Common Expression Language) evaluator for raw-script templates.
//
// An Evaluator is built for a set of variable names and named functions. Variables are
// dynamically typed; functions accept between zero and MaxArity dynamic arguments and
// are dispatched to Go callables.
//
// Example usage:
//
//	evaluator, err := cel.NewEvaluator([]string{"year"}, map[string]cel.Func{
//	    "copyrightLine": func(args ...any) (any, error) {
//	        return fmt.Sprintf("(c) %v", args[0]), nil
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := evaluator.Evaluate(ctx, "copyrightLine(year)", map[string]interface{}{
//	    "year": 2024,
//	})
//	// result == "(c) 2024"
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - Conditionals: cond ? a : b
//   - String operations: contains, startsWith, endsWith, matches, +
//   - Arithmetic: +, -, *, /, %
//   - List operations: in, size
//   - Map access: data.field, data["field"]
//
// Errors returned by a function abort evaluation and are reported as *CallError.
package cel
