// Package helper provides the per-view table of named helper functions.
//
// A Registry maps a helper name to a Func. Adding a name twice is an error, and so is
// removing or invoking a name that was never added. MergeDefaults is the relaxed
// variant used at render time: it overlays call-scoped helpers on top of the table.
//
// Example usage:
//
//	reg := helper.NewRegistry(nil)
//	_ = reg.Add("greet", func(args ...any) (any, error) {
//	    return "hi", nil
//	})
//
//	out, err := reg.Invoke("greet")
//	// out == "hi"
//
//	err = reg.Add("greet", other)
//	// errors.Is(err, helper.ErrDuplicateHelper)
package helper
