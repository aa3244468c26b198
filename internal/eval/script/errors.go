package script

import "fmt"

// Error reports a parse or evaluation failure inside a script. Errors returned
// by helpers are not wrapped in Error; they reach the caller unchanged.
type Error struct {
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
