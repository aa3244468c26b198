package template

// RenderError reports a failure to load, compile, or execute a template. The
// message is the underlying engine message, unchanged.
type RenderError struct {
	Name string
	Err  error
}

func (e *RenderError) Error() string {
	return e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
