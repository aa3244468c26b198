package script

import (
	"fmt"
	"io"
)

// Helpers is the helper table a script can call into
type Helpers interface {
	Names() []string
	Invoke(name string, args ...any) (any, error)
}

// Context is the execution context of one script run. It exposes the bound data
// by name, the helper table, and the output writer.
type Context struct {
	vars    map[string]interface{}
	helpers Helpers
	out     io.Writer
}

// NewContext creates an execution context
func NewContext(vars map[string]interface{}, helpers Helpers, out io.Writer) *Context {
	if vars == nil {
		vars = map[string]interface{}{}
	}
	return &Context{
		vars:    vars,
		helpers: helpers,
		out:     out,
	}
}

// Get returns the value bound to name
func (c *Context) Get(name string) (interface{}, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Vars returns the bound data
func (c *Context) Vars() map[string]interface{} {
	return c.vars
}

// Call invokes a helper by name
func (c *Context) Call(name string, args ...any) (any, error) {
	if c.helpers == nil {
		return nil, fmt.Errorf("no helpers bound, cannot call %q", name)
	}
	return c.helpers.Invoke(name, args...)
}

// Write writes raw output
func (c *Context) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// Echo writes the textual form of v. nil writes nothing.
func (c *Context) Echo(v interface{}) error {
	if v == nil {
		return nil
	}
	_, err := fmt.Fprint(c.out, v)
	return err
}
