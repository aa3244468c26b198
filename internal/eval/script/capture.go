package script

import (
	"bytes"
	"errors"
)

var errCaptureClosed = errors.New("output capture closed")

// capture collects output for one render. It accepts writes until finish or
// discard is called.
type capture struct {
	buf    bytes.Buffer
	closed bool
}

func beginCapture() *capture {
	return &capture{}
}

func (c *capture) Write(p []byte) (int, error) {
	if c.closed {
		return 0, errCaptureClosed
	}
	return c.buf.Write(p)
}

// finish closes the capture and returns what was written
func (c *capture) finish() string {
	out := c.buf.String()
	c.discard()
	return out
}

// discard closes the capture and drops its contents. It is safe to call more than once.
func (c *capture) discard() {
	c.buf.Reset()
	c.closed = true
}
