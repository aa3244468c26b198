package script

import (
	"errors"
	"strings"
)

// FileExt is the file extension of raw-script templates
const FileExt = ".rtpl"

const (
	openTag  = "<?"
	closeTag = "?>"
)

type segmentKind int

const (
	textSegment segmentKind = iota
	echoSegment
	execSegment
)

type segment struct {
	kind segmentKind
	body string
	line int
}

// Script is a parsed raw-script template
type Script struct {
	name     string
	segments []segment
}

// Name returns the name the script was parsed under
func (s *Script) Name() string {
	return s.name
}

// Expressions returns the expression bodies in source order
func (s *Script) Expressions() []string {
	var out []string
	for _, seg := range s.segments {
		if seg.kind != textSegment {
			out = append(out, seg.body)
		}
	}
	return out
}

// Parse splits src into text and expression segments
func Parse(name string, src []byte) (*Script, error) {
	s := &Script{name: name}
	rest := string(src)
	line := 1

	for len(rest) > 0 {
		start := strings.Index(rest, openTag)
		if start < 0 {
			s.segments = append(s.segments, segment{kind: textSegment, body: rest, line: line})
			break
		}

		if start > 0 {
			s.segments = append(s.segments, segment{kind: textSegment, body: rest[:start], line: line})
			line += strings.Count(rest[:start], "\n")
		}
		rest = rest[start+len(openTag):]

		kind := execSegment
		if strings.HasPrefix(rest, "=") {
			kind = echoSegment
			rest = rest[1:]
		}

		end := strings.Index(rest, closeTag)
		if end < 0 {
			return nil, &Error{Path: name, Line: line, Err: errors.New("unterminated tag")}
		}

		body := strings.TrimSpace(rest[:end])
		if body == "" {
			return nil, &Error{Path: name, Line: line, Err: errors.New("empty tag")}
		}
		s.segments = append(s.segments, segment{kind: kind, body: body, line: line})
		line += strings.Count(rest[:end], "\n")
		rest = rest[end+len(closeTag):]

		// Swallow one newline after a tag
		switch {
		case strings.HasPrefix(rest, "\r\n"):
			rest = rest[2:]
			line++
		case strings.HasPrefix(rest, "\n"):
			rest = rest[1:]
			line++
		}
	}

	return s, nil
}
