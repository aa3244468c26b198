package script

import "io"

// Validate compiles every tag expression against an environment declaring vars
// and helpers, without evaluating anything. The first failure is returned as
// an *Error carrying the tag's line.
func (s *Script) Validate(vars []string, helpers Helpers) error {
	data := make(map[string]interface{}, len(vars))
	for _, name := range vars {
		data[name] = nil
	}

	evaluator, _, err := s.environment(NewContext(data, helpers, io.Discard))
	if err != nil {
		return err
	}

	for _, seg := range s.segments {
		if seg.kind == textSegment {
			continue
		}
		if err := evaluator.ValidateExpression(seg.body); err != nil {
			return &Error{Path: s.name, Line: seg.line, Err: err}
		}
	}

	return nil
}
