package script

import (
	"context"
	"errors"
	"io"

	"github.com/aescanero/dago-node-view/internal/eval/cel"
)

const dataVar = "data"

// Execute runs the script against ectx, writing output to its writer
func (s *Script) Execute(ctx context.Context, ectx *Context) error {
	evaluator, vars, err := s.environment(ectx)
	if err != nil {
		return err
	}

	for _, seg := range s.segments {
		switch seg.kind {
		case textSegment:
			if _, err := io.WriteString(ectx, seg.body); err != nil {
				return err
			}

		case echoSegment, execSegment:
			value, err := evaluator.Evaluate(ctx, seg.body, vars)
			if err != nil {
				var callErr *cel.CallError
				if errors.As(err, &callErr) {
					return callErr.Err
				}
				return &Error{Path: s.name, Line: seg.line, Err: err}
			}
			if seg.kind == echoSegment {
				if err := ectx.Echo(value); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// environment declares the context's data and helpers for evaluation
func (s *Script) environment(ectx *Context) (*cel.Evaluator, map[string]interface{}, error) {
	vars := make(map[string]interface{}, len(ectx.vars)+1)
	names := make([]string, 0, len(ectx.vars)+1)
	for name, value := range ectx.vars {
		vars[name] = value
		names = append(names, name)
	}
	if _, ok := vars[dataVar]; !ok {
		vars[dataVar] = ectx.vars
		names = append(names, dataVar)
	}

	funcs := make(map[string]cel.Func)
	if ectx.helpers != nil {
		for _, name := range ectx.helpers.Names() {
			name := name
			funcs[name] = func(args ...any) (any, error) {
				return ectx.helpers.Invoke(name, args...)
			}
		}
	}
	if _, ok := funcs["echo"]; !ok {
		funcs["echo"] = func(args ...any) (any, error) {
			for _, arg := range args {
				if err := ectx.Echo(arg); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}
	}

	evaluator, err := cel.NewEvaluator(names, funcs)
	if err != nil {
		return nil, nil, &Error{Path: s.name, Err: err}
	}
	return evaluator, vars, nil
}
