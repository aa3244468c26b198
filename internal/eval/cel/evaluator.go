package cel

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// MaxArity is the largest argument count a function can be called with
const MaxArity = 8

var identPattern = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

// CEL reserved words cannot be declared as variables
var reserved = map[string]bool{
	"false": true, "in": true, "null": true, "true": true,
	"as": true, "break": true, "const": true, "continue": true, "else": true,
	"for": true, "function": true, "if": true, "import": true, "let": true,
	"loop": true, "package": true, "namespace": true, "return": true,
	"var": true, "void": true, "while": true,
}

var (
	anyType  = reflect.TypeOf((*any)(nil)).Elem()
	listType = reflect.TypeOf([]any{})
	mapType  = reflect.TypeOf(map[string]any{})
)

// Func is a function callable from expressions
type Func func(args ...any) (any, error)

// CallError wraps an error returned by a Func during evaluation
type CallError struct {
	Func string
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Func, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Evaluator evaluates CEL expressions
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// DispatchFunc names the function that calls any registered function by name,
// as in helper("size", items). It is how a function whose name is taken by a
// CEL builtin or macro stays callable. A Func registered as DispatchFunc
// replaces it.
const DispatchFunc = "helper"

// NewEvaluator creates an evaluator declaring the given variables and functions.
// Names that are not valid identifiers are skipped. A function whose name
// collides with a CEL builtin or macro is only reachable through DispatchFunc.
func NewEvaluator(vars []string, funcs map[string]Func) (*Evaluator, error) {
	var opts []cel.EnvOption
	for _, name := range vars {
		if !IsIdentifier(name) {
			continue
		}
		opts = append(opts, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	names := make([]string, 0, len(funcs))
	callable := make(map[string]Func, len(funcs))
	for name, fn := range funcs {
		if !IsIdentifier(name) || fn == nil {
			continue
		}
		names = append(names, name)
		callable[name] = fn
	}
	sort.Strings(names)

	for _, name := range names {
		if extended, ok := extend(env, functionDecl(name, callable[name])); ok {
			env = extended
		}
	}

	if _, ok := callable[DispatchFunc]; !ok {
		if extended, ok := extend(env, dispatchDecl(callable)); ok {
			env = extended
		}
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}, nil
}

// extend applies opt to env, reporting false when the declaration collides
// with something env already declares.
func extend(env *cel.Env, opt cel.EnvOption) (*cel.Env, bool) {
	extended, err := env.Extend(opt)
	if err != nil {
		return nil, false
	}
	if _, issues := extended.Compile("null"); issues != nil && issues.Err() != nil {
		return nil, false
	}
	return extended, true
}

// IsIdentifier reports whether name can be declared in an expression environment
func IsIdentifier(name string) bool {
	return identPattern.MatchString(name) && !reserved[name]
}

// Evaluate evaluates a CEL expression with the given variables
func (e *Evaluator) Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error) {
	// Get or compile program
	program, err := e.getProgram(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}

	// Evaluate the program
	out, _, err := program.ContextEval(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	return toNative(out), nil
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(expression string) (cel.Program, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if program, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	// Compile the expression (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[expression]; ok {
		return program, nil
	}

	// Parse the expression
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	// Generate the program
	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	// Cache the program
	e.cache[expression] = program

	return program, nil
}

// ValidateExpression validates a CEL expression without evaluating it
func (e *Evaluator) ValidateExpression(expression string) error {
	_, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}
	return nil
}

// ClearCache clears the compiled program cache
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}

// callFunc invokes fn with CEL arguments converted to native values
func callFunc(name string, fn Func, args []ref.Val) ref.Val {
	native := make([]any, len(args))
	for i, arg := range args {
		native[i] = toNative(arg)
	}
	result, err := fn(native...)
	if err != nil {
		return types.WrapErr(&CallError{Func: name, Err: err})
	}
	return types.DefaultTypeAdapter.NativeToValue(result)
}

// binding adapts call to the overload shape cel-go expects for arity
func binding(arity int, call func(args ...ref.Val) ref.Val) cel.OverloadOpt {
	switch arity {
	case 1:
		return cel.UnaryBinding(func(arg ref.Val) ref.Val { return call(arg) })
	case 2:
		return cel.BinaryBinding(func(lhs, rhs ref.Val) ref.Val { return call(lhs, rhs) })
	default:
		return cel.FunctionBinding(call)
	}
}

func dynParams(n int) []*cel.Type {
	params := make([]*cel.Type, n)
	for i := range params {
		params[i] = cel.DynType
	}
	return params
}

// functionDecl declares name with one dynamic overload per arity
func functionDecl(name string, fn Func) cel.EnvOption {
	call := func(args ...ref.Val) ref.Val {
		return callFunc(name, fn, args)
	}

	overloads := make([]cel.FunctionOpt, 0, MaxArity+1)
	for arity := 0; arity <= MaxArity; arity++ {
		overloads = append(overloads,
			cel.Overload(fmt.Sprintf("%s_dyn_%d", name, arity), dynParams(arity), cel.DynType, binding(arity, call)),
		)
	}

	return cel.Function(name, overloads...)
}

// dispatchDecl declares DispatchFunc(name, args...) over funcs
func dispatchDecl(funcs map[string]Func) cel.EnvOption {
	call := func(args ...ref.Val) ref.Val {
		name, ok := args[0].(types.String)
		if !ok {
			return types.NewErr("%s: function name must be a string", DispatchFunc)
		}
		fn, ok := funcs[string(name)]
		if !ok {
			return types.NewErr("%s: no function %q", DispatchFunc, string(name))
		}
		return callFunc(string(name), fn, args[1:])
	}

	overloads := make([]cel.FunctionOpt, 0, MaxArity+1)
	for arity := 0; arity <= MaxArity; arity++ {
		params := append([]*cel.Type{cel.StringType}, dynParams(arity)...)
		overloads = append(overloads,
			cel.Overload(fmt.Sprintf("%s_string_dyn_%d", DispatchFunc, arity), params, cel.DynType, binding(arity+1, call)),
		)
	}

	return cel.Function(DispatchFunc, overloads...)
}

// toNative converts a CEL value to a plain Go value
func toNative(v ref.Val) interface{} {
	switch v.Type() {
	case types.ListType:
		if out, err := v.ConvertToNative(listType); err == nil {
			return out
		}
	case types.MapType:
		if out, err := v.ConvertToNative(mapType); err == nil {
			return out
		}
	case types.NullType:
		return nil
	default:
		if out, err := v.ConvertToNative(anyType); err == nil {
			return out
		}
	}
	return v.Value()
}
