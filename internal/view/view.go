package view

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aescanero/dago-node-view/internal/eval/script"
	"github.com/aescanero/dago-node-view/internal/helper"
	"go.uber.org/zap"
)

const (
	// EngineCompiled marks a view backed by a Handlebars template
	EngineCompiled = "compiled"

	// EngineRaw marks a view backed by a raw-script template
	EngineRaw = "raw"
)

// View is one named template with its data and helpers. A View is meant for a
// single goroutine; use one view per concurrent render.
type View struct {
	name    string
	data    map[string]interface{}
	helpers *helper.Registry
	factory *Factory
}

// Name returns the template name
func (v *View) Name() string {
	return v.name
}

// Data returns a copy of the current data bindings
func (v *View) Data() map[string]interface{} {
	return maps.Clone(v.data)
}

// SetAll merges data into the view, overwriting existing keys
func (v *View) SetAll(data map[string]interface{}) {
	if len(data) == 0 {
		return
	}
	maps.Copy(v.data, data)
}

// SetOne sets a single key
func (v *View) SetOne(key string, value interface{}) {
	v.data[key] = value
}

// SetHelper adds a helper. It fails if name is already bound.
func (v *View) SetHelper(name string, fn helper.Func) error {
	return v.helpers.Add(name, fn)
}

// RemoveHelper removes a helper. It fails if name is not bound.
func (v *View) RemoveHelper(name string) error {
	return v.helpers.Remove(name)
}

// Helpers returns the bound helper names
func (v *View) Helpers() []string {
	return v.helpers.Names()
}

// Invoke calls the helper bound to name as if it were a method of the view
func (v *View) Invoke(name string, args ...any) (any, error) {
	return v.helpers.Invoke(name, args...)
}

// Engine reports which engine would render the view, or "" if there is no
// backing template
func (v *View) Engine() string {
	engine, _, err := v.resolve()
	if err != nil {
		return ""
	}
	return engine
}

// Render renders the view. See RenderContext.
func (v *View) Render(data map[string]interface{}, helpers map[string]helper.Func) (string, error) {
	return v.RenderContext(context.Background(), data, helpers)
}

// RenderContext renders the view, preferring a compiled template over a raw
// script. data is merged into the view first. helpers are merged into the
// view's helper table when a raw script renders.
func (v *View) RenderContext(ctx context.Context, data map[string]interface{}, helpers map[string]helper.Func) (string, error) {
	engine, path, err := v.resolve()
	if err != nil {
		return "", err
	}

	logger := v.factory.logger.With(
		zap.String("template", v.name),
		zap.String("engine", engine),
		zap.String("path", path),
	)
	logger.Debug("rendering view")

	v.SetAll(data)

	if engine == EngineCompiled {
		return v.factory.engine.Render(v.name, v.data)
	}

	v.helpers.MergeDefaults(helpers)

	out, err := v.factory.scripts.Render(ctx, path, v.data, v.helpers)
	if err != nil {
		var scriptErr *script.Error
		if errors.As(err, &scriptErr) {
			return "", &RenderError{Name: v.name, Err: err}
		}
		logger.Debug("raw script aborted", zap.Error(err))
		return "", err
	}

	return out, nil
}

// resolve probes the template root for the view's backing file
func (v *View) resolve() (string, string, error) {
	if !validName(v.name) {
		return "", "", fmt.Errorf("%w: invalid template name %q", ErrTemplateNotFound, v.name)
	}

	engine := v.factory.engine
	if engine.Exists(v.name) {
		return EngineCompiled, engine.Path(v.name), nil
	}

	rawPath := filepath.Join(v.factory.root, filepath.FromSlash(v.name)+script.FileExt)
	if info, err := os.Stat(rawPath); err == nil && !info.IsDir() {
		return EngineRaw, rawPath, nil
	}

	return "", "", fmt.Errorf("%w: the template %q not found", ErrTemplateNotFound, rawPath)
}

// validName rejects names that would resolve outside the template root
func validName(name string) bool {
	if name == "" || strings.ContainsRune(name, '\\') || path.IsAbs(name) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
