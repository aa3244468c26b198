package script

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Renderer renders raw-script template files
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a new raw-script renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger}
}

// Render executes the script at path with data bound by name and helpers
// callable, returning everything it wrote
func (r *Renderer) Render(ctx context.Context, path string, data map[string]interface{}, helpers Helpers) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	s, err := Parse(path, src)
	if err != nil {
		return "", err
	}

	return r.Execute(ctx, s, data, helpers)
}

// Execute runs a parsed script inside a fresh output capture
func (r *Renderer) Execute(ctx context.Context, s *Script, data map[string]interface{}, helpers Helpers) (string, error) {
	out := beginCapture()
	defer out.discard()

	if err := s.Execute(ctx, NewContext(data, helpers, out)); err != nil {
		r.logger.Debug("raw script failed, output discarded",
			zap.String("template", s.Name()),
			zap.Error(err),
		)
		return "", err
	}

	return out.finish(), nil
}
