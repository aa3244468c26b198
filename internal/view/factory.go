package view

import (
	"github.com/aescanero/dago-node-view/internal/eval/script"
	"github.com/aescanero/dago-node-view/internal/eval/template"
	"github.com/aescanero/dago-node-view/internal/helper"
	"go.uber.org/zap"
)

// Factory creates views sharing one template root and engine
type Factory struct {
	root       string
	extensions []template.Extension
	engine     *template.Engine
	scripts    *script.Renderer
	logger     *zap.Logger
}

// Option configures a Factory
type Option func(*Factory)

// WithExtension registers a compiled-engine extension, such as translation
func WithExtension(ext template.Extension) Option {
	return func(f *Factory) {
		if ext != nil {
			f.extensions = append(f.extensions, ext)
		}
	}
}

// WithLogger sets the logger used by the factory and its views
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFactory creates a view factory for templates under root
func NewFactory(root string, opts ...Option) *Factory {
	f := &Factory{
		root:   root,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	engineOpts := []template.Option{template.WithLogger(f.logger)}
	for _, ext := range f.extensions {
		engineOpts = append(engineOpts, template.WithExtension(ext))
	}
	f.engine = template.NewEngine(root, engineOpts...)
	f.scripts = script.NewRenderer(f.logger)

	return f
}

// Root returns the template root directory
func (f *Factory) Root() string {
	return f.root
}

// Engine returns the shared compiled-template engine
func (f *Factory) Engine() *template.Engine {
	return f.engine
}

// Get returns a new view bound to name with the given initial data and helpers
func (f *Factory) Get(name string, data map[string]interface{}, helpers map[string]helper.Func) *View {
	v := &View{
		name:    name,
		data:    make(map[string]interface{}, len(data)),
		helpers: helper.NewRegistry(helpers),
		factory: f,
	}
	v.SetAll(data)
	return v
}
