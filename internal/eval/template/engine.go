package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aymerick/raymond"
	"go.uber.org/zap"
)

// FileExt is the file extension of compiled-engine templates
const FileExt = ".hbs"

// Engine renders Handlebars template files
type Engine struct {
	root       string
	extensions []Extension
	helpers    map[string]interface{}
	cache      map[string]*cachedTemplate
	mu         sync.RWMutex
	logger     *zap.Logger
}

type cachedTemplate struct {
	tmpl    *raymond.Template
	modTime time.Time
	size    int64
}

// Option configures an Engine
type Option func(*Engine)

// WithExtension registers an extension whose helpers are available to every template
func WithExtension(ext Extension) Option {
	return func(e *Engine) {
		if ext != nil {
			e.extensions = append(e.extensions, ext)
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new template engine rooted at root
func NewEngine(root string, opts ...Option) *Engine {
	engine := &Engine{
		root:       root,
		extensions: []Extension{coreExtension{}},
		cache:      make(map[string]*cachedTemplate),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(engine)
	}

	// Later extensions override earlier ones on name clashes
	engine.helpers = make(map[string]interface{})
	for _, ext := range engine.extensions {
		for name, fn := range ext.Helpers() {
			engine.helpers[name] = fn
		}
	}

	return engine
}

// Root returns the template root directory
func (e *Engine) Root() string {
	return e.root
}

// Path returns the file path backing the named template
func (e *Engine) Path(name string) string {
	return filepath.Join(e.root, filepath.FromSlash(name)+FileExt)
}

// Exists reports whether the named template has a backing file
func (e *Engine) Exists(name string) bool {
	info, err := os.Stat(e.Path(name))
	return err == nil && !info.IsDir()
}

// Render renders the named template with the given data
func (e *Engine) Render(name string, data interface{}) (string, error) {
	// Get or compile template
	tmpl, err := e.getTemplate(name)
	if err != nil {
		return "", &RenderError{Name: name, Err: err}
	}

	frame := raymond.NewDataFrame()
	if locale := localeOf(data); locale != "" {
		frame.Set(localeKey, locale)
	}

	// Execute the template
	result, err := tmpl.ExecWith(data, frame)
	if err != nil {
		return "", &RenderError{Name: name, Err: err}
	}

	return result, nil
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(name string) (*raymond.Template, error) {
	path := e.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("template %q is a directory", path)
	}

	// Check cache first (read lock)
	e.mu.RLock()
	if cached, ok := e.cache[name]; ok && cached.fresh(info) {
		e.mu.RUnlock()
		return cached.tmpl, nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if cached, ok := e.cache[name]; ok && cached.fresh(info) {
		return cached.tmpl, nil
	}

	tmpl, err := raymond.ParseFile(path)
	if err != nil {
		return nil, err
	}
	tmpl.RegisterHelpers(e.helpers)

	e.cache[name] = &cachedTemplate{
		tmpl:    tmpl,
		modTime: info.ModTime(),
		size:    info.Size(),
	}

	e.logger.Debug("compiled template",
		zap.String("template", name),
		zap.String("path", path),
	)

	return tmpl, nil
}

// ValidateTemplate compiles the named template without rendering it
func (e *Engine) ValidateTemplate(name string) error {
	if _, err := e.getTemplate(name); err != nil {
		return &RenderError{Name: name, Err: err}
	}
	return nil
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*cachedTemplate)
}

func (c *cachedTemplate) fresh(info os.FileInfo) bool {
	return c.modTime.Equal(info.ModTime()) && c.size == info.Size()
}

func localeOf(data interface{}) string {
	m, ok := data.(map[string]interface{})
	if !ok {
		return ""
	}
	locale, _ := m[localeKey].(string)
	return locale
}
