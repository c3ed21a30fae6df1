package invoice

import (
	"context"
	"sync"
	"time"
)

// Engine fills the invoice template and converts it to PDF. It holds no
// per-invoice state; a Document is created and owned by each call.
type Engine struct {
	config    *Config
	cache     *TemplateCache
	converter Converter
	viewer    Viewer
	logger    *Logger
	now       func() time.Time
}

// New creates an engine with the global configuration
func New() *Engine {
	return NewWithConfig(GetGlobalConfig())
}

// NewWithConfig creates an engine with custom configuration
func NewWithConfig(config *Config) *Engine {
	return &Engine{
		config:    config,
		cache:     NewTemplateCache(config.TemplateCacheSize),
		converter: NewOfficeConverter(config),
		viewer:    SystemViewer{},
		logger:    GetLogger(),
		now:       time.Now,
	}
}

// Config returns the engine's configuration
func (e *Engine) Config() *Config {
	return e.config
}

// Open shows a generated invoice with the engine's viewer
func (e *Engine) Open(result *Result) error {
	if result == nil {
		return nil
	}
	return e.viewer.Open(result.Path)
}

// Option represents a configuration option for the engine
type Option func(*Engine)

// WithConfig sets the engine configuration. The converter and cache are
// rebuilt from it unless another option replaces them afterwards.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = config
		e.cache = NewTemplateCache(config.TemplateCacheSize)
		e.converter = NewOfficeConverter(config)
	}
}

// WithTemplate overrides the template path of the configuration
func WithTemplate(path string) Option {
	return func(e *Engine) {
		config := *e.config
		config.TemplatePath = path
		e.config = &config
	}
}

// WithConverter replaces the PDF converter
func WithConverter(c Converter) Option {
	return func(e *Engine) {
		e.converter = c
	}
}

// WithViewer replaces the PDF viewer
func WithViewer(v Viewer) Option {
	return func(e *Engine) {
		e.viewer = v
	}
}

// WithLogger sets the logger used for generation
func WithLogger(l *Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithClock sets the time source of the default date
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewWithOptions creates a new engine with the specified options
func NewWithOptions(opts ...Option) *Engine {
	engine := New()
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine is the engine used by the package-level functions. It is
// created on first use so that environment configuration loaded by the
// caller is honoured.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Generate fills the configured template and writes a PDF using the default engine
func Generate(ctx context.Context, fields Fields, outPath string) (*Result, error) {
	return DefaultEngine().Generate(ctx, fields, outPath)
}
