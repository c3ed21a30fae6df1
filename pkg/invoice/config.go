package invoice

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config contains all configuration options for invoice generation
type Config struct {
	// TemplatePath is the DOCX template holding the placeholder tokens
	TemplatePath string
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// MaxPasses caps the replacement passes over the document
	MaxPasses int
	// DateLayout is the Go time layout of the default date field
	DateLayout string
	// CurrencyLabel prefixes the amount in words
	CurrencyLabel string
	// GroupAmount renders [Amount] with Indian digit grouping instead of verbatim
	GroupAmount bool
	// ConverterBinary is the office suite executable used for PDF conversion
	ConverterBinary string
	// ConvertTimeout bounds a conversion. 0 waits indefinitely.
	ConvertTimeout time.Duration
	// FontPath is an optional TrueType font installed once at startup
	FontPath string
	// ListenAddr is the address of the local form server
	ListenAddr string
	// TemplateCacheSize is the number of template sources kept in memory. 0 disables caching.
	TemplateCacheSize int
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TemplatePath:      "TPR_template.docx",
		LogLevel:          "info",
		MaxPasses:         10,
		DateLayout:        "02/01/2006",
		CurrencyLabel:     "Indian Rupee",
		GroupAmount:       false,
		ConverterBinary:   "soffice",
		ConvertTimeout:    0,
		ListenAddr:        "127.0.0.1:8080",
		TemplateCacheSize: 4,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// INVOICE_TEMPLATE
	if val := os.Getenv("INVOICE_TEMPLATE"); val != "" {
		config.TemplatePath = val
	}

	// INVOICE_LOG_LEVEL
	if val := os.Getenv("INVOICE_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	// INVOICE_MAX_PASSES
	if val := os.Getenv("INVOICE_MAX_PASSES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxPasses = n
		}
	}

	// INVOICE_DATE_LAYOUT
	if val := os.Getenv("INVOICE_DATE_LAYOUT"); val != "" {
		config.DateLayout = val
	}

	// INVOICE_CURRENCY_LABEL
	if val := os.Getenv("INVOICE_CURRENCY_LABEL"); val != "" {
		config.CurrencyLabel = val
	}

	// INVOICE_GROUP_AMOUNT
	if val := os.Getenv("INVOICE_GROUP_AMOUNT"); val != "" {
		config.GroupAmount = parseBool(val)
	}

	// INVOICE_SOFFICE
	if val := os.Getenv("INVOICE_SOFFICE"); val != "" {
		config.ConverterBinary = val
	}

	// INVOICE_CONVERT_TIMEOUT
	if val := os.Getenv("INVOICE_CONVERT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			config.ConvertTimeout = d
		}
	}

	// INVOICE_FONT
	if val := os.Getenv("INVOICE_FONT"); val != "" {
		config.FontPath = val
	}

	// INVOICE_LISTEN_ADDR
	if val := os.Getenv("INVOICE_LISTEN_ADDR"); val != "" {
		config.ListenAddr = val
	}

	// INVOICE_TEMPLATE_CACHE_SIZE
	if val := os.Getenv("INVOICE_TEMPLATE_CACHE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.TemplateCacheSize = n
		}
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()
	if overrides == nil {
		return defaults
	}

	config := *overrides
	if config.TemplatePath == "" {
		config.TemplatePath = defaults.TemplatePath
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.MaxPasses == 0 {
		config.MaxPasses = defaults.MaxPasses
	}
	if config.DateLayout == "" {
		config.DateLayout = defaults.DateLayout
	}
	if config.CurrencyLabel == "" {
		config.CurrencyLabel = defaults.CurrencyLabel
	}
	if config.ConverterBinary == "" {
		config.ConverterBinary = defaults.ConverterBinary
	}
	if config.ListenAddr == "" {
		config.ListenAddr = defaults.ListenAddr
	}
	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	errs := NewMultiError()

	if c.TemplatePath == "" {
		errs.Add(errors.New("template path cannot be empty"))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		errs.Add(errors.New("invalid log level: " + c.LogLevel))
	}

	if c.MaxPasses <= 0 {
		errs.Add(errors.New("max passes must be positive"))
	}

	if c.DateLayout == "" {
		errs.Add(errors.New("date layout cannot be empty"))
	}

	if c.ConvertTimeout < 0 {
		errs.Add(errors.New("convert timeout cannot be negative"))
	}

	if c.TemplateCacheSize < 0 {
		errs.Add(fmt.Errorf("template cache size cannot be negative: %d", c.TemplateCacheSize))
	}

	return errs.Err()
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
