package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdstream/pkg/config"
	"github.com/yaklabco/mdstream/pkg/pipeline"
	"github.com/yaklabco/mdstream/pkg/token"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the name of the invalid field (e.g., "symbols[2]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:  true,
	config.FormatTable: true,
	config.FormatJSON:  true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithFile(cfg, "")
}

// ValidateWithFile validates cfg and records filePath in each finding.
// Empty fields are left alone so partial file layers validate cleanly.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:    field,
			Value:    value,
			Message:  fmt.Sprintf(format, args...),
			FilePath: filePath,
		})
	}
	warn := func(field string, value any, format string, args ...any) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:    field,
			Value:    value,
			Message:  fmt.Sprintf(format, args...),
			FilePath: filePath,
		})
	}

	if cfg.Stage != "" {
		if _, err := pipeline.ParseStage(cfg.Stage); err != nil {
			fail("stage", cfg.Stage, "invalid stage %q (valid: %s)", cfg.Stage, stageNames())
		}
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		fail("format", cfg.Format, "invalid format %q (valid: text, table, json)", cfg.Format)
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		fail("color", cfg.Color, "invalid color mode %q (valid: auto, always, never)", cfg.Color)
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		fail("log_level", cfg.LogLevel, "invalid log level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}

	if cfg.Jobs < 0 {
		fail("jobs", cfg.Jobs, "must be non-negative, got %d", cfg.Jobs)
	}

	if cfg.ChunkSize < 0 {
		fail("chunk_size", cfg.ChunkSize, "must be non-negative, got %d", cfg.ChunkSize)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			warn(fmt.Sprintf("extensions[%d]", i), ext, "extension %q does not start with a dot", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q: %v", pattern, err)
		}
	}

	for i, name := range cfg.Symbols {
		kind, ok := token.ParseKind(name)
		if !ok || !kind.IsSymbol() {
			fail(fmt.Sprintf("symbols[%d]", i), name, "unknown symbol kind %q", name)
		}
	}

	return result
}

// SymbolKinds converts validated symbol names to kinds.
func SymbolKinds(cfg *config.Config) []token.Kind {
	if cfg == nil || len(cfg.Symbols) == 0 {
		return nil
	}
	kinds := make([]token.Kind, 0, len(cfg.Symbols))
	for _, name := range cfg.Symbols {
		if kind, ok := token.ParseKind(name); ok && kind.IsSymbol() {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func stageNames() string {
	stages := pipeline.Stages()
	names := make([]string, len(stages))
	for i, stage := range stages {
		names[i] = string(stage)
	}
	return strings.Join(names, ", ")
}
