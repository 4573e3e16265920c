// Package config defines the mdstream configuration.
// These types are plain data; loading and merging live in internal/configloader.
package config

// OutputFormat selects how decoded tokens are printed.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Defaults.
const (
	DefaultStage     = "markdown"
	DefaultChunkSize = 32 * 1024
)

// Config is the root configuration structure.
type Config struct {
	// Stage is the outermost decoder: lines, simple, frontmatter, markdown or prompt.
	Stage string `yaml:"stage"`

	// Format is the output format.
	Format OutputFormat `yaml:"format"`

	// Color is the color mode for text and table output.
	Color ColorMode `yaml:"color"`

	// Jobs is the number of files decoded in parallel. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// ChunkSize is the read size used when streaming files into the decoders.
	ChunkSize int `yaml:"chunk_size"`

	// Extensions lists the file extensions picked up when walking directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Symbols narrows the stop characters of the simple decoder, by kind name
	// (e.g. "Space", "LeftBracket"). Empty means every symbol.
	Symbols []string `yaml:"symbols,omitempty"`

	// LogLevel is the level of diagnostic logging on stderr.
	LogLevel string `yaml:"log_level"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Stage:      DefaultStage,
		Format:     FormatText,
		Color:      ColorAuto,
		Jobs:       0,
		ChunkSize:  DefaultChunkSize,
		Extensions: []string{".md", ".markdown", ".prompt.md"},
		LogLevel:   "info",
	}
}
