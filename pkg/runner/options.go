// Package runner discovers documents and decodes them concurrently.
package runner

import (
	"github.com/yaklabco/mdstream/pkg/config"
	"github.com/yaklabco/mdstream/pkg/pipeline"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Options controls discovery and decoding.
type Options struct {
	// Paths are files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths. Defaults to the process working directory.
	WorkingDir string

	// Extensions are file name suffixes (with leading dot) picked up when
	// walking directories. Multi-dot suffixes such as ".prompt.md" work.
	Extensions []string

	// IncludeGlobs, when set, restrict files to those matching one pattern.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored keeps files under vendor/, node_modules/ and similar trees.
	IncludeVendored bool

	// Jobs is the number of concurrent workers. 0 or negative means runtime.NumCPU().
	Jobs int

	// Stage is the outermost decoder. Defaults to pipeline.StageMarkdown.
	Stage pipeline.Stage

	// ChunkSize is the read size used to stream each file.
	ChunkSize int

	// Symbols narrows the simple decoder's stop characters.
	Symbols []token.Kind
}

// DefaultExtensions returns the default document suffixes.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".prompt.md"}
}

// OptionsFromConfig maps a resolved configuration onto runner options.
// Symbol names are expected to be validated already; unknown names are skipped.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}

	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs
	opts.ChunkSize = cfg.ChunkSize
	if stage, err := pipeline.ParseStage(cfg.Stage); err == nil {
		opts.Stage = stage
	}
	for _, name := range cfg.Symbols {
		if kind, ok := token.ParseKind(name); ok && kind.IsSymbol() {
			opts.Symbols = append(opts.Symbols, kind)
		}
	}
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveStage() pipeline.Stage {
	if o.Stage == "" {
		return pipeline.StageMarkdown
	}
	return o.Stage
}

func (o Options) effectiveChunkSize() int {
	if o.ChunkSize <= 0 {
		return config.DefaultChunkSize
	}
	return o.ChunkSize
}

func (o Options) pipelineOptions() pipeline.Options {
	return pipeline.Options{Symbols: o.Symbols}
}
