package configloader

import (
	"slices"

	"github.com/yaklabco/mdstream/pkg/config"
)

// merge overlays override onto base:
//   - scalars replace base when non-zero
//   - slices replace base when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Stage != "" {
		result.Stage = override.Stage
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.ChunkSize != 0 {
		result.ChunkSize = override.ChunkSize
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Symbols != nil {
		result.Symbols = slices.Clone(override.Symbols)
	}

	return result
}

// MergeAll merges configurations in order; later ones take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
