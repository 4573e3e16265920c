package configloader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdstream/pkg/config"
)

// envVarPrefix is the prefix of every mdstream environment variable.
const envVarPrefix = "MDSTREAM_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

type envMapping struct {
	typ         envFieldType
	description string
	apply       func(cfg *config.Config, value any)
}

// envMappings maps variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"STAGE": {envTypeString, "Outermost decoder: lines, simple, frontmatter, markdown or prompt",
		func(cfg *config.Config, v any) { cfg.Stage = v.(string) }},
	"FORMAT": {envTypeString, "Output format: text, table or json",
		func(cfg *config.Config, v any) { cfg.Format = config.OutputFormat(v.(string)) }},
	"COLOR": {envTypeString, "Color mode: auto, always or never",
		func(cfg *config.Config, v any) { cfg.Color = config.ColorMode(v.(string)) }},
	"LOG_LEVEL": {envTypeString, "Log level: debug, info, warn or error",
		func(cfg *config.Config, v any) { cfg.LogLevel = v.(string) }},
	"JOBS": {envTypeInt, "Number of parallel workers (0 = auto)",
		func(cfg *config.Config, v any) { cfg.Jobs = v.(int) }},
	"CHUNK_SIZE": {envTypeInt, "Read size in bytes when streaming files",
		func(cfg *config.Config, v any) { cfg.ChunkSize = v.(int) }},
	"EXTENSIONS": {envTypeSlice, "Comma-separated file extensions to decode",
		func(cfg *config.Config, v any) { cfg.Extensions = v.([]string) }},
	"IGNORE": {envTypeSlice, "Comma-separated ignore patterns",
		func(cfg *config.Config, v any) { cfg.Ignore = v.([]string) }},
	"SYMBOLS": {envTypeSlice, "Comma-separated symbol kinds the simple decoder splits on",
		func(cfg *config.Config, v any) { cfg.Symbols = v.([]string) }},
}

// LoadFromEnv applies MDSTREAM_* overrides read through getenv.
func LoadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		switch mapping.typ {
		case envTypeString:
			mapping.apply(cfg, value)
		case envTypeInt:
			i, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer for %s: %q", envVar, value)
			}
			mapping.apply(cfg, i)
		case envTypeSlice:
			mapping.apply(cfg, parseSliceValue(value))
		}
	}
	return nil
}

// parseSliceValue splits a comma-separated value, trimming each element.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns every supported environment variable, sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
