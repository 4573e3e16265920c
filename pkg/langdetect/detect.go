// Package langdetect names the language of documents and of the files that
// references point at. It is backed by go-enry's extension, filename and
// shebang tables.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const (
	langMarkdown = "markdown"
	langJSON     = "json"
	langYAML     = "yaml"
	langText     = "text"
	langBash     = "bash"
)

// ForPath returns the language of a file path from its name or extension,
// or "" when the path is ambiguous or unknown. URLs and query suffixes are
// not stripped; pass a file path.
func ForPath(path string) string {
	if path == "" {
		return ""
	}
	name := filepath.Base(filepath.FromSlash(path))

	if lang, safe := enry.GetLanguageByFilename(name); safe && lang != "" {
		return normalize(lang)
	}
	return pick(enry.GetLanguagesByExtension(name, nil, nil))
}

// preferred breaks ties between languages that share an extension
// (".md" is both Markdown and GCC Machine Description).
//
//nolint:gochecknoglobals // Read-only lookup table.
var preferred = []string{"Markdown", "YAML", "JSON", "Text", "Shell"}

func pick(candidates []string) string {
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return normalize(candidates[0])
	}
	for _, lang := range preferred {
		if slices.Contains(candidates, lang) {
			return normalize(lang)
		}
	}
	return ""
}

// IsVendored reports whether path lies in a vendored or generated tree such
// as vendor/ or node_modules/.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// Detect guesses the language of a document from its content.
// Returns "text" when nothing matches.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	switch {
	case looksLikeMarkdown(content):
		return langMarkdown
	case looksLikeJSON(trimmed):
		return langJSON
	case looksLikeYAML(content):
		return langYAML
	}
	return langText
}

// Document returns ForPath(path) when it is known and Detect(content) otherwise.
func Document(path string, content []byte) string {
	if lang := ForPath(path); lang != "" {
		return lang
	}
	return Detect(content)
}

func looksLikeMarkdown(content []byte) bool {
	if bytes.HasPrefix(content, []byte("---\n")) || bytes.HasPrefix(content, []byte("---\r\n")) {
		return true
	}
	if bytes.Contains(content, []byte("](")) || bytes.Contains(content, []byte("<!--")) {
		return true
	}
	for _, line := range bytes.Split(content, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("# ")) || bytes.HasPrefix(line, []byte("## ")) || bytes.HasPrefix(line, []byte("```")) {
			return true
		}
	}
	return false
}

func looksLikeJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

// looksLikeYAML counts "key: value" and "- item" lines.
func looksLikeYAML(content []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) ||
			(bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({\"")) {
			count++
		}
	}
	return count >= 2
}

// normalize converts go-enry language names to lowercase fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
