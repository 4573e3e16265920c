// Package refs extracts references (links, images, prompt variables and
// slash commands) from decoded token streams.
package refs

import (
	"net/url"
	"strings"

	"github.com/yaklabco/mdstream/pkg/langdetect"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Kind classifies a reference.
type Kind string

const (
	KindLink     Kind = "link"
	KindImage    Kind = "image"
	KindVariable Kind = "variable"
	KindCommand  Kind = "command"
)

// Reference is one reference found in a document.
type Reference struct {
	Kind Kind `json:"kind"`

	// Name is the link caption without brackets, the variable name or the
	// command name.
	Name string `json:"name"`

	// Target is the link path or the variable data. Empty for commands and
	// variables without data.
	Target string `json:"target,omitempty"`

	Range token.Range `json:"range"`

	// Language is the language of the file Target points at, if known.
	Language string `json:"language,omitempty"`

	IsURL bool `json:"is_url"`
}

// Collect returns the references among tokens, in order.
func Collect(tokens []token.Token) []Reference {
	var out []Reference
	for _, tok := range tokens {
		if ref, ok := FromToken(tok); ok {
			out = append(out, ref)
		}
	}
	return out
}

// FromToken converts a single reference token. Other tokens return false.
func FromToken(tok token.Token) (Reference, bool) {
	switch t := tok.(type) {
	case *token.MarkdownLink:
		return target(Reference{Kind: KindLink, Name: unwrap(t.Caption()), Range: t.Range()}, t.Path()), true
	case *token.MarkdownImage:
		return target(Reference{Kind: KindImage, Name: unwrap(t.Caption()), Range: t.Range()}, t.Path()), true
	case *token.PromptVariableWithData:
		return target(Reference{Kind: KindVariable, Name: t.Name(), Range: t.Range()}, t.Data()), true
	case *token.PromptVariable:
		return Reference{Kind: KindVariable, Name: t.Name(), Range: t.Range()}, true
	case *token.PromptSlashCommand:
		return Reference{Kind: KindCommand, Name: t.Command(), Range: t.Range()}, true
	}
	return Reference{}, false
}

// Filter keeps the references whose kind is one of kinds.
func Filter(refs []Reference, kinds ...Kind) []Reference {
	if len(kinds) == 0 {
		return refs
	}
	var out []Reference
	for _, ref := range refs {
		for _, kind := range kinds {
			if ref.Kind == kind {
				out = append(out, ref)
				break
			}
		}
	}
	return out
}

func target(ref Reference, path string) Reference {
	ref.Target = path
	if path == "" {
		return ref
	}

	ref.IsURL = token.IsAbsoluteURL(path)
	if ref.IsURL {
		if u, err := url.Parse(strings.TrimSpace(path)); err == nil {
			path = u.Path
		}
	} else if i := strings.IndexAny(path, "#?"); i >= 0 {
		path = path[:i]
	}
	// Link titles: [a](b.md "title")
	if fields := strings.Fields(path); len(fields) > 0 {
		path = fields[0]
	}
	if path != "" {
		ref.Language = langdetect.ForPath(path)
	}
	return ref
}

func unwrap(caption string) string {
	if len(caption) >= 2 {
		return caption[1 : len(caption)-1]
	}
	return caption
}
