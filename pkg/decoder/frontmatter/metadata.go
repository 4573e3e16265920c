package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdstream/pkg/token"
)

// Metadata decodes the header body as a YAML mapping. An empty body yields an
// empty map.
func Metadata(header *token.FrontMatterHeader) (map[string]any, error) {
	meta := make(map[string]any)
	if header == nil {
		return meta, nil
	}

	body := header.Body()
	if strings.TrimSpace(body) == "" {
		return meta, nil
	}
	if err := yaml.Unmarshal([]byte(body), &meta); err != nil {
		return nil, fmt.Errorf("decode front matter at %s: %w", header.Range(), err)
	}
	return meta, nil
}

// Find returns the header if tokens starts with one.
func Find(tokens []token.Token) (*token.FrontMatterHeader, bool) {
	if len(tokens) == 0 {
		return nil, false
	}
	header, ok := tokens[0].(*token.FrontMatterHeader)
	return header, ok
}
