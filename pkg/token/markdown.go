package token

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidMarkdown is returned when markdown token parts are malformed.
var ErrInvalidMarkdown = errors.New("invalid markdown token")

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// link holds the parts shared by links and images.
type link struct {
	caption   string
	reference string
	path      string
	isURL     bool
}

func newLink(caption, reference []Token) (link, error) {
	if !enclosed(caption, KindLeftBracket, KindRightBracket) {
		return link{}, fmt.Errorf("%w: caption must be enclosed in brackets", ErrInvalidMarkdown)
	}
	if !enclosed(reference, KindLeftParenthesis, KindRightParenthesis) {
		return link{}, fmt.Errorf("%w: reference must be enclosed in parentheses", ErrInvalidMarkdown)
	}
	ref := Render(reference)
	path := ref[1 : len(ref)-1]
	return link{
		caption:   Render(caption),
		reference: ref,
		path:      path,
		isURL:     IsAbsoluteURL(path),
	}, nil
}

func enclosed(tokens []Token, open, closing Kind) bool {
	return len(tokens) >= 2 &&
		tokens[0].Kind() == open &&
		tokens[len(tokens)-1].Kind() == closing
}

// IsAbsoluteURL reports whether path parses as a URL with a scheme.
// Single-letter schemes are Windows drive letters.
func IsAbsoluteURL(path string) bool {
	u, err := url.Parse(strings.TrimSpace(path))
	return err == nil && u.IsAbs() && len(u.Scheme) >= 2
}

// Caption returns the caption including its brackets, e.g. "[docs]".
func (l *link) Caption() string { return l.caption }

// Reference returns the reference including its parentheses, e.g. "(./a.md)".
func (l *link) Reference() string { return l.reference }

// Path returns the reference without the enclosing parentheses.
func (l *link) Path() string { return l.path }

// IsURL reports whether Path is an absolute URL.
func (l *link) IsURL() bool { return l.isURL }

// MarkdownLink is `[caption](reference)`.
type MarkdownLink struct {
	Composite
	link
}

// NewMarkdownLink builds a link from its caption and reference tokens.
func NewMarkdownLink(caption, reference []Token) (*MarkdownLink, error) {
	parts, err := newLink(caption, reference)
	if err != nil {
		return nil, err
	}
	base, err := NewComposite(KindMarkdownLink, concat(caption, reference))
	if err != nil {
		return nil, err
	}
	return &MarkdownLink{Composite: base, link: parts}, nil
}

// MarkdownImage is `![caption](reference)`.
type MarkdownImage struct {
	Composite
	link
}

// NewMarkdownImage builds an image from its "!" marker, caption and reference.
func NewMarkdownImage(marker Token, caption, reference []Token) (*MarkdownImage, error) {
	if marker == nil || marker.Kind() != KindExclamationMark {
		return nil, fmt.Errorf("%w: image must start with '!'", ErrInvalidMarkdown)
	}
	parts, err := newLink(caption, reference)
	if err != nil {
		return nil, err
	}
	base, err := NewComposite(KindMarkdownImage, concat([]Token{marker}, caption, reference))
	if err != nil {
		return nil, err
	}
	return &MarkdownImage{Composite: base, link: parts}, nil
}

// MarkdownComment is `<!-- ... -->`. A comment left open at the end of the
// input extends to the end of the input.
type MarkdownComment struct {
	Composite
}

// NewMarkdownComment builds a comment from tokens starting with "<!--".
func NewMarkdownComment(children []Token) (*MarkdownComment, error) {
	if !strings.HasPrefix(Render(children), commentOpen) {
		return nil, fmt.Errorf("%w: comment must start with %q", ErrInvalidMarkdown, commentOpen)
	}
	base, err := NewComposite(KindMarkdownComment, children)
	if err != nil {
		return nil, err
	}
	return &MarkdownComment{Composite: base}, nil
}

// IsTerminated reports whether the comment has its closing "-->".
func (c *MarkdownComment) IsTerminated() bool {
	return len(c.Text()) >= len(commentOpen)+len(commentClose) &&
		strings.HasSuffix(c.Text(), commentClose)
}

// Content returns the comment text without its delimiters.
func (c *MarkdownComment) Content() string {
	content := strings.TrimPrefix(c.Text(), commentOpen)
	if c.IsTerminated() {
		content = strings.TrimSuffix(content, commentClose)
	}
	return content
}

func concat(parts ...[]Token) []Token {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]Token, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
