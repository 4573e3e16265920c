package token

import (
	"errors"
	"fmt"
)

// ErrInvalidPromptReference is returned when prompt reference parts are malformed.
var ErrInvalidPromptReference = errors.New("invalid prompt reference")

// PromptVariable is `#name`.
type PromptVariable struct {
	Composite
	name string
}

// NewPromptVariable builds a variable from a Hash token followed by the name tokens.
func NewPromptVariable(children []Token) (*PromptVariable, error) {
	name, err := referenceName(children, KindHash)
	if err != nil {
		return nil, err
	}
	base, err := NewComposite(KindPromptVariable, children)
	if err != nil {
		return nil, err
	}
	return &PromptVariable{Composite: base, name: name}, nil
}

// Name returns the variable name without the leading '#'.
func (v *PromptVariable) Name() string { return v.name }

// PromptVariableWithData is `#name:data`.
type PromptVariableWithData struct {
	Composite
	name string
	data string
}

// NewPromptVariableWithData builds a variable from its name part (Hash and
// name tokens) and its data part (Colon and data tokens).
func NewPromptVariableWithData(nameTokens, dataTokens []Token) (*PromptVariableWithData, error) {
	name, err := referenceName(nameTokens, KindHash)
	if err != nil {
		return nil, err
	}
	if len(dataTokens) == 0 || dataTokens[0].Kind() != KindColon {
		return nil, fmt.Errorf("%w: data must start with ':'", ErrInvalidPromptReference)
	}
	base, err := NewComposite(KindPromptVariableWithData, concat(nameTokens, dataTokens))
	if err != nil {
		return nil, err
	}
	return &PromptVariableWithData{
		Composite: base,
		name:      name,
		data:      Render(dataTokens[1:]),
	}, nil
}

// Name returns the variable name without the leading '#'.
func (v *PromptVariableWithData) Name() string { return v.name }

// Data returns the text after the first ':'.
func (v *PromptVariableWithData) Data() string { return v.data }

// PromptSlashCommand is `/command`.
type PromptSlashCommand struct {
	Composite
	command string
}

// NewPromptSlashCommand builds a command from a Slash token followed by the name tokens.
func NewPromptSlashCommand(children []Token) (*PromptSlashCommand, error) {
	command, err := referenceName(children, KindSlash)
	if err != nil {
		return nil, err
	}
	base, err := NewComposite(KindPromptSlashCommand, children)
	if err != nil {
		return nil, err
	}
	return &PromptSlashCommand{Composite: base, command: command}, nil
}

// Command returns the command name without the leading '/'.
func (c *PromptSlashCommand) Command() string { return c.command }

func referenceName(tokens []Token, trigger Kind) (string, error) {
	if len(tokens) == 0 || tokens[0].Kind() != trigger {
		return "", fmt.Errorf("%w: must start with %s", ErrInvalidPromptReference, trigger)
	}
	name := Render(tokens[1:])
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidPromptReference)
	}
	return name, nil
}
