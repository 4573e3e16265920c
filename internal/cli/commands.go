package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstream/pkg/refs"
	"github.com/yaklabco/mdstream/pkg/reporter"
	"github.com/yaklabco/mdstream/pkg/runner"
)

func newTokensCommand() *cobra.Command {
	flags := &decodeFlags{}
	var tree bool

	cmd := &cobra.Command{
		Use:   "tokens [paths...]",
		Short: "Print the tokens of each document",
		Long: `Decode documents and print their tokens with line and column ranges.

By default, decodes all .md, .markdown and .prompt.md files in the current
directory and subdirectories. Pass "-" to read a single document from stdin.`,
		Example: `  mdstream tokens README.md
  mdstream tokens --stage simple docs/
  mdstream tokens --tree --format json notes.prompt.md
  cat doc.md | mdstream tokens -`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, decodeRequest{
				flags: flags,
				view:  reporter.ViewTokens,
				tree:  tree,
			})
		},
	}

	addDecodeFlags(cmd, flags)
	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "print the children of composite tokens")

	return cmd
}

func newRefsCommand() *cobra.Command {
	flags := &decodeFlags{}
	var kinds []string

	cmd := &cobra.Command{
		Use:   "refs [paths...]",
		Short: "List links, images, prompt variables and slash commands",
		Long: `Decode documents and list the references they contain.

Links and images report their target and its detected language. Prompt
variables report their data (for #file:path) and slash commands their name.`,
		Example: `  mdstream refs docs/
  mdstream refs --kind link,image README.md
  mdstream refs --format table --stage prompt prompts/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseRefKinds(kinds)
			if err != nil {
				return err
			}
			return runDecode(cmd, args, decodeRequest{
				flags: flags,
				view:  reporter.ViewRefs,
				filter: func(result *runner.Result) {
					filterRefs(result, filter)
				},
			})
		},
	}

	addDecodeFlags(cmd, flags)
	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", nil, "reference kinds to list: link, image, variable, command")

	return cmd
}

func newFrontMatterCommand() *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:     "frontmatter [paths...]",
		Aliases: []string{"fm"},
		Short:   "Print the YAML front matter of each document",
		Long: `Decode the leading front-matter header of each document and print its
metadata. The header must start on the first line with three or more dashes
and end with a line of the same number of dashes.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, decodeRequest{
				flags:        flags,
				view:         reporter.ViewFrontMatter,
				defaultStage: "frontmatter",
			})
		},
	}

	addDecodeFlags(cmd, flags)

	return cmd
}

var refKinds = []refs.Kind{refs.KindLink, refs.KindImage, refs.KindVariable, refs.KindCommand}

func parseRefKinds(names []string) ([]refs.Kind, error) {
	kinds := make([]refs.Kind, 0, len(names))
	for _, name := range names {
		kind := refs.Kind(strings.ToLower(strings.TrimSpace(name)))
		if !slices.Contains(refKinds, kind) {
			return nil, fmt.Errorf("%w: unknown reference kind %q", ErrInvalidUsage, name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// filterRefs keeps only references of kinds and recounts the total.
func filterRefs(result *runner.Result, kinds []refs.Kind) {
	if len(kinds) == 0 {
		return
	}
	result.Stats.References = 0
	for _, outcome := range result.Files {
		if outcome.Result == nil {
			continue
		}
		outcome.Result.References = refs.Filter(outcome.Result.References, kinds...)
		result.Stats.References += len(outcome.Result.References)
	}
}
