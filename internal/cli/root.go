// Package cli provides the Cobra command structure for mdstream.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstream/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdstream command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var logLevel string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdstream",
		Short: "A streaming tokenizer for Markdown and prompt files",
		Long: `mdstream decodes Markdown and prompt documents into position-aware tokens.

Input is streamed through a stack of decoders: lines, simple words and
symbols, front matter, Markdown links, images and comments, and prompt
#variables and /commands. Every token records its line and column range, and
concatenating the tokens reproduces the input exactly.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Flags().Changed("log-level") {
				logging.SetLevel(logLevel)
			}
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().Bool("no-config", false, "ignore user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newRefsCommand())
	rootCmd.AddCommand(newFrontMatterCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
