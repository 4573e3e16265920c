package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstream/internal/configloader"
	"github.com/yaklabco/mdstream/internal/logging"
	"github.com/yaklabco/mdstream/internal/ui/pretty"
	"github.com/yaklabco/mdstream/pkg/config"
	"github.com/yaklabco/mdstream/pkg/fsutil"
	"github.com/yaklabco/mdstream/pkg/reporter"
	"github.com/yaklabco/mdstream/pkg/runner"
)

var (
	errConfigLoad = errors.New("failed to load configuration")
	errInputRead  = errors.New("failed to read input")
	errOutputFile = errors.New("failed to write output file")
)

// stdinPath is the path argument that selects standard input.
const stdinPath = "-"

// decodeFlags are shared by the tokens, refs and frontmatter commands.
// Zero values leave the configured value in place.
type decodeFlags struct {
	stage      string
	format     string
	jobs       int
	chunkSize  int
	extensions []string
	ignore     []string
	include    []string
	symbols    []string
	output     string
	vendored   bool
	follow     bool
	compact    bool
	noSummary  bool
	stats      bool
}

func addDecodeFlags(cmd *cobra.Command, flags *decodeFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.stage, "stage", "s", "", "decoder stage: lines, simple, frontmatter, markdown, prompt")
	f.StringVarP(&flags.format, "format", "f", "", "output format: text, table, json")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of files decoded in parallel (0 = number of CPUs)")
	f.IntVar(&flags.chunkSize, "chunk-size", 0, "read size in bytes used to stream each file")
	f.StringSliceVar(&flags.extensions, "ext", nil, "file extensions picked up when walking directories")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns for files to skip")
	f.StringSliceVar(&flags.include, "include", nil, "only decode files matching these glob patterns")
	f.StringSliceVar(&flags.symbols, "symbols", nil, "symbol kinds that split words, e.g. Space,LeftBracket")
	f.StringVarP(&flags.output, "output", "o", "", "write the report to this file instead of stdout")
	f.BoolVar(&flags.vendored, "include-vendored", false, "decode files under vendor and node_modules trees")
	f.BoolVar(&flags.follow, "follow-symlinks", false, "traverse symlinked directories")
	f.BoolVar(&flags.compact, "compact", false, "minify JSON output")
	f.BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	f.BoolVar(&flags.stats, "stats", false, "print token statistics to stderr")
}

func (f *decodeFlags) cliConfig() *config.Config {
	return &config.Config{
		Stage:      f.stage,
		Format:     config.OutputFormat(f.format),
		Jobs:       f.jobs,
		ChunkSize:  f.chunkSize,
		Extensions: f.extensions,
		Ignore:     f.ignore,
		Symbols:    f.symbols,
	}
}

// loadedConfig is the resolved configuration of one command invocation.
type loadedConfig struct {
	*configloader.LoadResult
	WorkDir string
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves configuration for cmd with cliCfg as the top layer and
// applies the configured log level unless a logging flag overrides it.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, fmt.Errorf("get no-config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errConfigLoad, err)
	}

	if !cmd.Flags().Changed("log-level") && !cmd.Flags().Changed("debug") {
		logging.SetLevel(loadResult.Config.LogLevel)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	return &loadedConfig{LoadResult: loadResult, WorkDir: workDir}, nil
}

// decodeRequest describes one decode command run.
type decodeRequest struct {
	flags *decodeFlags
	view  reporter.View
	tree  bool

	// defaultStage replaces the configured stage when --stage is not given.
	defaultStage string

	// filter post-processes the result before it is reported.
	filter func(*runner.Result)
}

func runDecode(cmd *cobra.Command, args []string, req decodeRequest) error {
	cliCfg := req.flags.cliConfig()
	if cliCfg.Stage == "" {
		cliCfg.Stage = req.defaultStage
	}

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = loaded.WorkDir
	opts.IncludeGlobs = req.flags.include
	opts.IncludeVendored = req.flags.vendored
	opts.FollowSymlinks = req.flags.follow

	logger.Debug("configuration loaded",
		logging.FieldStage, cfg.Stage,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	result, err := decodeInputs(ctx, cmd, args, opts)
	if err != nil {
		return err
	}
	if req.filter != nil {
		req.filter(result)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}

	colorMode := string(cfg.Color)
	if cmd.Flags().Changed("color") {
		colorMode, _ = cmd.Flags().GetString("color")
	}

	var out bytes.Buffer
	writer := cmd.OutOrStdout()
	if req.flags.output != "" {
		writer = &out
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      writer,
		Format:      format,
		View:        req.view,
		Color:       colorMode,
		ShowSummary: !req.flags.noSummary,
		Tree:        req.tree,
		Compact:     req.flags.compact,
		WorkingDir:  loaded.WorkDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if req.flags.output != "" {
		written, err := fsutil.WriteAtomicIfChanged(ctx, req.flags.output, out.Bytes(), 0)
		if err != nil {
			return errors.Join(errOutputFile, err)
		}
		logger.Debug("report written", logging.FieldPath, req.flags.output, "changed", written)
	}

	if req.flags.stats {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.ErrOrStderr()))
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatSummary(result.Stats))
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		for _, outcome := range result.Files {
			if outcome.Error != nil {
				logger.Debug("decode failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			}
		}
		return ErrDecodeFailures
	}
	return nil
}

// decodeInputs decodes standard input when the only argument is "-",
// and walks args otherwise.
func decodeInputs(ctx context.Context, cmd *cobra.Command, args []string, opts runner.Options) (*runner.Result, error) {
	if slices.Contains(args, stdinPath) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %q cannot be combined with other paths", ErrInvalidUsage, stdinPath)
		}
		res, err := runner.DecodeReader(ctx, stdinPath, cmd.InOrStdin(), opts)
		if err != nil {
			return nil, errors.Join(errInputRead, err)
		}
		return runner.NewResult(runner.FileOutcome{Path: stdinPath, Result: res}), nil
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		return nil, errors.Join(errInputRead, err)
	}
	return result, nil
}
