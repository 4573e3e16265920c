package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/mdstream/internal/logging"
	"github.com/yaklabco/mdstream/pkg/decoder/frontmatter"
	"github.com/yaklabco/mdstream/pkg/langdetect"
	"github.com/yaklabco/mdstream/pkg/pipeline"
	"github.com/yaklabco/mdstream/pkg/refs"
	"github.com/yaklabco/mdstream/pkg/stream"
)

// sniffSize is how much of a document is kept for content-based language detection.
const sniffSize = 4096

// DecodeFunc decodes one file.
type DecodeFunc func(ctx context.Context, path string, opts Options) (*FileResult, error)

// Runner decodes many files with a worker pool.
type Runner struct {
	// Decode handles a single file. Defaults to DecodeFile.
	Decode DecodeFunc
}

// New creates a Runner that decodes files with DecodeFile.
func New() *Runner {
	return &Runner{Decode: DecodeFile}
}

// Run discovers files under opts.Paths and decodes them concurrently.
// Outcomes are returned in path order whatever order workers finish in.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))
	logger.Debug("decoding files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
		logging.FieldStage, opts.effectiveStage())

	decode := r.Decode
	if decode == nil {
		decode = DecodeFile
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, decode, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("decoded files",
		logging.FieldFilesDecoded, result.Stats.FilesDecoded,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start))
	return result, nil
}

func worker(
	ctx context.Context,
	decode DecodeFunc,
	opts Options,
	workCh <-chan string,
	outCh chan<- FileOutcome,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: path}
		if res, err := decode(ctx, path, opts); err != nil {
			outcome.Error = err
		} else {
			outcome.Result = res
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// DecodeFile streams the file at path through the configured decoder chain.
func DecodeFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeReader(ctx, path, f, opts)
}

// DecodeReader streams r through the configured decoder chain. name labels
// the result and drives language detection; use "-" for stdin.
func DecodeReader(ctx context.Context, name string, r io.Reader, opts Options) (*FileResult, error) {
	start := time.Now()
	stage := opts.effectiveStage()

	probe := &sniffer{r: r}
	input := stream.FromReader(ctx, probe, opts.effectiveChunkSize())

	dec, err := pipeline.Build(stage, input, opts.pipelineOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tokens, err := dec.ConsumeAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	res := &FileResult{
		Name:       name,
		Tokens:     tokens,
		References: refs.Collect(tokens),
		Language:   langdetect.Document(name, probe.head),
		Bytes:      probe.n,
		Duration:   time.Since(start),
	}
	if header, ok := frontmatter.Find(tokens); ok {
		res.FrontMatter = header
	}

	logging.FromContext(ctx).Debug("decoded",
		logging.FieldPath, name,
		logging.FieldStage, stage,
		logging.FieldTokens, len(tokens),
		logging.FieldRefs, len(res.References),
		logging.FieldLanguage, res.Language,
		logging.FieldBytes, res.Bytes)
	return res, nil
}

// sniffer counts bytes read and keeps the first sniffSize of them.
type sniffer struct {
	r    io.Reader
	head []byte
	n    int64
}

func (s *sniffer) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.n += int64(n)
	if room := sniffSize - len(s.head); room > 0 && n > 0 {
		s.head = append(s.head, p[:min(n, room)]...)
	}
	return n, err
}
