// Package pipeline carries one resume file through extraction, inference,
// validation, flattening, and persistence, and orchestrates batches of files
// with per-file failure isolation.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/resume-parser/internal/extraction"
	"github.com/jonathan/resume-parser/internal/flatten"
	"github.com/jonathan/resume-parser/internal/ledger"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/types"
)

// Stage identifies the pipeline stage at which a file succeeded or failed.
type Stage string

// Stage constants name the stages of the per-file state machine.
const (
	StageExtract  Stage = "extract"
	StageInfer    Stage = "infer"
	StageValidate Stage = "validate"
	StagePersist  Stage = "persist"
)

// TextExtractor produces raw text from a document path. It exists so tests
// can substitute the real per-format extraction.
type TextExtractor func(path string) (string, error)

// InferenceService converts resume text into a JSON-shaped response.
type InferenceService interface {
	ExtractCandidate(ctx context.Context, resumeText string) (string, error)
}

// Outcome is the terminal state of one file's pipeline run.
type Outcome struct {
	Filename    string
	Stage       Stage // stage reached when Err != nil; StagePersist on success
	Diagnostics types.Diagnostics
	Err         error
}

// Failed reports whether the file's run ended in a failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// BatchSummary aggregates the results of one batch run.
type BatchSummary struct {
	RunID     uuid.UUID
	Processed int
	Skipped   int
	Outcomes  []Outcome
}

// Failures returns the outcomes of files that failed.
func (s BatchSummary) Failures() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Options holds the collaborators and settings for a batch run.
type Options struct {
	ResumeDir string
	Extractor TextExtractor
	Inference InferenceService
	Store     *ledger.Ledger
	Verbose   bool
	Out       io.Writer
}

// Pipeline sequences the stages for individual files.
type Pipeline struct {
	extract TextExtractor
	infer   InferenceService
	store   *ledger.Ledger
	printer *observability.Printer
	verbose bool
	out     io.Writer
}

// New creates a Pipeline from options, filling in defaults for the extractor
// and output writer.
func New(opts Options) *Pipeline {
	ext := opts.Extractor
	if ext == nil {
		ext = extraction.Extract
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{
		extract: ext,
		infer:   opts.Inference,
		store:   opts.Store,
		printer: observability.NewPrinter(out),
		verbose: opts.Verbose,
		out:     out,
	}
}

// ProcessFile runs one file through the full state machine. It is terminal on
// the first failing stage; collaborator panics are converted to a failure
// outcome so one file can never abort the batch.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (outcome Outcome) {
	filename := filepath.Base(path)
	outcome = Outcome{Filename: filename, Stage: StageExtract}

	defer func() {
		if r := recover(); r != nil {
			outcome.Err = fmt.Errorf("panic in %s stage: %v", outcome.Stage, r)
		}
	}()

	text, err := p.extract(path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Stage = StageInfer
	raw, err := p.infer.ExtractCandidate(ctx, text)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Stage = StageValidate
	record, diag, err := parsing.DecodeCandidate(raw)
	outcome.Diagnostics = diag
	if err != nil {
		outcome.Err = err
		return outcome
	}

	if p.verbose {
		p.printer.PrintCandidateRecord(filename, record, diag)
	}

	// Flattening is pure; it cannot fail once validation succeeded.
	row := flatten.Flatten(record, filename)

	outcome.Stage = StagePersist
	if err := p.store.Append(row); err != nil {
		outcome.Err = err
		return outcome
	}

	return outcome
}

// RunBatch scans the resume directory for supported files and processes them
// strictly sequentially, skipping files already present in the ledger before
// any extraction or inference happens. A failed file is logged and never
// prevents processing of subsequent files.
func RunBatch(ctx context.Context, opts Options) (BatchSummary, error) {
	p := New(opts)
	summary := BatchSummary{RunID: uuid.New()}

	files, err := listResumeFiles(opts.ResumeDir)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		fmt.Fprintf(p.out, "No resume files found in %s\n", opts.ResumeDir)
		return summary, nil
	}

	fmt.Fprintf(p.out, "Run %s: found %d resume file(s) in %s\n", summary.RunID, len(files), opts.ResumeDir)

	for _, path := range files {
		filename := filepath.Base(path)

		processed, err := p.store.IsProcessed(filename)
		if err != nil {
			// Without a readable ledger the idempotency guarantee is gone;
			// stop instead of risking duplicate rows.
			return summary, err
		}
		if processed {
			fmt.Fprintf(p.out, "Skipping %s - already processed\n", filename)
			summary.Skipped++
			continue
		}

		fmt.Fprintf(p.out, "Processing: %s\n", filename)
		outcome := p.ProcessFile(ctx, path)
		summary.Outcomes = append(summary.Outcomes, outcome)

		if outcome.Failed() {
			fmt.Fprintf(p.out, "Failed %s at %s stage: %v\n", filename, outcome.Stage, outcome.Err)
			continue
		}
		summary.Processed++
		fmt.Fprintf(p.out, "Successfully processed %s\n", filename)
	}

	fmt.Fprintf(p.out, "Done: %d processed, %d skipped, %d failed\n",
		summary.Processed, summary.Skipped, len(summary.Failures()))
	return summary, nil
}

// listResumeFiles returns the supported files directly under dir, sorted by
// name. The scan is non-recursive.
func listResumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if extraction.IsSupported(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
