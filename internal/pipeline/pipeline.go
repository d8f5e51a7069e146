// Package pipeline orchestrates a documentation build: scan, normalize,
// categorize, index, stats and write. Stages hand values forward; per-source
// problems become warnings and only pipeline-level failures abort the run.
package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"git.home.luguber.info/inful/docmeta/internal/config"
	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	"git.home.luguber.info/inful/docmeta/internal/gitmeta"
	"git.home.luguber.info/inful/docmeta/internal/logfields"
	"git.home.luguber.info/inful/docmeta/internal/metrics"
	"git.home.luguber.info/inful/docmeta/internal/normalize"
	"git.home.luguber.info/inful/docmeta/internal/output"
	"git.home.luguber.info/inful/docmeta/internal/scan"
	"git.home.luguber.info/inful/docmeta/internal/synth"
	"git.home.luguber.info/inful/docmeta/internal/tsexports"
)

// DefaultWorkers bounds concurrent source normalization.
const DefaultWorkers = 4

// Options configures a Pipeline.
type Options struct {
	// Root is the project root on disk.
	Root string
	// FS reads the source tree; defaults to os.DirFS(Root).
	FS        fs.FS
	Scan      scan.Options
	URLPrefix string
	Output    output.Options
	Workers   int
	// WriteBack stores synthesized READMEs in their source directories.
	WriteBack bool
	// GitTimestamps derives lastModified from the newest commit.
	GitTimestamps bool
}

// OptionsFromConfig maps a loaded configuration onto pipeline options.
func OptionsFromConfig(cfg *config.Config, root string) Options {
	fixed := func(in []config.FileSource) []scan.FixedFile {
		out := make([]scan.FixedFile, 0, len(in))
		for _, f := range in {
			out = append(out, scan.FixedFile{Path: f.Path, Name: f.Name, Description: f.Description})
		}
		return out
	}
	return Options{
		Root: root,
		Scan: scan.Options{
			ComponentsDir:    cfg.Sources.ComponentsDir,
			MilestonesDir:    cfg.Sources.MilestonesDir,
			MilestonePattern: cfg.Sources.MilestonePattern,
			ProjectFiles:     fixed(cfg.Sources.ProjectFiles),
			ReportFiles:      fixed(cfg.Sources.ReportFiles),
			IgnoreFile:       cfg.Sources.IgnoreFile,
		},
		URLPrefix: cfg.Output.URLPrefix,
		Output: output.Options{
			Root:         cfg.OutputDir(root),
			MetadataFile: cfg.MetadataPath(root),
			Clean:        cfg.Output.Clean,
		},
		Workers:       cfg.Build.Workers,
		WriteBack:     cfg.Build.WriteBackSynthesized,
		GitTimestamps: cfg.Build.LastModified == config.LastModifiedGit,
	}
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithObserver replaces the default log observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithRecorder records metrics in addition to the configured observer.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithClock overrides the time source used for generated and lastBuild.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// Pipeline runs builds. A Pipeline may run more than once.
type Pipeline struct {
	opts     Options
	observer Observer
	recorder metrics.Recorder
	now      func() time.Time
}

// New creates a Pipeline.
func New(opts Options, options ...Option) *Pipeline {
	if opts.FS == nil {
		opts.FS = os.DirFS(opts.Root)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	p := &Pipeline{
		opts:     opts,
		observer: NewLogObserver(nil),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, o := range options {
		o(p)
	}
	p.observer = MultiObserver{p.observer, RecorderObserver{Recorder: p.recorder}}
	return p
}

// Result is the outcome of a build.
type Result struct {
	Root      docmodel.MetadataRoot
	Documents []docmodel.Document
	Warnings  []docmodel.Warning
	Report    *Report
}

// buildState is threaded through the stages.
type buildState struct {
	writer     *output.Writer
	normalizer *normalize.Normalizer
	sources    []scan.Source
	docs       []docmodel.Document
	root       docmodel.MetadataRoot
	warnings   []docmodel.Warning
	report     *Report
}

func (bs *buildState) warn(ws ...docmodel.Warning) {
	bs.warnings = append(bs.warnings, ws...)
}

// Run executes one build. The returned error is nil unless a stage failed or
// ctx was canceled; the Result is always non-nil.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	bs := &buildState{
		writer: output.New(p.opts.Output),
		report: newReport(p.now()),
	}
	bs.report.Workers = p.opts.Workers

	stages := []stage{
		{docmodel.StagePrepareOutput, p.stagePrepareOutput},
		{docmodel.StageScan, p.stageScan},
		{docmodel.StageNormalize, p.stageNormalize},
		{docmodel.StageCategorize, p.stageCategorize},
		{docmodel.StageIndex, p.stageIndex},
		{docmodel.StageStats, p.stageStats},
		{docmodel.StageWrite, p.stageWrite},
	}
	err := p.runStages(ctx, bs, stages)

	for _, d := range bs.docs {
		bs.report.Entries[d.Entry.Kind]++
		if d.Entry.Synthesized {
			bs.report.Synthesized++
		}
	}
	bs.report.finish(p.now(), bs.warnings)
	p.observer.OnBuildComplete(bs.report)

	return &Result{Root: bs.root, Documents: bs.docs, Warnings: bs.warnings, Report: bs.report}, err
}

func (p *Pipeline) stagePrepareOutput(_ context.Context, bs *buildState) error {
	return bs.writer.Prepare()
}

// stageScan lists the four kinds concurrently and joins them in kind order.
func (p *Pipeline) stageScan(ctx context.Context, bs *buildState) error {
	scanner := scan.New(p.opts.FS, p.opts.Scan)
	type scanned struct {
		sources  []scan.Source
		warnings []docmodel.Warning
		err      error
	}
	results := make([]scanned, len(docmodel.Kinds))

	var wg sync.WaitGroup
	for i, kind := range docmodel.Kinds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, w, err := scanner.Scan(ctx, kind)
			results[i] = scanned{sources: s, warnings: w, err: err}
		}()
	}
	wg.Wait()

	for i, r := range results {
		if r.err != nil {
			return r.err
		}
		bs.sources = append(bs.sources, r.sources...)
		bs.warn(r.warnings...)
		bs.report.Sources[docmodel.Kinds[i]] = len(r.sources)
	}
	return nil
}

// stageNormalize reads every source on a bounded pool. Results are placed by
// index so output order matches scan order.
func (p *Pipeline) stageNormalize(ctx context.Context, bs *buildState) error {
	bs.normalizer = normalize.New(p.opts.FS, normalize.Options{
		URLPrefix:  p.opts.URLPrefix,
		Exports:    tsexports.Extractor{},
		Timestamps: p.timestamps(bs),
	})

	results := make([]normalize.Result, len(bs.sources))
	sem := make(chan struct{}, p.opts.Workers)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, src := range bs.sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := bs.normalizer.Normalize(ctx, src)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			results[i] = res
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}

	docs := make([]docmodel.Document, 0, len(results))
	for i, res := range results {
		bs.warn(res.Warnings...)
		if res.Skip {
			continue
		}
		if res.Document.Entry.Synthesized && p.opts.WriteBack {
			p.writeBack(bs, bs.sources[i], res.Document)
		}
		docs = append(docs, res.Document)
	}

	kept, dups := Dedupe(docs)
	bs.warn(dups...)
	bs.docs = kept
	return nil
}

// timestamps opens the git repository when requested. Failure to open it is a
// warning and file modification times are used instead.
func (p *Pipeline) timestamps(bs *buildState) normalize.Timestamps {
	if !p.opts.GitTimestamps {
		return nil
	}
	repo, err := gitmeta.Open(p.opts.Root)
	if err != nil {
		bs.warn(docmodel.Warning{
			Code:    docmodel.WarnGitTimestamp,
			Stage:   docmodel.StageNormalize,
			Source:  p.opts.Root,
			Message: "git repository unavailable, using file modification times",
			Err:     err,
		})
		return nil
	}
	return repo
}

func (p *Pipeline) writeBack(bs *buildState, src scan.Source, doc docmodel.Document) {
	dir := filepath.Join(p.opts.Root, filepath.FromSlash(src.Dir))
	target, err := synth.WriteBack(dir, doc.Content)
	switch {
	case err == nil:
		bs.report.WrittenBack++
		slog.Debug("Wrote synthesized README", logfields.Kind(string(src.Kind)), logfields.Path(target))
	case errors.Is(err, synth.ErrExists):
	default:
		bs.warn(docmodel.Warning{
			Code:    docmodel.WarnWriteBackFailed,
			Stage:   docmodel.StageNormalize,
			Kind:    src.Kind,
			Source:  src.Dir,
			Message: "synthesized README not written back",
			Err:     err,
		})
	}
}

func (p *Pipeline) stageCategorize(_ context.Context, bs *buildState) error {
	bs.root = WithCategories(Group(bs.docs, p.now()))
	return nil
}

func (p *Pipeline) stageIndex(_ context.Context, bs *buildState) error {
	bs.root = WithSearchIndex(bs.root)
	return nil
}

func (p *Pipeline) stageStats(_ context.Context, bs *buildState) error {
	bs.root = WithStats(bs.root, bs.root.Generated)
	return nil
}

// stageWrite copies documents and commits the metadata. Entries whose copy
// failed are removed and the root is rebuilt before the JSON is written.
// Stale documents are pruned only once the metadata is on disk.
func (p *Pipeline) stageWrite(ctx context.Context, bs *buildState) error {
	kept, warnings, err := bs.writer.CopyDocuments(ctx, bs.docs)
	if err != nil {
		return err
	}
	bs.warn(warnings...)
	if dropped := len(bs.docs) - len(kept); dropped > 0 {
		bs.report.Dropped = dropped
		bs.docs = kept
		bs.root = Assemble(kept, bs.root.Generated)
	}
	if err := bs.writer.WriteMetadata(&bs.root); err != nil {
		return err
	}
	bs.writer.Prune(bs.docs)
	return nil
}
