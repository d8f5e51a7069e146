// Package scan lists candidate documentation sources per category from fixed
// roots inside the source tree. It only enumerates; reading and interpreting
// the sources is left to the normalizer.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	"git.home.luguber.info/inful/docmeta/internal/logfields"
)

// Conventional file names inside component and milestone directories.
const (
	ReadmeFile   = "README.md"
	MetadataFile = "metadata.json"
)

// Source describes one candidate documentation source.
type Source struct {
	Kind docmodel.Kind
	Name string
	// Dir is the source directory for component and milestone sources.
	Dir string
	// DocPath is the document to copy. For directory sources it is the
	// conventional README path, which may not exist.
	DocPath string
	// Description is a configured override for fixed files.
	Description string
}

// IsDir reports whether the source is a directory (component or milestone).
func (s Source) IsDir() bool { return s.Dir != "" }

// FixedFile names a project or report document.
type FixedFile struct {
	Path        string
	Name        string
	Description string
}

// Options configures the source roots. All paths are slash-separated and
// relative to the scanned file system.
type Options struct {
	ComponentsDir    string
	MilestonesDir    string
	MilestonePattern string
	ProjectFiles     []FixedFile
	ReportFiles      []FixedFile
	// IgnoreFile is a gitignore-syntax file inside ComponentsDir listing
	// component directories to skip.
	IgnoreFile string
}

// Scanner enumerates sources from an fs.FS rooted at the project root.
type Scanner struct {
	fsys fs.FS
	opts Options
}

// New creates a Scanner. Use os.DirFS for a real tree.
func New(fsys fs.FS, opts Options) *Scanner {
	if opts.MilestonePattern == "" {
		opts.MilestonePattern = "milestone-*"
	}
	opts.ComponentsDir = cleanDir(opts.ComponentsDir)
	opts.MilestonesDir = cleanDir(opts.MilestonesDir)
	return &Scanner{fsys: fsys, opts: opts}
}

// Scan lists the sources for one kind. Missing or unreadable roots yield an
// empty list and a warning. The only errors returned are context cancellation
// and ErrUnknownKind.
func (s *Scanner) Scan(ctx context.Context, kind docmodel.Kind) ([]Source, []docmodel.Warning, error) {
	switch kind {
	case docmodel.KindComponent:
		return s.directories(ctx, kind, s.opts.ComponentsDir, s.componentFilter())
	case docmodel.KindMilestone:
		return s.directories(ctx, kind, s.opts.MilestonesDir, s.milestoneFilter())
	case docmodel.KindProject:
		return s.fixedFiles(ctx, kind, s.opts.ProjectFiles)
	case docmodel.KindReport:
		return s.fixedFiles(ctx, kind, s.opts.ReportFiles)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// directories lists immediate subdirectories of root accepted by keep.
func (s *Scanner) directories(ctx context.Context, kind docmodel.Kind, root string, keep func(name string) bool) ([]Source, []docmodel.Warning, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	entries, err := fs.ReadDir(s.fsys, root)
	if err != nil {
		w := rootWarning(kind, root, err)
		slog.Debug("Source root unavailable", logfields.Kind(string(kind)), logfields.Path(root), logfields.Error(err))
		return []Source{}, []docmodel.Warning{w}, nil
	}

	sources := make([]Source, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || !keep(name) {
			continue
		}
		dir := path.Join(root, name)
		sources = append(sources, Source{
			Kind:    kind,
			Name:    name,
			Dir:     dir,
			DocPath: path.Join(dir, ReadmeFile),
		})
		slog.Debug("Discovered source", logfields.Kind(string(kind)), logfields.Source(name), logfields.Path(dir))
	}
	return sources, nil, nil
}

func (s *Scanner) fixedFiles(ctx context.Context, kind docmodel.Kind, files []FixedFile) ([]Source, []docmodel.Warning, error) {
	sources := make([]Source, 0, len(files))
	var warnings []docmodel.Warning
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		p := cleanDir(f.Path)
		info, err := fs.Stat(s.fsys, p)
		switch {
		case err != nil && errors.Is(err, fs.ErrNotExist):
			warnings = append(warnings, docmodel.Warning{
				Code: docmodel.WarnSourceMissing, Stage: docmodel.StageScan, Kind: kind, Source: p,
				Message: "fixed source file not present, skipping", Err: ErrSourceMissing,
			})
			slog.Debug("Source file not found", logfields.Kind(string(kind)), logfields.Path(p))
			continue
		case err != nil:
			warnings = append(warnings, docmodel.Warning{
				Code: docmodel.WarnSourceUnreadable, Stage: docmodel.StageScan, Kind: kind, Source: p,
				Message: "fixed source file unreadable, skipping", Err: err,
			})
			continue
		case info.IsDir():
			warnings = append(warnings, docmodel.Warning{
				Code: docmodel.WarnSourceUnreadable, Stage: docmodel.StageScan, Kind: kind, Source: p,
				Message: "fixed source path is a directory, skipping", Err: ErrNotAFile,
			})
			continue
		}

		name := f.Name
		if name == "" {
			base := path.Base(p)
			name = strings.TrimSuffix(base, path.Ext(base))
		}
		sources = append(sources, Source{Kind: kind, Name: name, DocPath: p, Description: f.Description})
	}
	if sources == nil {
		sources = []Source{}
	}
	return sources, warnings, nil
}

func (s *Scanner) componentFilter() func(string) bool {
	ignore := s.loadIgnore()
	if ignore == nil {
		return func(string) bool { return true }
	}
	return func(name string) bool {
		m := ignore.Relative(name, true)
		if m != nil && m.Ignore() {
			slog.Debug("Component ignored by ignore file", logfields.Source(name))
			return false
		}
		return true
	}
}

func (s *Scanner) milestoneFilter() func(string) bool {
	pattern := s.opts.MilestonePattern
	return func(name string) bool {
		ok, err := doublestar.Match(pattern, name)
		return err == nil && ok
	}
}

// loadIgnore parses the ignore file inside the component root, if any.
func (s *Scanner) loadIgnore() gitignore.GitIgnore {
	if s.opts.IgnoreFile == "" {
		return nil
	}
	f, err := s.fsys.Open(path.Join(s.opts.ComponentsDir, s.opts.IgnoreFile))
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()
	// Base is only consulted by Absolute/Match; Relative matching uses the
	// component names directly.
	return gitignore.New(f, s.opts.ComponentsDir, nil)
}

func rootWarning(kind docmodel.Kind, root string, err error) docmodel.Warning {
	if errors.Is(err, fs.ErrNotExist) {
		return docmodel.Warning{
			Code: docmodel.WarnSourceRootMissing, Stage: docmodel.StageScan, Kind: kind, Source: root,
			Message: "source root does not exist", Err: ErrRootMissing,
		}
	}
	return docmodel.Warning{
		Code: docmodel.WarnSourceUnreadable, Stage: docmodel.StageScan, Kind: kind, Source: root,
		Message: "source root cannot be listed", Err: fmt.Errorf("%w: %w", ErrRootUnreadable, err),
	}
}

// cleanDir converts a configured path into fs.FS form.
func cleanDir(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}
