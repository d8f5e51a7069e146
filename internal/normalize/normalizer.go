// Package normalize turns scanned sources into canonical DocEntry values.
//
// The derivation functions (InferTags, ClassifySize, DetectFlags,
// InferCategory, Merge) are pure. Normalizer is the adapter that reads a
// source through an fs.FS and feeds them.
package normalize

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	"git.home.luguber.info/inful/docmeta/internal/frontmatter"
	"git.home.luguber.info/inful/docmeta/internal/logfields"
	"git.home.luguber.info/inful/docmeta/internal/markdown"
	"git.home.luguber.info/inful/docmeta/internal/scan"
	"git.home.luguber.info/inful/docmeta/internal/synth"
	"git.home.luguber.info/inful/docmeta/internal/util/sets"
)

// ExportExtractor lists the exported symbols of a source file.
type ExportExtractor interface {
	Exports(filename string, content []byte) []string
}

// Timestamps resolves the last modification time of a source-relative path.
type Timestamps interface {
	LastModified(ctx context.Context, relPath string) (time.Time, error)
}

// Options configures a Normalizer.
type Options struct {
	// URLPrefix is the public path prefix of normalized copies ("docs").
	URLPrefix string
	// Exports is optional; without it entries carry no exports.
	Exports ExportExtractor
	// Timestamps is optional; without it file modification times are used.
	Timestamps Timestamps
}

// Result is the outcome of normalizing one source.
type Result struct {
	Document docmodel.Document
	// Skip is set when the source produced no entry (unreadable fixed file).
	Skip     bool
	Warnings []docmodel.Warning
}

// Normalizer reads sources through an fs.FS rooted at the project root.
type Normalizer struct {
	fsys fs.FS
	opts Options
}

// New creates a Normalizer.
func New(fsys fs.FS, opts Options) *Normalizer {
	return &Normalizer{fsys: fsys, opts: opts}
}

// Normalize builds the document for src. Per-source problems are reported as
// warnings and degrade the entry; the only error is context cancellation.
func (n *Normalizer) Normalize(ctx context.Context, src scan.Source) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if src.IsDir() {
		return n.directory(ctx, src), nil
	}
	return n.file(ctx, src), nil
}

// directory normalizes a component or milestone directory.
func (n *Normalizer) directory(ctx context.Context, src scan.Source) Result {
	var res Result
	warn := func(code docmodel.WarningCode, msg string, err error) {
		res.Warnings = append(res.Warnings, warning(code, src, msg, err))
	}

	var files []string
	entries, err := fs.ReadDir(n.fsys, src.Dir)
	if err != nil {
		warn(docmodel.WarnSourceUnreadable, "source directory unreadable, using defaults", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	have := sets.New(files...)

	var explicit *Explicit
	if have.Has(scan.MetadataFile) {
		explicit, err = n.readExplicit(path.Join(src.Dir, scan.MetadataFile))
		if err != nil {
			warn(docmodel.WarnMetadataMalformed, "metadata.json ignored, using heuristics", err)
		}
	}
	fields := Merge(explicit, Derive(src.Kind, src.Name, files))

	var content []byte
	var docPath string
	if have.Has(scan.ReadmeFile) {
		content, err = fs.ReadFile(n.fsys, src.DocPath)
		if err != nil {
			warn(docmodel.WarnSourceUnreadable, "README unreadable, synthesizing", err)
			content = nil
		} else {
			docPath = src.DocPath
		}
	}

	synthesized := content == nil
	if synthesized {
		content = synth.Synthesize(src.Kind, fields.Name, fields.Description)
		warn(docmodel.WarnDocSynthesized, "no README, placeholder document generated", nil)
	}
	fields = n.describe(src, fields, content, &res)

	if fields.LastModified.IsZero() {
		stamp := docPath
		if stamp == "" {
			stamp = src.Dir
		}
		fields.LastModified = n.lastModified(ctx, src, stamp, &res)
	}

	entry := fields.Entry(n.opts.URLPrefix)
	entry.Synthesized = synthesized
	entry.Fingerprint = Fingerprint(content)
	if src.Kind == docmodel.KindComponent {
		entry.Exports = n.exports(src.Dir, files)
	}

	res.Document = docmodel.Document{Entry: entry, Content: content, SourcePath: docPath}
	return res
}

// file normalizes a fixed project or report document.
func (n *Normalizer) file(ctx context.Context, src scan.Source) Result {
	var res Result
	content, err := fs.ReadFile(n.fsys, src.DocPath)
	if err != nil {
		res.Skip = true
		res.Warnings = append(res.Warnings, warning(docmodel.WarnSourceUnreadable, src, "source file unreadable, skipping", err))
		return res
	}

	fields := Derive(src.Kind, src.Name, nil)
	fields.Description = strings.TrimSpace(src.Description)
	fields = n.describe(src, fields, content, &res)
	fields.LastModified = n.lastModified(ctx, src, src.DocPath, &res)

	entry := fields.Entry(n.opts.URLPrefix)
	entry.Fingerprint = Fingerprint(content)
	res.Document = docmodel.Document{Entry: entry, Content: content, SourcePath: src.DocPath}
	return res
}

// describe fills the description from the document when none was given and
// appends frontmatter tags after the explicit and heuristic ones.
func (n *Normalizer) describe(src scan.Source, f Fields, content []byte, res *Result) Fields {
	d, err := DescribeMarkdown(content)
	if err != nil {
		res.Warnings = append(res.Warnings, warning(docmodel.WarnFrontmatter, src, "frontmatter ignored", err))
	}
	if f.Description == "" {
		f.Description = d.Description
	}
	if f.Description == "" {
		f.Description = synth.DefaultDescription(src.Kind, f.Name)
	}
	if len(d.Tags) > 0 {
		f.Tags = sets.Unique(append(append([]string{}, f.Tags...), d.Tags...)...)
	}
	return f
}

func (n *Normalizer) readExplicit(p string) (*Explicit, error) {
	data, err := fs.ReadFile(n.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return ParseExplicit(data)
}

// lastModified resolves the timestamp of p, preferring the configured
// Timestamps source and falling back to the file modification time.
func (n *Normalizer) lastModified(ctx context.Context, src scan.Source, p string, res *Result) time.Time {
	if n.opts.Timestamps != nil {
		t, err := n.opts.Timestamps.LastModified(ctx, p)
		if err == nil {
			return canonicalTime(t)
		}
		res.Warnings = append(res.Warnings, warning(docmodel.WarnGitTimestamp, src, "falling back to file modification time", err))
	}
	info, err := fs.Stat(n.fsys, p)
	if err != nil {
		slog.Debug("No modification time", logfields.Path(p), logfields.Error(err))
		return time.Time{}
	}
	if info.ModTime().IsZero() {
		return time.Time{}
	}
	return canonicalTime(info.ModTime())
}

// exports collects the exported symbols of the component's implementation
// files.
func (n *Normalizer) exports(dir string, files []string) []string {
	if n.opts.Exports == nil {
		return nil
	}
	names := sets.New[string]()
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for _, f := range sorted {
		if !isExportSource(f) {
			continue
		}
		p := path.Join(dir, f)
		content, err := fs.ReadFile(n.fsys, p)
		if err != nil {
			slog.Debug("Skipping unreadable source file", logfields.Path(p), logfields.Error(err))
			continue
		}
		for _, name := range n.opts.Exports.Exports(f, content) {
			names.Add(name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return sets.Sorted(names)
}

// EntryID is the deterministic identifier of an entry: a name-based UUID of
// its public path.
func EntryID(urlPrefix string, kind docmodel.Kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(docmodel.PublicPath(urlPrefix, kind, name))).String()
}

// Fingerprint is the mdfp content fingerprint of a Markdown document. A
// malformed header is hashed as part of the body.
func Fingerprint(content []byte) string {
	header, body, had, err := frontmatter.Split(content)
	if err != nil || !had {
		return mdfp.CalculateFingerprintFromParts("", string(content))
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(header), "\n"), string(body))
}

// Description is what a Markdown document says about itself.
type Description struct {
	Title       string
	Description string
	Tags        []string
}

// DescribeMarkdown reads the YAML frontmatter and the leading paragraph of a
// document. The frontmatter description wins over the first paragraph. A
// malformed header is reported but the body is still summarized.
func DescribeMarkdown(doc []byte) (Description, error) {
	fm, body, err := frontmatter.Parse(doc)
	sum := markdown.Summarize(body)
	d := Description{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Text()),
		Tags:        cleanTags(fm.Tags),
	}
	if d.Title == "" {
		d.Title = sum.Title
	}
	if d.Description == "" {
		d.Description = sum.Lead
	}
	return d, err
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return sets.Unique(out...)
}

func warning(code docmodel.WarningCode, src scan.Source, msg string, err error) docmodel.Warning {
	source := src.Dir
	if source == "" {
		source = src.DocPath
	}
	return docmodel.Warning{
		Code:    code,
		Stage:   docmodel.StageNormalize,
		Kind:    src.Kind,
		Source:  source,
		Message: msg,
		Err:     err,
	}
}
