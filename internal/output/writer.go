// Package output writes the normalized document tree and the metadata JSON.
// Every file is written to a temporary sibling and renamed into place.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	derrors "git.home.luguber.info/inful/docmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/docmeta/internal/logfields"
)

// Options locates the output tree.
type Options struct {
	// Root is the public docs directory, e.g. public/docs.
	Root string
	// MetadataFile is the metadata JSON path; defaults to Root/metadata.json.
	MetadataFile string
	// Clean lets Prune remove stale .md files from category directories.
	Clean bool
}

// Writer commits build output.
type Writer struct {
	opts Options
}

// New creates a Writer.
func New(opts Options) *Writer {
	if opts.MetadataFile == "" {
		opts.MetadataFile = filepath.Join(opts.Root, "metadata.json")
	}
	return &Writer{opts: opts}
}

// Root returns the public docs directory.
func (w *Writer) Root() string { return w.opts.Root }

// MetadataFile returns the metadata JSON path.
func (w *Writer) MetadataFile() string { return w.opts.MetadataFile }

// Target is the file a document of kind/name is copied to.
func (w *Writer) Target(kind docmodel.Kind, name string) string {
	return filepath.Join(w.opts.Root, kind.Dir(), docmodel.Slug(name)+".md")
}

// Prepare creates the output root and one directory per kind. Failure aborts
// the build.
func (w *Writer) Prepare() error {
	dirs := []string{w.opts.Root, filepath.Dir(w.opts.MetadataFile)}
	for _, k := range docmodel.Kinds {
		dirs = append(dirs, filepath.Join(w.opts.Root, k.Dir()))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return derrors.FileSystemError("cannot create output directory").
				WithCause(err).
				WithContext("path", d).
				Build()
		}
	}
	return nil
}

// CopyDocuments writes every document verbatim to its target. A document that
// cannot be written is dropped and reported as COPY_FAILED. The returned slice
// holds the documents that were written, in input order. Only context
// cancellation is returned as an error.
func (w *Writer) CopyDocuments(ctx context.Context, docs []docmodel.Document) ([]docmodel.Document, []docmodel.Warning, error) {
	kept := make([]docmodel.Document, 0, len(docs))
	var warnings []docmodel.Warning
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		target := w.Target(d.Entry.Kind, d.Entry.Name)
		if err := writeAtomic(target, d.Content); err != nil {
			source := d.SourcePath
			if source == "" {
				source = d.Entry.Name
			}
			warnings = append(warnings, docmodel.Warning{
				Code:    docmodel.WarnCopyFailed,
				Stage:   docmodel.StageWrite,
				Kind:    d.Entry.Kind,
				Source:  source,
				Message: "document not copied, entry dropped",
				Err:     err,
			})
			continue
		}
		slog.Debug("Copied document", logfields.Kind(string(d.Entry.Kind)), logfields.Path(target))
		kept = append(kept, d)
	}
	return kept, warnings, nil
}

// Prune removes .md files in the category directories that are not among
// kept. It does nothing unless Clean is set. Call it only after the metadata
// has been committed.
func (w *Writer) Prune(kept []docmodel.Document) {
	if !w.opts.Clean {
		return
	}
	written := make(map[string]struct{}, len(kept))
	for _, d := range kept {
		written[w.Target(d.Entry.Kind, d.Entry.Name)] = struct{}{}
	}
	for _, k := range docmodel.Kinds {
		dir := filepath.Join(w.opts.Root, k.Dir())
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			p := filepath.Join(dir, e.Name())
			if _, ok := written[p]; ok {
				continue
			}
			if err := os.Remove(p); err != nil {
				slog.Warn("Failed to remove stale document", logfields.Path(p), logfields.Error(err))
				continue
			}
			slog.Debug("Removed stale document", logfields.Path(p))
		}
	}
}

// WriteMetadata persists root as indented JSON. Failure aborts the build.
func (w *Writer) WriteMetadata(root *docmodel.MetadataRoot) error {
	data, err := Encode(root)
	if err != nil {
		return derrors.InternalError("cannot encode metadata").WithCause(err).Build()
	}
	if err := writeAtomic(w.opts.MetadataFile, data); err != nil {
		return derrors.FileSystemError("cannot write metadata").
			WithCause(err).
			WithContext("path", w.opts.MetadataFile).
			Build()
	}
	return nil
}

// Encode renders root exactly as WriteMetadata stores it.
func Encode(root *docmodel.MetadataRoot) ([]byte, error) {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ReadMetadata loads a metadata JSON file written by WriteMetadata.
func ReadMetadata(path string) (*docmodel.MetadataRoot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var root docmodel.MetadataRoot
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", path, err)
	}
	return &root, nil
}

// writeAtomic writes data to a temp file in the target directory and renames
// it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
