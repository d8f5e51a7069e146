package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"

	derrors "git.home.luguber.info/inful/docmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/docmeta/internal/output"
	"git.home.luguber.info/inful/docmeta/internal/searchindex"
)

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Query    string `arg:"" help:"Words to match; wrap in quotes for a phrase"`
	Category string `help:"Only return entries in this category (exact label)"`
	Limit    int    `short:"n" help:"Maximum number of results" default:"10"`
	Metadata string `help:"metadata.json to search (default: configured output)" type:"path"`
}

func (s *SearchCmd) Run(g *Global, root *CLI) error {
	path := s.Metadata
	if path == "" {
		cfg, err := root.LoadConfig()
		if err != nil {
			return err
		}
		path = cfg.MetadataPath(root.Root)
	}
	return RunSearch(g.Out, path, searchindex.Query{Text: s.Query, Category: s.Category, Limit: s.Limit})
}

// RunSearch prints the hits for q against the metadata at path.
func RunSearch(w io.Writer, path string, q searchindex.Query) error {
	meta, err := output.ReadMetadata(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return derrors.NewError(derrors.CategoryNotFound, "metadata not found, run a build first").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return derrors.SearchError("cannot load metadata").WithCause(err).Build()
	}

	idx, err := searchindex.New(meta.SearchIndex)
	if err != nil {
		return derrors.InternalError("cannot build search index").WithCause(err).Build()
	}
	defer func() { _ = idx.Close() }()

	hits, total, err := idx.Search(q)
	if err != nil {
		if errors.Is(err, searchindex.ErrEmptyQuery) {
			return derrors.ValidationError("search query is empty").Build()
		}
		return derrors.SearchError("search failed").WithCause(err).Build()
	}

	if len(hits) == 0 {
		_, _ = fmt.Fprintln(w, "No matches.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, h := range hits {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Record.Title, h.Record.Category, h.Record.Path, h.Record.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if total > uint64(len(hits)) {
		_, _ = fmt.Fprintf(w, "%d of %d matches shown\n", len(hits), total)
	}
	return nil
}
