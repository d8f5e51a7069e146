package pipeline

import (
	"sort"
	"time"

	"git.home.luguber.info/inful/docmeta/internal/catalog"
	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	"git.home.luguber.info/inful/docmeta/internal/searchindex"
	"git.home.luguber.info/inful/docmeta/internal/version"
)

// Dedupe drops documents whose output file would collide with an earlier
// document of the same kind. The first occurrence wins.
func Dedupe(docs []docmodel.Document) ([]docmodel.Document, []docmodel.Warning) {
	seen := make(map[docmodel.Kind]map[string]string)
	kept := make([]docmodel.Document, 0, len(docs))
	var warnings []docmodel.Warning
	for _, d := range docs {
		k := d.Entry.Kind
		if seen[k] == nil {
			seen[k] = make(map[string]string)
		}
		slug := docmodel.Slug(d.Entry.Name)
		if first, dup := seen[k][slug]; dup {
			warnings = append(warnings, docmodel.Warning{
				Code:    docmodel.WarnDuplicateName,
				Stage:   docmodel.StageNormalize,
				Kind:    k,
				Source:  d.Entry.Name,
				Message: "entry shares output path with " + first + ", dropped",
			})
			continue
		}
		seen[k][slug] = d.Entry.Name
		kept = append(kept, d)
	}
	return kept, warnings
}

// Group builds a root holding only the entry sequences. Components and
// milestones are sorted by name; project and report entries keep document
// order, which is the configured order. Every sequence is non-nil.
func Group(docs []docmodel.Document, now time.Time) docmodel.MetadataRoot {
	root := docmodel.MetadataRoot{
		Version:     version.SchemaVersion,
		Generated:   now.UTC().Truncate(time.Second),
		Components:  []docmodel.DocEntry{},
		Milestones:  []docmodel.DocEntry{},
		Project:     []docmodel.DocEntry{},
		Reports:     []docmodel.DocEntry{},
		Categories:  map[string][]string{},
		SearchIndex: []docmodel.SearchRecord{},
	}
	for _, d := range docs {
		switch d.Entry.Kind {
		case docmodel.KindComponent:
			root.Components = append(root.Components, d.Entry)
		case docmodel.KindMilestone:
			root.Milestones = append(root.Milestones, d.Entry)
		case docmodel.KindProject:
			root.Project = append(root.Project, d.Entry)
		case docmodel.KindReport:
			root.Reports = append(root.Reports, d.Entry)
		}
	}
	sortByName(root.Components)
	sortByName(root.Milestones)
	return root
}

func sortByName(entries []docmodel.DocEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}

// WithCategories returns root with the component category rollup.
func WithCategories(root docmodel.MetadataRoot) docmodel.MetadataRoot {
	root.Categories = catalog.Categorize(root.Components)
	return root
}

// WithSearchIndex returns root with one search record per entry.
func WithSearchIndex(root docmodel.MetadataRoot) docmodel.MetadataRoot {
	root.SearchIndex = searchindex.Build(root.Components, root.Milestones, root.Project, root.Reports)
	return root
}

// WithStats returns root with aggregate statistics stamped at now.
func WithStats(root docmodel.MetadataRoot, now time.Time) docmodel.MetadataRoot {
	root.Stats = catalog.Calculate(root.Components, root.Milestones, root.Project, root.Reports, now)
	return root
}

// Assemble runs every derivation over docs.
func Assemble(docs []docmodel.Document, now time.Time) docmodel.MetadataRoot {
	return WithStats(WithSearchIndex(WithCategories(Group(docs, now))), now)
}
