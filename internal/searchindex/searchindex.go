// Package searchindex flattens entries into lowercase-searchable records and
// serves queries over them.
package searchindex

import (
	"strings"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

// Build returns one record per entry, group by group, in input order. Callers
// pass components, milestones, project and reports in that order.
func Build(groups ...[]docmodel.DocEntry) []docmodel.SearchRecord {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]docmodel.SearchRecord, 0, n)
	for _, g := range groups {
		for _, e := range g {
			out = append(out, Record(e))
		}
	}
	return out
}

// Record projects a single entry.
func Record(e docmodel.DocEntry) docmodel.SearchRecord {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return docmodel.SearchRecord{
		Title:       e.Name,
		Path:        e.Path,
		Category:    e.Category,
		Description: e.Description,
		Tags:        tags,
		SearchText:  SearchText(e.Name, e.Description, tags),
	}
}

// SearchText joins name, description and tags, lowercased, with runs of
// whitespace collapsed to single spaces.
func SearchText(name, description string, tags []string) string {
	parts := make([]string, 0, 2+len(tags))
	parts = append(parts, name, description)
	parts = append(parts, tags...)
	return strings.Join(strings.Fields(strings.ToLower(strings.Join(parts, " "))), " ")
}
