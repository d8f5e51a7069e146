// Package catalog derives the category rollup and aggregate statistics from
// built entries. Everything here is pure.
package catalog

import (
	"time"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

// Categorize groups component names by UI category, preserving input order
// within each bucket. Categories outside the enum land in Other. Buckets
// exist only when non-empty.
func Categorize(components []docmodel.DocEntry) map[string][]string {
	out := make(map[string][]string)
	for _, c := range components {
		cat := c.Category
		if !docmodel.IsUICategory(cat) {
			cat = docmodel.CategoryOther
		}
		out[cat] = append(out[cat], c.Name)
	}
	return out
}

// Calculate derives aggregate counts. now becomes LastBuild.
func Calculate(components, milestones, project, reports []docmodel.DocEntry, now time.Time) docmodel.Stats {
	s := docmodel.Stats{
		TotalComponents:     len(components),
		ComponentsWithPages: len(components),
		TotalFiles:          len(components) + len(milestones) + len(project) + len(reports),
		LastBuild:           now.UTC().Truncate(time.Second),
	}
	for _, c := range components {
		if c.HasTests {
			s.ComponentsWithTests++
		}
		if c.HasStories {
			s.ComponentsWithStories++
		}
	}
	for _, group := range [][]docmodel.DocEntry{components, milestones, project, reports} {
		for _, e := range group {
			if e.Synthesized {
				s.Synthesized++
			}
		}
	}
	return s
}
