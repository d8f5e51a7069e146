package searchindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

func entry(name, path, category, description string, tags ...string) docmodel.DocEntry {
	return docmodel.DocEntry{Name: name, Path: path, Category: category, Description: description, Tags: tags}
}

func TestSearchText(t *testing.T) {
	got := SearchText("DatePicker", "  Pick a\tDate.  ", []string{"Form", "input"})
	assert.Equal(t, "datepicker pick a date. form input", got)
}

func TestBuild_OrderAndShape(t *testing.T) {
	components := []docmodel.DocEntry{entry("Alert", "/docs/components/alert.md", "Feedback", "Shows status.", "feedback")}
	milestones := []docmodel.DocEntry{entry("milestone-1", "/docs/milestones/milestone-1.md", "Milestone", "First.")}
	project := []docmodel.DocEntry{entry("README", "/docs/project/readme.md", "Project", "Intro.", "project")}

	got := Build(components, milestones, project, nil)
	require.Len(t, got, 3)
	assert.Equal(t, docmodel.SearchRecord{
		Title:       "Alert",
		Path:        "/docs/components/alert.md",
		Category:    "Feedback",
		Description: "Shows status.",
		Tags:        []string{"feedback"},
		SearchText:  "alert shows status. feedback",
	}, got[0])
	assert.Equal(t, "milestone-1", got[1].Title)
	assert.NotNil(t, got[1].Tags)
	assert.Equal(t, "README", got[2].Title)
}

func TestBuild_Empty(t *testing.T) {
	got := Build(nil, nil, nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIndexSearch(t *testing.T) {
	records := Build([]docmodel.DocEntry{
		entry("Alert", "/docs/components/alert.md", "Feedback", "Shows a status message.", "feedback", "notification"),
		entry("Button", "/docs/components/button.md", "General", "Clickable action.", "action"),
		entry("Toast", "/docs/components/toast.md", "Feedback", "Transient notification.", "feedback"),
	}, []docmodel.DocEntry{
		entry("milestone-1", "/docs/milestones/milestone-1.md", "Milestone", "Alert and toast shipped."),
	})

	idx, err := New(records)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	hits, total, err := idx.Search(Query{Text: "Alert"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	paths := make([]string, 0, len(hits))
	for _, h := range hits {
		paths = append(paths, h.Record.Path)
	}
	assert.Contains(t, paths, "/docs/components/alert.md")
	assert.Contains(t, paths, "/docs/milestones/milestone-1.md")

	hits, _, err = idx.Search(Query{Text: "alert", Category: "Feedback"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Alert", hits[0].Record.Title)

	hits, _, err = idx.Search(Query{Text: `"clickable action"`})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Button", hits[0].Record.Title)

	hits, total, err = idx.Search(Query{Text: "notification", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, uint64(2), total)

	_, _, err = idx.Search(Query{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
