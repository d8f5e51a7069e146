// Package docmodel defines the canonical documentation metadata schema shared by
// every pipeline stage: DocEntry, MetadataRoot and the per-source Warning.
package docmodel

import (
	"path"
	"strings"
	"time"
)

// Kind is the top-level category of a documented artifact.
type Kind string

const (
	KindComponent Kind = "component"
	KindMilestone Kind = "milestone"
	KindProject   Kind = "project"
	KindReport    Kind = "report"
)

// Kinds lists every kind in output order.
var Kinds = []Kind{KindComponent, KindMilestone, KindProject, KindReport}

// Dir returns the output subdirectory for the kind.
func (k Kind) Dir() string {
	switch k {
	case KindComponent:
		return "components"
	case KindMilestone:
		return "milestones"
	case KindProject:
		return "project"
	case KindReport:
		return "reports"
	default:
		return "other"
	}
}

// DisplayName is the category label used for non-component entries.
func (k Kind) DisplayName() string {
	switch k {
	case KindComponent:
		return "Component"
	case KindMilestone:
		return "Milestone"
	case KindProject:
		return "Project"
	case KindReport:
		return "Report"
	default:
		return "Other"
	}
}

// Size classifies a component by its source file count.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// UI categories for component entries.
const (
	CategoryForms       = "Forms"
	CategoryLayout      = "Layout"
	CategoryFeedback    = "Feedback"
	CategoryNavigation  = "Navigation"
	CategoryDataDisplay = "Data Display"
	CategoryOverlay     = "Overlay"
	CategoryGeneral     = "General"
	CategoryOther       = "Other"
)

// UICategories is the closed set of component categories.
var UICategories = []string{
	CategoryForms,
	CategoryLayout,
	CategoryFeedback,
	CategoryNavigation,
	CategoryDataDisplay,
	CategoryOverlay,
	CategoryGeneral,
	CategoryOther,
}

// IsUICategory reports whether c is a member of UICategories.
func IsUICategory(c string) bool {
	for _, known := range UICategories {
		if c == known {
			return true
		}
	}
	return false
}

// DocEntry is one documented artifact.
type DocEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Kind         Kind      `json:"kind"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Size         Size      `json:"size,omitempty"`
	Tags         []string  `json:"tags"`
	HasTests     bool      `json:"hasTests"`
	HasStories   bool      `json:"hasStories"`
	Exports      []string  `json:"exports,omitempty"`
	Synthesized  bool      `json:"synthesized,omitempty"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// Document pairs an entry with the bytes that will be copied for it.
type Document struct {
	Entry DocEntry
	// Content is the verbatim source document, or the synthesized text.
	Content []byte
	// SourcePath is the source-tree relative path Content came from; empty
	// when synthesized.
	SourcePath string
}

// Stats are aggregate counts derived from built entries.
type Stats struct {
	TotalComponents       int       `json:"totalComponents"`
	ComponentsWithTests   int       `json:"componentsWithTests"`
	ComponentsWithStories int       `json:"componentsWithStories"`
	ComponentsWithPages   int       `json:"componentsWithPages"`
	Synthesized           int       `json:"synthesized"`
	TotalFiles            int       `json:"totalFiles"`
	LastBuild             time.Time `json:"lastBuild"`
}

// SearchRecord is the flattened, lowercase-searchable projection of an entry.
type SearchRecord struct {
	Title       string   `json:"title"`
	Path        string   `json:"path"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	SearchText  string   `json:"searchText"`
}

// MetadataRoot is the single build artifact.
type MetadataRoot struct {
	Version     string              `json:"version"`
	Generated   time.Time           `json:"generated"`
	Components  []DocEntry          `json:"components"`
	Milestones  []DocEntry          `json:"milestones"`
	Project     []DocEntry          `json:"project"`
	Reports     []DocEntry          `json:"reports"`
	Categories  map[string][]string `json:"categories"`
	Stats       Stats               `json:"stats"`
	SearchIndex []SearchRecord      `json:"searchIndex"`
}

// Entries returns the sequence for kind.
func (r *MetadataRoot) Entries(kind Kind) []DocEntry {
	switch kind {
	case KindComponent:
		return r.Components
	case KindMilestone:
		return r.Milestones
	case KindProject:
		return r.Project
	case KindReport:
		return r.Reports
	default:
		return nil
	}
}

// All returns every entry in output order.
func (r *MetadataRoot) All() []DocEntry {
	out := make([]DocEntry, 0, len(r.Components)+len(r.Milestones)+len(r.Project)+len(r.Reports))
	for _, k := range Kinds {
		out = append(out, r.Entries(k)...)
	}
	return out
}

// Slug is the file stem used for an entry's normalized copy. Invalid
// UTF-8 runs become a single dash so the stem survives JSON encoding.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(strings.ToValidUTF8(name, "-")))
	s = strings.NewReplacer(" ", "-", "/", "-", "\\", "-").Replace(s)
	if s == "" || s == "." || s == ".." {
		return "untitled"
	}
	return s
}

// PublicPath returns the public-facing path of an entry's normalized copy.
func PublicPath(prefix string, kind Kind, name string) string {
	return path.Join("/", prefix, kind.Dir(), Slug(name)+".md")
}
