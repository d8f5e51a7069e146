package normalize

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	"git.home.luguber.info/inful/docmeta/internal/util/sets"
)

// Fields are the metadata values of one entry before its document is
// attached.
type Fields struct {
	Kind         docmodel.Kind
	Name         string
	Description  string
	Category     string
	Size         docmodel.Size
	Tags         []string
	HasTests     bool
	HasStories   bool
	LastModified time.Time
}

// Derive computes the heuristic fields of a source from its name and the
// base names of the files in its directory.
func Derive(kind docmodel.Kind, name string, files []string) Fields {
	f := Fields{Kind: kind, Name: name}
	if kind != docmodel.KindComponent {
		f.Category = kind.DisplayName()
		f.Tags = []string{string(kind)}
		return f
	}
	f.Tags = InferTags(name)
	f.Size = ClassifySize(files)
	f.HasTests, f.HasStories = DetectFlags(files)
	f.Category = InferCategory(name, f.Tags)
	return f
}

// Merge overlays explicit metadata on derived fields. Explicit values win
// wherever they are set; tags are the union with explicit tags first.
func Merge(explicit *Explicit, derived Fields) Fields {
	out := derived
	out.Tags = sets.Unique(derived.Tags...)
	if explicit == nil {
		return out
	}

	if n := strings.TrimSpace(explicit.Name); n != "" {
		out.Name = n
	}
	if d := strings.TrimSpace(explicit.Description); d != "" {
		out.Description = d
	}
	if derived.Kind == docmodel.KindComponent {
		if c := NormalizeCategory(explicit.Category); c != "" {
			out.Category = c
		}
		if s, ok := sizeNormalizer.Lookup(explicit.Size); ok {
			out.Size = s
		}
		if explicit.HasTests != nil {
			out.HasTests = *explicit.HasTests
		}
		if explicit.HasStories != nil {
			out.HasStories = *explicit.HasStories
		}
	}
	if t, ok := explicit.Time(); ok {
		out.LastModified = t
	}

	tags := make([]string, 0, len(explicit.Tags)+len(derived.Tags))
	for _, t := range explicit.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	out.Tags = sets.Unique(append(tags, derived.Tags...)...)
	return out
}

// Entry builds the DocEntry for f.
func (f Fields) Entry(urlPrefix string) docmodel.DocEntry {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return docmodel.DocEntry{
		ID:           EntryID(urlPrefix, f.Kind, f.Name),
		Name:         f.Name,
		Path:         docmodel.PublicPath(urlPrefix, f.Kind, f.Name),
		Kind:         f.Kind,
		Category:     f.Category,
		Description:  f.Description,
		Size:         f.Size,
		Tags:         tags,
		HasTests:     f.HasTests,
		HasStories:   f.HasStories,
		LastModified: f.LastModified,
	}
}
