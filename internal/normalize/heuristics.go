package normalize

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	"git.home.luguber.info/inful/docmeta/internal/foundation/normalization"
	"git.home.luguber.info/inful/docmeta/internal/util/sets"
)

// sourcePattern matches component implementation files.
const sourcePattern = "*.{ts,tsx}"

type tagRule struct {
	keywords []string
	tags     []string
}

// tagRules maps lowercase name substrings to inferred tags. Rules are applied
// in order and every matching rule contributes.
var tagRules = []tagRule{
	{[]string{"form", "input", "select", "checkbox", "radio", "textarea", "switch"}, []string{"form", "input"}},
	{[]string{"modal", "dialog"}, []string{"overlay", "dialog"}},
	{[]string{"button"}, []string{"action", "interactive"}},
	{[]string{"alert", "toast", "notification"}, []string{"feedback", "notification"}},
	{[]string{"nav", "menu", "tabs", "breadcrumb"}, []string{"navigation"}},
	{[]string{"table", "list"}, []string{"data", "display"}},
	{[]string{"card"}, []string{"container", "display"}},
	{[]string{"tooltip", "popover"}, []string{"overlay", "tooltip"}},
	{[]string{"layout", "container", "stack", "grid"}, []string{"layout"}},
	{[]string{"progress", "spinner", "loader"}, []string{"feedback", "loading"}},
	{[]string{"avatar", "badge"}, []string{"display"}},
}

// InferTags returns the heuristic tags for a source name. The result is
// de-duplicated and never nil.
func InferTags(name string) []string {
	lower := strings.ToLower(name)
	var tags []string
	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, rule.tags...)
				break
			}
		}
	}
	return sets.Unique(tags...)
}

// ClassifySize buckets a component by the number of .ts/.tsx files among
// files (base names or slash paths).
func ClassifySize(files []string) docmodel.Size {
	n := 0
	for _, f := range files {
		if isSourceFile(f) {
			n++
		}
	}
	switch {
	case n == 1:
		return docmodel.SizeSmall
	case n > 3:
		return docmodel.SizeLarge
	default:
		return docmodel.SizeMedium
	}
}

// DetectFlags reports whether any file name marks a test or a story.
func DetectFlags(files []string) (hasTests, hasStories bool) {
	for _, f := range files {
		base := path.Base(f)
		if strings.Contains(base, ".test.") {
			hasTests = true
		}
		if strings.Contains(base, ".stories.") {
			hasStories = true
		}
	}
	return hasTests, hasStories
}

// categoryByTag resolves an inferred category from the first matching tag.
var categoryByTag = []struct {
	tag      string
	category string
}{
	{"form", docmodel.CategoryForms},
	{"layout", docmodel.CategoryLayout},
	{"navigation", docmodel.CategoryNavigation},
	{"overlay", docmodel.CategoryOverlay},
	{"feedback", docmodel.CategoryFeedback},
	{"data", docmodel.CategoryDataDisplay},
	{"display", docmodel.CategoryDataDisplay},
}

// InferCategory picks a UI category for a component whose metadata does not
// name one. tags defaults to InferTags(name) when nil.
func InferCategory(name string, tags []string) string {
	if tags == nil {
		tags = InferTags(name)
	}
	have := sets.New(tags...)
	for _, c := range categoryByTag {
		if have.Has(c.tag) {
			return c.category
		}
	}
	return docmodel.CategoryGeneral
}

var categoryNormalizer = normalization.WithCustomNormalizer(map[string]string{
	"forms":       docmodel.CategoryForms,
	"form":        docmodel.CategoryForms,
	"inputs":      docmodel.CategoryForms,
	"layout":      docmodel.CategoryLayout,
	"layouts":     docmodel.CategoryLayout,
	"feedback":    docmodel.CategoryFeedback,
	"navigation":  docmodel.CategoryNavigation,
	"nav":         docmodel.CategoryNavigation,
	"datadisplay": docmodel.CategoryDataDisplay,
	"data":        docmodel.CategoryDataDisplay,
	"display":     docmodel.CategoryDataDisplay,
	"overlay":     docmodel.CategoryOverlay,
	"overlays":    docmodel.CategoryOverlay,
	"general":     docmodel.CategoryGeneral,
	"other":       docmodel.CategoryOther,
}, docmodel.CategoryOther, normalization.Compact)

// NormalizeCategory maps an explicit category onto the UI category enum.
// Spelling and case variants are accepted; anything else becomes Other.
// Blank input returns "".
func NormalizeCategory(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return categoryNormalizer.Normalize(raw)
}

var sizeNormalizer = normalization.NewNormalizer(map[string]docmodel.Size{
	"small":  docmodel.SizeSmall,
	"sm":     docmodel.SizeSmall,
	"s":      docmodel.SizeSmall,
	"medium": docmodel.SizeMedium,
	"md":     docmodel.SizeMedium,
	"m":      docmodel.SizeMedium,
	"large":  docmodel.SizeLarge,
	"lg":     docmodel.SizeLarge,
	"l":      docmodel.SizeLarge,
}, "")

func isSourceFile(name string) bool {
	ok, err := doublestar.Match(sourcePattern, path.Base(name))
	return err == nil && ok
}

// isExportSource reports whether name is an implementation file worth
// scanning for exports (tests and stories are skipped).
func isExportSource(name string) bool {
	base := path.Base(name)
	return isSourceFile(base) && !strings.Contains(base, ".test.") && !strings.Contains(base, ".stories.")
}
