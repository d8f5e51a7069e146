package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

func TestInferTags(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"Alert", []string{"feedback", "notification"}},
		{"FormInput", []string{"form", "input"}},
		{"ModalDialog", []string{"overlay", "dialog"}},
		{"IconButton", []string{"action", "interactive"}},
		{"NavMenu", []string{"navigation"}},
		{"DataTable", []string{"data", "display"}},
		{"Tooltip", []string{"overlay", "tooltip"}},
		{"GridLayout", []string{"layout"}},
		{"Spinner", []string{"feedback", "loading"}},
		{"Divider", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferTags(tt.name))
		})
	}
}

func TestInferTags_NoDuplicates(t *testing.T) {
	// "toast" and "progress" both contribute feedback.
	tags := InferTags("ToastProgress")
	assert.Equal(t, []string{"feedback", "notification", "loading"}, tags)
}

func TestClassifySize(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  docmodel.Size
	}{
		{"none", nil, docmodel.SizeMedium},
		{"one tsx", []string{"Button.tsx", "README.md"}, docmodel.SizeSmall},
		{"two", []string{"Button.tsx", "Button.test.tsx"}, docmodel.SizeMedium},
		{"three", []string{"a.ts", "b.tsx", "c.ts"}, docmodel.SizeMedium},
		{"four", []string{"a.ts", "b.tsx", "c.ts", "d.tsx"}, docmodel.SizeLarge},
		{"ignores other files", []string{"a.tsx", "styles.css", "metadata.json", "x.js"}, docmodel.SizeSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySize(tt.files))
		})
	}
}

func TestDetectFlags(t *testing.T) {
	tests, stories := DetectFlags([]string{"Alert.tsx", "Alert.test.tsx"})
	assert.True(t, tests)
	assert.False(t, stories)

	tests, stories = DetectFlags([]string{"Alert.stories.tsx"})
	assert.False(t, tests)
	assert.True(t, stories)

	tests, stories = DetectFlags([]string{"testing.tsx", "stories.md"})
	assert.False(t, tests)
	assert.False(t, stories)
}

func TestInferCategory(t *testing.T) {
	assert.Equal(t, docmodel.CategoryFeedback, InferCategory("Alert", nil))
	assert.Equal(t, docmodel.CategoryForms, InferCategory("Checkbox", nil))
	assert.Equal(t, docmodel.CategoryOverlay, InferCategory("Popover", nil))
	assert.Equal(t, docmodel.CategoryDataDisplay, InferCategory("Avatar", nil))
	assert.Equal(t, docmodel.CategoryGeneral, InferCategory("Button", nil))
	assert.Equal(t, docmodel.CategoryLayout, InferCategory("Anything", []string{"layout"}))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, docmodel.CategoryFeedback, NormalizeCategory("Feedback"))
	assert.Equal(t, docmodel.CategoryDataDisplay, NormalizeCategory("data-display"))
	assert.Equal(t, docmodel.CategoryDataDisplay, NormalizeCategory("Data Display"))
	assert.Equal(t, docmodel.CategoryForms, NormalizeCategory("FORM"))
	assert.Equal(t, docmodel.CategoryOther, NormalizeCategory("Charts"))
	assert.Equal(t, "", NormalizeCategory("  "))
}
