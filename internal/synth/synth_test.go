package synth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"DatePicker":  "Date Picker",
		"milestone-2": "Milestone 2",
		"APIClient":   "API Client",
		"alert":       "Alert",
		"text_area":   "Text Area",
	}
	for in, want := range tests {
		assert.Equal(t, want, Title(in), "Title(%q)", in)
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	a := Synthesize(docmodel.KindComponent, "DatePicker", "")
	b := Synthesize(docmodel.KindComponent, "DatePicker", "")
	assert.Equal(t, a, b)

	doc := string(a)
	assert.True(t, strings.HasPrefix(doc, "# DatePicker\n"))
	assert.Contains(t, doc, "Date Picker component for the Nebula UI library.")
	assert.Contains(t, doc, "import { DatePicker } from '@nebula/components';")
}

func TestSynthesizeUsesExplicitDescription(t *testing.T) {
	doc := string(Synthesize(docmodel.KindComponent, "Tabs", "Switch between related views."))
	assert.Contains(t, doc, "Switch between related views.")
	assert.NotContains(t, doc, "component for the Nebula UI library.")
}

func TestSynthesizeMilestone(t *testing.T) {
	doc := string(Synthesize(docmodel.KindMilestone, "milestone-3", ""))
	assert.True(t, strings.HasPrefix(doc, "# Milestone 3\n"))
}

func TestWriteBack(t *testing.T) {
	dir := t.TempDir()
	content := Synthesize(docmodel.KindComponent, "Card", "")

	target, err := WriteBack(dir, content)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README.md"), target)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = WriteBack(dir, []byte("other"))
	assert.ErrorIs(t, err, ErrExists)
	got, _ = os.ReadFile(target)
	assert.Equal(t, content, got, "existing README must not be overwritten")
}
