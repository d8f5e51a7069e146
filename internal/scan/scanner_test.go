package scan

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

func testTree() fstest.MapFS {
	return fstest.MapFS{
		"nebula/components/Alert/Alert.tsx":         {Data: []byte("export const Alert = () => null")},
		"nebula/components/Alert/README.md":         {Data: []byte("# Alert\n")},
		"nebula/components/Button/Button.tsx":       {Data: []byte("export function Button() {}")},
		"nebula/components/Experimental/Lab.tsx":    {Data: []byte("")},
		"nebula/components/.hidden/x.tsx":           {Data: []byte("")},
		"nebula/components/index.ts":                {Data: []byte("")},
		"nebula/components/.docignore":              {Data: []byte("Experimental/\n")},
		"docs/milestone-1/README.md":                {Data: []byte("# M1\n")},
		"docs/milestone-2/metadata.json":            {Data: []byte("{}")},
		"docs/notes/README.md":                      {Data: []byte("# Notes\n")},
		"docs/IMPLEMENTATION_PLAN.md":               {Data: []byte("# Plan\n")},
		"docs/PROJECT_STATUS.md":                    {Data: []byte("# Status\n")},
		"README.md":                                 {Data: []byte("# Nebula\n")},
	}
}

func testOptions() Options {
	return Options{
		ComponentsDir: "nebula/components",
		MilestonesDir: "docs",
		ProjectFiles: []FixedFile{
			{Path: "README.md"},
			{Path: "docs/IMPLEMENTATION_PLAN.md", Description: "Delivery plan"},
			{Path: "docs/ARCHITECTURE.md"},
		},
		ReportFiles: []FixedFile{{Path: "./docs/PROJECT_STATUS.md", Name: "status"}},
		IgnoreFile:  ".docignore",
	}
}

func names(sources []Source) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, s.Name)
	}
	return out
}

func TestScanComponents(t *testing.T) {
	s := New(testTree(), testOptions())
	sources, warnings, err := s.Scan(context.Background(), docmodel.KindComponent)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"Alert", "Button"}, names(sources))
	assert.Equal(t, "nebula/components/Alert", sources[0].Dir)
	assert.Equal(t, "nebula/components/Alert/README.md", sources[0].DocPath)
	assert.True(t, sources[0].IsDir())
}

func TestScanComponentsWithoutIgnoreFile(t *testing.T) {
	opts := testOptions()
	opts.IgnoreFile = ""
	sources, _, err := New(testTree(), opts).Scan(context.Background(), docmodel.KindComponent)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alert", "Button", "Experimental"}, names(sources))
}

func TestScanMilestonesMatchesPattern(t *testing.T) {
	sources, warnings, err := New(testTree(), testOptions()).Scan(context.Background(), docmodel.KindMilestone)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"milestone-1", "milestone-2"}, names(sources))
}

func TestScanMissingRootWarns(t *testing.T) {
	tree := testTree()
	for k := range tree {
		if len(k) > 5 && k[:5] == "docs/" {
			delete(tree, k)
		}
	}
	sources, warnings, err := New(tree, testOptions()).Scan(context.Background(), docmodel.KindMilestone)
	require.NoError(t, err)
	assert.NotNil(t, sources)
	assert.Empty(t, sources)
	require.Len(t, warnings, 1)
	assert.Equal(t, docmodel.WarnSourceRootMissing, warnings[0].Code)
	assert.ErrorIs(t, warnings[0].Err, ErrRootMissing)
}

func TestScanFixedFiles(t *testing.T) {
	s := New(testTree(), testOptions())

	project, warnings, err := s.Scan(context.Background(), docmodel.KindProject)
	require.NoError(t, err)
	assert.Equal(t, []string{"README", "IMPLEMENTATION_PLAN"}, names(project))
	assert.Equal(t, "Delivery plan", project[1].Description)
	assert.False(t, project[0].IsDir())
	require.Len(t, warnings, 1)
	assert.Equal(t, docmodel.WarnSourceMissing, warnings[0].Code)
	assert.Equal(t, "docs/ARCHITECTURE.md", warnings[0].Source)

	reports, warnings, err := s.Scan(context.Background(), docmodel.KindReport)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, reports, 1)
	assert.Equal(t, "status", reports[0].Name)
	assert.Equal(t, "docs/PROJECT_STATUS.md", reports[0].DocPath)
}

func TestScanFixedFileDirectoryIsSkipped(t *testing.T) {
	opts := testOptions()
	opts.ReportFiles = []FixedFile{{Path: "docs/milestone-1"}}
	reports, warnings, err := New(testTree(), opts).Scan(context.Background(), docmodel.KindReport)
	require.NoError(t, err)
	assert.Empty(t, reports)
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0].Err, ErrNotAFile)
}

func TestScanHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, kind := range docmodel.Kinds {
		_, _, err := New(testTree(), testOptions()).Scan(ctx, kind)
		assert.ErrorIs(t, err, context.Canceled, "kind %s", kind)
	}
}

func TestScanUnknownKind(t *testing.T) {
	_, _, err := New(testTree(), testOptions()).Scan(context.Background(), docmodel.Kind("widget"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCleanDir(t *testing.T) {
	assert.Equal(t, ".", cleanDir(""))
	assert.Equal(t, ".", cleanDir("./"))
	assert.Equal(t, "docs", cleanDir("/docs/"))
	assert.Equal(t, "nebula/components", cleanDir(`nebula\components`))
}
