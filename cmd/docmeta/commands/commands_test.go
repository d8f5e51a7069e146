package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docmeta/internal/config"
	derrors "git.home.luguber.info/inful/docmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/docmeta/internal/pipeline"
	"git.home.luguber.info/inful/docmeta/internal/searchindex"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"nebula/components/Alert/metadata.json":  `{"name":"Alert","category":"Feedback","description":"Shows an alert message"}`,
		"nebula/components/Alert/README.md":      "# Alert\n",
		"nebula/components/Alert/Alert.tsx":      "export const Alert = () => null;\n",
		"nebula/components/Alert/Alert.test.tsx": "test('renders', () => {});\n",
		"nebula/components/Tabs/README.md":       "# Tabs\n\nSwitch between views.\n",
		"nebula/components/Tabs/Tabs.tsx":        "export const Tabs = () => null;\n",
		"docs/milestone-1/README.md":             "# Milestone 1\n",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("docmeta"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, kctx
}

func TestCLI_BuildIsDefault(t *testing.T) {
	root := t.TempDir()
	_, kctx := parse(t, "--root", root)
	assert.Equal(t, "build", kctx.Command())

	cli, kctx := parse(t, "--root", root, "build", "--write-back", "--metrics-file", "m.prom")
	assert.Equal(t, "build", kctx.Command())
	assert.True(t, cli.Build.WriteBack)
	assert.Equal(t, "m.prom", cli.Build.MetricsFile)
}

func TestCLI_SearchArgs(t *testing.T) {
	cli, kctx := parse(t, "search", "alert", "--category", "Feedback", "-n", "3")
	assert.Equal(t, "search <query>", kctx.Command())
	assert.Equal(t, "alert", cli.Search.Query)
	assert.Equal(t, "Feedback", cli.Search.Category)
	assert.Equal(t, 3, cli.Search.Limit)
}

func TestCLI_ConfigPath(t *testing.T) {
	cli := &CLI{Root: "/project"}
	p, required := cli.ConfigPath()
	assert.Equal(t, filepath.Join("/project", config.DefaultFile), p)
	assert.False(t, required)

	cli.Config = "custom.yaml"
	p, required = cli.ConfigPath()
	assert.Equal(t, "custom.yaml", p)
	assert.True(t, required)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	cli := &CLI{Root: t.TempDir()}
	cli.Config = filepath.Join(cli.Root, "nope.yaml")

	_, err := cli.LoadConfig()
	require.Error(t, err)
	assert.Equal(t, 7, derrors.NewCLIErrorAdapter(false, discardLogger()).ExitCodeFor(err))
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cli := &CLI{Root: t.TempDir()}
	cfg, err := cli.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "public/docs", cfg.Output.Directory)
}

func TestConfigureLogging(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Logging.Format = config.LogFormatJSON
	cfg.Logging.Level = config.LogLevelWarn
	logger := ConfigureLogging(cfg, false, &buf)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = ConfigureLogging(cfg, true, &buf)
	logger.Debug("debug on")
	assert.Contains(t, buf.String(), "debug on")
}

func TestRunBuildThenSearch(t *testing.T) {
	root := writeProject(t)
	cfg := config.Default()
	metricsFile := filepath.Join(t.TempDir(), "docmeta.prom")

	res, err := RunBuild(context.Background(), cfg, root, metricsFile, discardLogger())
	require.NoError(t, err)
	assert.Len(t, res.Root.Components, 2)
	assert.NotEqual(t, pipeline.OutcomeFailed, res.Report.Outcome)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "docmeta_stage_duration_seconds")

	var out bytes.Buffer
	metaPath := cfg.MetadataPath(root)
	require.NoError(t, RunSearch(&out, metaPath, searchindex.Query{Text: "alert"}))
	assert.Contains(t, out.String(), "/docs/components/alert.md")
	assert.NotContains(t, out.String(), "/docs/components/tabs.md")

	out.Reset()
	require.NoError(t, RunSearch(&out, metaPath, searchindex.Query{Text: "zebra"}))
	assert.Contains(t, out.String(), "No matches.")
}

func TestRunSearch_Errors(t *testing.T) {
	adapter := derrors.NewCLIErrorAdapter(false, discardLogger())

	err := RunSearch(io.Discard, filepath.Join(t.TempDir(), "metadata.json"), searchindex.Query{Text: "alert"})
	require.Error(t, err)
	assert.Equal(t, 4, adapter.ExitCodeFor(err))

	root := writeProject(t)
	cfg := config.Default()
	_, err = RunBuild(context.Background(), cfg, root, "", discardLogger())
	require.NoError(t, err)
	err = RunSearch(io.Discard, cfg.MetadataPath(root), searchindex.Query{Text: "   "})
	require.Error(t, err)
	assert.Equal(t, 2, adapter.ExitCodeFor(err))
}

func TestRunInit(t *testing.T) {
	var out bytes.Buffer
	g := &Global{Logger: discardLogger(), Out: &out}
	path := filepath.Join(t.TempDir(), config.DefaultFile)

	require.NoError(t, RunInit(g, path, false))
	assert.Contains(t, out.String(), path)

	cfg, found, err := config.Load(path, true)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Overview", cfg.Sources.ProjectFiles[0].Name)

	err = RunInit(g, path, false)
	require.Error(t, err)
	assert.Equal(t, 7, derrors.NewCLIErrorAdapter(false, discardLogger()).ExitCodeFor(err))
	require.NoError(t, RunInit(g, path, true))
}
