package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darianrosebrook/portfolio-sub007/pkg/project"
	"github.com/darianrosebrook/portfolio-sub007/pkg/validate"
)

const buttonTokens = `{
  "button": {
    "$type": "dimension",
    "padding": {"$value": "8px"},
    "gap": {"$value": "{button.padding}"},
    "color": {"$type": "color", "$value": "#3366cc"}
  }
}`

const brokenTokens = `{
  "button": {
    "$type": "dimension",
    "gap": {"$value": "{button.missing}"}
  }
}`

// execute runs the root command in an isolated working directory with
// caching disabled.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("TOKENS_CONFIG_FILE", "")
	t.Setenv("TOKENS_CACHE_BACKEND", "none")

	var out, errOut bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeTokens(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitIssues},
		{"issues", issuesFound(), ExitIssues},
		{"usage", usageError(errors.New("bad flag")), ExitUsage},
		{"canceled", context.Canceled, ExitInterrupted},
		{"wrapped canceled", usageError(context.Canceled), ExitInterrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}

	var exit *ExitError
	require.ErrorAs(t, issuesFound(), &exit)
	assert.True(t, exit.Silent())
}

func TestParseEnum(t *testing.T) {
	e, err := parseEnum("size=small|medium|large:default=medium")
	require.NoError(t, err)
	assert.Equal(t, project.Enum{Name: "size", Allowed: []string{"small", "medium", "large"}, Default: "medium"}, e)

	e, err = parseEnum("tone = calm | loud")
	require.NoError(t, err)
	assert.Equal(t, "tone", e.Name)
	assert.Equal(t, []string{"calm", "loud"}, e.Allowed)
	assert.Equal(t, "calm", e.Default)

	for _, bad := range []string{"size", "=a|b", "size=", "size=|"} {
		_, err := parseEnum(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments("--set", []string{"btn-radius=0", " btn-gap =4px", "btn-empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"btn-radius": "0", "btn-gap": "4px", "btn-empty": ""}, got)

	got, err = parseAssignments("--set", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseAssignments("--select", []string{"size"})
	assert.ErrorContains(t, err, "--select")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeTokens(t, dir, "good/tokens.json", buttonTokens)
	bad := writeTokens(t, dir, "bad/tokens.json", brokenTokens)

	stdout, stderr, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No issues found")

	stdout, _, err = execute(t, "validate", bad)
	assert.Equal(t, ExitIssues, ExitCode(err))
	assert.Contains(t, stdout, "button.gap")
	assert.True(t, strings.HasPrefix(stdout, "- ["))

	_, _, err = execute(t, "validate", filepath.Join(dir, "missing"))
	assert.Equal(t, ExitUsage, ExitCode(err))

	_, _, err = execute(t, "validate", "--format", "xml", good)
	assert.Equal(t, ExitUsage, ExitCode(err))

	_, _, err = execute(t, "validate")
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestValidateCommandWarnings(t *testing.T) {
	path := writeTokens(t, t.TempDir(), "tokens.json", `{"c": {"$type": "color", "$value": "not a color"}}`)

	stdout, stderr, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "- [")
	assert.Contains(t, stderr, "1 warning(s)")

	_, _, err = execute(t, "validate", "--fail-on-warnings", path)
	assert.Equal(t, ExitIssues, ExitCode(err))

	stdout, _, err = execute(t, "validate", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--fail-on-warnings to exit 1")
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tokens")

	stdout, _, err = execute(t, "completion", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Print a completion script")

	_, _, err = execute(t, "completion", "tcsh")
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestValidateCommandJSON(t *testing.T) {
	bad := writeTokens(t, t.TempDir(), "tokens.json", brokenTokens)

	stdout, _, err := execute(t, "validate", "--format", "json", bad)
	assert.Equal(t, ExitIssues, ExitCode(err))

	var report validate.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.NotEmpty(t, report.Errors)
	assert.Equal(t, "button.gap", report.Errors[0].Path)
}

func TestResolveCommand(t *testing.T) {
	path := writeTokens(t, t.TempDir(), "tokens.json", buttonTokens)

	stdout, _, err := execute(t, "resolve", "--token", "button.gap", "--trace", path)
	require.NoError(t, err)
	assert.Equal(t, "button.gap = 8px\n  button.gap → button.padding\n", stdout)

	stdout, _, err = execute(t, "resolve", "--format", "json", path)
	require.NoError(t, err)
	var doc map[string]resolvedToken
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Len(t, doc, 3)
	assert.Equal(t, map[string]any{"value": 8.0, "unit": "px"}, doc["button.gap"].Value)
	assert.Empty(t, doc["button.gap"].Trail)

	_, stderr, err := execute(t, "resolve", "--token", "button.nope", path)
	assert.Equal(t, ExitIssues, ExitCode(err))
	assert.Contains(t, stderr, "button.nope")

	_, _, err = execute(t, "resolve", "--token", "button..gap", path)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestProjectCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeTokens(t, dir, "tokens.json", buttonTokens)

	stdout, _, err := execute(t, "project", "--namespace", "btn", "--root", "button", "--selector", ".btn", path)
	require.NoError(t, err)
	assert.Equal(t, ".btn {\n  --btn-color: #3366cc;\n  --btn-gap: 8px;\n  --btn-padding: 8px;\n}\n", stdout)

	out := filepath.Join(dir, "button.json")
	_, _, err = execute(t, "project", "--namespace", "btn", "--root", "button",
		"--set", "btn-gap=2px", "--format", "json", "-o", out, path)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var p project.Projection
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "2px", p.Values["btn-gap"])
	assert.Equal(t, "8px", p.Values["btn-padding"])

	_, _, err = execute(t, "project", path)
	assert.Equal(t, ExitUsage, ExitCode(err))

	_, _, err = execute(t, "project", "--namespace", "btn", "--enum", "size", path)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"color": {"$type": "color", "primary": {"$value": "#3366CC"}}}`
	path := writeTokens(t, dir, "legacy.tokens.json", legacy)

	stdout, _, err := execute(t, "migrate", "--dry-run", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Would migrate 1 of 1 file(s)")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, legacy, string(data))

	writeTokens(t, dir, "broken.tokens.json", `{"color": `)
	stdout, _, err = execute(t, "migrate", dir)
	assert.Equal(t, ExitIssues, ExitCode(err))
	assert.Contains(t, stdout, "1 succeeded, 1 failed")

	_, _, err = execute(t, "migrate")
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestGraphCommand(t *testing.T) {
	path := writeTokens(t, t.TempDir(), "tokens.json", buttonTokens)

	stdout, _, err := execute(t, "graph", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "digraph tokens {"))
	assert.Contains(t, stdout, "button.gap")

	_, _, err = execute(t, "graph", "--format", "png", path)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestCachePathCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	t.Setenv("TOKENS_CACHE_DIR", dir)

	stdout, _, err := execute(t, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, dir+"\n", stdout)

	// Clearing is a no-op for non-file backends.
	stdout, _, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "nothing to clear")
}

func TestServeArgs(t *testing.T) {
	_, _, err := execute(t, "serve")
	assert.Equal(t, ExitUsage, ExitCode(err))

	_, _, err = execute(t, "serve", "--mongo", "tokens/")
	assert.Equal(t, ExitUsage, ExitCode(err))
}
