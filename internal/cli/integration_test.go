package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstream/internal/cli"
	"github.com/yaklabco/mdstream/pkg/reporter"
)

// execute runs the root command with args, ignoring user and project config.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-config", "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_Tokens(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "[a](b.md) c")

	tests := []struct {
		name         string
		args         []string
		wantContains []string
		wantMissing  []string
	}{
		{
			name:         "text",
			args:         []string{"tokens", path},
			wantContains: []string{"MarkdownLink", `"[a](b.md)"`, "1 file decoded, 3 tokens, 1 reference"},
		},
		{
			name:         "tree",
			args:         []string{"tokens", "--tree", path},
			wantContains: []string{"MarkdownLink", "LeftBracket", "RightParenthesis"},
		},
		{
			name:         "simple stage",
			args:         []string{"tokens", "--stage", "simple", path},
			wantContains: []string{"LeftBracket", "Word"},
			wantMissing:  []string{"MarkdownLink"},
		},
		{
			name:         "no summary",
			args:         []string{"tokens", "--no-summary", path},
			wantContains: []string{"MarkdownLink"},
			wantMissing:  []string{"decoded,"},
		},
		{
			name:         "table",
			args:         []string{"tokens", "--format", "table", path},
			wantContains: []string{"KIND", "MarkdownLink"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, "", testCase.args...)
			require.NoError(t, err)
			for _, want := range testCase.wantContains {
				assert.Contains(t, stdout, want)
			}
			for _, missing := range testCase.wantMissing {
				assert.NotContains(t, stdout, missing)
			}
		})
	}
}

func TestIntegration_TokensJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "[a](b.md) c")

	stdout, _, err := execute(t, "", "tokens", "--format", "json", "--compact", path)
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Files, 1)
	require.Len(t, out.Files[0].Tokens, 3)
	assert.Equal(t, "MarkdownLink", out.Files[0].Tokens[0].Kind)
	assert.Equal(t, 1, out.Summary.FilesDecoded)
}

func TestIntegration_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "#file:a.md /explain", "tokens", "--stage", "prompt", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "PromptVariableWithData")
	assert.Contains(t, stdout, "PromptSlashCommand")
	assert.Contains(t, stdout, "1 file decoded")
}

func TestIntegration_Refs(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "[a](b.md) ![i](https://example.com/c.png)\n")

	stdout, _, err := execute(t, "", "refs", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "b.md")
	assert.Contains(t, stdout, "https://example.com/c.png")
	assert.Contains(t, stdout, "2 references")

	stdout, _, err = execute(t, "", "refs", "--kind", "image", path)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "b.md")
	assert.Contains(t, stdout, "c.png")
	assert.Contains(t, stdout, "1 reference")
}

func TestIntegration_FrontMatter(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "---\ntitle: Hello\n---\nbody\n")

	stdout, _, err := execute(t, "", "frontmatter", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "title: Hello")
}

func TestIntegration_Extensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "alpha")
	writeFile(t, dir, "notes/b.txt", "beta")

	stdout, _, err := execute(t, "", "tokens", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "a.md")
	assert.NotContains(t, stdout, "b.txt")

	stdout, _, err = execute(t, "", "tokens", "--ext", ".txt", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "b.txt")
	assert.NotContains(t, stdout, "a.md")
}

func TestIntegration_OutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "[a](b.md)")
	report := filepath.Join(dir, "refs.json")

	stdout, _, err := execute(t, "", "refs", "--format", "json", "--output", report, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(report)
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Files, 1)
	require.Len(t, out.Files[0].References, 1)
	assert.Equal(t, "b.md", out.Files[0].References[0].Target)

	_, _, err = execute(t, "", "refs", "--output", filepath.Join(dir, "missing", "out.txt"), path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_Stats(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "one two")

	_, stderr, err := execute(t, "", "tokens", "--stats", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Summary")
	assert.Contains(t, stderr, "Word")
}

func TestIntegration_Errors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "text")

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "unknown stage", args: []string{"tokens", "--stage", "html", path}, wantCode: cli.ExitConfigError},
		{name: "unknown symbol", args: []string{"tokens", "--symbols", "Bogus", path}, wantCode: cli.ExitConfigError},
		{name: "unknown format", args: []string{"tokens", "--format", "xml", path}, wantCode: cli.ExitConfigError},
		{name: "missing path", args: []string{"tokens", filepath.Join(filepath.Dir(path), "missing.md")}, wantCode: cli.ExitIOError},
		{name: "stdin with paths", args: []string{"tokens", "-", path}, wantCode: cli.ExitInvalidUsage},
		{name: "unknown ref kind", args: []string{"refs", "--kind", "footnote", path}, wantCode: cli.ExitInvalidUsage},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", testCase.args...)
			require.Error(t, err)
			assert.Equal(t, testCase.wantCode, cli.ExitCodeFromError(err))
		})
	}
}

func TestIntegration_Config(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# effective mdstream configuration")
	assert.Contains(t, stdout, "chunk_size:")

	explicit := writeFile(t, t.TempDir(), "custom.yml", "stage: prompt\n")
	stdout, _, err = execute(t, "", "--config", explicit, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stage: prompt")
	assert.Contains(t, stdout, "loaded from: "+explicit)

	stdout, _, err = execute(t, "", "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MDSTREAM_STAGE")
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "test-version")
	assert.Contains(t, stdout, "test-commit")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Available Commands:")
	assert.Contains(t, stdout, "tokens")
	assert.Contains(t, stdout, "--no-config")

	stdout, _, err = execute(t, "", "tokens", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Examples:")
	assert.Contains(t, stdout, "--tree")
}
