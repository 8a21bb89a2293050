package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/yamlgrep/internal/exit"
)

type run struct {
	result *exit.Result
	stdout string
	stderr string
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func invoke(t *testing.T, cmd func(context.Context, []string, Streams) *exit.Result, stdin string, args ...string) run {
	t.Helper()
	var out, errOut bytes.Buffer
	result := cmd(context.Background(), args, Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	require.NotNil(t, result)
	result.Print()
	return run{result: result, stdout: out.String(), stderr: errOut.String()}
}

const sampleConfig = `server:
  host: localhost
  password: hunter2
users:
  - alice
  - bob
`

func TestGrepReportsMatches(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)

	r := invoke(t, Grep, "", "pass", file)

	assert.Equal(t, exit.CodeMatch, r.result.ExitCode)
	assert.Equal(t, "/server/password\t(KEY)\tpassword\n", r.stdout)
	assert.Empty(t, r.stderr)
}

func TestGrepSeveralPatternsInDocumentOrder(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)

	r := invoke(t, Grep, "", "bob", "host", "--", file)

	assert.Equal(t, exit.CodeMatch, r.result.ExitCode)
	assert.Equal(t, "/server/host\t(KEY)\thost\n/server/host\t(VAL)\tlocalhost\n/users/1\t(VAL)\tbob\n", r.stdout)
}

func TestGrepOneLinePerKey(t *testing.T) {
	t.Parallel()

	r := invoke(t, Grep, "foo: bar\n", "-k", "o", "-")

	assert.Equal(t, exit.CodeMatch, r.result.ExitCode)
	assert.Equal(t, "/foo\t(KEY)\tfoo\n", r.stdout)

	r = invoke(t, Grep, "foo: bar\n", "--color", "always", "o", "-")
	assert.Equal(t, "/foo\t(KEY)\tf\x1b[1mo\x1b[0m\x1b[1mo\x1b[0m\n", r.stdout)
}

func TestGrepNoMatch(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)

	r := invoke(t, Grep, "", "nothing-here", file)

	assert.Equal(t, exit.CodeNoMatch, r.result.ExitCode)
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr)
}

func TestGrepReadsStdin(t *testing.T) {
	t.Parallel()

	r := invoke(t, Grep, `{"user": "bob", "id": 7}`, "-e", "bob", "-")

	assert.Equal(t, exit.CodeMatch, r.result.ExitCode)
	assert.Equal(t, "/user\t(VAL)\tbob\n", r.stdout)
}

func TestGrepFlags(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "ignore case",
			args: []string{"-i", "HUNTER", file},
			want: "/server/password\t(VAL)\thunter2\n",
		},
		{
			name: "keys only",
			args: []string{"-k", "o", file},
			want: "/server/host\t(KEY)\thost\n/server/password\t(KEY)\tpassword\n",
		},
		{
			name: "values only",
			args: []string{"-v", "^l", file},
			want: "/server/host\t(VAL)\tlocalhost\n",
		},
		{
			name: "dot paths",
			args: []string{"--path-format", "dot", "alice", file},
			want: "users[0]\t(VAL)\talice\n",
		},
		{
			name: "max matches",
			args: []string{"--max-matches", "1", "-e", "s", file},
			want: "/server\t(KEY)\tserver\n",
		},
		{
			name: "json output",
			args: []string{"--output", "json", "hunter", file},
			want: `{"path":"/server/password","in":"value","text":"hunter2","matches":[{"match":"hunter","start":0,"end":6}]}` + "\n",
		},
		{
			name: "color always",
			args: []string{"--color", "always", "bob", file},
			want: "/users/1\t(VAL)\t\x1b[1mbob\x1b[0m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := invoke(t, Grep, "", tt.args...)
			assert.Equal(t, exit.CodeMatch, r.result.ExitCode, r.stderr)
			assert.Equal(t, tt.want, r.stdout)
		})
	}
}

func TestGrepErrors(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)
	broken := writeFile(t, "broken.yaml", "a: [1, 2\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid pattern", []string{"(", file}, "invalid pattern"},
		{"missing file", []string{"x", filepath.Join(t.TempDir(), "absent.yaml")}, "cannot load document"},
		{"unparsable file", []string{"x", broken}, "cannot load document"},
		{"no arguments", nil, "FILE"},
		{"only a file", []string{file}, "FILE"},
		{"exclusive targets", []string{"-k", "-v", "x", file}, "keys-only"},
		{"negative max", []string{"--max-matches=-2", "x", file}, "max-matches"},
		{"bad path format", []string{"--path-format", "xml", "x", file}, "path format"},
		{"bad output", []string{"--output", "csv", "x", file}, "output format"},
		{"bad color", []string{"--color", "rainbow", "x", file}, "color mode"},
		{"unknown flag", []string{"--bogus", "x", file}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := invoke(t, Grep, "", tt.args...)
			assert.Equal(t, exit.CodeError, r.result.ExitCode)
			assert.Empty(t, r.stdout)
			assert.True(t, strings.HasPrefix(r.stderr, "Error: "), r.stderr)
			assert.Contains(t, r.stderr, tt.wantErr)
		})
	}
}

func TestGrepHelp(t *testing.T) {
	t.Parallel()

	r := invoke(t, Grep, "", "--help")

	assert.Equal(t, exit.CodeMatch, r.result.ExitCode)
	assert.Contains(t, r.stdout, "Usage:")
	assert.Contains(t, r.stdout, "--keys-only")
}

func TestGrepDebugLogsToStderr(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)

	r := invoke(t, Grep, "", "--debug", "--max-matches", "1", "o", file)

	assert.Equal(t, exit.CodeMatch, r.result.ExitCode)
	assert.Contains(t, r.stderr, "compiled patterns")
	assert.Contains(t, r.stderr, "format=yaml")
}

func TestGrepCancelled(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	result := Grep(ctx, []string{"o", file}, Streams{In: strings.NewReader(""), Out: &out, Err: &errOut})

	assert.Equal(t, exit.CodeError, result.ExitCode)
	assert.Empty(t, out.String())
}

func TestShowSelects(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"pointer", []string{"/server/host", file}, "localhost\n"},
		{"dot", []string{"users[1]", file}, "bob\n"},
		{"pointer index as key", []string{"/users/0", file}, "alice\n"},
		{"json mapping", []string{"--format", "json", "server", file}, "{\n  \"host\": \"localhost\",\n  \"password\": \"hunter2\"\n}\n"},
		{"jsonpath stream", []string{"$.users[*]", file}, "alice\n---\nbob\n"},
		{"jsonpath json array", []string{"--format", "json", "$.users[*]", file}, "[\n  \"alice\",\n  \"bob\"\n]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := invoke(t, Show, "", tt.args...)
			assert.Equal(t, exit.CodeMatch, r.result.ExitCode, r.stderr)
			assert.Equal(t, tt.want, r.stdout)
		})
	}
}

func TestShowReadsStdin(t *testing.T) {
	t.Parallel()

	r := invoke(t, Show, `{"b": 1, "a": {"c": true}}`, "--format", "json", "/", "-")

	assert.Equal(t, exit.CodeMatch, r.result.ExitCode, r.stderr)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": {\n    \"c\": true\n  }\n}\n", r.stdout)
}

func TestShowErrors(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "config.yaml", sampleConfig)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing key", []string{"/server/port", file}, `key "port" not found at /server (available keys: "host", "password")`},
		{"index out of range", []string{"/users/5", file}, "index 5 out of range at /users (len=2)"},
		{"key into sequence", []string{"/users/first", file}, `expected sequence index at /users but got key "first"`},
		{"descend into scalar", []string{"/server/host/x", file}, "cannot descend into non-container at /server/host (type=string)"},
		{"bad escape", []string{"/a~2", file}, "invalid path"},
		{"empty jsonpath", []string{"$.nothing", file}, "no nodes selected"},
		{"bad format", []string{"--format", "toml", "/", file}, "unknown format"},
		{"wrong arity", []string{"/server"}, "accepts 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := invoke(t, Show, "", tt.args...)
			assert.Equal(t, exit.CodeError, r.result.ExitCode)
			assert.Empty(t, r.stdout)
			assert.Contains(t, r.stderr, tt.wantErr)
		})
	}
}
