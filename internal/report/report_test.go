package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/yamlgrep/internal/document"
	"github.com/jacoelho/yamlgrep/internal/pattern"
	"github.com/jacoelho/yamlgrep/internal/pointer"
	"github.com/jacoelho/yamlgrep/internal/search"
)

func parse(t *testing.T, input string) *document.Node {
	t.Helper()

	root, _, err := document.Parse([]byte(input), document.FormatYAML)
	require.NoError(t, err)
	return root
}

func TestReportText(t *testing.T) {
	t.Parallel()

	root := parse(t, "server:\n  host: example.com\n  ports: [80, 8080]\n")
	set := pattern.MustCompile(pattern.Options{}, `ho`, `80`)

	var out bytes.Buffer
	r := &Reporter{Writer: &out}
	n, err := r.Report(search.Search(root, set, search.Options{}))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	want := strings.Join([]string{
		"/server/host\t(KEY)\thost",
		"/server/ports/0\t(VAL)\t80",
		"/server/ports/1\t(VAL)\t8080",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestReportDotPaths(t *testing.T) {
	t.Parallel()

	root := parse(t, "a:\n  - b: hit\n")
	set := pattern.MustCompile(pattern.Options{Target: pattern.TargetValues}, `hit`)

	var out bytes.Buffer
	r := &Reporter{Writer: &out, PathFormat: pointer.FormatDot}
	_, err := r.Report(search.Search(root, set, search.Options{}))
	require.NoError(t, err)
	assert.Equal(t, "a[0].b\t(VAL)\thit\n", out.String())
}

func TestReportHighlight(t *testing.T) {
	t.Parallel()

	root := document.NewMapping(document.Pair{Key: "k", Value: document.NewString("xabcx")})
	set := pattern.MustCompile(pattern.Options{CaseInsensitive: true, Target: pattern.TargetValues}, `ABC`)

	var out bytes.Buffer
	r := &Reporter{Writer: &out, Color: true}
	_, err := r.Report(search.Search(root, set, search.Options{}))
	require.NoError(t, err)
	assert.Equal(t, "/k\t(VAL)\tx\x1b[1mabc\x1b[0mx\n", out.String())

	out.Reset()
	r.Color = false
	_, err = r.Report(search.Search(root, set, search.Options{}))
	require.NoError(t, err)
	assert.Equal(t, "/k\t(VAL)\txabcx\n", out.String())
}

func TestReportHighlightsEveryOccurrence(t *testing.T) {
	t.Parallel()

	root := parse(t, "foo: a-b-a\n")
	set := pattern.MustCompile(pattern.Options{Target: pattern.TargetValues}, `a`)

	var out bytes.Buffer
	r := &Reporter{Writer: &out, Color: true}
	n, err := r.Report(search.Search(root, set, search.Options{}))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "/foo\t(VAL)\t\x1b[1ma\x1b[0m-b-\x1b[1ma\x1b[0m\n", out.String())
}

func TestReportMaxMatchesStopsTraversal(t *testing.T) {
	t.Parallel()

	root := parse(t, "a: m\nb: m\nc: m\nd: m\ne: m\n")
	set := pattern.MustCompile(pattern.Options{Target: pattern.TargetValues}, `m`)

	total := 0
	for range search.Walk(root) {
		total++
	}

	visited := 0
	seq := search.Search(root, set, search.Options{
		Visit: func(pointer.Path, *document.Node) { visited++ },
	})

	var out bytes.Buffer
	r := &Reporter{Writer: &out, MaxMatches: 2}
	n, err := r.Report(seq)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, "/a\t(VAL)\tm\n/b\t(VAL)\tm\n", out.String())
	assert.Less(t, visited, total)
}

func TestReportUnlimited(t *testing.T) {
	t.Parallel()

	root := parse(t, "[m, m, m]")
	set := pattern.MustCompile(pattern.Options{}, `m`)

	r := &Reporter{Writer: &bytes.Buffer{}}
	n, err := r.Report(search.Search(root, set, search.Options{}))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestReportNoMatches(t *testing.T) {
	t.Parallel()

	root := parse(t, "a: b\n")
	set := pattern.MustCompile(pattern.Options{}, `zzz`)

	var out bytes.Buffer
	r := &Reporter{Writer: &out}
	n, err := r.Report(search.Search(root, set, search.Options{}))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, out.String())
}

func TestReportJSON(t *testing.T) {
	t.Parallel()

	root := parse(t, "name: <secret> secret\n")
	set := pattern.MustCompile(pattern.Options{Target: pattern.TargetValues}, `secret`)

	var out bytes.Buffer
	r := &Reporter{Writer: &out, Output: FormatJSON, Color: true}
	_, err := r.Report(search.Search(root, set, search.Options{}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, map[string]any{
		"path": "/name",
		"in":   "value",
		"text": "<secret> secret",
		"matches": []any{
			map[string]any{"match": "secret", "start": float64(1), "end": float64(7)},
			map[string]any{"match": "secret", "start": float64(9), "end": float64(15)},
		},
	}, got)
	assert.NotContains(t, out.String(), "\x1b[")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReportWriteError(t *testing.T) {
	t.Parallel()

	root := parse(t, "a: b\n")
	set := pattern.MustCompile(pattern.Options{}, `a`)

	r := &Reporter{Writer: failingWriter{}}
	_, err := r.Report(search.Search(root, set, search.Options{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseOutputFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseOutputFormat("xml")
	require.Error(t, err)
}
