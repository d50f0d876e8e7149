package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/syn-chromatic/filesearch/internal/config"
	"github.com/syn-chromatic/filesearch/internal/models"
)

func sampleRun() *models.SearchRun {
	return &models.SearchRun{
		ID:        "3f2a9c1e-0000-4000-8000-000000000001",
		Root:      "/data",
		StartedAt: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Duration:  1200 * time.Millisecond,
		Filters: models.SearchFilters{
			Extensions:   []string{"txt"},
			ExcludedDirs: []string{"/data/skip"},
		},
		Files:        []string{"/data/a.txt", "/data/sub/b.txt"},
		Inaccessible: []string{"/data/locked"},
		VisitedDirs:  3,
		RootResolved: true,
	}
}

func TestRender_Text(t *testing.T) {
	out, err := Render(sampleRun(), config.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "/data/a.txt\n/data/sub/b.txt\n", string(out))

	out, err = Render(&models.SearchRun{}, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRender_JSON(t *testing.T) {
	out, err := Render(sampleRun(), config.FormatJSON)
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "/data", doc.Root)
	assert.Equal(t, models.RunStatusPartial, doc.Status)
	assert.Equal(t, "2026-10-18T09:30:00Z", doc.StartedAt)
	assert.Equal(t, "1.2s", doc.Duration)
	assert.Equal(t, []string{"/data/a.txt", "/data/sub/b.txt"}, doc.Files)
	assert.Equal(t, []string{"/data/locked"}, doc.Inaccessible)
	assert.Equal(t, []string{"txt"}, doc.Filters.Extensions)
}

func TestRender_JSONEmptyListsAreArrays(t *testing.T) {
	out, err := Render(&models.SearchRun{RootResolved: true, VisitedDirs: 1}, config.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"files": []`)
	assert.Contains(t, string(out), `"inaccessible": []`)
}

func TestRender_YAML(t *testing.T) {
	out, err := Render(sampleRun(), config.FormatYAML)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "/data", doc["root"])
	assert.Equal(t, 3, doc["visited_dirs"])
	assert.Len(t, doc["files"], 2)
}

func TestRender_Markdown(t *testing.T) {
	out, err := Render(sampleRun(), config.FormatMarkdown)
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# File search report\n"))
	assert.Contains(t, md, "- **Files found:** 2")
	assert.Contains(t, md, "- **Extensions:** `txt`")
	assert.Contains(t, md, "- `/data/sub/b.txt`")
	assert.Contains(t, md, "## Inaccessible paths")
	assert.NotContains(t, md, "**Filenames:**")
}

func TestRender_MarkdownNoFiles(t *testing.T) {
	out, err := Render(&models.SearchRun{RootResolved: true}, config.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(out), "_No matching files._")
	assert.NotContains(t, string(out), "## Filters")
	assert.NotContains(t, string(out), "## Inaccessible paths")
}

func TestRender_HTML(t *testing.T) {
	out, err := Render(sampleRun(), config.FormatHTML)
	require.NoError(t, err)

	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<h1>File search report</h1>")
	assert.Contains(t, html, "<code>/data/a.txt</code>")
	assert.Contains(t, html, "<h2>Inaccessible paths</h2>")
	assert.True(t, strings.HasSuffix(html, "</html>\n"))
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(sampleRun(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}
