// Package report renders search runs for people and machines and delivers the
// rendered bytes to stdout, a file, or the clipboard.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/syn-chromatic/filesearch/internal/config"
	"github.com/syn-chromatic/filesearch/internal/models"
)

// Render formats run according to format (one of the config.Format* values).
func Render(run *models.SearchRun, format string) ([]byte, error) {
	switch format {
	case config.FormatText, "":
		return renderText(run), nil
	case config.FormatJSON:
		return renderJSON(run)
	case config.FormatYAML:
		return renderYAML(run)
	case config.FormatMarkdown:
		return renderMarkdown(run), nil
	case config.FormatHTML:
		return renderHTML(run)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// renderText prints one canonical path per line, nothing else.
func renderText(run *models.SearchRun) []byte {
	var b bytes.Buffer
	for _, path := range run.Files {
		b.WriteString(path)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// document is the serialized shape shared by json and yaml.
type document struct {
	ID           string               `json:"id" yaml:"id"`
	Status       string               `json:"status" yaml:"status"`
	Root         string               `json:"root" yaml:"root"`
	StartedAt    string               `json:"started_at" yaml:"started_at"`
	Duration     string               `json:"duration" yaml:"duration"`
	Filters      models.SearchFilters `json:"filters" yaml:"filters"`
	VisitedDirs  int                  `json:"visited_dirs" yaml:"visited_dirs"`
	Files        []string             `json:"files" yaml:"files"`
	Inaccessible []string             `json:"inaccessible" yaml:"inaccessible"`
}

func newDocument(run *models.SearchRun) document {
	files := run.Files
	if files == nil {
		files = []string{}
	}
	inaccessible := run.Inaccessible
	if inaccessible == nil {
		inaccessible = []string{}
	}
	return document{
		ID:           run.ID,
		Status:       run.Status(),
		Root:         run.Root,
		StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
		Duration:     run.Duration.String(),
		Filters:      run.Filters,
		VisitedDirs:  run.VisitedDirs,
		Files:        files,
		Inaccessible: inaccessible,
	}
}

func renderJSON(run *models.SearchRun) ([]byte, error) {
	data, err := json.MarshalIndent(newDocument(run), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json report: %w", err)
	}
	return append(data, '\n'), nil
}

func renderYAML(run *models.SearchRun) ([]byte, error) {
	data, err := yaml.Marshal(newDocument(run))
	if err != nil {
		return nil, fmt.Errorf("marshal yaml report: %w", err)
	}
	return data, nil
}

func renderMarkdown(run *models.SearchRun) []byte {
	var b strings.Builder

	b.WriteString("# File search report\n\n")
	fmt.Fprintf(&b, "- **Run:** `%s`\n", run.ID)
	fmt.Fprintf(&b, "- **Root:** `%s`\n", run.Root)
	fmt.Fprintf(&b, "- **Status:** %s\n", run.Status())
	fmt.Fprintf(&b, "- **Files found:** %d\n", run.FileCount())
	fmt.Fprintf(&b, "- **Directories read:** %d\n", run.VisitedDirs)
	fmt.Fprintf(&b, "- **Inaccessible paths:** %d\n", run.InaccessibleCount())
	fmt.Fprintf(&b, "- **Duration:** %s\n", run.Duration)

	if f := run.Filters; len(f.Filenames)+len(f.Extensions)+len(f.ExcludedDirs) > 0 {
		b.WriteString("\n## Filters\n\n")
		writeList(&b, "Filenames", f.Filenames)
		writeList(&b, "Extensions", f.Extensions)
		writeList(&b, "Excluded directories", f.ExcludedDirs)
	}

	b.WriteString("\n## Files\n\n")
	if len(run.Files) == 0 {
		b.WriteString("_No matching files._\n")
	}
	for _, path := range run.Files {
		fmt.Fprintf(&b, "- `%s`\n", path)
	}

	if len(run.Inaccessible) > 0 {
		b.WriteString("\n## Inaccessible paths\n\n")
		for _, path := range run.Inaccessible {
			fmt.Fprintf(&b, "- `%s`\n", path)
		}
	}

	return []byte(b.String())
}

func writeList(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "`" + v + "`"
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, strings.Join(quoted, ", "))
}

// renderHTML converts the markdown report into a standalone HTML page.
func renderHTML(run *models.SearchRun) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.New().Convert(renderMarkdown(run), &body); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>File search report %s</title>\n", run.ID)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
