package formatter

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"stayscraper/internal/scraper"
)

// Formats lists the supported output formats.
var Formats = []string{"html", "text", "markdown", "json", "csv"}

// Valid reports whether format is one of Formats.
func Valid(format string) bool {
	return slices.Contains(Formats, format)
}

func Format(content scraper.Content, format string) (string, error) {
	switch format {
	case "html":
		return content.ToHTML()
	case "text":
		return content.ToText()
	case "markdown":
		return content.ToMarkdown()
	case "csv":
		return content.ToCSV()
	case "json":
		b, err := content.ToJSON()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// InferFromExtension maps an output file name to a format, or "" when the
// extension is unknown.
func InferFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".html", ".htm":
		return "html"
	case ".txt":
		return "text"
	case ".csv":
		return "csv"
	default:
		return ""
	}
}
