// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders a coverage Summary as a table.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raistln/book-sharing-apk/pkg/types"
)

// Format selects the output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
)

// Formats lists every supported format in the order shown in help text.
var Formats = []Format{FormatMarkdown, FormatText, FormatJSON, FormatYAML, FormatCSV}

var ErrUnknownFormat = errors.New("unknown report format")

// columns are the five table headers shared by every tabular format.
var columns = []string{"Category", "Files", "Total Lines", "Covered Lines", "Coverage %"}

// ParseFormat maps a case-insensitive name to a Format. "md" is accepted
// for markdown.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write renders s to w in the given format.
func Write(w io.Writer, format Format, s *types.Summary) error {
	switch format {
	case FormatMarkdown, "":
		return WriteMarkdown(w, s)
	case FormatText:
		return WriteText(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	case FormatYAML:
		return WriteYAML(w, s)
	case FormatCSV:
		return WriteCSV(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// formatPercent renders a percentage with two decimals and a % suffix.
func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// cells returns the five column values of one row.
func cells(c types.CategorySummary) []string {
	return []string{
		c.Name,
		fmt.Sprintf("%d", c.Files),
		fmt.Sprintf("%d", c.Total),
		fmt.Sprintf("%d", c.Covered),
		formatPercent(c.Percent()),
	}
}
