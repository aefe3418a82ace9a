// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/raistln/book-sharing-apk/pkg/types"
)

// Document is the machine-readable form of a Summary.
type Document struct {
	Categories []Row `json:"categories" yaml:"categories"`
	Total      Row   `json:"total" yaml:"total"`
}

// Row is one category (or the totals) in a Document.
type Row struct {
	Category        string  `json:"category" yaml:"category"`
	Files           int     `json:"files" yaml:"files"`
	TotalLines      int     `json:"total_lines" yaml:"total_lines"`
	CoveredLines    int     `json:"covered_lines" yaml:"covered_lines"`
	CoveragePercent float64 `json:"coverage_percent" yaml:"coverage_percent"`
}

// NewDocument converts s. Percentages are rounded to two decimals to match
// the tabular formats.
func NewDocument(s *types.Summary) Document {
	doc := Document{
		Categories: make([]Row, 0, len(s.Categories)),
		Total:      newRow(s.Totals),
	}
	doc.Total.Category = types.TotalLabel
	for _, c := range s.Categories {
		doc.Categories = append(doc.Categories, newRow(c))
	}
	return doc
}

func newRow(c types.CategorySummary) Row {
	return Row{
		Category:        c.Name,
		Files:           c.Files,
		TotalLines:      c.Total,
		CoveredLines:    c.Covered,
		CoveragePercent: math.Round(c.Percent()*100) / 100,
	}
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s *types.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteYAML writes the summary as YAML.
func WriteYAML(w io.Writer, s *types.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteCSV writes a header row, one row per category and a TOTAL row.
func WriteCSV(w io.Writer, s *types.Summary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range s.Categories {
		if err := writer.Write(cells(c)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	totals := cells(s.Totals)
	totals[0] = types.TotalLabel
	if err := writer.Write(totals); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
