// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the coverage records shared across lcov-summary
// packages.
package types

// TotalLabel names the grand-total row of a Summary.
const TotalLabel = "TOTAL"

// FileCoverage holds the line counts of one SF record in a trace file.
type FileCoverage struct {
	Path    string // Source file path as written after SF:
	Total   int    // Lines found (LF)
	Covered int    // Lines hit (LH); not clamped to Total
}

// CategorySummary holds running sums for every file in one category.
type CategorySummary struct {
	Name    string
	Files   int
	Total   int
	Covered int
}

// Add folds a file record into the category.
func (c *CategorySummary) Add(f FileCoverage) {
	c.Files++
	c.Total += f.Total
	c.Covered += f.Covered
}

// Percent returns Covered/Total as a percentage, or 0 when Total is 0.
func (c CategorySummary) Percent() float64 {
	return Percent(c.Covered, c.Total)
}

// Percent returns covered/total*100. A zero total yields exactly 0.
func Percent(covered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}

// Summary is the aggregated view of one trace file.
type Summary struct {
	Categories []CategorySummary // Sorted by Name, ascending
	Totals     CategorySummary   // Grand sums; Name is TotalLabel
}
