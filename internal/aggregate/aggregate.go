// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package aggregate groups per-file coverage records into categories named
// after the directory that follows a root marker segment.
package aggregate

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/raistln/book-sharing-apk/pkg/types"
)

const (
	DefaultMarker     = "lib"
	DefaultRootLabel  = "root"
	DefaultOtherLabel = "other"
)

// Options configures category derivation. Zero fields take the defaults.
type Options struct {
	Marker     string      // Segment whose successor names the category (default "lib")
	RootLabel  string      // Category when the marker is the last segment (default "root")
	OtherLabel string      // Category when the marker is absent (default "other")
	Logger     *zap.Logger // Nil disables logging
}

func (o Options) withDefaults() Options {
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if o.RootLabel == "" {
		o.RootLabel = DefaultRootLabel
	}
	if o.OtherLabel == "" {
		o.OtherLabel = DefaultOtherLabel
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Category returns the category for path. Backslashes are treated as path
// separators, so Windows and POSIX paths land in the same category.
func Category(path string, opts Options) string {
	opts = opts.withDefaults()
	return category(path, opts)
}

func category(path string, opts Options) string {
	parts := strings.Split(strings.ReplaceAll(path, `\`, "/"), "/")
	for i, part := range parts {
		if part != opts.Marker {
			continue
		}
		if i+1 < len(parts) {
			return parts[i+1]
		}
		return opts.RootLabel
	}
	return opts.OtherLabel
}

// Summarize folds records into per-category sums and grand totals.
// Categories come back sorted by name.
func Summarize(records map[string]types.FileCoverage, opts Options) *types.Summary {
	opts = opts.withDefaults()

	byName := make(map[string]*types.CategorySummary)
	for path, rec := range records {
		name := category(path, opts)
		cs, ok := byName[name]
		if !ok {
			cs = &types.CategorySummary{Name: name}
			byName[name] = cs
		}
		cs.Add(rec)
	}

	summary := &types.Summary{
		Categories: make([]types.CategorySummary, 0, len(byName)),
		Totals:     types.CategorySummary{Name: types.TotalLabel},
	}
	for _, cs := range byName {
		summary.Categories = append(summary.Categories, *cs)
		summary.Totals.Files += cs.Files
		summary.Totals.Total += cs.Total
		summary.Totals.Covered += cs.Covered
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Name < summary.Categories[j].Name
	})

	opts.Logger.Debug("aggregated coverage",
		zap.Int("files", summary.Totals.Files),
		zap.Int("categories", len(summary.Categories)))

	return summary
}
