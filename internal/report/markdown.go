// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/raistln/book-sharing-apk/pkg/types"
)

// WriteMarkdown writes the summary as a markdown table: one row per
// category in name order, then a bold totals row.
func WriteMarkdown(w io.Writer, s *types.Summary) error {
	var buf strings.Builder

	buf.WriteString(markdownRow(columns))
	buf.WriteString("| --- | --- | --- | --- | --- |\n")

	for _, c := range s.Categories {
		buf.WriteString(markdownRow(cells(c)))
	}

	totals := cells(s.Totals)
	totals[0] = types.TotalLabel
	for i, v := range totals {
		totals[i] = "**" + v + "**"
	}
	buf.WriteString(markdownRow(totals))

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

func markdownRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |\n"
}
