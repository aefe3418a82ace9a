// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package lcov reads the SF/LF/LH subset of an LCOV trace file.
package lcov

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/raistln/book-sharing-apk/pkg/types"
)

// Record prefixes read from the trace. Every other line is skipped.
const (
	prefixSourceFile = "SF:"
	prefixLinesFound = "LF:"
	prefixLinesHit   = "LH:"
)

var (
	ErrNotFound = errors.New("trace file not found")
	ErrNoRecord = errors.New("line count before any SF record")
	ErrBadCount = errors.New("invalid line count")
)

// ParseFile opens path and parses it with Parse. A missing file yields an
// error wrapping ErrNotFound.
func ParseFile(path string, logger *zap.Logger) (map[string]types.FileCoverage, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// Parse reads a trace and returns one FileCoverage per distinct SF path.
// An SF line starts a record with zeroed counters; a repeated path replaces
// the earlier record. LF and LH set the counters of the current record.
// Any malformed count aborts the parse with no partial result.
func Parse(r io.Reader, logger *zap.Logger) (map[string]types.FileCoverage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	records := make(map[string]types.FileCoverage)
	var current *types.FileCoverage
	lineNo := 0

	br := bufio.NewReader(r)
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("reading trace: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		lineNo++
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, prefixSourceFile):
			if current != nil {
				records[current.Path] = *current
			}
			current = &types.FileCoverage{Path: line[len(prefixSourceFile):]}

		case strings.HasPrefix(line, prefixLinesFound), strings.HasPrefix(line, prefixLinesHit):
			if current == nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrNoRecord)
			}
			n, err := parseCount(line[3:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if line[:3] == prefixLinesFound {
				current.Total = n
			} else {
				current.Covered = n
			}
		}

		if readErr == io.EOF {
			break
		}
	}
	if current != nil {
		records[current.Path] = *current
	}

	for path, rec := range records {
		if rec.Covered > rec.Total {
			logger.Warn("covered lines exceed total lines",
				zap.String("file", path),
				zap.Int("total", rec.Total),
				zap.Int("covered", rec.Covered))
		}
	}
	logger.Debug("parsed trace", zap.Int("records", len(records)), zap.Int("lines", lineNo))

	return records, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadCount, s)
	}
	return n, nil
}
