// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package summary is the public entry point of lcov-summary: it parses a
// trace file and aggregates it into per-category coverage.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/raistln/book-sharing-apk/internal/aggregate"
	"github.com/raistln/book-sharing-apk/internal/lcov"
	"github.com/raistln/book-sharing-apk/pkg/types"
)

// DefaultInput is the trace path used when none is given.
const DefaultInput = "coverage/lcov.info"

// Error types for the Summary API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrNotFound      = lcov.ErrNotFound
)

// Config configures a Run.
type Config struct {
	Input      string      // Trace file path (default coverage/lcov.info)
	Marker     string      // Root marker segment (default "lib")
	RootLabel  string      // Category for files named by the marker itself (default "root")
	OtherLabel string      // Category for files outside the marker (default "other")
	Logger     *zap.Logger // Optional
}

// Run parses cfg.Input and returns its category summary. A missing input
// file returns an error wrapping ErrNotFound; malformed content returns the
// parser error and no summary.
func Run(ctx context.Context, cfg Config) (*types.Summary, error) {
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := lcov.ParseFile(cfg.Input, cfg.Logger)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return aggregate.Summarize(records, aggregate.Options{
		Marker:     cfg.Marker,
		RootLabel:  cfg.RootLabel,
		OtherLabel: cfg.OtherLabel,
		Logger:     cfg.Logger,
	}), nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}
	if cfg.Marker == "" {
		cfg.Marker = aggregate.DefaultMarker
	}
	if cfg.RootLabel == "" {
		cfg.RootLabel = aggregate.DefaultRootLabel
	}
	if cfg.OtherLabel == "" {
		cfg.OtherLabel = aggregate.DefaultOtherLabel
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateConfig rejects markers that could never match a single path
// segment.
func validateConfig(cfg Config) error {
	if strings.ContainsAny(cfg.Marker, `/\`) {
		return fmt.Errorf("Marker %q must be a single path segment", cfg.Marker)
	}
	return nil
}
