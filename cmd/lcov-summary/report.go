// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raistln/book-sharing-apk/internal/report"
	"github.com/raistln/book-sharing-apk/pkg/summary"
)

var errBelowThreshold = errors.New("coverage below threshold")

// newReportCmd creates the "report" command.
func (a *app) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [trace-file]",
		Short: "Print the coverage table",
		Long: "Report parses the trace file (coverage/lcov.info unless given) and prints " +
			"one row per category followed by a totals row.",
		Args: cobra.MaximumNArgs(1),
		RunE: a.runReport,
	}
}

// runReport parses, aggregates and prints. A missing trace file prints a
// single message and is not treated as a failure. An empty trace prints
// nothing.
func (a *app) runReport(cmd *cobra.Command, args []string) error {
	input := a.v.GetString("input")
	if len(args) > 0 {
		input = args[0]
	}

	format, err := report.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	s, err := summary.Run(ctx, summary.Config{
		Input:      input,
		Marker:     a.v.GetString("marker"),
		RootLabel:  a.v.GetString("root-label"),
		OtherLabel: a.v.GetString("other-label"),
		Logger:     a.logger,
	})
	if errors.Is(err, summary.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: %s not found\n", input)
		return nil
	}
	if err != nil {
		return err
	}

	// A trace without SF records produces no table.
	if s.Totals.Files == 0 {
		a.logger.Debug("no records in trace", zap.String("input", input))
		return nil
	}

	if err := report.Write(cmd.OutOrStdout(), format, s); err != nil {
		return err
	}

	pct := s.Totals.Percent()
	a.logger.Debug("report written",
		zap.String("input", input),
		zap.String("format", string(format)),
		zap.Float64("coverage", pct))

	if threshold := a.v.GetFloat64("fail-under"); threshold > 0 && pct < threshold {
		return fmt.Errorf("%w: %.2f%% < %.2f%%", errBelowThreshold, pct, threshold)
	}
	return nil
}
