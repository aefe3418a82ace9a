// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command lcov-summary prints per-directory line coverage from an LCOV
// trace file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/raistln/book-sharing-apk/internal/aggregate"
	"github.com/raistln/book-sharing-apk/internal/report"
	"github.com/raistln/book-sharing-apk/pkg/summary"
)

const version = "0.1.0"

// app holds state shared by the command tree.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command with no
// subcommand behaves like "report".
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "lcov-summary [trace-file]",
		Short: "Summarize LCOV line coverage per directory",
		Long: "lcov-summary reads an LCOV trace file, groups files by the directory that " +
			"follows the root marker (lib by default) and prints a coverage table.",
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runReport,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./.lcov-summary.yaml)")
	flags.String("input", summary.DefaultInput, "Trace file to read when no argument is given")
	flags.String("marker", aggregate.DefaultMarker, "Path segment whose successor names the category")
	flags.String("root-label", aggregate.DefaultRootLabel, "Category for files named by the marker itself")
	flags.String("other-label", aggregate.DefaultOtherLabel, "Category for files outside the marker")
	flags.StringP("format", "f", string(report.FormatMarkdown), "Output format: "+formatNames())
	flags.Float64("fail-under", 0, "Exit non-zero when total coverage is below this percentage")
	flags.BoolP("verbose", "v", false, "Enable debug logging on stderr")

	// Bind flags to viper.
	for _, name := range []string{"input", "marker", "root-label", "other-label", "format", "fail-under", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	// Env vars: LCOV_SUMMARY_FORMAT, LCOV_SUMMARY_FAIL_UNDER, etc.
	a.v.SetEnvPrefix("LCOV_SUMMARY")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(a.newReportCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup reads the optional config file and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName(".lcov-summary")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	a.logger = newLogger(cmd.ErrOrStderr(), a.v.GetBool("verbose"))
	return nil
}

// newLogger returns a console logger on w. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print lcov-summary version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lcov-summary %s\n", version)
		},
	}
}

func formatNames() string {
	names := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
