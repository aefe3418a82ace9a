// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/raistln/book-sharing-apk/internal/aggregate"
	"github.com/raistln/book-sharing-apk/internal/lcov"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// execute runs the command tree with args and returns stdout, stderr and
// the error from Execute.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReport_SingleRecord(t *testing.T) {
	path := writeFile(t, "lcov.info", "SF:lib/ui/screens/home/home_shell.dart\nLF:100\nLH:80\nend_of_record\n")

	for _, args := range [][]string{{path}, {"report", path}} {
		stdout, stderr, err := execute(t, args...)
		require.NoError(t, err)
		assert.Empty(t, stderr)
		assert.Equal(t,
			"| Category | Files | Total Lines | Covered Lines | Coverage % |\n"+
				"| --- | --- | --- | --- | --- |\n"+
				"| ui | 1 | 100 | 80 | 80.00% |\n"+
				"| **TOTAL** | **1** | **100** | **80** | **80.00%** |\n",
			stdout)
	}
}

func TestReport_Categories(t *testing.T) {
	path := writeFile(t, "lcov.info",
		"SF:other/file.dart\nLF:10\nLH:0\nend_of_record\n"+
			"SF:lib\nLF:5\nLH:5\nend_of_record\n")

	stdout, _, err := execute(t, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "| other | 1 | 10 | 0 | 0.00% |\n")
	assert.Contains(t, stdout, "| root | 1 | 5 | 5 | 100.00% |\n")
	assert.Contains(t, stdout, "| **TOTAL** | **2** | **15** | **5** | **33.33%** |\n")
}

func TestReport_GrandTotal(t *testing.T) {
	path := writeFile(t, "lcov.info",
		"SF:lib/data/a.dart\nLF:100\nLH:50\nend_of_record\n"+
			"SF:lib/ui/b.dart\nLF:50\nLH:50\nend_of_record\n")

	stdout, _, err := execute(t, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "| **TOTAL** | **2** | **150** | **100** | **66.67%** |")
}

func TestReport_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "coverage", "lcov.info")

	stdout, stderr, err := execute(t, missing)
	require.NoError(t, err)
	assert.Equal(t, "Error: "+missing+" not found\n", stdout)
	assert.Empty(t, stderr)
}

func TestReport_MalformedAborts(t *testing.T) {
	path := writeFile(t, "lcov.info", "LF:10\nSF:lib/ui/a.dart\nLH:1\n")

	stdout, stderr, err := execute(t, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, lcov.ErrNoRecord)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "line 1")
}

func TestReport_NonIntegerAborts(t *testing.T) {
	path := writeFile(t, "lcov.info", "SF:lib/ui/a.dart\nLF:many\n")

	stdout, _, err := execute(t, path)
	assert.ErrorIs(t, err, lcov.ErrBadCount)
	assert.Empty(t, stdout)
}

func TestReport_Formats(t *testing.T) {
	path := writeFile(t, "lcov.info", "SF:lib/ui/a.dart\nLF:4\nLH:3\n")

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"coverage_percent": 75`},
		{format: "yaml", want: "covered_lines: 3"},
		{format: "csv", want: "ui,1,4,3,75.00%"},
		{format: "text", want: "75.00%"},
		{format: "md", want: "| ui | 1 | 4 | 3 | 75.00% |"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, _, err := execute(t, "--format", tt.format, path)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestReport_UnknownFormat(t *testing.T) {
	path := writeFile(t, "lcov.info", "SF:lib/ui/a.dart\nLF:4\nLH:3\n")

	stdout, _, err := execute(t, "-f", "html", path)
	require.Error(t, err)
	assert.Empty(t, stdout)
}

func TestReport_FailUnder(t *testing.T) {
	path := writeFile(t, "lcov.info", "SF:lib/ui/a.dart\nLF:100\nLH:80\n")

	stdout, _, err := execute(t, "--fail-under", "90", path)
	assert.ErrorIs(t, err, errBelowThreshold)
	assert.Contains(t, stdout, "80.00%")

	_, _, err = execute(t, "--fail-under", "80", path)
	assert.NoError(t, err)
}

func TestReport_CustomMarker(t *testing.T) {
	path := writeFile(t, "lcov.info", "SF:src/core/a.go\nLF:2\nLH:1\nSF:lib/ui/b.dart\nLF:2\nLH:2\n")

	stdout, _, err := execute(t, "--marker", "src", "--other-label", "misc", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "| core | 1 | 2 | 1 | 50.00% |")
	assert.Contains(t, stdout, "| misc | 1 | 2 | 2 | 100.00% |")
}

func TestReport_ConfigFile(t *testing.T) {
	trace := writeFile(t, "lcov.info", "SF:lib/ui/a.dart\nLF:4\nLH:2\n")
	cfg := writeFile(t, "config.yaml", "input: "+trace+"\nformat: csv\n")

	stdout, _, err := execute(t, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ui,1,4,2,50.00%")
}

func TestReport_MissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "version")
	assert.Error(t, err)
}

func TestReport_EnvOverridesDefault(t *testing.T) {
	path := writeFile(t, "lcov.info", "SF:lib/ui/a.dart\nLF:4\nLH:2\n")
	t.Setenv("LCOV_SUMMARY_FORMAT", "csv")
	t.Setenv("LCOV_SUMMARY_INPUT", path)

	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ui,1,4,2,50.00%")
}

func TestReport_VerboseLogsToStderr(t *testing.T) {
	path := writeFile(t, "lcov.info", "SF:lib/ui/a.dart\nLF:4\nLH:2\n")

	stdout, stderr, err := execute(t, "-v", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "| ui |")
	assert.Contains(t, stderr, "parsed trace")
	assert.Contains(t, stderr, "aggregated coverage")
	assert.NotContains(t, stdout, "parsed trace")
}

func TestReport_TooManyArgs(t *testing.T) {
	_, _, err := execute(t, "a.info", "b.info")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lcov-summary "+version+"\n", stdout)
}

func TestReport_EmptyTrace(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
	}{
		{name: "test name only", content: "TN:\n"},
		{name: "empty file", content: ""},
		{name: "other records only", content: "TN:\nDA:1,1\nend_of_record\n", args: []string{"-f", "json"}},
		{name: "threshold not applied", content: "TN:\n", args: []string{"--fail-under", "50"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "lcov.info", tt.content)

			stdout, stderr, err := execute(t, append(tt.args, path)...)
			require.NoError(t, err)
			assert.Empty(t, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRootCmd_LabelDefaults(t *testing.T) {
	flags := newRootCmd().PersistentFlags()

	assert.Equal(t, aggregate.DefaultMarker, flags.Lookup("marker").DefValue)
	assert.Equal(t, aggregate.DefaultRootLabel, flags.Lookup("root-label").DefValue)
	assert.Equal(t, aggregate.DefaultOtherLabel, flags.Lookup("other-label").DefValue)
}
