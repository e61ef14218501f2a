// Package cli tests root command, command groups and exit codes for rubychanges.
// Related: internal/cli/root.go, internal/cli/exit_codes.go
// Tags: cli, root, commands, global-flags, exit-codes

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/ariel-frischer/rubychanges/internal/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rubychanges", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag exists": {
			flagName:  "config",
			shorthand: "c",
		},
		"verbose flag exists": {
			flagName:  "verbose",
			shorthand: "v",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		command string
		group   string
	}{
		"scrape":  {command: "scrape", group: GroupWorkflow},
		"report":  {command: "report", group: GroupWorkflow},
		"list":    {command: "list", group: GroupWorkflow},
		"config":  {command: "config", group: GroupConfiguration},
		"version": {command: "version", group: GroupInformation},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := findCommand(rootCmd, tt.command)
			require.NotNil(t, cmd, "%s should be registered", tt.command)
			assert.Equal(t, tt.group, cmd.GroupID)
			assert.True(t, rootCmd.ContainsGroup(cmd.GroupID))
		})
	}
}

func TestReportCmd_Flags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cmd       *cobra.Command
		flagName  string
		shorthand string
	}{
		"report from":          {cmd: reportCmd, flagName: "from", shorthand: "f"},
		"report to":            {cmd: reportCmd, flagName: "to", shorthand: "t"},
		"report important":     {cmd: reportCmd, flagName: "important", shorthand: "i"},
		"report relevant":      {cmd: reportCmd, flagName: "relevant", shorthand: "r"},
		"report breaking-only": {cmd: reportCmd, flagName: "breaking-only", shorthand: "b"},
		"report language-only": {cmd: reportCmd, flagName: "language-only", shorthand: "l"},
		"report section":       {cmd: reportCmd, flagName: "section"},
		"report output":        {cmd: reportCmd, flagName: "output", shorthand: "o"},
		"report releases":      {cmd: reportCmd, flagName: "releases"},
		"list plain":           {cmd: listCmd, flagName: "plain"},
		"list important":       {cmd: listCmd, flagName: "important", shorthand: "i"},
		"scrape source":        {cmd: scrapeCmd, flagName: "source", shorthand: "s"},
		"scrape watch":         {cmd: scrapeCmd, flagName: "watch", shorthand: "w"},
		"scrape debounce":      {cmd: scrapeCmd, flagName: "debounce"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := tt.cmd.Flags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestReportCmd_DistillAlias(t *testing.T) {
	t.Parallel()

	assert.Contains(t, reportCmd.Aliases, "distill")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil": {
			err:  nil,
			want: ExitSuccess,
		},
		"plain error": {
			err:  errors.New("boom"),
			want: ExitFailure,
		},
		"exit error": {
			err:  NewExitError(ExitMissingData),
			want: ExitMissingData,
		},
		"wrapped exit error": {
			err:  fmt.Errorf("running: %w", NewExitError(ExitInvalidConfig)),
			want: ExitInvalidConfig,
		},
		"argument error": {
			err:  clierrors.UnsupportedRelease("from", "9.9", "2.3, 3.2"),
			want: ExitInvalidArguments,
		},
		"data error": {
			err:  clierrors.DatabaseNotFound("database.yaml"),
			want: ExitMissingData,
		},
		"config error": {
			err:  clierrors.InvalidLevel(7),
			want: ExitInvalidConfig,
		},
		"runtime error": {
			err:  clierrors.FileNotWritable("out.html", errors.New("denied")),
			want: ExitFailure,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func findCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, cmd := range parent.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}
