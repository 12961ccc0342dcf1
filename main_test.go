package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pstuifzand/tui-vlist/internal/virtual"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag of the shared command tree back to its default,
// so one run's flags do not leak into the next
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue), f.Name)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(reset)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(t)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRangeCommand(t *testing.T) {
	out, err := runCommand(t, "range", "--count", "1000", "--item-height", "60",
		"--overscan", "5", "--scroll", "6000", "--viewport", "500")
	require.NoError(t, err)

	assert.Contains(t, out, "range:        95-114 (19 items)")
	assert.Contains(t, out, "total height: 60000")
	assert.Contains(t, out, "top offset:   5700")
}

func TestRangeCommandRows(t *testing.T) {
	out, err := runCommand(t, "range", "--count", "10", "--item-height", "2",
		"--overscan", "0", "--scroll", "6", "--viewport", "4", "--rows")
	require.NoError(t, err)

	assert.Contains(t, out, "range:        3-5 (2 items)")
	assert.Contains(t, out, "3\t6\n4\t8\n")
}

func TestRangeCommandInvalidHeight(t *testing.T) {
	_, err := runCommand(t, "range", "--count", "10", "--item-height", "0")
	assert.ErrorIs(t, err, virtual.ErrInvalidConfiguration)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("overscan = 4\nitem_height = 2\n"), 0644))

	cmd := &cobra.Command{}
	var overscan, itemHeight, listHeight int
	cmd.Flags().IntVar(&overscan, "overscan", 3, "")
	cmd.Flags().IntVar(&itemHeight, "item-height", 1, "")
	cmd.Flags().IntVar(&listHeight, "list-height", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--overscan", "9"}))

	flagConfig = path
	flagOverscan = overscan
	t.Cleanup(func() {
		flagConfig = ""
		flagOverscan = 3
	})

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Overscan, "flag wins")
	assert.Equal(t, 2, cfg.ItemHeight, "config kept when flag not given")
}

func TestLoadConfigRejectsInvalidFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Int("overscan", 3, "")
	cmd.Flags().Int("item-height", 1, "")
	cmd.Flags().Int("list-height", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--item-height", "0"}))

	flagConfig = filepath.Join(t.TempDir(), "missing.toml")
	flagItemHeight = 0
	t.Cleanup(func() {
		flagConfig = ""
		flagItemHeight = 1
	})

	_, err := loadConfig(cmd)
	assert.ErrorIs(t, err, virtual.ErrInvalidConfiguration)
}

func TestSendCommandWithoutViewer(t *testing.T) {
	_, err := runCommand(t, "send", "--socket-dir", t.TempDir(), "goto", "5")
	assert.ErrorContains(t, err, "no running vlist instance")
}

func TestFilterCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple pie\nbanana\napricot\ncherry\n"), 0644))

	out, err := runCommand(t, "filter", path, "ap")
	require.NoError(t, err)
	assert.Equal(t, "apple pie\napricot\n", out)

	out, err = runCommand(t, "filter", path, "ap", "--format", "fields", "--fields", "source_index,text")
	require.NoError(t, err)
	assert.Equal(t, "1\tapple pie\n3\tapricot\n", out)

	out, err = runCommand(t, "filter", path, "--format", "jsonl", "--fields", "id")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "\n"), "no query prints everything")
	assert.Contains(t, out, `{"id":"line_4"}`)
}

func TestFilterCommandErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0644))

	_, err := runCommand(t, "filter", path, "x", "--format", "yaml")
	assert.ErrorContains(t, err, "invalid format")

	_, err = runCommand(t, "filter", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCommandResetsFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0644))

	out, err := runCommand(t, "filter", path, "--format", "json", "--rank")
	require.NoError(t, err)
	assert.Contains(t, out, "{")

	out, err = runCommand(t, "filter", path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n", out)
	assert.False(t, filterCmd.Flags().Changed("format"))
	assert.False(t, filterFlags.rank)
}
