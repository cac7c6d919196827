package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckSettingsFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "keysanity: both\nganon_crystal_count: 5\n")
	goodJSON := writeFile(t, dir, "good.json", `{"keysanity":"zelda"}`)
	badRange := writeFile(t, dir, "range.yaml", "tourian_boss_count: 12\n")
	badExt := writeFile(t, dir, "settings.toml", "keysanity = 'none'\n")
	missing := filepath.Join(dir, "missing.yaml")

	results := checkSettingsFiles([]string{good, goodJSON, badRange, badExt, missing})
	require.Len(t, results, 5)
	assert.NoError(t, results[0])
	assert.NoError(t, results[1])
	assert.ErrorContains(t, results[2], "tourian_boss_count")
	assert.Error(t, results[3])
	assert.Error(t, results[4])
}

func TestSettingsCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "keysanity: metroid\n")
	bad := writeFile(t, dir, "bad.yaml", "keysanity: [\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"settings", good, bad})
	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "1 of 2 settings files invalid")
	assert.Contains(t, out.String(), good)
	assert.Contains(t, out.String(), bad)
}

func TestCheckWorld(t *testing.T) {
	cfg := settings.Default()
	report, err := checkWorld(context.Background(), "default", cfg, 500)
	require.NoError(t, err)

	tr, err := tracker.New(settings.Default())
	require.NoError(t, err)
	assert.Equal(t, len(tr.Status(tracker.Filter{})), report.Nodes)
	assert.Equal(t, "default", report.Name)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = checkWorld(ctx, "cancelled", cfg, 500)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExplainCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"explain", "Sahasrahla"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Sahasrahla")
	assert.Contains(t, out.String(), "Green Pendant")

	out.Reset()
	rootCmd.SetArgs([]string{"explain", "King Zora", "--have", "progressive glove"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "available")
	assert.Contains(t, out.String(), "needs: nothing more")

	rootCmd.SetArgs([]string{"explain", "Atlantis", "--have", ""})
	assert.Error(t, rootCmd.Execute())
}
