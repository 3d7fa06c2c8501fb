//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Test help command by running it directly (not through PTY since it exits quickly)
	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage")
	require.Contains(t, output, "search")
	require.Contains(t, output, "history")
	require.Contains(t, output, "--config")
}

func TestOneShotSearchCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	api := StartFakeAPI(t, nil)
	home := t.TempDir()

	cmd := exec.Command(binPath, "search", "charm", "--no-history", "--api-url", api.URL(), "--log-file", home+"/reposcout.log")
	cmd.Env = append(os.Environ(), "HOME="+home, "XDG_CONFIG_HOME="+home)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	output := string(out)
	require.Contains(t, output, `2 repositories for "charm"`)
	require.Contains(t, output, "charmbracelet/bubbletea")
	require.False(t, strings.Contains(output, "rivo/tview"), "non-matching repo should not be listed")

	queries := api.Queries()
	require.Len(t, queries, 1)
	require.Empty(t, queries[0].Get("sort"), "keyword-only search should not send a sort")
}
