//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchShowsResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("stars ▼"), "Stars should be the initial sort")

	require.NoError(t, tf.Search("charm"))

	require.True(t, tf.SeePlain("charmbracelet/bubbletea"), "Should show matching repositories")
	require.True(t, tf.SeePlain("charmbracelet/lipgloss"), "Should show matching repositories")
	require.True(t, tf.SeePlain(`2 of 2 results for "charm"`), "Should report the result count")
}

func TestSortAndPagingReRunSearch(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	api := StartFakeAPI(t, nil)
	tf.UseAPI(api)

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Search("charm"))
	require.True(t, tf.SeePlain("charmbracelet/bubbletea"), "Should show search results")

	tf.SendKeys(KeySortForks)
	require.True(t, tf.SeePlain("forks ▼"), "Forks should become the active sort")

	tf.SendKeys(KeyNextPage)
	require.True(t, tf.SeePlain("Page 2"), "Page number should advance")

	require.Eventually(t, func() bool {
		for _, q := range api.Queries() {
			if q.Get("sort") == "forks" && q.Get("page") == "2" && q.Get("q") == "charm" {
				return true
			}
		}
		return false
	}, 3*time.Second, 25*time.Millisecond, "Should query page 2 sorted by forks")
}

func TestFailedSearchShowsAlert(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	api := StartFakeAPI(t, nil)
	api.FailWith("Validation Failed")
	tf.UseAPI(api)

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Search("charm"))
	require.True(t, tf.SeePlain("Search failed"), "Should show the alert")
	require.True(t, tf.SeePlain("Validation Failed"), "Alert should carry the API message")

	// once dismissed, keys reach the page again
	tf.Enter()
	time.Sleep(100 * time.Millisecond)
	tf.SendKeys("s")
	require.True(t, tf.SeePlain("stars ▲"), "Sort key should work after the alert is dismissed")
}

func TestSuggestionsWhileTyping(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.SendKeys(KeyEdit)
	require.NoError(t, tf.Type("tview"))
	require.True(t, tf.SeePlain("rivo/tview"), "Should suggest a matching repository")
}
