//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// FakeRepo is one repository served by the fake API
type FakeRepo struct {
	FullName    string
	Description string
	Language    string
	Stars       int
	Forks       int
}

// FakeAPI serves /search/repositories from a fixed list
type FakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	repos    []FakeRepo
	failWith string
	queries  []url.Values
}

var defaultRepos = []FakeRepo{
	{FullName: "charmbracelet/bubbletea", Description: "A powerful little TUI framework", Language: "Go", Stars: 31000, Forks: 900},
	{FullName: "charmbracelet/lipgloss", Description: "Style definitions for nice terminal layouts", Language: "Go", Stars: 9000, Forks: 250},
	{FullName: "rivo/tview", Description: "Terminal UI library with rich widgets", Language: "Go", Stars: 11000, Forks: 600},
}

// StartFakeAPI starts a fake search API. A nil repos list serves the defaults.
func StartFakeAPI(t *testing.T, repos []FakeRepo) *FakeAPI {
	t.Helper()
	if repos == nil {
		repos = defaultRepos
	}
	api := &FakeAPI{repos: repos}
	api.srv = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.srv.Close)
	return api
}

// URL returns the API base URL
func (a *FakeAPI) URL() string {
	return a.srv.URL
}

// FailWith makes every later search fail with message
func (a *FakeAPI) FailWith(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failWith = message
}

// Queries returns the query strings received so far
func (a *FakeAPI) Queries() []url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]url.Values(nil), a.queries...)
}

func (a *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.queries = append(a.queries, r.URL.Query())
	failWith := a.failWith
	repos := a.repos
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failWith != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": failWith})
		return
	}

	keyword := strings.TrimSuffix(r.URL.Query().Get("q"), " in:name")
	type item struct {
		Name            string `json:"name"`
		FullName        string `json:"full_name"`
		Description     string `json:"description"`
		HTMLURL         string `json:"html_url"`
		Language        string `json:"language"`
		StargazersCount int    `json:"stargazers_count"`
		ForksCount      int    `json:"forks_count"`
	}
	var items []item
	for _, repo := range repos {
		if !strings.Contains(repo.FullName, keyword) && !strings.Contains(repo.Description, keyword) {
			continue
		}
		items = append(items, item{
			Name:            filepath.Base(repo.FullName),
			FullName:        repo.FullName,
			Description:     repo.Description,
			HTMLURL:         "https://github.com/" + repo.FullName,
			Language:        repo.Language,
			StargazersCount: repo.Stars,
			ForksCount:      repo.Forks,
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"total_count": len(items), "items": items})
}

// CreateTestWorkspace creates a temporary home for the app's files
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// UseAPI points the next StartApp at api
func (tf *TUITestFramework) UseAPI(api *FakeAPI) {
	tf.api = api
}
