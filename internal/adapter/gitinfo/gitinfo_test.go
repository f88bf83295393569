package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	goGit "github.com/go-git/go-git/v5"
	gitConfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOwnerRepo(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{
			name:      "https URL",
			url:       "https://github.com/octo/example.git",
			wantOwner: "octo",
			wantRepo:  "example",
			wantOK:    true,
		},
		{
			name:      "https URL without .git",
			url:       "https://github.com/octo/example",
			wantOwner: "octo",
			wantRepo:  "example",
			wantOK:    true,
		},
		{
			name:      "scp-like ssh URL",
			url:       "git@github.com:octo/example.git",
			wantOwner: "octo",
			wantRepo:  "example",
			wantOK:    true,
		},
		{
			name:      "ssh scheme URL",
			url:       "ssh://git@github.com/octo/example.git",
			wantOwner: "octo",
			wantRepo:  "example",
			wantOK:    true,
		},
		{
			name:      "enterprise host",
			url:       "https://ghe.corp.example/team/service.git",
			wantOwner: "team",
			wantRepo:  "service",
			wantOK:    true,
		},
		{
			name:   "missing owner segment",
			url:    "https://github.com/example",
			wantOK: false,
		},
		{
			name:   "empty URL",
			url:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, ok := ParseOwnerRepo(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantOwner, owner)
				assert.Equal(t, tt.wantRepo, repo)
			}
		})
	}
}

func TestResolveReadsHeadAndOrigin(t *testing.T) {
	dir := t.TempDir()
	repo, err := goGit.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&gitConfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/octo/example.git"},
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a\n"), 0o600))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &goGit.CommitOptions{
		Author: &object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	info, err := Resolve(dir)
	require.NoError(t, err)

	assert.Equal(t, "octo", info.Owner)
	assert.Equal(t, "example", info.Repo)
	assert.Equal(t, hash.String(), info.HeadSHA)
}

func TestResolveDetectsDotGitFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	repo, err := goGit.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "src", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a\n"), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &goGit.CommitOptions{
		Author: &object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	info, err := Resolve(sub)
	require.NoError(t, err)

	// No origin remote: only the head SHA resolves.
	assert.Equal(t, hash.String(), info.HeadSHA)
	assert.Empty(t, info.Owner)
	assert.Empty(t, info.Repo)
}

func TestResolveOutsideRepository(t *testing.T) {
	_, err := Resolve(t.TempDir())
	assert.Error(t, err)
}
