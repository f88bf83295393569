package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	goGit "github.com/go-git/go-git/v5"
	gitConfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func testSignature() *object.Signature {
	return &object.Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestResolveRepoIdentityPrefersActionsEnv(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "octo/example")
	t.Setenv("GITHUB_SHA", "deadbeef")

	owner, repo, sha := resolveRepoIdentity(t.TempDir())

	if owner != "octo" || repo != "example" {
		t.Errorf("expected octo/example, got %s/%s", owner, repo)
	}
	if sha != "deadbeef" {
		t.Errorf("expected deadbeef, got %s", sha)
	}
}

func TestResolveRepoIdentityFallsBackToCheckout(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "")
	t.Setenv("GITHUB_SHA", "")

	dir := t.TempDir()
	repo, err := goGit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	_, err = repo.CreateRemote(&gitConfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octo/example.git"},
	})
	if err != nil {
		t.Fatalf("create remote: %v", err)
	}

	file := filepath.Join(dir, "README.md")
	if err := os.WriteFile(file, []byte("hello\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatalf("add: %v", err)
	}
	hash, err := wt.Commit("initial", &goGit.CommitOptions{
		Author: testSignature(),
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	owner, name, sha := resolveRepoIdentity(dir)

	if owner != "octo" || name != "example" {
		t.Errorf("expected octo/example, got %s/%s", owner, name)
	}
	if sha != hash.String() {
		t.Errorf("expected %s, got %s", hash.String(), sha)
	}
}

func TestResolveRepoIdentityOutsideRepository(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "")
	t.Setenv("GITHUB_SHA", "")

	owner, repo, sha := resolveRepoIdentity(t.TempDir())

	if owner != "" || repo != "" || sha != "" {
		t.Errorf("expected empty identity, got %s/%s@%s", owner, repo, sha)
	}
}

func TestDefaultConfigPathsIncludeWorkingDirectory(t *testing.T) {
	paths := defaultConfigPaths()
	if len(paths) == 0 || paths[0] != "." {
		t.Fatalf("expected working directory first, got %v", paths)
	}
}
