// Package gitinfo resolves repository identity from the local checkout so
// owner, repo, and head SHA can be omitted on the command line.
package gitinfo

import (
	"fmt"
	"strings"

	goGit "github.com/go-git/go-git/v5"
)

// Info is the repository identity derived from the local git checkout.
type Info struct {
	Owner   string
	Repo    string
	HeadSHA string
}

// Resolve opens the repository containing repoDir and reads the HEAD commit
// and the origin remote. Explicit flags and CI environment variables take
// precedence over these values; Resolve only fills gaps for local runs.
func Resolve(repoDir string) (Info, error) {
	repo, err := goGit.PlainOpenWithOptions(repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Info{}, fmt.Errorf("open repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return Info{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	info := Info{HeadSHA: head.Hash().String()}

	remote, err := repo.Remote("origin")
	if err == nil && len(remote.Config().URLs) > 0 {
		if owner, name, ok := ParseOwnerRepo(remote.Config().URLs[0]); ok {
			info.Owner = owner
			info.Repo = name
		}
	}

	return info, nil
}

// ParseOwnerRepo extracts "owner" and "repo" from the common remote URL
// shapes: https://host/owner/repo.git, git@host:owner/repo.git, and
// ssh://git@host/owner/repo.git.
func ParseOwnerRepo(url string) (owner, repo string, ok bool) {
	trimmed := url
	trimmed = strings.TrimPrefix(trimmed, "ssh://")
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimPrefix(trimmed, "git://")

	// scp-like syntax: git@host:owner/repo.git
	if at := strings.Index(trimmed, "@"); at >= 0 {
		trimmed = trimmed[at+1:]
	}
	trimmed = strings.Replace(trimmed, ":", "/", 1)

	trimmed = strings.TrimSuffix(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 {
		return "", "", false
	}

	owner = parts[len(parts)-2]
	repo = parts[len(parts)-1]
	if owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}
