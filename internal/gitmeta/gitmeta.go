// Package gitmeta derives last-modified timestamps from git history, so the
// metadata does not depend on checkout mtimes.
package gitmeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoHistory indicates the path has no commits (untracked or new).
var ErrNoHistory = errors.New("no commit touches path")

// Repo answers last-commit queries for files under a project root.
type Repo struct {
	mu       sync.Mutex // go-git repositories are not safe for concurrent reads
	repo     *git.Repository
	worktree string
	root     string
}

// Open finds the repository containing root (searching parent directories).
func Open(root string) (*Repo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", abs, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}
	return &Repo{repo: repo, worktree: wt.Filesystem.Root(), root: abs}, nil
}

// LastModified returns the committer time of the newest commit touching
// relPath (slash-separated, relative to the project root).
func (r *Repo) LastModified(ctx context.Context, relPath string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	rel, err := filepath.Rel(r.worktree, filepath.Join(r.root, filepath.FromSlash(relPath)))
	if err != nil {
		return time.Time{}, fmt.Errorf("relativize %s: %w", relPath, err)
	}
	rel = filepath.ToSlash(rel)

	r.mu.Lock()
	defer r.mu.Unlock()

	iter, err := r.repo.Log(&git.LogOptions{
		Order: git.LogOrderCommitterTime,
		PathFilter: func(p string) bool {
			return p == rel || (len(p) > len(rel) && p[:len(rel)] == rel && p[len(rel)] == '/')
		},
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("log %s: %w", rel, err)
	}
	defer iter.Close()

	c, err := iter.Next()
	if errors.Is(err, io.EOF) {
		return time.Time{}, ErrNoHistory
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("log %s: %w", rel, err)
	}
	return committed(c), nil
}

func committed(c *object.Commit) time.Time {
	return c.Committer.When.UTC()
}
