// Package gitutil drives the git CLI for the repository orchestration
// around an index run: refreshing the source checkout before a crawl and
// committing and pushing the regenerated index afterwards.
package gitutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner abstracts git command execution for testing.
type CommandRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// Repo runs git commands against one working tree.
type Repo struct {
	// Dir is the repository working directory.
	Dir string
	// Runner executes git commands (nil means exec the real git binary).
	Runner CommandRunner
}

// NewRepo returns a Repo for the given working directory.
func NewRepo(dir string) *Repo {
	return &Repo{Dir: dir}
}

// Pull fast-forwards the checkout from its remote on the given branch.
func (r *Repo) Pull(ctx context.Context, branch string) error {
	args := []string{"pull", "--ff-only"}
	if branch != "" {
		args = append(args, "origin", branch)
	}
	if _, err := r.run(ctx, args...); err != nil {
		return fmt.Errorf("git pull failed: %w", err)
	}
	return nil
}

// HasChanges reports whether the working tree has uncommitted changes,
// including untracked files.
func (r *Repo) HasChanges(ctx context.Context) (bool, error) {
	output, err := r.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status failed: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// CommitAll stages everything under the working tree and commits it.
// Committing a clean tree is a no-op, not an error.
func (r *Repo) CommitAll(ctx context.Context, message string) error {
	dirty, err := r.HasChanges(ctx)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}

	if _, err := r.run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}
	if message == "" {
		message = fmt.Sprintf("specmonkey index %s", time.Now().UTC().Format("2006-01-02 15:04:05"))
	}
	if _, err := r.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}

// Push pushes the given branch to origin.
func (r *Repo) Push(ctx context.Context, branch string) error {
	args := []string{"push"}
	if branch != "" {
		args = append(args, "origin", branch)
	}
	if _, err := r.run(ctx, args...); err != nil {
		return fmt.Errorf("git push failed: %w", err)
	}
	return nil
}

// run executes one git command in the repository directory.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	if r.Runner != nil {
		return r.Runner.Run(ctx, r.Dir, args...)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
