// Package gitsync fast-forwards the dotfiles repository from its
// remote as the first stage of an update run.
package gitsync

import (
	stderrors "errors"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/logging"
	git "github.com/go-git/go-git/v5"
)

// Result describes the outcome of a sync
type Result struct {
	// UpToDate is true when the repository already matched the remote
	UpToDate bool

	// Skipped is true when the directory is not a git repository or
	// has no remote to pull from
	Skipped bool

	// Reason explains a skip
	Reason string
}

// Sync pulls the repository at root. A dirty worktree is refused
// rather than merged over; the user is expected to commit or stash
// first, consistent with no-rollback manual recovery.
func Sync(root string) (*Result, error) {
	logger := logging.GetLogger("gitsync")

	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			logger.Info().Str("root", root).Msg("Not a git repository, skipping sync")
			return &Result{Skipped: true, Reason: "not a git repository"}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrGitSync, "failed to open repository at %s", root)
	}

	if _, err := repo.Remote("origin"); err != nil {
		logger.Info().Str("root", root).Msg("No origin remote, skipping sync")
		return &Result{Skipped: true, Reason: "no origin remote"}, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitSync, "failed to open worktree at %s", root)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitSync, "failed to read worktree status")
	}
	if !status.IsClean() {
		return nil, errors.Newf(errors.ErrGitSync,
			"worktree at %s has uncommitted changes, commit or stash before updating", root)
	}

	err = worktree.Pull(&git.PullOptions{RemoteName: "origin"})
	if err != nil {
		if stderrors.Is(err, git.NoErrAlreadyUpToDate) {
			logger.Debug().Msg("Repository already up to date")
			return &Result{UpToDate: true}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrGitSync, "failed to pull from origin")
	}

	logger.Info().Str("root", root).Msg("Repository synced")
	return &Result{}, nil
}
