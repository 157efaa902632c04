package github

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/clintrovert/actionagent/pkg/types"
)

// BootstrapBranches clones a freshly created repository into the workspace,
// creates a develop branch off the default branch, and pushes it. The clone
// is removed afterwards. The returned slice lists every branch the
// repository has once bootstrapping succeeds.
func (c *Client) BootstrapBranches(ctx context.Context, ref *types.RepositoryRef) ([]string, error) {
	repoPath := filepath.Join(c.workspaceDir, ref.Owner, ref.Name)

	if _, err := os.Stat(repoPath); err == nil {
		os.RemoveAll(repoPath)
	}
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	defer os.RemoveAll(repoPath)

	cloneURL := fmt.Sprintf("https://%s@github.com/%s/%s.git", c.accessToken, ref.Owner, ref.Name)

	r, err := git.PlainCloneContext(ctx, repoPath, false, &git.CloneOptions{
		URL:           cloneURL,
		ReferenceName: plumbing.NewBranchReferenceName(ref.DefaultBranch),
		SingleBranch:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	w, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	err = w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("develop"),
		Create: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	remote, err := r.Remote("origin")
	if err != nil {
		return nil, fmt.Errorf("failed to get remote: %w", err)
	}

	err = remote.PushContext(ctx, &git.PushOptions{
		RefSpecs: []config.RefSpec{config.RefSpec("refs/heads/develop:refs/heads/develop")},
		Auth:     nil, // Will use token from URL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to push branch: %w", err)
	}

	c.logger.Info("bootstrapped branches",
		zap.String("owner", ref.Owner),
		zap.String("repo", ref.Name),
	)

	return []string{ref.DefaultBranch, "develop"}, nil
}
