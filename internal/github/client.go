package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/clintrovert/actionagent/pkg/types"
)

// Client wraps GitHub API and Git operations
type Client struct {
	apiClient    *github.Client
	logger       *zap.Logger
	accessToken  string
	username     string
	workspaceDir string
}

// NewClient creates a new GitHub client
func NewClient(accessToken, username, workspaceDir string, logger *zap.Logger) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: accessToken},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		apiClient:    github.NewClient(tc),
		logger:       logger,
		accessToken:  accessToken,
		username:     username,
		workspaceDir: workspaceDir,
	}
}

// CreateRepository creates a private repository under the authenticated
// user and pushes the scaffold files into it. A scaffold file that fails to
// upload is logged and skipped; the repository itself is the artifact that
// matters and is returned either way once created.
func (c *Client) CreateRepository(ctx context.Context, name, description string, scaffold []ScaffoldFile) (*types.RepositoryRef, error) {
	repo := &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(true),
		AutoInit:    github.Bool(true),
	}

	created, _, err := c.apiClient.Repositories.Create(ctx, "", repo)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	ref := &types.RepositoryRef{
		Owner:         created.GetOwner().GetLogin(),
		Name:          created.GetName(),
		URL:           created.GetHTMLURL(),
		DefaultBranch: created.GetDefaultBranch(),
	}
	if ref.Owner == "" {
		ref.Owner = c.username
	}
	if ref.DefaultBranch == "" {
		ref.DefaultBranch = "main"
	}
	ref.Branches = []string{ref.DefaultBranch}

	c.logger.Info("created repository",
		zap.String("owner", ref.Owner),
		zap.String("name", ref.Name),
		zap.String("url", ref.URL),
	)

	for _, f := range scaffold {
		opts := &github.RepositoryContentFileOptions{
			Message: github.String("Add " + f.Path),
			Content: []byte(f.Content),
			Branch:  github.String(ref.DefaultBranch),
		}
		_, _, err := c.apiClient.Repositories.CreateFile(ctx, ref.Owner, ref.Name, f.Path, opts)
		if err != nil {
			c.logger.Warn("failed to add scaffold file",
				zap.String("path", f.Path),
				zap.String("repo", ref.Name),
				zap.Error(err),
			)
			continue
		}
	}

	return ref, nil
}
