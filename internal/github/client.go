package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// AccountTypeFetcher looks up the account type ("User", "Bot", "Organization") of a login
type AccountTypeFetcher interface {
	GetAccountType(ctx context.Context, username string) (string, error)
}

// PermissionLevelFetcher looks up a user's collaborator permission level on a repository
type PermissionLevelFetcher interface {
	GetCollaboratorPermissionLevel(ctx context.Context, owner, repo, username string) (string, error)
}

// Client defines the GitHub API operations needed to validate a workflow trigger
type Client interface {
	AccountTypeFetcher
	PermissionLevelFetcher
}

// ClientImpl is the concrete implementation using go-github
type ClientImpl struct {
	client *github.Client
}

// NewClient creates a new GitHub API client
func NewClient(token, ghHost string) (Client, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	// Create GitHub client (enterprise or default)
	var ghClient *github.Client
	var err error

	if ghHost != "" {
		// GitHub Enterprise Server
		baseURL := "https://" + ghHost
		uploadURL := "https://" + ghHost

		ghClient, err = github.NewClient(tc).WithEnterpriseURLs(baseURL, uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub Enterprise client for %s: %w", ghHost, err)
		}
	} else {
		// GitHub.com (default)
		ghClient = github.NewClient(tc)
	}

	return &ClientImpl{client: ghClient}, nil
}

// GetAccountType returns the type of the account behind username
func (c *ClientImpl) GetAccountType(ctx context.Context, username string) (string, error) {
	user, _, err := c.client.Users.Get(ctx, username)
	if err != nil {
		return "", err
	}

	return user.GetType(), nil
}

// GetCollaboratorPermissionLevel returns username's permission on owner/repo
// (admin, write, read or none)
func (c *ClientImpl) GetCollaboratorPermissionLevel(ctx context.Context, owner, repo, username string) (string, error) {
	level, _, err := c.client.Repositories.GetPermissionLevel(ctx, owner, repo, username)
	if err != nil {
		return "", err
	}

	return level.GetPermission(), nil
}
