package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration parsed from action inputs and environment
type Config struct {
	// GitHub API token for authentication
	GitHubToken string

	// Login of the account that triggered the workflow
	Actor string

	// Repository the checks run against (TARGET_REPOSITORY override applied)
	Repository RepositoryRef

	// Actors exempt from the human and permission checks
	AllowedActors []string

	// Tool allow/deny lists forwarded to the assistant
	AllowedTools    []string
	DisallowedTools []string

	// Extra workflow permissions requested for the assistant
	AdditionalPermissions AdditionalPermissions

	// GitHub Enterprise Server hostname (empty for GitHub.com)
	GHHost string

	// Workflow run ID (informational)
	RunID string

	// Event that triggered the workflow (informational)
	EventName string

	// Enable debug logging
	Debug bool
}

// ParseFromEnv parses configuration from environment variables
func ParseFromEnv() (*Config, error) {
	cfg := &Config{
		GitHubToken:           os.Getenv("INPUT_GITHUB-TOKEN"),
		Actor:                 strings.TrimSpace(os.Getenv("GITHUB_ACTOR")),
		AllowedActors:         ParseMultilineInput(os.Getenv("INPUT_ALLOWED-ACTORS")),
		AllowedTools:          ParseMultilineInput(os.Getenv("INPUT_ALLOWED-TOOLS")),
		DisallowedTools:       ParseMultilineInput(os.Getenv("INPUT_DISALLOWED-TOOLS")),
		AdditionalPermissions: ParseAdditionalPermissions(os.Getenv("INPUT_ADDITIONAL-PERMISSIONS")),
		GHHost:                strings.TrimSpace(os.Getenv("INPUT_GH-HOST")),
		RunID:                 os.Getenv("GITHUB_RUN_ID"),
		EventName:             os.Getenv("GITHUB_EVENT_NAME"),
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}

	// Resolve ambient repository, then apply the override if one is set
	fullName := os.Getenv("GITHUB_REPOSITORY")
	if fullName == "" {
		return nil, errors.New("repository is required (GITHUB_REPOSITORY)\n" +
			"  → Action: This is automatically set by GitHub Actions\n" +
			"  → Ensure the action is running in a GitHub Actions workflow")
	}
	ambient, err := ParseRepository(fullName)
	if err != nil {
		return nil, err
	}

	override, set := os.LookupEnv("TARGET_REPOSITORY")
	cfg.Repository, err = ParseRepositoryOverride(override, set, ambient)
	if err != nil {
		return nil, err
	}

	// Parse debug flag
	debugStr := os.Getenv("INPUT_DEBUG")
	cfg.Debug = strings.ToLower(debugStr) == "true"

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return errors.New("GitHub token is required (INPUT_GITHUB-TOKEN)\n" +
			"  → Action: Set 'github-token' input in your workflow file\n" +
			"  → Example: github-token: ${{ secrets.GITHUB_TOKEN }}")
	}
	if c.Actor == "" {
		return errors.New("actor is required (GITHUB_ACTOR)\n" +
			"  → Action: This is automatically set by GitHub Actions\n" +
			"  → Ensure the action is running in a GitHub Actions workflow")
	}
	if c.Repository.Owner == "" || c.Repository.Repo == "" {
		return errors.New("repository is required (GITHUB_REPOSITORY)\n" +
			"  → Action: This is automatically set by GitHub Actions\n" +
			"  → Ensure the action is running in a GitHub Actions workflow")
	}
	if err := validateGHHost(c.GHHost); err != nil {
		return err
	}
	return nil
}

// validateGHHost checks that gh-host is a bare hostname with an optional port
func validateGHHost(host string) error {
	if host == "" {
		return nil
	}

	if scheme, rest, found := strings.Cut(host, "://"); found {
		return fmt.Errorf("gh-host must not include protocol (%s://), got: %s\n"+
			"  → Action: Remove the protocol from 'gh-host'\n"+
			"  → Example: gh-host: %s", scheme, host, rest)
	}

	if hostPart, _, found := strings.Cut(host, "/"); found {
		return fmt.Errorf("gh-host must not include path, got: %s\n"+
			"  → Action: Use only the hostname in 'gh-host'\n"+
			"  → Example: gh-host: %s", host, hostPart)
	}

	parts := strings.Split(host, ":")
	switch len(parts) {
	case 1:
		return nil
	case 2:
		port, err := strconv.Atoi(parts[1])
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("invalid port in gh-host: %s\n"+
				"  → Action: Use a port between 1 and 65535\n"+
				"  → Example: gh-host: %s:8443", host, parts[0])
		}
		return nil
	default:
		return fmt.Errorf("invalid gh-host format with port: %s\n"+
			"  → Expected format: hostname[:port]", host)
	}
}
