package config

import (
	"fmt"
	"strings"
)

// RepositoryRef identifies the repository the action operates on
type RepositoryRef struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	FullName string `json:"full_name"`
}

// NewRepositoryRef builds a RepositoryRef, deriving FullName from owner and repo
func NewRepositoryRef(owner, repo string) RepositoryRef {
	return RepositoryRef{
		Owner:    owner,
		Repo:     repo,
		FullName: owner + "/" + repo,
	}
}

// AdditionalPermissions maps a permission scope (e.g. "actions") to its value (e.g. "read")
type AdditionalPermissions map[string]string

// InvalidRepositoryOverrideError is returned when TARGET_REPOSITORY is not "owner/repo"
type InvalidRepositoryOverrideError struct {
	// Raw is the override exactly as it was provided
	Raw string
}

func (e *InvalidRepositoryOverrideError) Error() string {
	return fmt.Sprintf("Invalid TARGET_REPOSITORY format: \"%s\". Expected \"owner/repo\" (e.g., \"octocat/hello-world\").", e.Raw)
}

// ParseMultilineInput parses a list input that may be comma separated,
// newline separated or both. Anything after a '#' on a line is ignored.
func ParseMultilineInput(s string) []string {
	items := []string{}
	for _, line := range strings.Split(s, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		for _, token := range strings.Split(line, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			items = append(items, token)
		}
	}
	return items
}

// ParseAdditionalPermissions parses "scope: value" lines.
// Lines without a colon are skipped; the last occurrence of a scope wins.
func ParseAdditionalPermissions(s string) AdditionalPermissions {
	perms := AdditionalPermissions{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		perms[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return perms
}

// ParseRepositoryOverride resolves the repository to operate on.
// When set is false the ambient repository is returned unchanged.
func ParseRepositoryOverride(raw string, set bool, ambient RepositoryRef) (RepositoryRef, error) {
	if !set {
		return ambient, nil
	}

	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return RepositoryRef{}, &InvalidRepositoryOverrideError{Raw: raw}
	}

	owner := strings.TrimSpace(parts[0])
	repo := strings.TrimSpace(parts[1])
	if owner == "" || repo == "" {
		return RepositoryRef{}, &InvalidRepositoryOverrideError{Raw: raw}
	}

	return NewRepositoryRef(owner, repo), nil
}

// ParseRepository splits a GITHUB_REPOSITORY value into a RepositoryRef
func ParseRepository(fullName string) (RepositoryRef, error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryRef{}, fmt.Errorf("repository must be in format owner/repo, got: %s\n"+
			"  → Action: Check GITHUB_REPOSITORY environment variable\n"+
			"  → Expected format: owner/repository-name", fullName)
	}
	return NewRepositoryRef(parts[0], parts[1]), nil
}
