package gate

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epy0n0ff/trigger-guard/internal/config"
	"github.com/epy0n0ff/trigger-guard/internal/validation"
)

// MockClient is a mock implementation of the GitHub Client interface
type MockClient struct {
	AccountType     string
	AccountTypeErr  error
	Permission      string
	PermissionErr   error
	AccountCalls    int
	PermissionCalls int
}

func (m *MockClient) GetAccountType(ctx context.Context, username string) (string, error) {
	m.AccountCalls++
	return m.AccountType, m.AccountTypeErr
}

func (m *MockClient) GetCollaboratorPermissionLevel(ctx context.Context, owner, repo, username string) (string, error) {
	m.PermissionCalls++
	return m.Permission, m.PermissionErr
}

func testConfig(actor string, allowed ...string) *config.Config {
	return &config.Config{
		GitHubToken:   "token",
		Actor:         actor,
		Repository:    config.NewRepositoryRef("owner", "repo"),
		AllowedActors: allowed,
		RunID:         "12345",
		EventName:     "issue_comment",
	}
}

func silenceLog(t *testing.T) {
	t.Helper()
	writer := log.Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(writer) })
}

func TestRun_HumanWithWriteAccess(t *testing.T) {
	silenceLog(t)

	client := &MockClient{AccountType: "User", Permission: "write"}
	d, err := Run(context.Background(), client, testConfig("octocat"))
	require.NoError(t, err)

	assert.True(t, d.Allowed)
	assert.True(t, d.Human)
	assert.True(t, d.HasWriteAccess)
	assert.False(t, d.Bypassed)
	assert.Empty(t, d.Reason)
	assert.Equal(t, "owner/repo", d.Repository.FullName)
	assert.Equal(t, 1, client.AccountCalls)
	assert.Equal(t, 1, client.PermissionCalls)
	assert.False(t, d.CompletedAt.Before(d.StartedAt))
}

func TestRun_AllowedActorMakesNoCalls(t *testing.T) {
	silenceLog(t)

	client := &MockClient{AccountType: "Bot", Permission: "none"}
	d, err := Run(context.Background(), client, testConfig("Dependabot[bot]", "dependabot[bot]"))
	require.NoError(t, err)

	assert.True(t, d.Allowed)
	assert.True(t, d.Bypassed)
	assert.Equal(t, 0, client.AccountCalls)
	assert.Equal(t, 0, client.PermissionCalls)
}

func TestRun_NonHumanStopsBeforePermissionCheck(t *testing.T) {
	silenceLog(t)

	client := &MockClient{AccountType: "Bot", Permission: "admin"}
	d, err := Run(context.Background(), client, testConfig("test-bot"))
	require.Error(t, err)

	var nonHuman *validation.NonHumanActorError
	require.True(t, errors.As(err, &nonHuman))
	assert.Equal(t, "Workflow initiated by non-human actor: test-bot (type: Bot).", err.Error())

	assert.False(t, d.Allowed)
	assert.Equal(t, "non_human_actor", d.Reason)
	assert.Equal(t, 0, client.PermissionCalls)
}

func TestRun_InsufficientPermissions(t *testing.T) {
	silenceLog(t)

	client := &MockClient{AccountType: "User", Permission: "read"}
	d, err := Run(context.Background(), client, testConfig("reader"))
	require.ErrorIs(t, err, validation.ErrInsufficientPermissions)

	assert.True(t, d.Human)
	assert.False(t, d.HasWriteAccess)
	assert.False(t, d.Allowed)
	assert.Equal(t, "insufficient_permissions", d.Reason)
}

func TestRun_PermissionQueryFailure(t *testing.T) {
	silenceLog(t)

	apiErr := errors.New("404 Not Found")
	client := &MockClient{AccountType: "User", PermissionErr: apiErr}
	d, err := Run(context.Background(), client, testConfig("outsider"))
	require.ErrorIs(t, err, apiErr)

	assert.False(t, d.Allowed)
	assert.Equal(t, "permission_check_failed", d.Reason)
	assert.Contains(t, d.Error, "outsider")
}

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "non-human", err: &validation.NonHumanActorError{Actor: "a", Type: "Bot"}, want: "non_human_actor"},
		{name: "check failed", err: &validation.PermissionCheckError{Actor: "a", Err: errors.New("x")}, want: "permission_check_failed"},
		{name: "insufficient", err: validation.ErrInsufficientPermissions, want: "insufficient_permissions"},
		{name: "override", err: &config.InvalidRepositoryOverrideError{Raw: "x"}, want: "invalid_repository_override"},
		{name: "other", err: errors.New("boom"), want: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reason(tt.err))
		})
	}
}

func TestNewMetricsEvent(t *testing.T) {
	cfg := testConfig("octocat")
	d := &Decision{
		Actor:      "octocat",
		Repository: cfg.Repository,
		Reason:     "insufficient_permissions",
		Duration:   0.25,
	}

	event := NewMetricsEvent(d, cfg)
	assert.Equal(t, "trigger_gate_evaluated", event.EventType)
	assert.Equal(t, "owner/repo", event.Repository)
	assert.Equal(t, "12345", event.RunID)
	assert.Equal(t, "issue_comment", event.EventName)
	assert.Equal(t, "insufficient_permissions", event.Reason)
	assert.False(t, event.Allowed)
	assert.Equal(t, 0.25, event.DurationSeconds)
}
