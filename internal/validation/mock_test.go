package validation

import (
	"bytes"
	"context"
	"log"
	"sync"
	"testing"
)

// MockClient is a mock implementation of the GitHub Client interface
type MockClient struct {
	GetAccountTypeFunc                 func(ctx context.Context, username string) (string, error)
	GetCollaboratorPermissionLevelFunc func(ctx context.Context, owner, repo, username string) (string, error)

	mu                   sync.Mutex
	AccountTypeCalls     int
	PermissionLevelCalls int
}

func (m *MockClient) GetAccountType(ctx context.Context, username string) (string, error) {
	m.mu.Lock()
	m.AccountTypeCalls++
	m.mu.Unlock()

	if m.GetAccountTypeFunc != nil {
		return m.GetAccountTypeFunc(ctx, username)
	}
	return "User", nil
}

func (m *MockClient) GetCollaboratorPermissionLevel(ctx context.Context, owner, repo, username string) (string, error) {
	m.mu.Lock()
	m.PermissionLevelCalls++
	m.mu.Unlock()

	if m.GetCollaboratorPermissionLevelFunc != nil {
		return m.GetCollaboratorPermissionLevelFunc(ctx, owner, repo, username)
	}
	return "write", nil
}

// captureLog redirects the standard logger for the duration of the test
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	flags := log.Flags()
	writer := log.Writer()

	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(writer)
		log.SetFlags(flags)
	})

	return &buf
}
