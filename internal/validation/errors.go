package validation

import (
	"errors"
	"fmt"
)

// ErrInsufficientPermissions is returned by the gate when the actor lacks write access
var ErrInsufficientPermissions = errors.New("actor does not have write permissions to the repository")

// NonHumanActorError is returned when the triggering account is not a User
type NonHumanActorError struct {
	Actor string
	Type  string
}

func (e *NonHumanActorError) Error() string {
	return fmt.Sprintf("Workflow initiated by non-human actor: %s (type: %s).", e.Actor, e.Type)
}

// PermissionCheckError is returned when the permission level could not be retrieved
type PermissionCheckError struct {
	Actor string
	Err   error
}

func (e *PermissionCheckError) Error() string {
	return fmt.Sprintf("failed to check permissions for %s: %v", e.Actor, e.Err)
}

func (e *PermissionCheckError) Unwrap() error {
	return e.Err
}
