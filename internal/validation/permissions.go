package validation

import (
	"context"
	"log"

	"github.com/epy0n0ff/trigger-guard/internal/config"
	"github.com/epy0n0ff/trigger-guard/internal/github"
)

// CheckWritePermissions reports whether the actor has write or admin access to repo,
// or is allow-listed. Insufficient access is a false result, not an error; an
// error means the permission level could not be determined.
func CheckWritePermissions(ctx context.Context, fetcher github.PermissionLevelFetcher, actor ActorContext, repo config.RepositoryRef) (bool, error) {
	log.Printf("::notice::Checking permissions for actor: %s", actor.Actor)

	if actor.IsAllowed() {
		log.Printf("::notice::Actor %s is in the allowed actors list, bypassing permission check", actor.Actor)
		return true, nil
	}

	log.Printf("::notice::Actor %s not in allowed list, checking repository permissions", actor.Actor)

	level, err := fetcher.GetCollaboratorPermissionLevel(ctx, repo.Owner, repo.Repo, actor.Actor)
	if err != nil {
		log.Printf("::error::Failed to check permissions: %v", err)
		return false, &PermissionCheckError{Actor: actor.Actor, Err: err}
	}

	log.Printf("::notice::Permission level retrieved: %s", level)

	if !github.HasWriteAccess(level) {
		log.Printf("::warning::Actor has insufficient permissions: %s", level)
		return false, nil
	}

	log.Printf("::notice::Actor has write access: %s", level)
	return true, nil
}
