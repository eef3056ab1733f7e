package validation

import (
	"context"
	"fmt"
	"log"

	"github.com/epy0n0ff/trigger-guard/internal/github"
)

// CheckHumanActor verifies that the workflow was triggered by a human account.
// Allow-listed actors pass without an API call.
func CheckHumanActor(ctx context.Context, fetcher github.AccountTypeFetcher, actor ActorContext) error {
	if actor.IsAllowed() {
		log.Printf("::notice::Actor %s is in the allowed actors list, bypassing human check", actor.Actor)
		return nil
	}

	actorType, err := fetcher.GetAccountType(ctx, actor.Actor)
	if err != nil {
		return fmt.Errorf("failed to fetch account type for %s: %w", actor.Actor, err)
	}

	log.Printf("::notice::Actor type: %s", actorType)

	if actorType != github.AccountTypeUser {
		return &NonHumanActorError{Actor: actor.Actor, Type: actorType}
	}

	log.Printf("::notice::Verified human actor: %s", actor.Actor)
	return nil
}
