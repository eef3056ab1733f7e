package gate

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/epy0n0ff/trigger-guard/internal/config"
	"github.com/epy0n0ff/trigger-guard/internal/github"
	"github.com/epy0n0ff/trigger-guard/internal/validation"
)

// Decision records the outcome of validating a single workflow trigger
type Decision struct {
	// Actor is the login that triggered the workflow
	Actor string `json:"actor"`

	// Repository is the repository the permission check ran against
	Repository config.RepositoryRef `json:"repository"`

	// Bypassed is true when the actor was allow-listed
	Bypassed bool `json:"bypassed"`

	// Human is true once the humanity check passed
	Human bool `json:"human"`

	// HasWriteAccess is true once the permission check passed
	HasWriteAccess bool `json:"has_write_access"`

	// Allowed is true when the assistant may proceed
	Allowed bool `json:"allowed"`

	// Reason classifies the abort (see Reason)
	Reason string `json:"reason,omitempty"`

	// Error is the abort message, if any
	Error string `json:"error,omitempty"`

	StartedAt   time.Time `json:"-"`
	CompletedAt time.Time `json:"-"`

	// Duration is the total evaluation time in seconds
	Duration float64 `json:"duration_seconds"`
}

// Run validates the trigger: humanity check first, then write permissions.
// Any error aborts the run; insufficient permissions abort with
// validation.ErrInsufficientPermissions.
func Run(ctx context.Context, client github.Client, cfg *config.Config) (*Decision, error) {
	actor := validation.ActorContext{
		Actor:         cfg.Actor,
		AllowedActors: cfg.AllowedActors,
	}

	d := &Decision{
		Actor:      cfg.Actor,
		Repository: cfg.Repository,
		Bypassed:   actor.IsAllowed(),
		StartedAt:  time.Now(),
	}
	defer d.logMetrics(cfg)

	if cfg.Debug {
		log.Printf("Validating trigger: actor=%s, repository=%s, event=%s, run=%s",
			cfg.Actor, cfg.Repository.FullName, cfg.EventName, cfg.RunID)
	}

	if err := validation.CheckHumanActor(ctx, client, actor); err != nil {
		return d.fail(err)
	}
	d.Human = true

	hasWrite, err := validation.CheckWritePermissions(ctx, client, actor, cfg.Repository)
	if err != nil {
		return d.fail(err)
	}
	if !hasWrite {
		return d.fail(validation.ErrInsufficientPermissions)
	}
	d.HasWriteAccess = true
	d.Allowed = true

	d.finalize()
	log.Printf("::notice::✓ %s is authorized to trigger the workflow on %s", d.Actor, d.Repository.FullName)
	return d, nil
}

func (d *Decision) fail(err error) (*Decision, error) {
	d.Reason = Reason(err)
	d.Error = err.Error()
	d.finalize()
	return d, err
}

// finalize completes the decision and calculates duration
func (d *Decision) finalize() {
	d.CompletedAt = time.Now()
	d.Duration = d.CompletedAt.Sub(d.StartedAt).Seconds()
}

func (d *Decision) logMetrics(cfg *config.Config) {
	event := NewMetricsEvent(d, cfg)
	if err := logMetrics(event); err != nil {
		log.Printf("::warning::Failed to log metrics: %v", err)
	}
}

// Reason classifies an abort error for reporting
func Reason(err error) string {
	var nonHuman *validation.NonHumanActorError
	var checkErr *validation.PermissionCheckError
	var overrideErr *config.InvalidRepositoryOverrideError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &nonHuman):
		return "non_human_actor"
	case errors.As(err, &checkErr):
		return "permission_check_failed"
	case errors.Is(err, validation.ErrInsufficientPermissions):
		return "insufficient_permissions"
	case errors.As(err, &overrideErr):
		return "invalid_repository_override"
	default:
		return "error"
	}
}
