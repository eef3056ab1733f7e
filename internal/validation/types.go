package validation

import "strings"

// ActorContext describes who triggered the workflow and who is exempt from checks
type ActorContext struct {
	// Actor is the login that triggered the workflow
	Actor string

	// AllowedActors bypass both checks (case-insensitive)
	AllowedActors []string
}

// IsAllowed reports whether the actor appears in the allow list, ignoring case
func (a ActorContext) IsAllowed() bool {
	actor := strings.ToLower(a.Actor)
	for _, allowed := range a.AllowedActors {
		if strings.ToLower(allowed) == actor {
			return true
		}
	}
	return false
}
