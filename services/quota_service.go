package services

import (
	"context"
	"log"

	"github.com/AdityaSohal/QuickAI/identity"
)

// QuotaService is the usage gate for free-tier identities. Premium
// identities always pass and never touch the usage counter.
type QuotaService interface {
	// Permit reports whether a metered call may proceed.
	Permit(actor identity.Actor) bool
	// Remaining returns the number of metered calls left, or -1 for
	// premium identities.
	Remaining(actor identity.Actor) int
	// Track persists actor.FreeUsage+1 back to the identity provider after
	// a successful call. Best-effort: failures are logged and swallowed,
	// never rolled back. Not atomic with the generation call.
	Track(ctx context.Context, actor identity.Actor)
}

type quotaService struct {
	identityClient identity.Client
	limit          int
}

// NewQuotaService creates a QuotaService with the given free-tier ceiling.
func NewQuotaService(identityClient identity.Client, limit int) QuotaService {
	return &quotaService{identityClient: identityClient, limit: limit}
}

func (s *quotaService) Permit(actor identity.Actor) bool {
	if actor.Premium() {
		return true
	}
	return actor.FreeUsage < s.limit
}

func (s *quotaService) Remaining(actor identity.Actor) int {
	if actor.Premium() {
		return -1
	}
	remaining := s.limit - actor.FreeUsage
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (s *quotaService) Track(ctx context.Context, actor identity.Actor) {
	if actor.Premium() {
		return
	}
	if err := s.identityClient.SetFreeUsage(ctx, actor.UserID, actor.FreeUsage+1); err != nil {
		// The generation already succeeded; an increment failure
		// under-counts usage and is tolerated.
		log.Printf("WARN: [QuotaService] Usage update failed for user %s: %v", actor.UserID, err)
		return
	}
	log.Printf("INFO: [QuotaService] Incremented free usage for user %s to %d.", actor.UserID, actor.FreeUsage+1)
}
