package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/AdityaSohal/QuickAI/identity"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "authActor"

// RequireAuth validates the bearer token on every request and resolves the
// caller into an identity.Actor stored in the gin context. Free-tier callers
// get their free_usage counter loaded from the identity provider's private
// metadata; a missing counter is initialized to 0 there. Any failure in
// this chain is an authentication failure (401).
func RequireAuth(verifier identity.TokenVerifier, client identity.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Please provide a valid bearer token in the Authorization header")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			log.Printf("WARN: [Auth] Token verification failed: %v", err)
			unauthorized(c, "Authentication failed")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		user, err := client.GetUser(ctx, claims.UserID)
		if err != nil {
			log.Printf("ERROR: [Auth] Identity lookup failed for user %s: %v", claims.UserID, err)
			unauthorized(c, "Authentication failed")
			return
		}

		actor := identity.Actor{Claims: *claims}
		if !claims.Premium() && user.HasFreeUsage {
			actor.FreeUsage = user.FreeUsage
		} else {
			// First metered request (or a premium caller): make sure the
			// provider-side counter exists and starts at 0.
			if err := client.SetFreeUsage(ctx, claims.UserID, 0); err != nil {
				log.Printf("ERROR: [Auth] Failed to initialize free_usage for user %s: %v", claims.UserID, err)
				unauthorized(c, "Authentication failed")
				return
			}
			actor.FreeUsage = 0
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext returns the authenticated caller stored by RequireAuth.
func ActorFromContext(c *gin.Context) (identity.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
