package api

import (
	"log"
	"net/http"

	"github.com/AdityaSohal/QuickAI/identity"
	"github.com/AdityaSohal/QuickAI/middleware"
	"github.com/AdityaSohal/QuickAI/repository"
	"github.com/AdityaSohal/QuickAI/services"

	"github.com/gin-gonic/gin"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	genService       services.GenerationService
	communityService services.CommunityService
	quotaService     services.QuotaService
	creationRepo     repository.CreationRepository
	identityClient   identity.Client
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	genService services.GenerationService,
	communityService services.CommunityService,
	quotaService services.QuotaService,
	creationRepo repository.CreationRepository,
	identityClient identity.Client,
) *APIHandler {
	return &APIHandler{
		genService:       genService,
		communityService: communityService,
		quotaService:     quotaService,
		creationRepo:     creationRepo,
		identityClient:   identityClient,
	}
}

// actor fetches the authenticated caller; a missing actor means the route
// was wired without RequireAuth, which is a configuration error.
func (h *APIHandler) actor(c *gin.Context) (identity.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		log.Printf("ERROR: [API] No authenticated actor in context for %s. Route wired without auth middleware?", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication failed",
		})
	}
	return actor, ok
}

// fail renders a pipeline failure. Everything past authentication reports
// HTTP 200 with success:false; clients branch on the body, not the status.
func fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"message": message,
	})
}
