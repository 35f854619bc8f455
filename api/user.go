package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/AdityaSohal/QuickAI/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUserCreationsHandler returns the caller's unpublished creations.
// GET /api/user/get-user-creations
func (h *APIHandler) GetUserCreationsHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	creations, err := h.creationRepo.GetPrivateByUserID(actor.UserID)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "creations": creations})
}

// GetAllUserCreationsHandler returns every creation the caller owns.
// GET /api/user/get-all-user-creations
func (h *APIHandler) GetAllUserCreationsHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	creations, err := h.creationRepo.GetByUserID(actor.UserID)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "creations": creations})
}

// GetPublishedCreationsHandler returns published image creations from all
// users, with like aggregates for the caller and the owner's display name.
// GET /api/user/get-published-creations
func (h *APIHandler) GetPublishedCreationsHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	creations, err := h.creationRepo.GetPublished()
	if err != nil {
		fail(c, err.Error())
		return
	}

	views := make([]*models.PublishedCreation, 0, len(creations))
	for _, creation := range creations {
		view := &models.PublishedCreation{
			Creation:  *creation,
			LikeCount: len(creation.Likes),
		}
		for _, id := range creation.Likes {
			if id == actor.UserID {
				view.IsLiked = true
				break
			}
		}
		if user, err := h.identityClient.GetUser(c.Request.Context(), creation.UserID); err != nil {
			log.Printf("WARN: [API] Failed to fetch profile for user %s: %v", creation.UserID, err)
			view.FirstName = "Unknown"
			view.LastName = "User"
		} else {
			view.FirstName = user.FirstName
			view.LastName = user.LastName
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "creations": views})
}

// ToggleLikeCreationsHandler flips the caller's like on a creation.
// POST /api/user/toggle-like-creations
func (h *APIHandler) ToggleLikeCreationsHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req struct {
		CreationID uint `json:"creationId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CreationID == 0 {
		fail(c, "Creation ID is required")
		return
	}

	liked, err := h.creationRepo.ToggleLike(actor.UserID, req.CreationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, "Creation not found")
			return
		}
		fail(c, "Something went wrong while toggling like.")
		return
	}

	message := "You unliked this creation."
	if liked {
		message = "You liked this creation!"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "liked": liked, "message": message})
}
