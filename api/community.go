package api

import (
	"net/http"
	"strings"

	"github.com/AdityaSohal/QuickAI/services"

	"github.com/gin-gonic/gin"
)

// PostImageHandler shares an uploaded image to the community feed.
// POST /api/community/post-image (multipart: image, field: description)
func (h *APIHandler) PostImageHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	description := c.PostForm("description")
	path, cleanup, err := saveImageUpload(c, "image")
	if err != nil {
		fail(c, err.Error())
		return
	}
	defer cleanup()

	imageURL, err := h.communityService.PostImage(c.Request.Context(), actor, path, description)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image posted successfully",
		"data": gin.H{
			"imageUrl":    imageURL,
			"description": strings.TrimSpace(description),
		},
	})
}

// GetCommunityPostsHandler returns all community posts with like aggregates
// and poster profiles.
// GET /api/community/posts
func (h *APIHandler) GetCommunityPostsHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	posts, err := h.communityService.ListPosts(c.Request.Context(), actor.UserID)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// ToggleCommunityLikeHandler flips the caller's like on a community post.
// POST /api/community/toggle-like
func (h *APIHandler) ToggleCommunityLikeHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PostID == 0 {
		fail(c, "Post ID is required")
		return
	}

	liked, err := h.communityService.ToggleLike(c.Request.Context(), actor.UserID, req.PostID)
	if err != nil {
		if services.IsValidation(err) {
			fail(c, err.Error())
			return
		}
		fail(c, "Something went wrong while toggling like.")
		return
	}

	message := "You unliked this post."
	if liked {
		message = "You liked this post!"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "liked": liked, "message": message})
}
