package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateRequest is the body for the text generation endpoints. Length maps
// to the completion token budget.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Length int    `json:"length"`
}

// GenerateImageRequest is the body for image generation. Style, when set,
// is appended to the prompt as "<prompt> in <style>".
type GenerateImageRequest struct {
	Prompt  string `json:"prompt"`
	Style   string `json:"style"`
	Publish bool   `json:"publish"`
}

// WriteArticleHandler handles article generation.
// POST /api/ai/write-article
func (h *APIHandler) WriteArticleHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "Invalid request format.")
		return
	}

	content, err := h.genService.GenerateArticle(c.Request.Context(), actor, req.Prompt, req.Length)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

// BlogTitlesHandler handles blog title generation.
// POST /api/ai/blog-titles
func (h *APIHandler) BlogTitlesHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "Invalid request format.")
		return
	}

	content, err := h.genService.GenerateBlogTitles(c.Request.Context(), actor, req.Prompt, req.Length)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

// GenerateImagesHandler handles text-to-image generation.
// POST /api/ai/generate-images
func (h *APIHandler) GenerateImagesHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "Invalid request format.")
		return
	}

	url, err := h.genService.GenerateImage(c.Request.Context(), actor, req.Prompt, req.Style, req.Publish)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

// RemoveBackgroundHandler handles background removal on an uploaded image.
// POST /api/ai/remove-background (multipart: image)
func (h *APIHandler) RemoveBackgroundHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	path, cleanup, err := saveImageUpload(c, "image")
	if err != nil {
		fail(c, err.Error())
		return
	}
	defer cleanup()

	url, err := h.genService.RemoveBackground(c.Request.Context(), actor, path)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

// RemoveObjectHandler handles object removal on an uploaded image.
// POST /api/ai/remove-object (multipart: image, field: object)
func (h *APIHandler) RemoveObjectHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	object := c.PostForm("object")
	path, cleanup, err := saveImageUpload(c, "image")
	if err != nil {
		fail(c, err.Error())
		return
	}
	defer cleanup()

	url, err := h.genService.RemoveObject(c.Request.Context(), actor, path, object)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

// ReviewResumeHandler handles resume review on an uploaded PDF.
// POST /api/ai/review-resume (multipart: resume, PDF <= 5MB)
func (h *APIHandler) ReviewResumeHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	path, cleanup, err := saveResumeUpload(c)
	if err != nil {
		fail(c, err.Error())
		return
	}
	defer cleanup()

	content, err := h.genService.ReviewResume(c.Request.Context(), actor, path)
	if err != nil {
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}
