package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/AdityaSohal/QuickAI/identity"
	"github.com/AdityaSohal/QuickAI/models"
	"github.com/AdityaSohal/QuickAI/providers"
	"github.com/AdityaSohal/QuickAI/repository"

	"github.com/google/uuid"
)

const resumeReviewPrompt = "Review the following resume and provide constructive feedback on its strengths, weaknesses, and areas for improvement.\n\nResume Content:\n\n%s"

// GenerationService runs the request pipeline for every generation
// capability: gate by plan/quota, validate, invoke the provider adapter,
// record the creation, track usage.
type GenerationService interface {
	GenerateArticle(ctx context.Context, actor identity.Actor, prompt string, length int) (string, error)
	GenerateBlogTitles(ctx context.Context, actor identity.Actor, prompt string, length int) (string, error)
	GenerateImage(ctx context.Context, actor identity.Actor, prompt, style string, publish bool) (string, error)
	RemoveBackground(ctx context.Context, actor identity.Actor, imagePath string) (string, error)
	RemoveObject(ctx context.Context, actor identity.Actor, imagePath, object string) (string, error)
	ReviewResume(ctx context.Context, actor identity.Actor, resumePath string) (string, error)
}

type generationService struct {
	text      providers.TextGenerator
	image     providers.ImageGenerator
	store     providers.ImageStore
	resume    providers.ResumeParser
	creations repository.CreationRepository
	quota     QuotaService
}

// NewGenerationService creates a GenerationService over the provider
// adapters and the creations store.
func NewGenerationService(
	text providers.TextGenerator,
	image providers.ImageGenerator,
	store providers.ImageStore,
	resume providers.ResumeParser,
	creations repository.CreationRepository,
	quota QuotaService,
) GenerationService {
	return &generationService{
		text:      text,
		image:     image,
		store:     store,
		resume:    resume,
		creations: creations,
		quota:     quota,
	}
}

// GenerateArticle produces a long-form article. Free-tier metered. A failed
// creations insert is logged but does not fail the response.
func (s *generationService) GenerateArticle(ctx context.Context, actor identity.Actor, prompt string, length int) (string, error) {
	if prompt == "" {
		return "", validationErr("Please provide a prompt for article generation.")
	}
	if !s.quota.Permit(actor) {
		return "", ErrQuotaExceeded
	}

	content, err := s.text.Generate(ctx, prompt, length)
	if err != nil {
		return "", err
	}

	record := &models.Creation{
		UserID:  actor.UserID,
		Prompt:  prompt,
		Content: content,
		Type:    models.CreationTypeArticle,
	}
	if err := s.creations.Create(record); err != nil {
		log.Printf("WARN: [GenerationService] Database save failed for article by user %s: %v", actor.UserID, err)
	}

	s.quota.Track(ctx, actor)
	return content, nil
}

// GenerateBlogTitles produces blog title suggestions. Free-tier metered.
func (s *generationService) GenerateBlogTitles(ctx context.Context, actor identity.Actor, prompt string, length int) (string, error) {
	if prompt == "" {
		return "", validationErr("Prompt is required.")
	}
	if !s.quota.Permit(actor) {
		return "", ErrQuotaExceeded
	}

	content, err := s.text.Generate(ctx, prompt, length)
	if err != nil {
		return "", err
	}

	record := &models.Creation{
		UserID:  actor.UserID,
		Prompt:  prompt,
		Content: content,
		Type:    models.CreationTypeBlogTitle,
	}
	if err := s.creations.Create(record); err != nil {
		return "", err
	}

	s.quota.Track(ctx, actor)
	return content, nil
}

// GenerateImage produces an image from a prompt, hosts it, and records the
// hosted URL. Premium only; publish marks it for the published feed.
func (s *generationService) GenerateImage(ctx context.Context, actor identity.Actor, prompt, style string, publish bool) (string, error) {
	if !actor.Premium() {
		return "", ErrPremiumRequired
	}
	if prompt == "" {
		return "", validationErr("Prompt is required.")
	}
	if style != "" {
		prompt = prompt + " in " + style
	}

	data, err := s.image.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	uploaded, err := s.store.UploadDataURI(ctx, dataURI, providers.UploadOptions{})
	if err != nil {
		return "", err
	}

	record := &models.Creation{
		UserID:  actor.UserID,
		Prompt:  prompt,
		Content: uploaded.SecureURL,
		Type:    models.CreationTypeImage,
		Publish: publish,
	}
	if err := s.creations.Create(record); err != nil {
		return "", err
	}

	return uploaded.SecureURL, nil
}

// RemoveBackground hosts an uploaded image with the background-removal
// transform applied during upload. Premium only.
func (s *generationService) RemoveBackground(ctx context.Context, actor identity.Actor, imagePath string) (string, error) {
	if !actor.Premium() {
		return "", ErrPremiumRequired
	}
	if imagePath == "" {
		return "", validationErr("No image uploaded")
	}

	uploaded, err := s.store.UploadFile(ctx, imagePath, providers.UploadOptions{
		Transformation: "e_background_removal",
	})
	if err != nil {
		return "", err
	}

	record := &models.Creation{
		UserID:  actor.UserID,
		Prompt:  "Remove Background From Image",
		Content: uploaded.SecureURL,
		Type:    models.CreationTypeImage,
	}
	if err := s.creations.Create(record); err != nil {
		return "", err
	}

	return uploaded.SecureURL, nil
}

// RemoveObject hosts an uploaded image and returns a delivery URL with the
// named object removed. The transformed URL is probed best-effort; a failed
// probe never blocks the response. Premium only.
func (s *generationService) RemoveObject(ctx context.Context, actor identity.Actor, imagePath, object string) (string, error) {
	if !actor.Premium() {
		return "", ErrPremiumRequired
	}
	if imagePath == "" || object == "" {
		return "", validationErr("Missing image or object name")
	}

	uploaded, err := s.store.UploadFile(ctx, imagePath, providers.UploadOptions{
		PublicID: "object_removal_" + uuid.NewString(),
	})
	if err != nil {
		return "", err
	}

	transformedURL := s.store.TransformURL(uploaded.PublicID, "e_gen_removal:"+object)
	if err := s.store.VerifyURL(ctx, transformedURL); err != nil {
		log.Printf("WARN: [GenerationService] Could not verify transformed image for user %s: %v", actor.UserID, err)
	}

	record := &models.Creation{
		UserID:  actor.UserID,
		Prompt:  fmt.Sprintf("Remove %s from image", object),
		Content: transformedURL,
		Type:    models.CreationTypeImage,
	}
	if err := s.creations.Create(record); err != nil {
		return "", err
	}

	return transformedURL, nil
}

// ReviewResume extracts the text of an uploaded PDF and asks the language
// model for a critique. Premium only. PDF mime/size validation happens in
// the handler before this is called.
func (s *generationService) ReviewResume(ctx context.Context, actor identity.Actor, resumePath string) (string, error) {
	if !actor.Premium() {
		return "", ErrPremiumRequired
	}
	if resumePath == "" {
		return "", validationErr("Please upload a valid PDF file")
	}

	text, err := s.resume.ExtractText(resumePath)
	if err != nil {
		return "", err
	}

	content, err := s.text.Generate(ctx, fmt.Sprintf(resumeReviewPrompt, text), 0)
	if err != nil {
		return "", err
	}

	record := &models.Creation{
		UserID:  actor.UserID,
		Prompt:  "Review the uploaded resume",
		Content: content,
		Type:    models.CreationTypeResumeReview,
	}
	if err := s.creations.Create(record); err != nil {
		return "", err
	}

	return content, nil
}
