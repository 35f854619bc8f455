package providers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"
)

// ImageGenerator turns a prompt into raw image bytes.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

type clipDropGenerator struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewImageGenerator creates an ImageGenerator backed by a ClipDrop-style
// text-to-image endpoint: multipart prompt in, PNG bytes out.
func NewImageGenerator(endpoint, apiKey string) ImageGenerator {
	return &clipDropGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *clipDropGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("failed to build image generation request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build image generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build image generation request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("x-api-key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		log.Printf("ERROR: [ImageGenerator] Text-to-image request failed: %v", err)
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("ERROR: [ImageGenerator] Text-to-image endpoint returned %d: %s", resp.StatusCode, string(msg))
		return nil, fmt.Errorf("image generation failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated image: %w", err)
	}
	return data, nil
}
