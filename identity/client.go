package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// User is the identity provider's view of a user, including the private
// free_usage counter that only the quota gate is allowed to touch.
type User struct {
	ID        string
	FirstName string
	LastName  string
	ImageURL  string
	FreeUsage int
	// HasFreeUsage is false when the provider has never stored a counter
	// for this user.
	HasFreeUsage bool
}

// Client talks to the identity provider's user API.
type Client interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	SetFreeUsage(ctx context.Context, userID string, usage int) error
}

type httpClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an identity provider API client.
func NewClient(baseURL, apiKey string) Client {
	return &httpClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type userPayload struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ImageURL        string `json:"image_url"`
	PrivateMetadata struct {
		FreeUsage *int `json:"free_usage"`
	} `json:"private_metadata"`
}

func (c *httpClient) GetUser(ctx context.Context, userID string) (*User, error) {
	url := fmt.Sprintf("%s/v1/users/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider lookup failed for user %s: %w", userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("identity provider returned %d for user %s: %s", resp.StatusCode, userID, string(body))
	}

	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode identity provider response for user %s: %w", userID, err)
	}

	user := &User{
		ID:        payload.ID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		ImageURL:  payload.ImageURL,
	}
	if payload.PrivateMetadata.FreeUsage != nil {
		user.FreeUsage = *payload.PrivateMetadata.FreeUsage
		user.HasFreeUsage = true
	}
	return user, nil
}

func (c *httpClient) SetFreeUsage(ctx context.Context, userID string, usage int) error {
	body, err := json.Marshal(map[string]interface{}{
		"private_metadata": map[string]int{"free_usage": usage},
	})
	if err != nil {
		return fmt.Errorf("failed to encode metadata update: %w", err)
	}

	url := fmt.Sprintf("%s/v1/users/%s/metadata", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build metadata update request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider metadata update failed for user %s: %w", userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("identity provider returned %d updating metadata for user %s: %s", resp.StatusCode, userID, string(respBody))
	}

	log.Printf("INFO: [Identity] Updated free_usage=%d for user %s.", usage, userID)
	return nil
}
