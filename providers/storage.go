package providers

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// UploadOptions parameterize a hosted-image upload.
type UploadOptions struct {
	PublicID string
	Folder   string
	// Transformation is an eager transformation applied during upload,
	// e.g. "e_background_removal".
	Transformation string
}

// UploadResult is the hosted image returned by the store.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// ImageStore hosts images on the object storage/CDN provider and builds
// transformation delivery URLs for already-hosted images.
type ImageStore interface {
	UploadFile(ctx context.Context, path string, opts UploadOptions) (*UploadResult, error)
	UploadDataURI(ctx context.Context, dataURI string, opts UploadOptions) (*UploadResult, error)
	TransformURL(publicID, transformation string) string
	// VerifyURL probes a delivery URL. Best-effort: callers treat a failure
	// as a warning, not an error.
	VerifyURL(ctx context.Context, url string) error
}

type cloudinaryStore struct {
	cloudName string
	apiKey    string
	apiSecret string
	http      *http.Client
}

// NewImageStore creates an ImageStore backed by a Cloudinary-style REST API.
func NewImageStore(cloudName, apiKey, apiSecret string) ImageStore {
	return &cloudinaryStore{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *cloudinaryStore) UploadFile(ctx context.Context, path string, opts UploadOptions) (*UploadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload file '%s': %w", path, err)
	}
	defer file.Close()

	return s.upload(ctx, opts, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			return err
		}
		_, err = io.Copy(part, file)
		return err
	})
}

func (s *cloudinaryStore) UploadDataURI(ctx context.Context, dataURI string, opts UploadOptions) (*UploadResult, error) {
	return s.upload(ctx, opts, func(w *multipart.Writer) error {
		return w.WriteField("file", dataURI)
	})
}

func (s *cloudinaryStore) upload(ctx context.Context, opts UploadOptions, writeFile func(*multipart.Writer) error) (*UploadResult, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	if opts.PublicID != "" {
		params["public_id"] = opts.PublicID
	}
	if opts.Folder != "" {
		params["folder"] = opts.Folder
	}
	if opts.Transformation != "" {
		params["transformation"] = opts.Transformation
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to build upload request: %w", err)
		}
	}
	if err := writer.WriteField("api_key", s.apiKey); err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	if err := writer.WriteField("signature", s.sign(params)); err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	if err := writeFile(writer); err != nil {
		return nil, fmt.Errorf("failed to attach upload payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.http.Do(req)
	if err != nil {
		log.Printf("ERROR: [ImageStore] Upload request failed: %v", err)
		return nil, fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("ERROR: [ImageStore] Upload endpoint returned %d: %s", resp.StatusCode, string(msg))
		return nil, fmt.Errorf("image upload failed with status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("image upload returned no hosted URL")
	}
	return &result, nil
}

// sign computes the request signature: sorted params joined with '&',
// concatenated with the API secret, SHA-1 hex encoded.
func (s *cloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}

func (s *cloudinaryStore) TransformURL(publicID, transformation string) string {
	if transformation == "" {
		return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cloudName, publicID)
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s/%s", s.cloudName, transformation, publicID)
}

func (s *cloudinaryStore) VerifyURL(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("delivery URL returned status %d", resp.StatusCode)
	}
	return nil
}
