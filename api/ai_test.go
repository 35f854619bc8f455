package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/AdityaSohal/QuickAI/config"
	"github.com/AdityaSohal/QuickAI/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGenerationService is a mock type for services.GenerationService
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateArticle(ctx context.Context, actor identity.Actor, prompt string, length int) (string, error) {
	args := m.Called(ctx, actor, prompt, length)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) GenerateBlogTitles(ctx context.Context, actor identity.Actor, prompt string, length int) (string, error) {
	args := m.Called(ctx, actor, prompt, length)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) GenerateImage(ctx context.Context, actor identity.Actor, prompt, style string, publish bool) (string, error) {
	args := m.Called(ctx, actor, prompt, style, publish)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) RemoveBackground(ctx context.Context, actor identity.Actor, imagePath string) (string, error) {
	args := m.Called(ctx, actor, imagePath)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) RemoveObject(ctx context.Context, actor identity.Actor, imagePath, object string) (string, error) {
	args := m.Called(ctx, actor, imagePath, object)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) ReviewResume(ctx context.Context, actor identity.Actor, resumePath string) (string, error) {
	args := m.Called(ctx, actor, resumePath)
	return args.String(0), args.Error(1)
}

func setupUploadConfig(t *testing.T) {
	t.Helper()
	config.AppConfig.Uploads.Dir = t.TempDir()
	config.AppConfig.Uploads.MaxImageSize = 10 * 1024 * 1024
	config.AppConfig.Uploads.MaxPDFSize = 5 * 1024 * 1024
}

func newTestRouter(gen *MockGenerationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAPIHandler(gen, nil, nil, nil, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("authActor", identity.Actor{
			Claims: identity.Claims{UserID: "user_premium", Plan: "premium"},
		})
		c.Next()
	})
	router.POST("/api/ai/write-article", handler.WriteArticleHandler)
	router.POST("/api/ai/remove-background", handler.RemoveBackgroundHandler)
	router.POST("/api/ai/review-resume", handler.ReviewResumeHandler)
	return router
}

func multipartBody(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteArticleHandler(t *testing.T) {
	t.Run("success envelope carries the content", func(t *testing.T) {
		gen := new(MockGenerationService)
		gen.On("GenerateArticle", mock.Anything, mock.Anything, "the future of ai", 800).
			Return("a long article", nil)
		router := newTestRouter(gen)

		body := bytes.NewBufferString(`{"prompt":"the future of ai","length":800}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/write-article", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "a long article", resp["content"])
	})

	t.Run("malformed body fails inside a 200 envelope", func(t *testing.T) {
		router := newTestRouter(new(MockGenerationService))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/write-article", bytes.NewBufferString("not json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Invalid request format.", resp["message"])
	})
}

func TestRemoveBackgroundHandler_UploadValidation(t *testing.T) {
	setupUploadConfig(t)

	t.Run("missing file is rejected before the pipeline runs", func(t *testing.T) {
		gen := new(MockGenerationService)
		router := newTestRouter(gen)

		body, contentType := multipartBody(t, "unrelated", "x.png", "image/png", []byte("png"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/remove-background", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		resp := decodeResponse(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "No image uploaded", resp["message"])
		gen.AssertNotCalled(t, "RemoveBackground", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-image mime type is rejected", func(t *testing.T) {
		gen := new(MockGenerationService)
		router := newTestRouter(gen)

		body, contentType := multipartBody(t, "image", "notes.txt", "text/plain", []byte("hello"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/remove-background", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		resp := decodeResponse(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Invalid file type. Only images and PDFs are allowed.", resp["message"])
		gen.AssertNotCalled(t, "RemoveBackground", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized image is rejected", func(t *testing.T) {
		config.AppConfig.Uploads.MaxImageSize = 16
		defer func() { config.AppConfig.Uploads.MaxImageSize = 10 * 1024 * 1024 }()

		gen := new(MockGenerationService)
		router := newTestRouter(gen)

		body, contentType := multipartBody(t, "image", "big.png", "image/png", bytes.Repeat([]byte("x"), 64))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/remove-background", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		resp := decodeResponse(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Image file size should be less than 10 MB", resp["message"])
		gen.AssertNotCalled(t, "RemoveBackground", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid image reaches the pipeline and is cleaned up", func(t *testing.T) {
		gen := new(MockGenerationService)
		gen.On("RemoveBackground", mock.Anything, mock.Anything, mock.Anything).
			Return("https://cdn.example.com/clean.png", nil)
		router := newTestRouter(gen)

		body, contentType := multipartBody(t, "image", "photo.png", "image/png", []byte("png-bytes"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/remove-background", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		resp := decodeResponse(t, w)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "https://cdn.example.com/clean.png", resp["content"])
		gen.AssertExpectations(t)
	})
}

func TestReviewResumeHandler_UploadValidation(t *testing.T) {
	setupUploadConfig(t)

	t.Run("non-pdf upload is rejected", func(t *testing.T) {
		gen := new(MockGenerationService)
		router := newTestRouter(gen)

		body, contentType := multipartBody(t, "resume", "resume.docx", "application/msword", []byte("doc"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/review-resume", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		resp := decodeResponse(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Please upload a valid PDF file", resp["message"])
		gen.AssertNotCalled(t, "ReviewResume", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized pdf is rejected", func(t *testing.T) {
		config.AppConfig.Uploads.MaxPDFSize = 16
		defer func() { config.AppConfig.Uploads.MaxPDFSize = 5 * 1024 * 1024 }()

		gen := new(MockGenerationService)
		router := newTestRouter(gen)

		body, contentType := multipartBody(t, "resume", "resume.pdf", "application/pdf", bytes.Repeat([]byte("x"), 64))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/review-resume", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		resp := decodeResponse(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Resume file size should be less than 5 MB", resp["message"])
		gen.AssertNotCalled(t, "ReviewResume", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid pdf reaches the pipeline", func(t *testing.T) {
		gen := new(MockGenerationService)
		gen.On("ReviewResume", mock.Anything, mock.Anything, mock.Anything).
			Return("solid resume, tighten the summary", nil)
		router := newTestRouter(gen)

		body, contentType := multipartBody(t, "resume", "resume.pdf", "application/pdf", []byte("%PDF-1.4"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ai/review-resume", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		resp := decodeResponse(t, w)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "solid resume, tighten the summary", resp["content"])
		gen.AssertExpectations(t)
	})
}
