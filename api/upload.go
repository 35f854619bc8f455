package api

import (
	"errors"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/AdityaSohal/QuickAI/config"
	"github.com/AdityaSohal/QuickAI/utils"

	"github.com/gin-gonic/gin"
)

// saveImageUpload validates and stores an uploaded image in the uploads
// directory. Validation (presence, mime type, size ceiling) happens before
// anything touches disk or an external provider. The returned cleanup must
// run on every exit path.
func saveImageUpload(c *gin.Context, field string) (string, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, errors.New("No image uploaded")
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", nil, errors.New("Invalid file type. Only images and PDFs are allowed.")
	}
	if fh.Size > config.AppConfig.Uploads.MaxImageSize {
		return "", nil, errors.New("Image file size should be less than 10 MB")
	}
	return storeUpload(c, field, fh)
}

// saveResumeUpload validates and stores an uploaded PDF resume.
func saveResumeUpload(c *gin.Context) (string, func(), error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return "", nil, errors.New("Please upload a valid PDF file")
	}
	if fh.Header.Get("Content-Type") != "application/pdf" {
		return "", nil, errors.New("Please upload a valid PDF file")
	}
	if fh.Size > config.AppConfig.Uploads.MaxPDFSize {
		return "", nil, errors.New("Resume file size should be less than 5 MB")
	}
	return storeUpload(c, "resume", fh)
}

func storeUpload(c *gin.Context, field string, fh *multipart.FileHeader) (string, func(), error) {
	path := filepath.Join(config.AppConfig.Uploads.Dir, utils.UploadFilename(field, fh.Filename))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		log.Printf("ERROR: [API] Failed to store uploaded %s file: %v", field, err)
		return "", nil, errors.New("Failed to process uploaded file")
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil {
			log.Printf("WARN: [API] Failed to clean up uploaded file '%s': %v", path, err)
		}
	}
	return path, cleanup, nil
}
