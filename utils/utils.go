package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadFilename builds a unique on-disk name for an uploaded file,
// preserving the original extension.
func UploadFilename(field, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%s%s", field, uuid.NewString(), ext)
}

// FormatTime formats a timestamp the way the API reports times.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
