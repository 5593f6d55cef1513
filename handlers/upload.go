package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveUpload writes the multipart "audio" file into a unique subdirectory of
// dir, keeping the client's file name so validation messages and transcripts
// refer to it. The caller removes the returned cleanup directory when done.
func saveUpload(c *gin.Context, dir string) (path string, cleanup string, err error) {
	file, err := c.FormFile("audio")
	if err != nil {
		return "", "", fmt.Errorf("no audio file provided")
	}

	sub := filepath.Join(dir, uuid.New().String())
	if err := os.MkdirAll(sub, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	dst := filepath.Join(sub, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		os.RemoveAll(sub)
		return "", "", fmt.Errorf("failed to save upload: %w", err)
	}
	return dst, sub, nil
}

// cleanupUpload removes an upload subdirectory, logging nothing: uploads are
// transient by design.
func cleanupUpload(cleanup string) {
	if cleanup != "" {
		_ = os.RemoveAll(cleanup)
	}
}
