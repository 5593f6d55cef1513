package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"murmur/speech"
)

// TranscribeHandler exposes the transcription endpoint.
type TranscribeHandler struct {
	client          *speech.Client
	uploadDir       string
	defaultLanguage string
}

// NewTranscribeHandler creates a transcribe handler.
func NewTranscribeHandler(client *speech.Client, uploadDir, defaultLanguage string) *TranscribeHandler {
	return &TranscribeHandler{
		client:          client,
		uploadDir:       uploadDir,
		defaultLanguage: defaultLanguage,
	}
}

// Transcribe accepts a multipart audio upload plus an optional "language"
// form field, validates the file and returns the transcription result.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	path, cleanup, err := saveUpload(c, h.uploadDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "upload failed",
			"details": err.Error(),
		})
		return
	}
	defer cleanupUpload(cleanup)

	language := c.DefaultPostForm("language", h.defaultLanguage)

	result, err := h.client.Transcribe(c.Request.Context(), path, language)
	if err != nil {
		if errors.Is(err, speech.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "audio validation failed",
				"details": err.Error(),
			})
			return
		}
		log.Printf("Transcription failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "transcription failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
