package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"murmur/audio"
	"murmur/types"
)

// AudioHandler exposes the validation and analysis endpoints.
type AudioHandler struct {
	validator *audio.Validator
	analyzer  *audio.Analyzer
	uploadDir string
}

// NewAudioHandler creates an audio handler.
func NewAudioHandler(validator *audio.Validator, analyzer *audio.Analyzer, uploadDir string) *AudioHandler {
	return &AudioHandler{
		validator: validator,
		analyzer:  analyzer,
		uploadDir: uploadDir,
	}
}

// Formats lists the recognized upload formats with their encodings.
func (h *AudioHandler) Formats(c *gin.Context) {
	table := h.validator.Formats()

	formats := make([]types.FormatInfo, 0, len(table))
	for _, ext := range table.Extensions() {
		enc, _ := table.Classify(ext)
		formats = append(formats, types.FormatInfo{
			Extension:          ext,
			Encoding:           string(enc),
			RequiresConversion: audio.RequiresConversion(ext),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"formats": formats,
		"count":   len(formats),
	})
}

// Validate checks an uploaded file against the format and size constraints.
// The result is returned with HTTP 200 either way; the valid flag carries
// the outcome.
func (h *AudioHandler) Validate(c *gin.Context) {
	path, cleanup, err := saveUpload(c, h.uploadDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "upload failed",
			"details": err.Error(),
		})
		return
	}
	defer cleanupUpload(cleanup)

	result := h.validator.Validate(path)

	info, infoErr := h.validator.GetInfo(path)
	if infoErr != nil {
		info = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   result.Valid,
		"message": result.Message,
		"info":    info,
	})
}

// Analyze validates an uploaded file and, when it passes, runs the content
// analyzer. Decode failure degrades the response instead of failing it:
// analysis is advisory.
func (h *AudioHandler) Analyze(c *gin.Context) {
	path, cleanup, err := saveUpload(c, h.uploadDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "upload failed",
			"details": err.Error(),
		})
		return
	}
	defer cleanupUpload(cleanup)

	result := h.validator.Validate(path)
	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"valid":   false,
			"message": result.Message,
		})
		return
	}

	info, err := h.validator.GetInfo(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "file access error",
			"details": err.Error(),
		})
		return
	}

	analysis, err := h.analyzer.Analyze(path)
	if err != nil {
		log.Printf("Content analysis degraded for %s: %v", info.Filename, err)
		info.DecodeError = err.Error()
	} else {
		info.Analysis = analysis
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"message": result.Message,
		"info":    info,
	})
}
