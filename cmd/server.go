package cmd

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"murmur/audio"
	"murmur/config"
	"murmur/handlers"
	"murmur/middleware"
	"murmur/speech"
)

// StartWebServer starts the web server
func StartWebServer(cfg *config.Config) {
	// Set production mode if not specified
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the domain services
	validator := audio.NewValidator(audio.DefaultFormats(), cfg.Limits())
	analyzer := audio.NewAnalyzer(audio.NewFileDecoder(), cfg.Audio.FallbackSampleRate)
	client := speech.NewClient(cfg.Speech.CredentialsPath, validator, speech.NewMockTranscriber())

	// Initialize handlers
	audioHandler := handlers.NewAudioHandler(validator, analyzer, cfg.Audio.UploadDir)
	transcribeHandler := handlers.NewTranscribeHandler(client, cfg.Audio.UploadDir, cfg.Speech.LanguageCode)
	healthHandler := handlers.NewHealthHandler(client)
	settingsHandler := handlers.NewSettingsHandler(cfg.Speech.LanguageCode, cfg.Audio.UploadDir)

	// Setup router
	r := gin.Default()

	// Apply middleware
	r.Use(middleware.CORS())
	r.Use(middleware.Logging())

	// Setup routes
	SetupRoutes(r, audioHandler, transcribeHandler, healthHandler, settingsHandler)

	// Start server
	portStr := strconv.Itoa(cfg.Server.Port)
	if serverPort := os.Getenv("SERVER_PORT"); serverPort != "" {
		portStr = serverPort
	}

	log.Printf("Murmur web server starting on port %s", portStr)
	log.Printf("Upload location: %s", cfg.Audio.UploadDir)
	if !client.Available() {
		log.Printf("Speech backend not authenticated; running with the %s transcriber", client.Transcriber().Name())
	}

	if err := r.Run(":" + portStr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// SetupRoutes configures all the HTTP routes
func SetupRoutes(r *gin.Engine, audioHandler *handlers.AudioHandler, transcribeHandler *handlers.TranscribeHandler, healthHandler *handlers.HealthHandler, settingsHandler *handlers.SettingsHandler) {
	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	// API routes group
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)

		// Recognized upload formats
		apiGroup.GET("/formats", audioHandler.Formats)

		// Validation and analysis endpoints
		apiGroup.POST("/validate", audioHandler.Validate)
		apiGroup.POST("/analyze", audioHandler.Analyze)

		// Transcription endpoint
		apiGroup.POST("/transcribe", transcribeHandler.Transcribe)

		// Settings endpoints
		apiGroup.GET("/settings", settingsHandler.GetSettings)
		apiGroup.POST("/settings", settingsHandler.UpdateSettings)
	}
}
