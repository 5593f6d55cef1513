package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// defaultOrigins covers the Vite dev server ports the demo UI runs on.
const defaultOrigins = "http://localhost:5173,http://localhost:5174"

// CORS returns the CORS middleware. Allowed origins come from the
// CORS_ORIGINS environment variable as a comma-separated list.
func CORS() gin.HandlerFunc {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = defaultOrigins
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type"}
	cfg.MaxAge = 12 * time.Hour

	return cors.New(cfg)
}
