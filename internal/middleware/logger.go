package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// RequestIDKey is the gin context key holding the per-request ID
const RequestIDKey = "requestID"

// Logger configuration
type LoggerConfig struct {
	EnableColors bool
	SkipPaths    []string
}

// DefaultLoggerConfig skips the noisy infrastructure endpoints
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		EnableColors: true,
		SkipPaths:    []string{"/health", "/metrics"},
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

// LoggerWithConfig tags every request with a short request ID and logs
// method, path, status, latency and the authenticated user (when any).
// Bodies are never logged; they may carry credentials.
func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		requestID := uuid.NewString()[:8]
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		userID := c.GetString("userID")

		var methodColor, statusColor, resetColor string
		if config.EnableColors {
			methodColor = getMethodColor(c.Request.Method)
			statusColor = getStatusColor(status)
			resetColor = ColorReset
		}

		if userID != "" {
			log.Printf("%s[%s]%s %s%s%s %s %s%d%s %v user=%s",
				ColorGray, requestID, resetColor,
				methodColor, c.Request.Method, resetColor,
				path,
				statusColor, status, resetColor,
				latency, userID)
			return
		}

		log.Printf("%s[%s]%s %s%s%s %s %s%d%s %v",
			ColorGray, requestID, resetColor,
			methodColor, c.Request.Method, resetColor,
			path,
			statusColor, status, resetColor,
			latency)
	}
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return ColorGreen
	case "POST":
		return ColorBlue
	case "PUT":
		return ColorYellow
	case "DELETE":
		return ColorRed
	case "PATCH":
		return ColorPurple
	default:
		return ColorWhite
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ColorGreen
	case status >= 300 && status < 400:
		return ColorCyan
	case status >= 400 && status < 500:
		return ColorYellow
	case status >= 500:
		return ColorRed
	default:
		return ColorWhite
	}
}
