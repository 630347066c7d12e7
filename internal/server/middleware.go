package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marklaroya/portfolio/internal/analytics"
	"github.com/marklaroya/portfolio/internal/logging"
)

// RequestLogger replaces gin's default logger with slog and puts the logger
// on the request context.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), log))
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		log.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
		)
	}
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// TrackVisits records a visit for every trackable GET. DNT and excluded
// paths are skipped before anything is hashed.
func TrackVisits(t *analytics.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || !t.ShouldTrack(path, c.GetHeader("DNT") == "1") {
			c.Next()
			return
		}
		c.Next()
		if c.Writer.Status() < 400 {
			t.Track(c.ClientIP(), c.Request.UserAgent(), path)
		}
	}
}
