// admin.go - privacy-conscious visitor dashboard
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marklaroya/portfolio/internal/analytics"
	"github.com/marklaroya/portfolio/internal/auth"
	"github.com/marklaroya/portfolio/internal/server"
	"github.com/marklaroya/portfolio/internal/web"
)

const (
	sessionCookie   = "admin_session"
	adminPath       = "/admin"
	visitsPageLimit = 200
)

type adminDeps struct {
	auth      *auth.Authenticator
	visits    *analytics.Store
	tracker   *analytics.Tracker
	limiter   *server.RateLimiter
	log       *slog.Logger
	retention time.Duration
}

// who identifies the client in logs without writing its address.
func (d adminDeps) who(c *gin.Context) string {
	if d.tracker == nil {
		return "unknown"
	}
	return d.tracker.HashIP(c.ClientIP())
}

func setSession(c *gin.Context, value string, maxAge int) {
	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, value, maxAge, adminPath, "", secure, true)
}

// Middleware to check admin authentication
func adminAuthMiddleware(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, adminPath+"/login")
			c.Abort()
			return
		}
		if _, err := a.ParseToken(token); err != nil {
			c.Redirect(http.StatusFound, adminPath+"/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, d adminDeps) {
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.retention <= 0 {
		d.retention = 365 * 24 * time.Hour
	}

	r.GET(adminPath, func(c *gin.Context) {
		c.Redirect(http.StatusFound, adminPath+"/dashboard")
	})

	r.GET(adminPath+"/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, web.PageAdminLogin, gin.H{})
	})

	r.POST(adminPath+"/login", d.limiter.LimitByIP(), func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if !d.auth.CheckCredentials(username, password) {
			d.log.Warn("failed admin login", "client", d.who(c))
			c.HTML(http.StatusUnauthorized, web.PageAdminLogin, gin.H{"Error": "Invalid credentials"})
			return
		}

		token, err := d.auth.IssueToken(username)
		if err != nil {
			d.log.Error("issue admin session", "err", err)
			c.HTML(http.StatusInternalServerError, web.PageAdminError, gin.H{"Error": "Could not start a session"})
			return
		}
		setSession(c, token, int(auth.SessionTTL.Seconds()))
		d.log.Info("admin login", "client", d.who(c))
		c.Redirect(http.StatusFound, adminPath+"/dashboard")
	})

	logout := func(c *gin.Context) {
		setSession(c, "", -1)
		d.log.Info("admin logout", "client", d.who(c))
		c.Redirect(http.StatusFound, adminPath+"/login")
	}
	r.GET(adminPath+"/logout", logout)
	r.POST(adminPath+"/logout", logout)

	// Protected admin routes group
	admin := r.Group(adminPath)
	admin.Use(adminAuthMiddleware(d.auth))

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := d.visits.Stats(c.Request.Context())
		if err != nil {
			d.log.Error("load admin stats", "err", err)
			c.HTML(http.StatusInternalServerError, web.PageAdminError, gin.H{"Error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, web.PageAdminDashboard, gin.H{"Stats": stats})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visits, err := d.visits.Recent(c.Request.Context(), visitsPageLimit)
		if err != nil {
			d.log.Error("load visitors", "err", err)
			c.HTML(http.StatusInternalServerError, web.PageAdminError, gin.H{"Error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, web.PageAdminVisitors, gin.H{"Visits": visits})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := d.visits.Stats(c.Request.Context())
		if err != nil {
			d.log.Error("load admin stats", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Runs the retention cleanup now instead of waiting for the daily job.
	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := d.visits.Cleanup(c.Request.Context(), d.retention)
		if err != nil {
			d.log.Error("privacy cleanup", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		d.log.Info("privacy cleanup by admin", "removed", n, "client", d.who(c))
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := d.visits.Stats(c.Request.Context())
		if err != nil {
			d.log.Error("export admin stats", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		d.log.Info("admin stats exported", "client", d.who(c))
		c.JSON(http.StatusOK, stats)
	})
}
