// admin.go - privacy-conscious visitor tracking and the admin area
package main

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const adminCookie = "admin_token"

// Middleware to check admin authentication
func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// untrackedPrefixes are never recorded as page views.
var untrackedPrefixes = []string{
	"/static/",
	"/admin/",
	"/favicon",
	"/privacy",
	"/reveal/",
	"/healthz",
}

// visitorTracking records page views with hashed IPs in the background.
func (s *server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashed := s.store.HashIP(c.ClientIP())
		ua := c.GetHeader("User-Agent")
		at := s.clock.Now()
		s.bg.Add(1)
		go func() {
			defer s.bg.Done()
			// detached: the request context ends with the response
			if err := s.store.RecordVisit(context.Background(), hashed, ua, path, at); err != nil {
				s.logger.Warn("record visitor", "err", err)
			}
		}()
		c.Next()
	}
}

// cleanupVisitorData drops metrics older than the retention window.
func (s *server) cleanupVisitorData() (int64, error) {
	before := s.clock.Now().Add(-s.cfg.Privacy.Retention)
	n, err := s.store.Cleanup(context.Background(), before)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("privacy cleanup", "removed", n, "before", before.Format(time.DateOnly))
	}
	return n, nil
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		lang := s.lang(c)
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"Brand":     s.site.Brand,
			"Lang":      lang,
			"Retention": s.cfg.Privacy.Retention,
		})
	})

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"Title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")
		creds := s.cfg.Admin

		if creds.UsingDefaults() && gin.Mode() == gin.DebugMode {
			s.logger.Warn("using default admin credentials; set ADMIN_USERNAME and ADMIN_PASSWORD")
		}

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password)) == 1
		if !userOK || !passOK {
			s.logger.Warn("failed admin login", "visitor", s.store.HashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"Title": "Admin Login",
				"Error": "Invalid credentials",
			})
			return
		}

		// Set secure cookie (24 hours)
		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		s.logger.Info("admin login", "visitor", s.store.HashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.clock.Now())
		if err != nil {
			s.logger.Error("load admin stats", "err", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"Error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"Stats": stats})
	})

	// Admin API endpoint for HTMX/AJAX refreshes
	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.clock.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "200"))
		if err != nil || limit <= 0 || limit > 1000 {
			limit = 200
		}
		visitors, err := s.store.RecentVisitors(c.Request.Context(), limit)
		if err != nil {
			s.logger.Error("load visitors", "err", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"Error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"Visitors": visitors})
	})

	// Run the retention cleanup now instead of waiting for the next start
	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.cleanupVisitorData()
		if err != nil {
			s.logger.Error("privacy cleanup", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	// Statistics export for backups or analysis
	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.clock.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=codebrain-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}
