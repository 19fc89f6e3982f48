package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/adel682/codebrain/internal/config"
	"github.com/adel682/codebrain/internal/content"
	"github.com/adel682/codebrain/internal/store"
)

const langCookie = "lang"

type server struct {
	cfg      *config.Config
	site     *content.Site
	store    *store.Store
	logger   *slog.Logger
	clock    clockwork.Clock
	sections map[string]revealSection

	adminToken string

	// background work (visitor tracking, cleanup) that shutdown waits on
	bg sync.WaitGroup
}

func newServer(cfg *config.Config, site *content.Site, st *store.Store, logger *slog.Logger) (*server, error) {
	token, err := store.NewToken()
	if err != nil {
		return nil, fmt.Errorf("admin token: %w", err)
	}
	return &server{
		cfg:        cfg,
		site:       site,
		store:      st,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
		sections:   revealSections(cfg.Reveal),
		adminToken: token,
	}, nil
}

func (s *server) routes() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.visitorTracking())
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(staticFiles()))

	// Home page route
	r.GET("/", s.handleIndex)

	// Language switch; the only way the active language changes
	r.POST("/lang", s.handleLang)

	// HTMX project grid, filtered and searched
	r.GET("/projects", s.handleProjects)

	// Counter and skill-bar animations streamed as server-sent events
	r.GET("/reveal/:section", s.handleReveal)

	// Simulated contact submission with HTMX
	r.POST("/contact", s.handleContact)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.setupAdminRoutes(r)
	return r, nil
}

// lang resolves the visitor's language: ?lang= wins, then the cookie.
func (s *server) lang(c *gin.Context) content.Lang {
	if q := c.Query("lang"); q != "" {
		return content.ParseLang(q)
	}
	if v, err := c.Cookie(langCookie); err == nil {
		return content.ParseLang(v)
	}
	return content.English
}

type pageData struct {
	Brand    string
	Lang     content.Lang
	Dict     *content.Dictionary
	Projects []content.Project
	Filter   string
	Query    string
	About    revealView
	Skills   revealView
}

type revealView struct {
	Name      string
	Threshold float64
	Items     []revealItem
}

func (s *server) page(c *gin.Context) pageData {
	lang := s.lang(c)
	dict := s.site.Dict(lang)
	filter := c.DefaultQuery("filter", content.FilterAll)
	if !dict.Projects.HasFilter(filter) {
		filter = content.FilterAll
	}
	query := c.Query("q")

	view := func(name string) revealView {
		sec := s.sections[name]
		return revealView{Name: name, Threshold: sec.Threshold, Items: sec.Items(dict)}
	}
	return pageData{
		Brand:    s.site.Brand,
		Lang:     lang,
		Dict:     dict,
		Projects: content.QueryProjects(dict.Projects.Items, filter, query),
		Filter:   filter,
		Query:    query,
		About:    view("about"),
		Skills:   view("skills"),
	}
}

func (s *server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page(c))
}

func (s *server) handleProjects(c *gin.Context) {
	c.HTML(http.StatusOK, "projects-grid.html", s.page(c))
}

func (s *server) handleLang(c *gin.Context) {
	locale := content.NewLocale(s.lang(c))
	if v := c.PostForm("lang"); v != "" {
		locale.Set(content.ParseLang(v))
	} else {
		locale.Toggle()
	}
	next := locale.Lang()
	c.SetCookie(langCookie, string(next), 365*24*3600, "/", "", false, true)

	target := "/"
	if next != content.English {
		target = "/?lang=" + string(next)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// requestLogger replaces gin's access log with structured records.
func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// serve runs the HTTP server until ctx is cancelled, then drains requests
// and background work.
func (s *server) serve(ctx context.Context) error {
	handler, err := s.routes()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr, "mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	err = srv.Shutdown(shutdownCtx)
	s.bg.Wait()
	return err
}
