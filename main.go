package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/adel682/codebrain/internal/config"
	"github.com/adel682/codebrain/internal/content"
	"github.com/adel682/codebrain/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := newServeCmd(&configPath)
	root := &cobra.Command{
		Use:           "codebrain",
		Short:         "CodeBrain bilingual portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml)")

	root.AddCommand(serve)
	root.AddCommand(newPreviewCmd(&configPath))
	root.AddCommand(newCleanupCmd(&configPath))
	return root
}

// app is what every command needs: configuration, a logger and the content.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	site   *content.Site
}

func loadApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg.Logging, os.Stderr)
	site, err := content.LoadFile(cfg.Content.File)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return &app{cfg: cfg, logger: logger, site: site}, nil
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			gin.SetMode(a.cfg.Server.Mode)

			st, err := store.Open(a.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			srv, err := newServer(a.cfg, a.site, st, a.logger)
			if err != nil {
				return err
			}
			if a.cfg.Admin.UsingDefaults() {
				a.logger.Warn("admin uses development credentials; set ADMIN_USERNAME and ADMIN_PASSWORD")
			}
			a.logger.Info("privacy: visitor tracking with hashed IPs", "retention", a.cfg.Privacy.Retention)

			// clean up old visitor data for privacy compliance
			srv.bg.Add(1)
			go func() {
				defer srv.bg.Done()
				if _, err := srv.cleanupVisitorData(); err != nil {
					a.logger.Error("privacy cleanup", "err", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.serve(ctx)
		},
	}
}

func newPreviewCmd(configPath *string) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:       "preview <section>",
		Short:     "Play a section's counter animation in the terminal",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"about", "skills"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			locale := content.NewLocale(content.English)
			locale.Set(content.ParseLang(lang))
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			sections := revealSections(a.cfg.Reveal)
			sec, ok := sections[args[0]]
			if !ok {
				return fmt.Errorf("unknown section %q (want about or skills)", args[0])
			}
			return runPreview(ctx, cmd.OutOrStdout(), a.site.Dict(locale.Lang()), sec, clockwork.NewRealClock())
		},
	}
	cmd.Flags().StringVar(&lang, "lang", string(content.English), "language: en or ar")
	return cmd
}

func newCleanupCmd(configPath *string) *cobra.Command {
	var retention time.Duration
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete visitor data older than the retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			if retention <= 0 {
				retention = a.cfg.Privacy.Retention
			}
			st, err := store.Open(a.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Cleanup(cmd.Context(), time.Now().Add(-retention))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d records older than %s\n", n, retention)
			return nil
		},
	}
	cmd.Flags().DurationVar(&retention, "retention", 0, "retention window (default from config, 8760h)")
	return cmd
}
