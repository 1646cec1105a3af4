package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gotheme "github.com/goliatone/go-theme"
	"github.com/gorilla/mux"

	themehelpers "github.com/goliatone/go-themehelpers"
	"github.com/goliatone/go-themehelpers/pkg/comments"
	"github.com/goliatone/go-themehelpers/pkg/config"
	"github.com/goliatone/go-themehelpers/pkg/content"
	"github.com/goliatone/go-themehelpers/pkg/render/template/gotemplate"
	"github.com/goliatone/go-themehelpers/pkg/site"
	"github.com/goliatone/go-themehelpers/pkg/theme"
)

var (
	defaultDotEnv      = config.LoadDotEnv
	loadDotEnv         = defaultDotEnv
	defaultListenServe = listenAndServe
)

func main() {
	configPath := flag.String("config", "", "site configuration file (YAML or JSON)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, defaultListenServe); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(ctx context.Context, configPath string, serve func(context.Context, string, http.Handler) error) error {
	// Load .env file (ignored if it doesn't exist)
	if err := loadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("failed to apply environment: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("starting themehelpers server",
		"addr", cfg.Addr,
		"site_url", cfg.SiteURL,
		"labs", cfg.EnabledLabs(),
	)

	handler, err := buildHandler(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("server listening", "addr", cfg.Addr)
	return serve(ctx, cfg.Addr, handler)
}

func buildHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	store, err := content.LoadDir(os.DirFS(cfg.ContentDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	themeCfg, err := resolveTheme(cfg, logger)
	if err != nil {
		return nil, err
	}

	engineOpts := []gotemplate.Option{gotemplate.WithFS(site.DefaultTemplates())}
	if info, err := os.Stat(cfg.TemplatesDir); err == nil && info.IsDir() {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.TemplatesDir))
	}
	engine, err := themehelpers.NewEngine(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize templates: %w", err)
	}

	commentOpts := cfg.CommentsOptions()
	if cfg.ScriptURL == "" {
		commentOpts = append(commentOpts, comments.WithAssetResolver(themeCfg.AssetURL))
	}

	s, err := site.New(
		site.WithEngine(engine),
		site.WithStore(store),
		site.WithComments(comments.New(commentOpts...)),
		site.WithTheme(themeCfg),
		site.WithTitle(cfg.Settings["title"]),
		site.WithURL(cfg.SiteURL),
		site.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize site: %w", err)
	}

	r := mux.NewRouter()
	s.Routes(r)
	return r, nil
}

// resolveTheme falls back to the built-in templates when no theme manifests
// are installed.
func resolveTheme(cfg *config.Config, logger *slog.Logger) (*gotheme.RendererConfig, error) {
	if info, err := os.Stat(cfg.Theme.Dir); err != nil || !info.IsDir() {
		logger.Info("no theme directory, using built-in templates", "dir", cfg.Theme.Dir)
		return theme.RendererConfig(nil, theme.DefaultPartials()), nil
	}

	manifests, err := theme.LoadManifests(os.DirFS(cfg.Theme.Dir))
	if err != nil {
		return nil, fmt.Errorf("failed to load themes: %w", err)
	}
	if len(manifests) == 0 {
		return theme.RendererConfig(nil, theme.DefaultPartials()), nil
	}

	selector, err := theme.NewSelector(manifests,
		theme.WithDefaultTheme(cfg.Theme.Name),
		theme.WithDefaultVariant(cfg.Theme.Variant),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register themes: %w", err)
	}
	selection, err := selector.Select("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to select theme: %w", err)
	}
	logger.Info("theme selected", "theme", selection.Theme, "variant", selection.Variant)
	return theme.RendererConfig(selection, theme.DefaultPartials()), nil
}

func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
