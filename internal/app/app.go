// Package app wires configuration, logging, the browser backend and the
// listing pipeline into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stayscraper/internal/browser"
	"stayscraper/internal/config"
	"stayscraper/internal/fetcher"
	"stayscraper/internal/logger"
	"stayscraper/internal/pipeline"
	"stayscraper/internal/server"
	"stayscraper/internal/sites/airbnb"
)

// shutdownGrace is added to the request timeout when draining the server.
const shutdownGrace = 5 * time.Second

type App struct {
	cfg      *config.AppConfig
	log      *slog.Logger
	closeLog func() error
	orch     *pipeline.Orchestrator
}

// New builds the application from cfg and installs its logger as the slog default.
func New(cfg *config.AppConfig) (*App, error) {
	log, closeLog, err := logger.New(logger.Config{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		Color: !cfg.Log.JSON,
		Fluent: logger.FluentConfig{
			Enabled: cfg.FluentBit.Enabled,
			Host:    cfg.FluentBit.Host,
			Port:    cfg.FluentBit.Port,
			Level:   cfg.FluentBit.Level,
			Tag:     cfg.AppName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.With("service", cfg.AppName)
	slog.SetDefault(log)

	fcfg := fetcher.Config{
		Driver:  cfg.Browser.Driver,
		Stealth: cfg.Scrape.Stealth,
		Browser: browser.Config{
			Headless: cfg.Browser.Headless,
			ProxyURL: cfg.Browser.ProxyURL,
			Bin:      cfg.Browser.Bin,
			CacheDir: cfg.Browser.CacheDir,
			Env:      cfg.DeployEnv,
		},
	}
	pages, err := fetcher.New(fcfg)
	if err != nil {
		return nil, errors.Join(err, closeLog())
	}

	var fallback pipeline.FallbackSource
	if cfg.Scrape.APIFallback {
		fallback = airbnb.NewAPIClient(airbnb.APIClientConfig{
			BaseURL:        cfg.Scrape.APIBaseURL,
			UserAgent:      fetcher.DesktopUserAgent,
			AcceptLanguage: fetcher.LocaleHeaders["Accept-Language"],
			RequestsPerSec: cfg.Scrape.APIFallbackRPS,
			Timeout:        cfg.Scrape.NavigationTimeout,
		})
	}

	orch := pipeline.New(pages, fallback, pipeline.Config{
		NavigationTimeout: cfg.Scrape.NavigationTimeout,
		RequestTimeout:    cfg.Scrape.RequestTimeout,
		SettleDelay:       cfg.Scrape.SettleDelay,
		ContentCheck:      cfg.Scrape.ContentCheck,
		ListingHosts:      cfg.Scrape.ListingHosts,
		Retry: pipeline.Policy{
			MaxAttempts: cfg.Scrape.MaxAttempts,
			MinDelay:    cfg.Scrape.RetryDelayMin,
			MaxDelay:    cfg.Scrape.RetryDelayMax,
		},
	})

	log.Info("Application configured",
		"driver", fetcher.DriverFor(fcfg),
		"deploy_env", cfg.DeployEnv,
		"stealth", cfg.Scrape.Stealth,
		"api_fallback", cfg.Scrape.APIFallback,
		"max_attempts", cfg.Scrape.MaxAttempts,
	)

	return &App{cfg: cfg, log: log, closeLog: closeLog, orch: orch}, nil
}

func (a *App) Logger() *slog.Logger { return a.log }

func (a *App) Orchestrator() *pipeline.Orchestrator { return a.orch }

// Serve runs the HTTP API until ctx is cancelled, then drains in-flight
// requests for at most one request timeout.
func (a *App) Serve(ctx context.Context) error {
	srv, err := server.NewServer(server.Config{
		Port:          a.cfg.Server.Port,
		CORSOrigins:   a.cfg.Server.CORSOrigins,
		MaxConcurrent: a.cfg.Server.MaxConcurrent,
	}, a.orch, a.log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Scrape.RequestTimeout+shutdownGrace)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

// Close flushes the log sinks.
func (a *App) Close() error {
	return a.closeLog()
}
