package fetcher

import (
	"fmt"
	"strings"

	"stayscraper/internal/browser"
)

// Drivers.
const (
	DriverRod      = "rod"
	DriverChromedp = "chromedp"
)

// Config selects and configures a backend.
type Config struct {
	Driver  string // rod or chromedp; empty picks one from Browser.Env
	Stealth bool
	Browser browser.Config
}

// DriverFor returns the driver used for cfg. Serverless hosts get chromedp,
// which runs against the platform's Chromium without a download step.
func DriverFor(cfg Config) string {
	if d := strings.ToLower(strings.TrimSpace(cfg.Driver)); d != "" {
		return d
	}
	if cfg.Browser.Env == "serverless" {
		return DriverChromedp
	}
	return DriverRod
}

// New builds the PageFetcher described by cfg.
func New(cfg Config) (PageFetcher, error) {
	var f PageFetcher
	switch d := DriverFor(cfg); d {
	case DriverRod:
		f = NewRod(cfg.Browser)
	case DriverChromedp:
		f = NewChromedp(cfg.Browser)
	default:
		return nil, fmt.Errorf("unknown browser driver: %s", d)
	}

	if cfg.Stealth {
		f = NewStealth(f)
	}
	return f, nil
}
