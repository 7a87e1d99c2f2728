package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stayscraper/internal/browser"
	"stayscraper/internal/snapshot"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// blockedURLPatterns approximates resource type blocking with URL patterns,
// which is what the DevTools network domain offers without request interception.
var blockedURLPatterns = map[string][]string{
	ResourceImage:      {"*.jpg", "*.jpeg", "*.png", "*.gif", "*.webp", "*.avif", "*.svg", "*.ico"},
	ResourceStylesheet: {"*.css"},
	ResourceFont:       {"*.woff", "*.woff2", "*.ttf", "*.otf"},
	ResourceMedia:      {"*.mp4", "*.webm", "*.mp3", "*.m3u8"},
}

// Chromedp opens sessions on a chromedp exec allocator.
type Chromedp struct {
	cfg browser.Config
}

// NewChromedp returns a PageFetcher backed by chromedp.
func NewChromedp(cfg browser.Config) *Chromedp {
	return &Chromedp{cfg: cfg}
}

// allocatorOptions builds the exec allocator flags from the shared launch flags.
func (c *Chromedp) allocatorOptions(bin string) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", c.cfg.Headless))
	if bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	if c.cfg.ProxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(c.cfg.ProxyURL))
	}
	for _, f := range browser.LaunchFlags {
		if f.Value == "" {
			opts = append(opts, chromedp.Flag(f.Name, true))
		} else {
			opts = append(opts, chromedp.Flag(f.Name, f.Value))
		}
	}
	return opts
}

// Open starts a browser process. The session outlives ctx and ends on Close.
func (c *Chromedp) Open(ctx context.Context) (Session, error) {
	bin, err := browser.ResolveBin(c.cfg)
	if err != nil {
		return nil, err
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), c.allocatorOptions(bin)...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	stop := context.AfterFunc(ctx, cancelTab)
	err = chromedp.Run(tabCtx, network.Enable())
	stop()
	if err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &chromedpSession{tab: tabCtx, cancel: func() { cancelTab(); cancelAlloc() }}, nil
}

type chromedpSession struct {
	tab    context.Context
	cancel context.CancelFunc
	url    string
	opts   Options
}

// run executes actions on the tab, bounded by ctx and timeout (0 means no extra limit).
func (s *chromedpSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := withTimeout(s.tab, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (s *chromedpSession) Load(ctx context.Context, url string, opts Options) (snapshot.Document, error) {
	s.url, s.opts = url, opts

	var blocked []string
	for _, t := range opts.BlockedResourceTypes {
		blocked = append(blocked, blockedURLPatterns[t]...)
	}

	prepare := []chromedp.Action{network.SetBlockedURLS(append([]string{}, blocked...))}
	for _, js := range opts.InitScripts {
		script := js
		prepare = append(prepare, chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(script).Do(ctx)
			return err
		}))
	}
	if opts.UserAgent != "" {
		override := emulation.SetUserAgentOverride(opts.UserAgent)
		if lang := opts.ExtraHeaders["Accept-Language"]; lang != "" {
			override = override.WithAcceptLanguage(lang)
		}
		prepare = append(prepare, override)
	}
	if len(opts.ExtraHeaders) > 0 {
		headers := make(network.Headers, len(opts.ExtraHeaders))
		for k, v := range opts.ExtraHeaders {
			headers[k] = v
		}
		prepare = append(prepare, network.SetExtraHTTPHeaders(headers))
	}
	if opts.Viewport.Width > 0 && opts.Viewport.Height > 0 {
		prepare = append(prepare, chromedp.EmulateViewport(int64(opts.Viewport.Width), int64(opts.Viewport.Height)))
	}

	if err := s.run(ctx, 0, prepare...); err != nil {
		return nil, fmt.Errorf("%w: preparing tab: %w", ErrNavigation, err)
	}

	if err := s.run(ctx, opts.NavigationTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, categorize(err, "navigation to listing failed")
	}

	return s.settle(ctx)
}

func (s *chromedpSession) Reload(ctx context.Context) (snapshot.Document, error) {
	if s.url == "" {
		return nil, fmt.Errorf("%w: reload before load", ErrNavigation)
	}
	if err := s.run(ctx, s.opts.NavigationTimeout,
		chromedp.Reload(),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, categorize(err, "reload failed")
	}
	return s.settle(ctx)
}

func (s *chromedpSession) Close() error {
	s.cancel()
	return nil
}

func (s *chromedpSession) settle(ctx context.Context) (snapshot.Document, error) {
	opts := s.opts

	if opts.WaitSelector != "" {
		if err := s.run(ctx, opts.WaitSelectorTimeout,
			chromedp.WaitVisible(opts.WaitSelector, chromedp.ByQuery),
		); err != nil {
			slog.Debug("Content marker did not appear, continuing", "selector", opts.WaitSelector, "error", err)
		}
	}

	if opts.Gestures {
		runGestures(ctx, gesturePlan(), func(dy float64) error {
			return s.run(ctx, 0, chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %f)", dy), nil))
		})
	}

	if err := sleep(ctx, opts.SettleDelay); err != nil {
		return nil, categorize(err, "settling page")
	}

	var html, finalURL string
	if err := s.run(ctx, 0,
		chromedp.Evaluate(captureExpr, &html),
		chromedp.Location(&finalURL),
	); err != nil {
		return nil, categorize(err, "failed to capture page HTML")
	}
	if finalURL == "" {
		finalURL = s.url
	}

	doc, err := snapshot.FromHTML(finalURL, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNavigation, err)
	}
	return doc, nil
}
