package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stayscraper/internal/browser"
	"stayscraper/internal/snapshot"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

const requestIdle = 500 * time.Millisecond

var rodResourceTypes = map[string]proto.NetworkResourceType{
	ResourceImage:      proto.NetworkResourceTypeImage,
	ResourceStylesheet: proto.NetworkResourceTypeStylesheet,
	ResourceFont:       proto.NetworkResourceTypeFont,
	ResourceMedia:      proto.NetworkResourceTypeMedia,
}

// Rod opens sessions on a freshly launched go-rod browser.
type Rod struct {
	cfg browser.Config
}

// NewRod returns a PageFetcher backed by go-rod.
func NewRod(cfg browser.Config) *Rod {
	return &Rod{cfg: cfg}
}

// Open launches a browser and opens one tab on it.
func (r *Rod) Open(ctx context.Context) (Session, error) {
	b, err := browser.New(ctx, r.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	page, err := b.NewPage()
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &rodSession{browser: b, page: page}, nil
}

type rodSession struct {
	browser *browser.Browser
	page    *rod.Page
	router  *rod.HijackRouter
	url     string
	opts    Options
}

func (s *rodSession) Load(ctx context.Context, url string, opts Options) (snapshot.Document, error) {
	s.url, s.opts = url, opts

	if err := s.prepare(opts); err != nil {
		return nil, err
	}

	navCtx, cancel := withTimeout(ctx, opts.NavigationTimeout)
	defer cancel()
	p := s.page.Context(navCtx)

	// The idle waiter must be registered before navigation to see the first burst of requests.
	waitIdle := p.WaitRequestIdle(requestIdle, nil, nil,
		[]proto.NetworkResourceType{proto.NetworkResourceTypeWebSocket, proto.NetworkResourceTypeEventSource})

	if err := p.Navigate(url); err != nil {
		return nil, categorize(err, "navigation to listing failed")
	}
	waitIdle()
	if err := navCtx.Err(); err != nil {
		return nil, categorize(err, "waiting for network idle")
	}

	return s.settle(ctx)
}

func (s *rodSession) Reload(ctx context.Context) (snapshot.Document, error) {
	if s.url == "" {
		return nil, fmt.Errorf("%w: reload before load", ErrNavigation)
	}

	navCtx, cancel := withTimeout(ctx, s.opts.NavigationTimeout)
	defer cancel()
	p := s.page.Context(navCtx)

	if err := p.Reload(); err != nil {
		return nil, categorize(err, "reload failed")
	}
	if err := p.WaitLoad(); err != nil {
		return nil, categorize(err, "waiting for reload")
	}
	return s.settle(ctx)
}

func (s *rodSession) Close() error {
	var errs []error
	if s.router != nil {
		errs = append(errs, s.router.Stop())
	}
	if s.page != nil {
		errs = append(errs, s.page.Close())
	}
	if s.browser != nil {
		errs = append(errs, s.browser.Close())
	}
	return errors.Join(errs...)
}

// prepare applies everything that must be in place before navigation.
func (s *rodSession) prepare(opts Options) error {
	for _, js := range opts.InitScripts {
		if _, err := s.page.EvalOnNewDocument(js); err != nil {
			slog.Warn("Init script injection failed, continuing without it", "error", err)
		}
	}

	if opts.UserAgent != "" {
		override := &proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}
		if lang := opts.ExtraHeaders["Accept-Language"]; lang != "" {
			override.AcceptLanguage = lang
		}
		if err := s.page.SetUserAgent(override); err != nil {
			return fmt.Errorf("failed to set user agent: %w", err)
		}
	}

	if len(opts.ExtraHeaders) > 0 {
		headers := make(proto.NetworkHeaders, len(opts.ExtraHeaders))
		for k, v := range opts.ExtraHeaders {
			headers[k] = gson.New(v)
		}
		if err := (proto.NetworkSetExtraHTTPHeaders{Headers: headers}).Call(s.page); err != nil {
			return fmt.Errorf("failed to set headers: %w", err)
		}
	}

	if opts.Viewport.Width > 0 && opts.Viewport.Height > 0 {
		if err := s.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             opts.Viewport.Width,
			Height:            opts.Viewport.Height,
			DeviceScaleFactor: 1,
		}); err != nil {
			return fmt.Errorf("failed to set viewport: %w", err)
		}
	}

	if s.router != nil {
		_ = s.router.Stop()
		s.router = nil
	}
	s.router = s.hijack(opts.BlockedResourceTypes)
	return nil
}

// hijack fails requests of the blocked resource types. It returns nil when nothing is blocked.
func (s *rodSession) hijack(blocked []string) *rod.HijackRouter {
	types := make(map[proto.NetworkResourceType]bool, len(blocked))
	for _, b := range blocked {
		if t, ok := rodResourceTypes[b]; ok {
			types[t] = true
		}
	}
	if len(types) == 0 {
		return nil
	}

	router := s.page.HijackRequests()
	router.MustAdd("*", func(h *rod.Hijack) {
		if types[h.Request.Type()] {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
	return router
}

// settle waits for the content marker, runs gestures and the settle delay,
// then captures the page.
func (s *rodSession) settle(ctx context.Context) (snapshot.Document, error) {
	opts := s.opts
	p := s.page.Context(ctx)

	if opts.WaitSelector != "" {
		waitCtx, cancel := withTimeout(ctx, opts.WaitSelectorTimeout)
		if _, err := s.page.Context(waitCtx).Element(opts.WaitSelector); err != nil {
			slog.Debug("Content marker did not appear, continuing", "selector", opts.WaitSelector, "error", err)
		}
		cancel()
	}

	if opts.Gestures {
		runGestures(ctx, gesturePlan(), func(dy float64) error {
			return p.Mouse.Scroll(0, dy, 4)
		})
	}

	if err := sleep(ctx, opts.SettleDelay); err != nil {
		return nil, categorize(err, "settling page")
	}

	res, err := p.Eval(captureJS)
	if err != nil {
		return nil, categorize(err, "failed to capture page HTML")
	}

	info, err := p.Info()
	finalURL := s.url
	if err == nil && info.URL != "" {
		finalURL = info.URL
	}

	doc, err := snapshot.FromHTML(finalURL, res.Value.Str())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNavigation, err)
	}
	return doc, nil
}

// withTimeout is context.WithTimeout that treats d <= 0 as no extra limit.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
