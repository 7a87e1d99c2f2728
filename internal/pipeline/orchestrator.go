package pipeline

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"stayscraper/internal/fetcher"
	"stayscraper/internal/logger"
	"stayscraper/internal/sites/airbnb"
	"stayscraper/internal/snapshot"
)

// Defaults used when Config leaves a field zero.
const (
	DefaultNavigationTimeout   = 100 * time.Second
	DefaultRequestTimeout      = 110 * time.Second
	DefaultWaitSelectorTimeout = 10 * time.Second
)

// FallbackSource returns the structured data embedded in a listing page.
type FallbackSource interface {
	Fetch(ctx context.Context, listingID string) (*airbnb.Payload, error)
}

// Config tunes an Orchestrator.
type Config struct {
	NavigationTimeout   time.Duration
	RequestTimeout      time.Duration
	SettleDelay         time.Duration
	WaitSelectorTimeout time.Duration
	ContentCheck        bool
	ListingHosts        []string
	Retry               Policy
}

// Orchestrator drives one listing step from URL to envelope: it loads the page
// in a fresh browser session per attempt, retries failures and falls back to
// structured data when the page is blocked.
type Orchestrator struct {
	pages    fetcher.PageFetcher
	fallback FallbackSource
	cfg      Config
}

// New returns an Orchestrator. fallback may be nil to disable the fallback.
func New(pages fetcher.PageFetcher, fallback FallbackSource, cfg Config) *Orchestrator {
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = DefaultNavigationTimeout
	}
	if cfg.RequestTimeout <= cfg.NavigationTimeout {
		cfg.RequestTimeout = cfg.NavigationTimeout + (DefaultRequestTimeout - DefaultNavigationTimeout)
	}
	if cfg.WaitSelectorTimeout <= 0 {
		cfg.WaitSelectorTimeout = DefaultWaitSelectorTimeout
	}
	if len(cfg.ListingHosts) == 0 {
		cfg.ListingHosts = airbnb.DefaultListingHosts
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = 3
	}
	return &Orchestrator{pages: pages, fallback: fallback, cfg: cfg}
}

type stepData struct {
	data   any
	source airbnb.Source
}

// request holds the state shared by the attempts of one ScrapeStep call.
type request struct {
	url          string
	listingID    string
	step         int
	fallbackUsed bool
}

// ScrapeStep extracts one step of the listing at rawURL. The returned Result
// is always a complete envelope; err is set when the envelope is an error and
// drives the HTTP status through StatusCode.
func (o *Orchestrator) ScrapeStep(ctx context.Context, rawURL string, step int) (airbnb.Result, error) {
	req, err := o.validate(rawURL, step)
	if err != nil {
		return Failure(step, err), err
	}

	log := logger.FromContext(ctx).With("url", req.url, "step", step)
	log.Info("Scrape started", "step_name", airbnb.StepName(step))
	start := time.Now()

	out, err := Retry(ctx, o.cfg.Retry, func(ctx context.Context, attempt int) (stepData, error) {
		ctx, cancel := context.WithTimeout(ctx, o.cfg.RequestTimeout)
		defer cancel()

		alog := log.With("attempt", attempt)
		res, err := o.attempt(logger.WithContext(ctx, alog), req)
		if err != nil {
			alog.Warn("Attempt failed", "error", err)
		}
		return res, err
	})
	if err != nil {
		log.Error("Scrape failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return Failure(step, err), err
	}

	log.Info("Scrape finished", "source", out.source, "duration_ms", time.Since(start).Milliseconds())
	if out.source == airbnb.SourceAPI {
		return Partial(step, out.data), nil
	}
	return Success(step, out.data), nil
}

func (o *Orchestrator) validate(rawURL string, step int) (*request, error) {
	if rawURL == "" {
		return nil, invalidInput("URL é obrigatória", nil)
	}
	if !airbnb.ValidStep(step) {
		return nil, invalidInput(
			fmt.Sprintf("Etapa inválida. Use um valor entre 1 e %d", airbnb.TotalSteps),
			fmt.Errorf("%w: %d", airbnb.ErrInvalidStep, step),
		)
	}
	if err := airbnb.ValidateListingURL(rawURL, o.cfg.ListingHosts); err != nil {
		return nil, invalidInput("URL inválida. Forneça uma URL válida do Airbnb", err)
	}

	u := airbnb.NormalizeURL(rawURL)
	id, _ := airbnb.ListingID(u)
	return &request{url: u, listingID: id, step: step}, nil
}

// attempt runs one full Loading → ContentCheck → Ready pass in its own session.
func (o *Orchestrator) attempt(ctx context.Context, req *request) (stepData, error) {
	log := logger.FromContext(ctx)

	session, err := o.pages.Open(ctx)
	if err != nil {
		return stepData{}, navigationError(fmt.Errorf("failed to open browser session: %w", err))
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("Failed to close browser session", "error", err)
		}
	}()

	doc, err := session.Load(ctx, req.url, o.options(req.step))
	if err != nil {
		return stepData{}, navigationError(err)
	}

	if o.cfg.ContentCheck && len(doc.Find(airbnb.ContentMarkerSelector)) == 0 {
		log.Info("Content marker missing, reloading page")
		if reloaded, err := session.Reload(ctx); err != nil {
			log.Warn("Reload after content check failed", "error", err)
		} else {
			doc = reloaded
		}
	}

	if req.step == airbnb.StepPhotos {
		if doc, err = session.Reload(ctx); err != nil {
			return stepData{}, navigationError(err)
		}
	}

	if reason, blocked := airbnb.DetectBlocked(doc); blocked {
		log.Warn("Page blocked", "reason", reason, "page_url", doc.URL())
		if data, ok := o.tryFallback(ctx, req); ok {
			return stepData{data: data, source: airbnb.SourceAPI}, nil
		}
		return stepData{}, fmt.Errorf("%w: %s", ErrBlockedContent, reason)
	}

	data, err := extract(req.step, doc)
	if err != nil {
		return stepData{}, err
	}
	return stepData{data: data, source: airbnb.SourceDOM}, nil
}

// tryFallback queries the structured-data source at most once per request.
func (o *Orchestrator) tryFallback(ctx context.Context, req *request) (any, bool) {
	if o.fallback == nil || req.listingID == "" || req.fallbackUsed {
		return nil, false
	}
	req.fallbackUsed = true
	log := logger.FromContext(ctx).With("listing_id", req.listingID)

	payload, err := o.fallback.Fetch(ctx, req.listingID)
	if err != nil {
		log.Warn("Structured data fallback failed", "error", err)
		return nil, false
	}
	data, err := airbnb.MapPayload(req.step, payload)
	if err != nil {
		log.Warn("Structured data has no usable fields", "error", err)
		return nil, false
	}
	log.Info("Using structured data fallback")
	return data, true
}

// extract runs the step extractor. A panic is a bug in an extractor and
// would repeat on every attempt, so it is reported as permanent.
func extract(step int, doc snapshot.Document) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Permanent(fmt.Errorf("extractor for %s panicked: %v", airbnb.StepName(step), r))
		}
	}()
	data, err = airbnb.Extract(step, doc)
	if errors.Is(err, airbnb.ErrInvalidStep) {
		err = Permanent(err)
	}
	return data, err
}

var blockedDuringExtraction = []string{
	fetcher.ResourceImage,
	fetcher.ResourceStylesheet,
	fetcher.ResourceFont,
	fetcher.ResourceMedia,
}

// options builds the page load options for step. Photos need images, so the
// photo step loads every resource.
func (o *Orchestrator) options(step int) fetcher.Options {
	opts := fetcher.Options{
		UserAgent:           fetcher.DesktopUserAgent,
		ExtraHeaders:        maps.Clone(fetcher.LocaleHeaders),
		Viewport:            fetcher.DesktopViewport,
		NavigationTimeout:   o.cfg.NavigationTimeout,
		WaitSelector:        airbnb.ContentMarkerSelector,
		WaitSelectorTimeout: o.cfg.WaitSelectorTimeout,
		SettleDelay:         o.cfg.SettleDelay,
	}
	if step != airbnb.StepPhotos {
		opts.BlockedResourceTypes = append([]string(nil), blockedDuringExtraction...)
	}
	return opts
}
