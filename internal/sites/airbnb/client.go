package airbnb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

// DefaultAPIBaseURL is where listing pages are requested from.
const DefaultAPIBaseURL = "https://www.airbnb.com.br"

// deferredStateSelector matches the script tags a listing page hydrates from.
const deferredStateSelector = `script[id^="data-deferred-state"], script#data-injector-instances, script#__NEXT_DATA__`

// APIClientConfig configures an APIClient.
type APIClientConfig struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	RequestsPerSec float64
	Timeout        time.Duration
}

// APIClient fetches the structured data embedded in a listing page without a
// browser. It is used once per request when the rendered page is blocked.
type APIClient struct {
	collector *colly.Collector
	limiter   *rate.Limiter
	cfg       APIClientConfig
}

// NewAPIClient returns a client sharing one rate limiter across calls.
func NewAPIClient(cfg APIClientConfig) *APIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIBaseURL
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	opts := []colly.CollectorOption{colly.AllowURLRevisit()}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}
	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(cfg.Timeout)

	return &APIClient{
		collector: c,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		cfg:       cfg,
	}
}

// Fetch loads the listing page for listingID and returns its embedded payload.
func (a *APIClient) Fetch(ctx context.Context, listingID string) (*Payload, error) {
	if listingID == "" {
		return nil, fmt.Errorf("%w: empty listing id", ErrInvalidURL)
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fallback rate limit: %w", err)
	}

	collector := a.collector.Clone()
	collector.Context = ctx
	pageURL := strings.TrimRight(a.cfg.BaseURL, "/") + "/rooms/" + listingID

	var (
		payload  *Payload
		fetchErr error
	)

	collector.OnRequest(func(r *colly.Request) {
		if a.cfg.AcceptLanguage != "" {
			r.Headers.Set("Accept-Language", a.cfg.AcceptLanguage)
		}
		slog.Debug("Requesting structured listing data", "url", r.URL.String(), "listing_id", listingID)
	})

	// Some deployments answer with the JSON document directly.
	collector.OnResponse(func(r *colly.Response) {
		if payload != nil || !strings.Contains(r.Headers.Get("Content-Type"), "json") {
			return
		}
		payload, fetchErr = ParsePayload(string(r.Body))
	})

	collector.OnHTML(deferredStateSelector, func(e *colly.HTMLElement) {
		if payload != nil {
			return
		}
		p, err := ParsePayload(e.Text)
		if err != nil {
			return
		}
		payload, fetchErr = p, nil
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetching %s: status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if err := collector.Visit(pageURL); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("visiting %s: %w", pageURL, err)
	}
	collector.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if payload != nil {
		return payload, nil
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	return nil, errors.Join(ErrNoStructuredData, fmt.Errorf("no embedded data at %s", pageURL))
}
