package fetcher

import (
	"context"

	"stayscraper/internal/snapshot"

	"github.com/go-rod/stealth"
)

// DesktopUserAgent is the user agent presented by Stealth.
const DesktopUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

// LocaleHeaders are the request headers presented by Stealth.
var LocaleHeaders = map[string]string{
	"Accept-Language":    "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
	"Accept":             "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"sec-ch-ua":          `"Not A(Brand";v="99", "Google Chrome";v="121", "Chromium";v="121"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"macOS"`,
}

// DesktopViewport is the window size presented by Stealth.
var DesktopViewport = Viewport{Width: 1920, Height: 1080}

// Stealth decorates a PageFetcher so that every load looks like a desktop
// browser: the evasion script runs before page scripts, a desktop user agent
// and locale headers are sent, and the page is scrolled like a reader would.
// Options set by the caller win over these defaults.
type Stealth struct {
	next PageFetcher
}

// NewStealth wraps next.
func NewStealth(next PageFetcher) *Stealth {
	return &Stealth{next: next}
}

// Open opens a session on the wrapped fetcher.
func (s *Stealth) Open(ctx context.Context) (Session, error) {
	sess, err := s.next.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &stealthSession{Session: sess, decorator: s}, nil
}

// Apply returns opts with the stealth defaults filled in.
func (s *Stealth) Apply(opts Options) Options {
	out := opts.Clone()

	out.InitScripts = append([]string{stealth.JS}, out.InitScripts...)

	if out.UserAgent == "" {
		out.UserAgent = DesktopUserAgent
	}

	headers := make(map[string]string, len(LocaleHeaders)+len(out.ExtraHeaders))
	for k, v := range LocaleHeaders {
		headers[k] = v
	}
	for k, v := range out.ExtraHeaders {
		headers[k] = v
	}
	out.ExtraHeaders = headers

	if out.Viewport == (Viewport{}) {
		out.Viewport = DesktopViewport
	}
	out.Gestures = true
	return out
}

type stealthSession struct {
	Session
	decorator *Stealth
}

func (s *stealthSession) Load(ctx context.Context, url string, opts Options) (snapshot.Document, error) {
	return s.Session.Load(ctx, url, s.decorator.Apply(opts))
}
