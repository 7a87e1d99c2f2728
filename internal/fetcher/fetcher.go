package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stayscraper/internal/snapshot"
)

// Resource types that can be blocked during navigation.
const (
	ResourceImage      = "image"
	ResourceStylesheet = "stylesheet"
	ResourceFont       = "font"
	ResourceMedia      = "media"
)

var (
	// ErrTimeout marks a navigation that ran out of time.
	ErrTimeout = errors.New("navigation timeout")
	// ErrNavigation marks any other navigation failure.
	ErrNavigation = errors.New("navigation failed")
)

// Viewport is the emulated window size.
type Viewport struct {
	Width  int
	Height int
}

// Options describe how a page is loaded.
type Options struct {
	BlockedResourceTypes []string
	UserAgent            string
	ExtraHeaders         map[string]string
	Viewport             Viewport
	NavigationTimeout    time.Duration
	WaitSelector         string
	WaitSelectorTimeout  time.Duration
	SettleDelay          time.Duration
	InitScripts          []string
	Gestures             bool
}

// Clone returns a copy that shares no slices or maps with o.
func (o Options) Clone() Options {
	c := o
	c.BlockedResourceTypes = append([]string(nil), o.BlockedResourceTypes...)
	c.InitScripts = append([]string(nil), o.InitScripts...)
	if o.ExtraHeaders != nil {
		c.ExtraHeaders = make(map[string]string, len(o.ExtraHeaders))
		for k, v := range o.ExtraHeaders {
			c.ExtraHeaders[k] = v
		}
	}
	return c
}

// PageFetcher opens browser sessions.
type PageFetcher interface {
	Open(ctx context.Context) (Session, error)
}

// Session is one exclusive browser tab. It must be closed by its owner.
type Session interface {
	Load(ctx context.Context, url string, opts Options) (snapshot.Document, error)
	Reload(ctx context.Context) (snapshot.Document, error)
	Close() error
}

// categorize wraps a navigation error with ErrTimeout or ErrNavigation.
func categorize(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return fmt.Errorf("%w: %s: %w", ErrTimeout, msg, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrNavigation, msg, err)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
