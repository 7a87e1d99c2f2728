package scraper

import (
	"context"
	"time"
)

// Scraper turns a target URL into formattable content.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, target string, opts Options) (Content, error)
}

// Content renders a scrape result in every supported output format.
type Content interface {
	ToHTML() (string, error)
	ToText() (string, error)
	ToMarkdown() (string, error)
	ToJSON() ([]byte, error)
	ToCSV() (string, error)
}

type Options struct {
	Step    int  // single step to extract, 1 when zero
	All     bool // run every step and merge the results
	Timeout time.Duration
}
