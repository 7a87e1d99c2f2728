package pipeline

import (
	"context"

	"stayscraper/internal/scraper"
	"stayscraper/internal/sites/airbnb"
)

// Scraper exposes an Orchestrator through the scraper registry.
type Scraper struct {
	orch *Orchestrator
}

// NewScraper returns a registry adapter for orch.
func NewScraper(orch *Orchestrator) *Scraper {
	return &Scraper{orch: orch}
}

func (s *Scraper) Name() string { return "airbnb" }

// Scrape runs one step, or every step when opts.All is set. The content is
// returned together with any error so callers can still print the envelope.
func (s *Scraper) Scrape(ctx context.Context, target string, opts scraper.Options) (scraper.Content, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if opts.All {
		res, err := s.orch.ScrapeComplete(ctx, target)
		return airbnb.NewCompleteContent(res), err
	}

	step := opts.Step
	if step == 0 {
		step = airbnb.StepBasicInfo
	}
	res, err := s.orch.ScrapeStep(ctx, target, step)
	return airbnb.NewStepContent(airbnb.NormalizeURL(target), res), err
}
