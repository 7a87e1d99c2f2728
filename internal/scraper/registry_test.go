package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedScraper string

func (n namedScraper) Name() string { return string(n) }

func (n namedScraper) Scrape(context.Context, string, Options) (Content, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	Register(namedScraper("Listings"))

	s, ok := Get("LISTINGS")
	require.True(t, ok)
	assert.Equal(t, "Listings", s.Name())
	assert.Contains(t, Names(), "listings")

	_, ok = Get("missing")
	assert.False(t, ok)
}
