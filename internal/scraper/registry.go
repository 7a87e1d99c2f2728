package scraper

import (
	"sort"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[string]Scraper{}
)

func Register(s Scraper) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(s.Name())] = s
}

func Get(name string) (Scraper, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[strings.ToLower(name)]
	return s, ok
}

// Names lists the registered scrapers in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
