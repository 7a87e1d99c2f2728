package airbnb

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultListingHosts are the host fragments accepted by ValidateListingURL.
var DefaultListingHosts = []string{"airbnb."}

// ErrInvalidURL is returned when a URL cannot be treated as a listing page.
var ErrInvalidURL = errors.New("invalid listing url")

var listingIDPattern = regexp.MustCompile(`/rooms/(?:plus/)?(\d+)`)

// NormalizeURL strips everything but origin and path from a listing URL.
// check_in and check_out survive only when both are present. Unparseable
// input is returned unchanged.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}

	normalized := u.Scheme + "://" + u.Host + u.EscapedPath()

	query := u.Query()
	checkIn, checkOut := query.Get("check_in"), query.Get("check_out")
	if checkIn != "" && checkOut != "" {
		normalized += "?check_in=" + url.QueryEscape(checkIn) + "&check_out=" + url.QueryEscape(checkOut)
	}
	return normalized
}

// ValidateListingURL checks that raw points at a listing page on one of hosts.
// A nil or empty hosts slice means DefaultListingHosts.
func ValidateListingURL(raw string, hosts []string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q is not an absolute http(s) url", ErrInvalidURL, raw)
	}

	if len(hosts) == 0 {
		hosts = DefaultListingHosts
	}
	host := strings.ToLower(u.Hostname())
	matched := false
	for _, h := range hosts {
		if strings.Contains(host, strings.ToLower(h)) {
			matched = true
			break
		}
	}
	if !matched {
		return fmt.Errorf("%w: host %q is not supported", ErrInvalidURL, u.Hostname())
	}

	if !strings.Contains(u.Path, "/rooms/") {
		return fmt.Errorf("%w: %q is not a listing page", ErrInvalidURL, raw)
	}
	return nil
}

// ListingID extracts the numeric listing id that follows /rooms/.
func ListingID(raw string) (string, bool) {
	m := listingIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}
