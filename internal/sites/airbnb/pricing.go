package airbnb

import (
	"regexp"
	"strconv"
	"strings"

	"stayscraper/internal/snapshot"
)

// Capacity fields default to these values when the page does not state them.
const (
	DefaultRooms     = 1
	DefaultBathrooms = 1
	DefaultBeds      = 1
	DefaultGuests    = 2
)

var (
	roomsPattern     = regexp.MustCompile(`(?i)(\d+)\s*(?:quarto|bedroom)`)
	bathroomsPattern = regexp.MustCompile(`(?i)(\d+)(?:[.,]\d+)?\s*(?:banheiro|bath)`)
	bedsPattern      = regexp.MustCompile(`(?i)(\d+)\s*(?:cama|beds?\b)`)
	guestsPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:hóspede|guest)`)
)

// ExtractPriceCapacity resolves the nightly price and the capacity counts.
func ExtractPriceCapacity(doc snapshot.Document) PriceCapacity {
	price, _ := First(
		priceFromSelector(doc, `button._194r9nk1 span.u1qzfr7o`, ParsePrice),
		priceFromSelector(doc, `span.u1qzfr7o`, ParsePrice),
		priceFromSelector(doc, `div._1xm48ww`, currencyOnly),
		priceFromSelector(doc, `[data-testid*="price"]`, currencyOnly),
		priceFromAttr(doc, `meta[itemprop="price"]`, "content"),
	)

	scoped, _ := First(capacityContainer(doc))
	body := doc.Text()

	return PriceCapacity{
		Price:     price,
		Rooms:     capacityCount(roomsPattern, DefaultRooms, scoped, body),
		Bathrooms: capacityCount(bathroomsPattern, DefaultBathrooms, scoped, body),
		Beds:      capacityCount(bedsPattern, DefaultBeds, scoped, body),
		Guests:    capacityCount(guestsPattern, DefaultGuests, scoped, body),
	}
}

// ParseCapacity applies the capacity patterns to a single text, with defaults.
func ParseCapacity(text string) (rooms, bathrooms, beds, guests int) {
	return capacityCount(roomsPattern, DefaultRooms, text),
		capacityCount(bathroomsPattern, DefaultBathrooms, text),
		capacityCount(bedsPattern, DefaultBeds, text),
		capacityCount(guestsPattern, DefaultGuests, text)
}

func currencyOnly(text string) float64 {
	v, _ := priceFromCurrency(text)
	return v
}

func priceFromSelector(doc snapshot.Document, selector string, parse func(string) float64) Strategy[float64] {
	return func() Outcome[float64] {
		for _, n := range doc.Find(selector) {
			if v := parse(n.Text()); v > 0 {
				return Found(v)
			}
		}
		return NotFound[float64]()
	}
}

func priceFromAttr(doc snapshot.Document, selector, attr string) Strategy[float64] {
	return func() Outcome[float64] {
		for _, n := range doc.Find(selector) {
			raw, ok := n.Attr(attr)
			if !ok {
				continue
			}
			// Attribute values are machine formatted, "420.00" means 420.
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				v = ParsePrice(raw)
			}
			if v > 0 {
				return Found(v)
			}
		}
		return NotFound[float64]()
	}
}

// capacityContainer returns the text of the overview block that lists the counts.
func capacityContainer(doc snapshot.Document) Strategy[string] {
	return func() Outcome[string] {
		for _, sel := range capacityContainerSelectors {
			for _, n := range doc.Find(sel) {
				if t := n.Text(); t != "" {
					return Found(t)
				}
			}
		}
		return NotFound[string]()
	}
}

// capacityCount returns the first positive count matched in texts, tried in order.
func capacityCount(pattern *regexp.Regexp, fallback int, texts ...string) int {
	for _, text := range texts {
		if text == "" {
			continue
		}
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
