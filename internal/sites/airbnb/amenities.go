package airbnb

import (
	"stayscraper/internal/snapshot"
)

var (
	amenityBoilerplate = []string{
		"Mostrar todas", "Mostrar todos", "Show all",
		"O que este lugar oferece", "What this place offers",
		"Indisponível", "Unavailable", "Not included",
	}
	amenityHeadings  = []string{"O que este lugar oferece", "What this place offers", "Comodidades", "Amenities"}
	iconScanExcludes = []string{"Mostrar", "Show", "Menu"}
)

// amenityItem is a candidate line and whether it was rendered with an icon.
type amenityItem struct {
	text string
	icon bool
}

// ExtractAmenities resolves the amenity list, deduplicated in first-seen order.
func ExtractAmenities(doc snapshot.Document) Amenities {
	items, _ := First(
		amenitiesInSection(doc),
		amenitiesInAltContainers(doc),
		amenitiesNearHeading(doc),
		amenitiesByIcon(doc),
	)
	return buildAmenities(items)
}

func buildAmenities(items []amenityItem) Amenities {
	out := Amenities{Amenities: []Amenity{}, AmenitiesWithIcons: []string{}}
	seen, seenIcon := newDedupe(), newDedupe()
	for _, it := range items {
		if seen.add(it.text) {
			out.Amenities = append(out.Amenities, Amenity{Text: it.text})
		}
		if it.icon && seenIcon.add(it.text) {
			out.AmenitiesWithIcons = append(out.AmenitiesWithIcons, it.text)
		}
	}
	return out
}

// collectAmenities filters nodes through the shared exclude list.
func collectAmenities(nodes []snapshot.Node, minLen, maxLen int, extraExcludes []string) []amenityItem {
	var items []amenityItem
	for _, n := range nodes {
		t := n.Text()
		l := runeLen(t)
		if l == 0 || l <= minLen || (maxLen > 0 && l >= maxLen) {
			continue
		}
		if containsAnyFold(t, amenityBoilerplate) || containsAnyFold(t, extraExcludes) {
			continue
		}
		items = append(items, amenityItem{text: t, icon: n.Has(iconSelector)})
	}
	return items
}

func found(items []amenityItem) Outcome[[]amenityItem] {
	if len(items) == 0 {
		return NotFound[[]amenityItem]()
	}
	return Found(items)
}

func amenitiesInSection(doc snapshot.Document) Strategy[[]amenityItem] {
	return func() Outcome[[]amenityItem] {
		var items []amenityItem
		for _, section := range doc.Find(amenitySectionSelector) {
			items = append(items, collectAmenities(section.Find(amenityItemSelector), 0, 0, nil)...)
		}
		return found(items)
	}
}

func amenitiesInAltContainers(doc snapshot.Document) Strategy[[]amenityItem] {
	return func() Outcome[[]amenityItem] {
		for _, sel := range amenityAltSelectors {
			if items := collectAmenities(doc.Find(sel), 3, 0, amenityHeadings); len(items) > 0 {
				return Found(items)
			}
		}
		return NotFound[[]amenityItem]()
	}
}

// amenitiesNearHeading finds a short heading-like element naming the section
// and collects the blocks that share its parent.
func amenitiesNearHeading(doc snapshot.Document) Strategy[[]amenityItem] {
	return func() Outcome[[]amenityItem] {
		for _, h := range doc.Find("h2, h3, div, span") {
			t := h.Text()
			if runeLen(t) > 60 || !containsAnyFold(t, amenityHeadings) {
				continue
			}
			parent, ok := h.Parent()
			if !ok {
				continue
			}
			if items := collectAmenities(parent.Find("div, li"), 3, 0, amenityHeadings); len(items) > 0 {
				return Found(items)
			}
		}
		return NotFound[[]amenityItem]()
	}
}

// amenitiesByIcon treats every short block with an svg child as an amenity.
func amenitiesByIcon(doc snapshot.Document) Strategy[[]amenityItem] {
	return func() Outcome[[]amenityItem] {
		var candidates []snapshot.Node
		for _, n := range doc.Find("div") {
			if n.Has(iconSelector) {
				candidates = append(candidates, n)
			}
		}
		items := collectAmenities(candidates, 3, 50, iconScanExcludes)
		for i := range items {
			items[i].icon = true
		}
		return found(items)
	}
}
