package airbnb

import (
	"strings"

	"stayscraper/internal/snapshot"
)

var (
	descriptionBoilerplate = []string{"Mostrar mais", "Show more", "Ler mais", "Read more"}
	descriptionHeadings    = []string{"Sobre este espaço", "About this space", "About this place", "Descrição", "Description"}
	addressKeywords        = []string{"rua", "avenida", "av.", "r.", "bairro", "cidade", "estado", "localizado", "street", "avenue", "neighborhood", "city"}
)

// propertyTypes is checked in order; the first category with a matching keyword wins.
var propertyTypes = []struct {
	name     string
	keywords []string
}{
	{TypeApartment, []string{"apartamento", "apartment", "apto", "flat", "loft", "condomínio", "condominio"}},
	{TypeHouse, []string{"casa", "house", "chácara", "sítio", "fazenda", "rancho", "moradia"}},
	{TypeChalet, []string{"chalé", "chale", "cabana", "cabin", "chalés"}},
	{TypeRoom, []string{"quarto", "suíte", "suite", "room", "bedroom"}},
	{TypeHotel, []string{"hotel", "pousada", "hostel", "inn", "resort"}},
}

// ExtractBasicInfo resolves title, description, address and property type.
// Fields that cannot be found are left empty, type falls back to "outro".
func ExtractBasicInfo(doc snapshot.Document) BasicInfo {
	title, _ := First(
		fromSelectors(doc, titleSelectors, func(n snapshot.Node) (string, bool) {
			t := n.Text()
			return t, t != ""
		}),
	)

	description, _ := First(
		fromSelectors(doc, descriptionSelectors, plausibleDescription(20)),
		descriptionNearHeading(doc),
	)

	address, _ := First(
		fromSelectors(doc, addressSelectors, func(n snapshot.Node) (string, bool) {
			t := n.Text()
			return t, t != "" && (strings.Contains(t, ",") || containsAnyFold(t, addressKeywords))
		}),
	)

	return BasicInfo{
		Title:       title,
		Description: description,
		Type:        ClassifyType(title + " " + description),
		Address:     address,
	}
}

// ClassifyType maps free text to one of the known property types.
func ClassifyType(text string) string {
	folded := fold(text)
	for _, pt := range propertyTypes {
		for _, kw := range pt.keywords {
			if strings.Contains(folded, fold(kw)) {
				return pt.name
			}
		}
	}
	return TypeOther
}

// fromSelectors builds a strategy that walks selectors in order and returns
// the first node text accepted by pick.
func fromSelectors(doc snapshot.Document, selectors []string, pick func(snapshot.Node) (string, bool)) Strategy[string] {
	return func() Outcome[string] {
		for _, sel := range selectors {
			for _, n := range doc.Find(sel) {
				if v, ok := pick(n); ok {
					return Found(v)
				}
			}
		}
		return NotFound[string]()
	}
}

func plausibleDescription(minLen int) func(snapshot.Node) (string, bool) {
	return func(n snapshot.Node) (string, bool) {
		t := n.Text()
		return t, runeLen(t) > minLen && !containsAnyFold(t, descriptionBoilerplate)
	}
}

// descriptionNearHeading picks the longest text block next to a short
// "about this place" heading when no dedicated container exists.
func descriptionNearHeading(doc snapshot.Document) Strategy[string] {
	return func() Outcome[string] {
		for _, h := range doc.Find("h2, h3, div, span") {
			heading := h.Text()
			if runeLen(heading) > 40 || !containsAnyFold(heading, descriptionHeadings) {
				continue
			}
			parent, ok := h.Parent()
			if !ok {
				continue
			}

			best := ""
			for _, block := range parent.Find("div, p, span") {
				t := block.Text()
				if runeLen(t) <= 50 || block.Has("button") || containsAnyFold(t, descriptionBoilerplate) {
					continue
				}
				t = strings.TrimSpace(strings.TrimPrefix(t, heading))
				if runeLen(t) > runeLen(best) {
					best = t
				}
			}
			if runeLen(best) > 50 {
				return Found(best)
			}
		}
		return NotFound[string]()
	}
}
