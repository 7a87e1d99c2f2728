package airbnb

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// field is one labelled value of a listing; list fields carry several values.
type field struct {
	name   string
	values []string
}

// ListingContent holds a finished extraction and implements scraper.Content.
type ListingContent struct {
	sourceURL string
	status    Status
	message   string
	fields    []field
	raw       any
}

// NewStepContent wraps the result of a single step.
func NewStepContent(sourceURL string, res Result) *ListingContent {
	return &ListingContent{
		sourceURL: sourceURL,
		status:    res.Status,
		message:   res.Message,
		fields:    fieldsOf(res.Data),
		raw:       res,
	}
}

// NewCompleteContent wraps a merged run of all steps.
func NewCompleteContent(res CompleteResult) *ListingContent {
	return &ListingContent{
		sourceURL: res.SourceURL,
		status:    res.Status,
		message:   res.Message,
		fields:    fieldsOf(res.Data),
		raw:       res,
	}
}

func fieldsOf(data any) []field {
	one := func(name, v string) field { return field{name: name, values: []string{v}} }
	itoa := strconv.Itoa
	price := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	switch d := data.(type) {
	case BasicInfo:
		return []field{one("Title", d.Title), one("Type", d.Type), one("Address", d.Address), one("Description", d.Description)}
	case PriceCapacity:
		return []field{one("Price", price(d.Price)), one("Rooms", itoa(d.Rooms)), one("Bathrooms", itoa(d.Bathrooms)), one("Beds", itoa(d.Beds)), one("Guests", itoa(d.Guests))}
	case Amenities:
		return []field{{name: "Amenities", values: amenityTexts(d.Amenities)}}
	case Photos:
		return []field{{name: "Photos", values: d.Photos}}
	case Listing:
		return []field{
			one("Title", d.Title), one("Type", d.Type), one("Address", d.Address), one("Description", d.Description),
			one("Price", price(d.Price)), one("Rooms", itoa(d.Rooms)), one("Bathrooms", itoa(d.Bathrooms)),
			one("Beds", itoa(d.Beds)), one("Guests", itoa(d.Guests)),
			{name: "Amenities", values: amenityTexts(d.Amenities)},
			{name: "Photos", values: d.Photos},
		}
	default:
		return nil
	}
}

func amenityTexts(list []Amenity) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Text)
	}
	return out
}

func (c *ListingContent) ToHTML() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(c.sourceURL)))
	sb.WriteString(fmt.Sprintf("<p><strong>%s</strong>: %s</p>\n", c.status, html.EscapeString(c.message)))
	for _, f := range c.fields {
		sb.WriteString(fmt.Sprintf("<h2>%s</h2>\n", f.name))
		switch len(f.values) {
		case 0:
			sb.WriteString("<p>-</p>\n")
		case 1:
			sb.WriteString("<p>" + html.EscapeString(f.values[0]) + "</p>\n")
		default:
			sb.WriteString("<ul>\n")
			for _, v := range f.values {
				sb.WriteString("  <li>" + html.EscapeString(v) + "</li>\n")
			}
			sb.WriteString("</ul>\n")
		}
	}
	return sb.String(), nil
}

func (c *ListingContent) ToMarkdown() (string, error) {
	h, _ := c.ToHTML()
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return markdown, nil
}

func (c *ListingContent) ToText() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s [%s] %s\n\n", c.sourceURL, c.status, c.message))
	for _, f := range c.fields {
		if len(f.values) == 1 {
			sb.WriteString(fmt.Sprintf("%s: %s\n", f.name, f.values[0]))
			continue
		}
		sb.WriteString(f.name + ":\n")
		for _, v := range f.values {
			sb.WriteString("  - " + v + "\n")
		}
	}
	return sb.String(), nil
}

func (c *ListingContent) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c.raw, "", "  ")
}

func (c *ListingContent) ToCSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Field", "Value"})
	for _, f := range c.fields {
		for _, v := range f.values {
			_ = w.Write([]string{f.name, v})
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}
