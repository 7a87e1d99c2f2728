package airbnb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingContentStep(t *testing.T) {
	c := NewStepContent("https://www.airbnb.com.br/rooms/1", Result{
		Status:     StatusSuccess,
		Step:       1,
		TotalSteps: TotalSteps,
		Message:    "basic info extracted",
		Data:       BasicInfo{Title: "Ocean View Apartment", Type: TypeApartment},
	})

	text, err := c.ToText()
	require.NoError(t, err)
	assert.Contains(t, text, "Title: Ocean View Apartment")
	assert.Contains(t, text, "Type: apartamento")

	markdown, err := c.ToMarkdown()
	require.NoError(t, err)
	assert.Contains(t, markdown, "## Title")
	assert.Contains(t, markdown, "Ocean View Apartment")

	csv, err := c.ToCSV()
	require.NoError(t, err)
	assert.Contains(t, csv, "Field,Value\n")
	assert.Contains(t, csv, "Title,Ocean View Apartment\n")

	raw, err := c.ToJSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "success", decoded["status"])
}

func TestListingContentComplete(t *testing.T) {
	c := NewCompleteContent(CompleteResult{
		Status:    StatusPartial,
		SourceURL: "https://www.airbnb.com.br/rooms/1",
		Data: Listing{
			Title:     "Casa",
			Amenities: []Amenity{{Text: "Wi-Fi"}, {Text: "Piscina"}},
			Photos:    []string{"https://a0.muscache.com/im/pictures/a.jpg"},
		},
	})

	html, err := c.ToHTML()
	require.NoError(t, err)
	assert.Contains(t, html, "<li>Wi-Fi</li>")

	csv, err := c.ToCSV()
	require.NoError(t, err)
	assert.Contains(t, csv, "Amenities,Wi-Fi\n")
	assert.Contains(t, csv, "Amenities,Piscina\n")
	assert.Contains(t, csv, "Photos,https://a0.muscache.com/im/pictures/a.jpg\n")
}
