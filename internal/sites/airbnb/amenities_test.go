package airbnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmenitiesSection(t *testing.T) {
	a := ExtractAmenities(doc(t, `
		<div data-section-id="AMENITIES_DEFAULT">
			<h2>O que este lugar oferece</h2>
			<div class="_19xnuo97"><svg></svg><div>Wi-Fi</div></div>
			<div class="_19xnuo97"><svg></svg><div>Cozinha</div></div>
			<div class="_19xnuo97"><div>Wi-Fi</div></div>
			<div class="_19xnuo97">Indisponível: Alarme de monóxido de carbono</div>
			<div class="_19xnuo97"><button>Mostrar todas as 42 comodidades</button></div>
		</div>`))

	assert.Equal(t, []Amenity{{Text: "Wi-Fi"}, {Text: "Cozinha"}}, a.Amenities)
	assert.Equal(t, []string{"Wi-Fi", "Cozinha"}, a.AmenitiesWithIcons)
}

func TestExtractAmenitiesNearHeading(t *testing.T) {
	a := ExtractAmenities(doc(t, `
		<section>
			<h2>What this place offers</h2>
			<div>Pool</div>
			<div>Free parking</div>
			<div>Show all 30 amenities</div>
			<div>TV</div>
		</section>`))

	assert.Equal(t, []Amenity{{Text: "Pool"}, {Text: "Free parking"}}, a.Amenities)
	assert.Empty(t, a.AmenitiesWithIcons)
}

func TestExtractAmenitiesIconScan(t *testing.T) {
	a := ExtractAmenities(doc(t, `
		<div><svg></svg><span>Ar-condicionado</span></div>
		<div><svg></svg>Menu</div>
		<div><svg></svg>Ar-condicionado</div>`))

	assert.Equal(t, []Amenity{{Text: "Ar-condicionado"}}, a.Amenities)
	assert.Equal(t, []string{"Ar-condicionado"}, a.AmenitiesWithIcons)
}

func TestExtractAmenitiesNone(t *testing.T) {
	a := ExtractAmenities(doc(t, `<h1>Sem nada</h1>`))

	assert.NotNil(t, a.Amenities)
	assert.NotNil(t, a.AmenitiesWithIcons)
	assert.Empty(t, a.Amenities)
}

func TestAmenitiesNeverRepeatOrLeakBoilerplate(t *testing.T) {
	a := ExtractAmenities(doc(t, `
		<div data-testid="amenities-section">
			<div>Piscina</div><div>Piscina</div><div>Show all amenities</div>
			<div>Unavailable: Smoke alarm</div><div>Estacionamento</div>
		</div>`))

	seen := map[string]bool{}
	for _, am := range a.Amenities {
		assert.False(t, seen[am.Text], "duplicate %q", am.Text)
		seen[am.Text] = true
		assert.False(t, containsAnyFold(am.Text, amenityBoilerplate), "boilerplate %q", am.Text)
	}
	assert.Equal(t, []Amenity{{Text: "Piscina"}, {Text: "Estacionamento"}}, a.Amenities)
}
