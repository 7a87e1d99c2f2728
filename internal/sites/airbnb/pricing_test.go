package airbnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPriceCapacityDefaults(t *testing.T) {
	pc := ExtractPriceCapacity(doc(t, `<h1>Nothing here</h1><p>Lindo lugar</p>`))

	assert.Equal(t, PriceCapacity{Price: 0, Rooms: 1, Bathrooms: 1, Beds: 1, Guests: 2}, pc)
}

func TestExtractPriceCapacityScoped(t *testing.T) {
	pc := ExtractPriceCapacity(doc(t, `
		<div class="_gfomxi"><div>
			<h1>Casa grande</h1>
			<ol><li>6 hóspedes</li><li>3 quartos</li><li>4 camas</li><li>2 banheiros</li></ol>
		</div></div>
		<button class="_194r9nk1"><span class="u1qzfr7o">R$ 1.048,50</span></button>
		<p>Até 10 hóspedes no evento anual</p>`))

	assert.Equal(t, PriceCapacity{Price: 1048.5, Rooms: 3, Bathrooms: 2, Beds: 4, Guests: 6}, pc)
}

func TestExtractPriceCapacityBodyFallback(t *testing.T) {
	pc := ExtractPriceCapacity(doc(t, `
		<div data-testid="book-it-price">Total R$ 780 por noite</div>
		<p>4 guests · 2 bedrooms · 3 beds · 1.5 baths</p>`))

	assert.Equal(t, PriceCapacity{Price: 780, Rooms: 2, Bathrooms: 1, Beds: 3, Guests: 4}, pc)
}

func TestExtractPriceCapacityZeroCountsFloor(t *testing.T) {
	pc := ExtractPriceCapacity(doc(t, `<p>0 quartos, 0 banheiros, 0 camas, 0 hóspedes</p>`))

	assert.Equal(t, 1, pc.Rooms)
	assert.Equal(t, 1, pc.Bathrooms)
	assert.Equal(t, 1, pc.Beds)
	assert.Equal(t, 2, pc.Guests)
}

func TestExtractPriceFromMeta(t *testing.T) {
	pc := ExtractPriceCapacity(doc(t, `<meta itemprop="price" content="420.00"><span class="u1qzfr7o">Preço</span>`))

	assert.InDelta(t, 420.0, pc.Price, 1e-9)
}
