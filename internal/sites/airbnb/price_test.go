package airbnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"R$ 1.048", 1048},
		{"R$ 1.048,00", 1048},
		{"R$ 1.048,50", 1048.5},
		{"", 0},
		{"R$", 0},
		{"Sem preço", 0},
		{"R$ 350", 350},
		{"R$ 12,5", 12.5},
		{"$1,234.56", 1.234},
		{"R$ 2.500.000", 2500000},
		{"R$ .", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePrice(tt.in), 1e-9)
		})
	}
}

func TestPriceFromCurrency(t *testing.T) {
	v, ok := priceFromCurrency("Total R$ 1.250,90 por noite")
	assert.True(t, ok)
	assert.InDelta(t, 1250.9, v, 1e-9)

	_, ok = priceFromCurrency("USD 120")
	assert.False(t, ok)
}
