package airbnb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayscraper/internal/snapshot"
)

func doc(t *testing.T, body string) snapshot.Document {
	t.Helper()
	return snapshot.MustFromHTML("https://www.airbnb.com.br/rooms/1", "<html><body>"+body+"</body></html>")
}

func TestExtractBasicInfoTitleOnly(t *testing.T) {
	info := ExtractBasicInfo(doc(t, `<h1>Ocean View Apartment</h1>`))

	assert.Equal(t, BasicInfo{
		Title: "Ocean View Apartment",
		Type:  TypeApartment,
	}, info)
}

func TestExtractBasicInfoPrefersDedicatedTitle(t *testing.T) {
	info := ExtractBasicInfo(doc(t, `
		<h1>Generic heading</h1>
		<div data-section-id="TITLE_DEFAULT"><h1>Chalé na serra</h1></div>`))

	assert.Equal(t, "Chalé na serra", info.Title)
	assert.Equal(t, TypeChalet, info.Type)
}

func TestExtractBasicInfoDescription(t *testing.T) {
	info := ExtractBasicInfo(doc(t, `
		<h1>Refúgio tranquilo</h1>
		<div data-section-id="DESCRIPTION_DEFAULT">Mostrar mais</div>
		<div data-testid="pdp-description">Casa ampla com vista para o mar e piscina privativa.</div>`))

	assert.Equal(t, "Casa ampla com vista para o mar e piscina privativa.", info.Description)
	assert.Equal(t, TypeHouse, info.Type)
}

func TestExtractBasicInfoDescriptionNearHeading(t *testing.T) {
	info := ExtractBasicInfo(doc(t, `
		<h1>Loft central</h1>
		<section>
			<h2>Sobre este espaço</h2>
			<div><span>Loft moderno a duas quadras do metrô, ideal para casais que querem explorar a cidade a pé.</span></div>
		</section>`))

	assert.Equal(t, "Loft moderno a duas quadras do metrô, ideal para casais que querem explorar a cidade a pé.", info.Description)
}

func TestExtractBasicInfoWithoutDescriptionContainer(t *testing.T) {
	info := ExtractBasicInfo(doc(t, `
		<h1>Sunny place</h1>
		<div>Uma descrição muito longa que não está em nenhum contêiner de descrição conhecido pela página.</div>`))

	assert.Empty(t, info.Description)
	assert.Equal(t, TypeOther, info.Type)
}

func TestExtractBasicInfoAddress(t *testing.T) {
	info := ExtractBasicInfo(doc(t, `
		<h1>Flat</h1>
		<a href="https://maps.google.com/?q=1">Ver mapa</a>
		<div data-section-id="LOCATION_DEFAULT">Copacabana, Rio de Janeiro, Brasil</div>`))

	assert.Equal(t, "Copacabana, Rio de Janeiro, Brasil", info.Address)
}

func TestClassifyType(t *testing.T) {
	tests := map[string]string{
		"Apartamento com varanda":      TypeApartment,
		"CASA DE PRAIA":                TypeHouse,
		"Cabana rústica":               TypeChalet,
		"Suíte privativa":              TypeRoom,
		"Pousada do Sol":               TypeHotel,
		"Iglu":                         TypeOther,
		"Quarto em apartamento no Rio": TypeApartment,
		"CHALÉ":                        TypeChalet,
	}
	for in, want := range tests {
		assert.Equal(t, want, ClassifyType(in), in)
	}
}
