package airbnb

import (
	"os"
	"testing"

	"github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadPayload(t *testing.T) *Payload {
	t.Helper()
	raw, err := os.ReadFile("testdata/deferred_state.json")
	require.NoError(t, err)
	p, err := ParsePayload(string(raw))
	require.NoError(t, err)
	return p
}

func TestMapPayloadBasicInfo(t *testing.T) {
	data, err := MapPayload(StepBasicInfo, loadPayload(t))
	require.NoError(t, err)

	info, ok := data.(BasicInfo)
	require.True(t, ok)
	assert.Equal(t, "Apartamento vista mar", info.Title)
	assert.Contains(t, info.Description, "Lindo")
	assert.NotContains(t, info.Description, "<p>")
	assert.Equal(t, TypeApartment, info.Type)
	assert.Equal(t, "Copacabana, Rio de Janeiro", info.Address)
	assert.Equal(t, geohash.EncodeWithPrecision(-22.9711, -43.1822, geohashPrecision), info.Geohash)
}

func TestMapPayloadPriceCapacity(t *testing.T) {
	data, err := MapPayload(StepPriceCapacity, loadPayload(t))
	require.NoError(t, err)

	assert.Equal(t, PriceCapacity{Price: 1048.5, Rooms: 2, Bathrooms: 1, Beds: 3, Guests: 4}, data)
}

func TestMapPayloadAmenities(t *testing.T) {
	data, err := MapPayload(StepAmenities, loadPayload(t))
	require.NoError(t, err)

	assert.Equal(t, Amenities{
		Amenities:          []Amenity{{Text: "Wi-Fi"}, {Text: "Cozinha"}},
		AmenitiesWithIcons: []string{"Wi-Fi"},
	}, data)
}

func TestMapPayloadPhotos(t *testing.T) {
	data, err := MapPayload(StepPhotos, loadPayload(t))
	require.NoError(t, err)

	assert.Equal(t, Photos{Photos: []string{"https://a0.muscache.com/im/pictures/a.jpg"}}, data)
}

func TestMapPayloadErrors(t *testing.T) {
	_, err := MapPayload(5, loadPayload(t))
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = ParsePayload(`{"foo": 1}`)
	assert.ErrorIs(t, err, ErrNoStructuredData)

	_, err = ParsePayload(`<html>`)
	assert.ErrorIs(t, err, ErrNoStructuredData)

	sharingOnly, err := ParsePayload(`{"sharingConfig": {"title": "Casa no campo", "personCapacity": 6}}`)
	require.NoError(t, err)

	data, err := MapPayload(StepBasicInfo, sharingOnly)
	require.NoError(t, err)
	assert.Equal(t, "Casa no campo", data.(BasicInfo).Title)
	assert.Equal(t, TypeHouse, data.(BasicInfo).Type)

	data, err = MapPayload(StepPriceCapacity, sharingOnly)
	require.NoError(t, err)
	assert.Equal(t, PriceCapacity{Rooms: 1, Bathrooms: 1, Beds: 1, Guests: 6}, data)

	_, err = MapPayload(StepAmenities, sharingOnly)
	assert.ErrorIs(t, err, ErrNoStructuredData)

	_, err = MapPayload(StepPhotos, sharingOnly)
	assert.ErrorIs(t, err, ErrNoStructuredData)
}
