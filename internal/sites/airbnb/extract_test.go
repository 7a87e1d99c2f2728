package airbnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDispatchesByStep(t *testing.T) {
	d := doc(t, `<h1>Casa na praia</h1>`)

	for step, want := range map[int]any{
		StepBasicInfo:     BasicInfo{},
		StepPriceCapacity: PriceCapacity{},
		StepAmenities:     Amenities{},
		StepPhotos:        Photos{},
	} {
		got, err := Extract(step, d)
		require.NoError(t, err, step)
		assert.IsType(t, want, got, step)
	}

	_, err := Extract(5, d)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestValidStep(t *testing.T) {
	assert.False(t, ValidStep(0))
	assert.True(t, ValidStep(1))
	assert.True(t, ValidStep(4))
	assert.False(t, ValidStep(5))
	assert.Equal(t, "photos", StepName(StepPhotos))
	assert.Equal(t, "step 9", StepName(9))
}
