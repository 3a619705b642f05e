package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventRegistrar/internal/models"
)

func TestUpdateUsage(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	_, rangeID := openRange(t, reg, models.IntPtr(10), models.Price(0, 0))
	contactID := newContact(t, reg, "alice")

	_, err := reg.RegisterParticipant(RegistrationRequest{ContactID: contactID, RangeID: rangeID})
	require.NoError(t, err)

	// a drifted counter is corrected from the bindings
	rng, ok := reg.RangeByID(rangeID)
	require.True(t, ok)
	rng.Usage = models.UsagePair{Base: 99, Full: 99}

	require.NoError(t, reg.UpdateUsage(rangeID))
	assert.Equal(t, models.UsagePair{Base: 1, Full: 1}, rng.Usage)

	err = reg.UpdateUsage(999)
	assert.ErrorIs(t, err, ErrRangeNotFound)
}

func TestUpdateAllUsage(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	_, firstID := openRange(t, reg, models.IntPtr(10), models.Price(0, 0))
	_, secondID := openRange(t, reg, models.IntPtr(10), models.Price(0, 0))
	contactID := newContact(t, reg, "alice")

	_, err := reg.RegisterParticipant(RegistrationRequest{ContactID: contactID, RangeID: firstID})
	require.NoError(t, err)

	first, _ := reg.RangeByID(firstID)
	second, _ := reg.RangeByID(secondID)
	first.Usage = models.UsagePair{Base: 5, Full: 5}
	second.Usage = models.UsagePair{Base: 5, Full: 5}

	require.NoError(t, reg.UpdateAllUsage())

	assert.Equal(t, models.UsagePair{Base: 1, Full: 1}, first.Usage)
	assert.Equal(t, models.UsagePair{Base: 0, Full: 0}, second.Usage)
}
