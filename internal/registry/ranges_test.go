package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventRegistrar/internal/models"
)

func TestCreateRangeValidation(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	_, err := reg.CreateRange(CreateRangeParams{EventID: 999, Name: "orphan"})
	assert.ErrorIs(t, err, ErrEventNotFound)

	eventID, err := reg.CreateEvent("conference", models.DateInterval{}, nil, false)
	require.NoError(t, err)

	missing := int64(999)
	_, err = reg.CreateRange(CreateRangeParams{
		EventID:         eventID,
		Name:            "addon",
		RequiredRangeID: &missing,
	})
	assert.ErrorIs(t, err, ErrRangeNotFound)
}

func TestSetRangeCategory(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	_, rangeID := openRange(t, reg, models.IntPtr(10), models.Price(0, 0))

	require.NoError(t, reg.SetRangeCategory(rangeID, "student"))

	err := reg.SetRangeCategory(rangeID, "adult")
	assert.ErrorIs(t, err, models.ErrNotImplemented)

	err = reg.SetRangeCategory(999, "student")
	assert.ErrorIs(t, err, ErrRangeNotFound)
}

func TestSetRangeEnd(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	_, rangeID := openRange(t, reg, models.IntPtr(10), models.Price(0, 0))

	past := testNow.AddDate(0, -1, 0)

	t.Run("Past end is clamped to now", func(t *testing.T) {
		require.NoError(t, reg.SetRangeEnd(rangeID, past, false))

		rng, ok := reg.RangeByID(rangeID)
		require.True(t, ok)
		require.NotNil(t, rng.Dates.End)
		assert.Equal(t, testNow, *rng.Dates.End)
	})

	t.Run("Force keeps the past end", func(t *testing.T) {
		require.NoError(t, reg.SetRangeEnd(rangeID, past, true))

		rng, ok := reg.RangeByID(rangeID)
		require.True(t, ok)
		require.NotNil(t, rng.Dates.End)
		assert.Equal(t, past, *rng.Dates.End)
	})

	t.Run("Unknown range", func(t *testing.T) {
		err := reg.SetRangeEnd(999, past, false)
		assert.ErrorIs(t, err, ErrRangeNotFound)
	})
}

func TestSetRangeEndClosesWindow(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	_, rangeID := openRange(t, reg, models.IntPtr(10), models.Price(0, 0))
	contactID := newContact(t, reg, "alice")

	req := RegistrationRequest{ContactID: contactID, RangeID: rangeID}
	require.NoError(t, reg.SimulateRegistration(req))

	// closing the window a month ago still takes effect now, not in the past
	require.NoError(t, reg.SetRangeEnd(rangeID, testNow.AddDate(0, -1, 0), false))

	rng, ok := reg.RangeByID(rangeID)
	require.True(t, ok)
	assert.True(t, rng.Dates.Contains(testNow))
	assert.False(t, rng.Dates.Contains(testNow.Add(time.Second)))
}

func TestDeleteRange(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	_, rangeID := openRange(t, reg, models.IntPtr(10), models.Price(0, 0))
	contactID := newContact(t, reg, "alice")

	_, err := reg.RegisterParticipant(RegistrationRequest{ContactID: contactID, RangeID: rangeID})
	require.NoError(t, err)

	err = reg.DeleteRange(rangeID)
	assert.ErrorIs(t, err, ErrRangeInUse)

	_, emptyRangeID := openRange(t, reg, models.IntPtr(10), models.Price(0, 0))
	require.NoError(t, reg.DeleteRange(emptyRangeID))

	err = reg.DeleteRange(emptyRangeID)
	assert.ErrorIs(t, err, ErrRangeNotFound)
}

func TestGetEventInfo(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	start := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC)

	eventID, err := reg.CreateEvent("festival", models.Interval(&start, &end), nil, false)
	require.NoError(t, err)
	childID, err := reg.CreateEvent("camp", models.DateInterval{}, &eventID, false)
	require.NoError(t, err)

	rangeID, err := reg.CreateRange(CreateRangeParams{
		EventID:  eventID,
		Name:     "main",
		Capacity: models.Capacity(models.IntPtr(10), models.IntPtr(12)),
		Pricing:  models.Price(500, 100),
	})
	require.NoError(t, err)

	info, err := reg.GetEventInfo(eventID)
	require.NoError(t, err)

	assert.Equal(t, eventID, info.ID)
	assert.Equal(t, "festival", info.Name)
	assert.Equal(t, []int64{childID}, info.ChildIDs)
	require.NotNil(t, info.StartRecursive)
	assert.Equal(t, start, *info.StartRecursive)

	require.Len(t, info.Ranges, 1)
	summary := info.Ranges[0]
	assert.Equal(t, rangeID, summary.ID)
	assert.Equal(t, 500, summary.Price)
	assert.Equal(t, 100, summary.Deposit)
	require.NotNil(t, summary.RemainingBase)
	assert.Equal(t, 10, *summary.RemainingBase)
	assert.True(t, summary.Applicable)

	_, err = reg.GetEventInfo(999)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
