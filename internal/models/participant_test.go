package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offerMap map[int64]*FlagOffer

func (m offerMap) FlagOfferByID(id int64) (*FlagOffer, bool) {
	o, ok := m[id]
	return o, ok
}

var testNow = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

func TestParticipantActiveBinding(t *testing.T) {
	t.Parallel()

	t.Run("No bindings", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1}
		binding, err := p.ActiveBinding()
		require.NoError(t, err)
		assert.Nil(t, binding)
	})

	t.Run("One live binding", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1}
		require.NoError(t, p.BindRange(7, testNow))

		binding, err := p.ActiveBinding()
		require.NoError(t, err)
		require.NotNil(t, binding)
		assert.Equal(t, int64(7), binding.RangeID)
	})

	t.Run("Cancelled binding does not count", func(t *testing.T) {
		t.Parallel()

		deleted := testNow
		p := &Participant{ID: 1, Bindings: []*RangeBinding{
			{RangeID: 7, CreatedAt: testNow.AddDate(0, -1, 0), DeletedAt: &deleted},
		}}

		binding, err := p.ActiveBinding()
		require.NoError(t, err)
		assert.Nil(t, binding)
	})

	t.Run("Two live bindings is a corruption", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1, Bindings: []*RangeBinding{
			{RangeID: 7, CreatedAt: testNow},
			{RangeID: 8, CreatedAt: testNow},
		}}

		_, err := p.ActiveBinding()
		assert.ErrorIs(t, err, ErrMultipleBindings)
	})
}

func TestParticipantBindRange(t *testing.T) {
	t.Parallel()

	p := &Participant{ID: 1}
	require.NoError(t, p.BindRange(7, testNow))

	err := p.BindRange(8, testNow)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Len(t, p.Bindings, 1)
}

func TestParticipantSetContact(t *testing.T) {
	t.Parallel()

	p := &Participant{ID: 1}
	require.NoError(t, p.SetContact(42))
	assert.NoError(t, p.SetContact(42))

	err := p.SetContact(43)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Equal(t, int64(42), p.ContactID)
}

func TestFlagOfParticipantBindOffer(t *testing.T) {
	t.Parallel()

	sel := &FlagOfParticipant{ID: 1}
	require.NoError(t, sel.BindOffer(5))
	assert.NoError(t, sel.BindOffer(5))

	err := sel.BindOffer(6)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Equal(t, int64(5), sel.FlagOfferID)
}

func TestParticipantPrice(t *testing.T) {
	t.Parallel()

	ranges := rangeMap{
		7: {ID: 7, Category: "student", Pricing: Price(500, 100)},
		8: {ID: 8, Pricing: Price(300, 50)},
	}
	offers := offerMap{
		5: {ID: 5, Name: "dinner", Pricing: Price(150, 0)},
		6: {ID: 6, Name: "discount", Pricing: Price(-800, 0)},
	}

	t.Run("Range plus active flags", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1, Category: "student"}
		require.NoError(t, p.BindRange(7, testNow))
		p.Groups = []*FlagGroupOfParticipant{{
			ID:           1,
			GroupOfferID: 3,
			Selections: []*FlagOfParticipant{
				{ID: 10, FlagOfferID: 5, Activated: true},
			},
		}}

		price, err := p.Price(ranges, offers)
		require.NoError(t, err)
		assert.Equal(t, 650, price)

		deposit, err := p.Deposit(ranges, offers)
		require.NoError(t, err)
		assert.Equal(t, 100, deposit)
	})

	t.Run("Inactive selections contribute nothing", func(t *testing.T) {
		t.Parallel()

		deleted := testNow
		p := &Participant{ID: 1, Category: "student"}
		require.NoError(t, p.BindRange(7, testNow))
		p.Groups = []*FlagGroupOfParticipant{{
			ID:           1,
			GroupOfferID: 3,
			Selections: []*FlagOfParticipant{
				{ID: 10, FlagOfferID: 5, Activated: true, DeletedAt: &deleted},
				{ID: 11, FlagOfferID: 5, Activated: false},
			},
		}}

		price, err := p.Price(ranges, offers)
		require.NoError(t, err)
		assert.Equal(t, 500, price)
	})

	t.Run("Total is floored at zero", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1, Category: "student"}
		require.NoError(t, p.BindRange(7, testNow))
		p.Groups = []*FlagGroupOfParticipant{{
			ID:           1,
			GroupOfferID: 3,
			Selections: []*FlagOfParticipant{
				{ID: 10, FlagOfferID: 6, Activated: true},
			},
		}}

		price, err := p.Price(ranges, offers)
		require.NoError(t, err)
		assert.Equal(t, 0, price)
	})

	t.Run("Category falls back to the range", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1}
		require.NoError(t, p.BindRange(7, testNow))

		price, err := p.Price(ranges, offers)
		require.NoError(t, err)
		assert.Equal(t, 500, price)
	})

	t.Run("Uncategorized participant on an uncategorized range", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1}
		require.NoError(t, p.BindRange(8, testNow))

		price, err := p.Price(ranges, offers)
		require.NoError(t, err)
		assert.Equal(t, 300, price)
	})

	t.Run("No binding means no price", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1, Category: "student"}

		_, err := p.Price(ranges, offers)
		assert.ErrorIs(t, err, ErrPriceInvalid)
	})

	t.Run("Unknown range means no price", func(t *testing.T) {
		t.Parallel()

		p := &Participant{ID: 1, Category: "student"}
		require.NoError(t, p.BindRange(99, testNow))

		_, err := p.Price(ranges, offers)
		assert.ErrorIs(t, err, ErrPriceInvalid)
	})
}

func TestParticipantPaidAndRemaining(t *testing.T) {
	t.Parallel()

	ranges := rangeMap{
		7: {ID: 7, Pricing: Price(500, 100)},
	}

	p := &Participant{ID: 1}
	require.NoError(t, p.BindRange(7, testNow))
	p.Payments = []Payment{
		{Amount: 300, Date: testNow},
		{Amount: -100, Date: testNow, Reference: "refund"},
	}

	assert.Equal(t, 200, p.Paid())

	remaining, err := p.RemainingTotal(ranges, nil)
	require.NoError(t, err)
	assert.Equal(t, 300, remaining)

	deposit, err := p.RemainingDeposit(ranges, nil)
	require.NoError(t, err)
	assert.Equal(t, -100, deposit)
}

func TestParticipantCancel(t *testing.T) {
	t.Parallel()

	p := &Participant{ID: 1}
	require.NoError(t, p.BindRange(7, testNow))
	p.Groups = []*FlagGroupOfParticipant{{
		ID:           1,
		GroupOfferID: 3,
		Selections: []*FlagOfParticipant{
			{ID: 10, FlagOfferID: 5, Activated: true},
		},
	}}

	p.Cancel(testNow)

	assert.False(t, p.Active())
	assert.False(t, p.Bindings[0].Active())
	assert.False(t, p.Groups[0].Selections[0].Active())

	// repeated cancel keeps the original timestamps
	later := testNow.AddDate(0, 0, 1)
	p.Cancel(later)
	assert.Equal(t, testNow, *p.DeletedAt)
}

func TestParticipantVariableSymbol(t *testing.T) {
	t.Parallel()

	p := &Participant{ID: 42, CreatedAt: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "26000042", p.VariableSymbol())

	p = &Participant{ID: 987654, CreatedAt: time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "31987654", p.VariableSymbol())
}

func TestNewContact(t *testing.T) {
	t.Parallel()

	contact, err := NewContact(1, "Alice", ContactTypePerson, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, ContactTypePerson, contact.Type)

	_, err = NewContact(2, "Club", "club", "club@example.com")
	assert.ErrorIs(t, err, ErrInvalidType)
}
