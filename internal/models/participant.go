package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Payment is a signed amount applied against a participant's balance.
// Negative amounts are refunds.
type Payment struct {
	Amount    int       `json:"amount"`
	Date      time.Time `json:"date"`
	Reference string    `json:"reference,omitempty"`
}

// RangeBinding is one connection of a participant to a registration range.
// Cancelled bindings are kept for audit and capacity history; at most one
// binding may be live at a time.
type RangeBinding struct {
	RangeID   int64      `json:"range_id"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (b *RangeBinding) Active() bool {
	return b.DeletedAt == nil
}

// FlagOfParticipant is one flag selection: a reference to a FlagOffer plus an
// activated/deleted state. The bound offer is immutable after the first
// assignment; replacement goes through the registry's ReplaceParticipantFlag.
type FlagOfParticipant struct {
	ID          int64      `json:"id"`
	FlagOfferID int64      `json:"flag_offer_id"`
	Activated   bool       `json:"activated"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	TextValue   string     `json:"text_value,omitempty"`
}

func (f *FlagOfParticipant) Active() bool {
	return f.Activated && f.DeletedAt == nil
}

// BindOffer sets the flag offer reference. The first assignment wins.
func (f *FlagOfParticipant) BindOffer(offerID int64) error {
	if f.FlagOfferID != 0 && f.FlagOfferID != offerID {
		return &NotImplementedError{Field: "flag selection offer"}
	}
	f.FlagOfferID = offerID
	return nil
}

// Price is the selection's price contribution: zero unless active.
func (f *FlagOfParticipant) Price(offers FlagOfferLookup) int {
	return f.amount(offers, pickPrice)
}

func (f *FlagOfParticipant) Deposit(offers FlagOfferLookup) int {
	return f.amount(offers, pickDeposit)
}

func (f *FlagOfParticipant) amount(offers FlagOfferLookup, pick func(PricePair) int) int {
	if !f.Active() || offers == nil {
		return 0
	}
	offer, ok := offers.FlagOfferByID(f.FlagOfferID)
	if !ok {
		return 0
	}
	return pick(offer.Pricing)
}

// FlagGroupOfParticipant holds a participant's selections for one
// FlagGroupOffer (and therefore one flag category).
type FlagGroupOfParticipant struct {
	ID           int64                `json:"id"`
	GroupOfferID int64                `json:"group_offer_id"`
	Selections   []*FlagOfParticipant `json:"selections"`
}

func (g *FlagGroupOfParticipant) ActiveSelections() []*FlagOfParticipant {
	var active []*FlagOfParticipant
	for _, sel := range g.Selections {
		if sel.Active() {
			active = append(active, sel)
		}
	}
	return active
}

// ActiveCount returns how many active selections point at the given offer.
func (g *FlagGroupOfParticipant) ActiveCount(offerID int64) int {
	n := 0
	for _, sel := range g.Selections {
		if sel.Active() && sel.FlagOfferID == offerID {
			n++
		}
	}
	return n
}

// Participant is one contact's registration: exactly one live range binding,
// flag selections grouped per category, and a payment history.
type Participant struct {
	ID        int64      `json:"id"`
	ContactID int64      `json:"contact_id"`
	Category  string     `json:"category,omitempty"`
	Token     uuid.UUID  `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	Bindings []*RangeBinding           `json:"bindings"`
	Groups   []*FlagGroupOfParticipant `json:"groups"`
	Payments []Payment                 `json:"payments"`
}

func (p *Participant) Active() bool {
	return p.DeletedAt == nil
}

// ActiveBinding returns the single live range binding, nil when none exists.
// More than one live binding is a corruption state introduced upstream and is
// reported, never silently resolved.
func (p *Participant) ActiveBinding() (*RangeBinding, error) {
	var found *RangeBinding
	for _, b := range p.Bindings {
		if !b.Active() {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("participant %d: %w", p.ID, ErrMultipleBindings)
		}
		found = b
	}
	return found, nil
}

// BindRange attaches the participant to a range. A participant's chosen offer
// is fixed at creation; corrections are delete-and-recreate, so binding over
// an existing live binding is rejected.
func (p *Participant) BindRange(rangeID int64, now time.Time) error {
	active, err := p.ActiveBinding()
	if err != nil {
		return err
	}
	if active != nil {
		return &NotImplementedError{Field: "participant range binding"}
	}
	p.Bindings = append(p.Bindings, &RangeBinding{RangeID: rangeID, CreatedAt: now})
	return nil
}

// SetContact rebinds are not supported; identity is fixed at creation.
func (p *Participant) SetContact(contactID int64) error {
	if p.ContactID != 0 && p.ContactID != contactID {
		return &NotImplementedError{Field: "participant contact"}
	}
	p.ContactID = contactID
	return nil
}

// GroupForOffer returns the participant's selection group for the given
// FlagGroupOffer, if any.
func (p *Participant) GroupForOffer(groupOfferID int64) *FlagGroupOfParticipant {
	for _, g := range p.Groups {
		if g.GroupOfferID == groupOfferID {
			return g
		}
	}
	return nil
}

// Price is the range price for the participant's category plus the sum of
// active flag prices, floored at zero. It is undefined, not zero, without a
// resolvable range and category.
func (p *Participant) Price(ranges RangeLookup, offers FlagOfferLookup) (int, error) {
	return p.total(ranges, offers, pickPrice)
}

func (p *Participant) Deposit(ranges RangeLookup, offers FlagOfferLookup) (int, error) {
	return p.total(ranges, offers, pickDeposit)
}

func (p *Participant) total(ranges RangeLookup, offers FlagOfferLookup, pick func(PricePair) int) (int, error) {
	binding, err := p.ActiveBinding()
	if err != nil {
		return 0, err
	}
	if binding == nil {
		return 0, &PriceInvalidError{Reason: "participant has no active range binding"}
	}
	if ranges == nil {
		return 0, &PriceInvalidError{Reason: "no range lookup available"}
	}
	rng, ok := ranges.RangeByID(binding.RangeID)
	if !ok {
		return 0, &PriceInvalidError{Reason: fmt.Sprintf("range %d not found", binding.RangeID)}
	}

	// a participant without a category adopts the one of its range
	category := p.Category
	if category == "" {
		category = rng.Category
	}

	total := floorZero(rng.amount(category, ranges, pick, map[int64]bool{}))
	for _, group := range p.Groups {
		for _, sel := range group.Selections {
			total += sel.amount(offers, pick)
		}
	}
	return floorZero(total), nil
}

// Paid sums the signed payment amounts.
func (p *Participant) Paid() int {
	total := 0
	for _, payment := range p.Payments {
		total += payment.Amount
	}
	return total
}

// RemainingTotal is the amount still owed against the full price.
func (p *Participant) RemainingTotal(ranges RangeLookup, offers FlagOfferLookup) (int, error) {
	price, err := p.Price(ranges, offers)
	if err != nil {
		return 0, err
	}
	return price - p.Paid(), nil
}

// RemainingDeposit is the amount still owed against the deposit alone.
func (p *Participant) RemainingDeposit(ranges RangeLookup, offers FlagOfferLookup) (int, error) {
	deposit, err := p.Deposit(ranges, offers)
	if err != nil {
		return 0, err
	}
	return deposit - p.Paid(), nil
}

// Cancel soft-deletes the participant and deactivates its flag selections.
// Range bindings stay in place for audit and capacity history.
func (p *Participant) Cancel(now time.Time) {
	if p.DeletedAt != nil {
		return
	}
	p.DeletedAt = &now
	for _, b := range p.Bindings {
		if b.Active() {
			b.DeletedAt = &now
		}
	}
	for _, group := range p.Groups {
		for _, sel := range group.Selections {
			if sel.Active() {
				sel.DeletedAt = &now
			}
		}
	}
}

// VariableSymbol is the stable payment reference for this participant:
// two-digit registration year followed by the zero-padded id.
func (p *Participant) VariableSymbol() string {
	return fmt.Sprintf("%02d%06d", p.CreatedAt.Year()%100, p.ID%1000000)
}
