package models

import "time"

// RangeLookup resolves ranges by id, used for required-range price chains.
type RangeLookup interface {
	RangeByID(id int64) (*RegistrationRange, bool)
}

// RegistrationRange is the offer a participant registers through: a
// time-bounded, priced, capacity-limited window for one participant category.
type RegistrationRange struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Name    string `json:"name"`

	// Category is the target participant category. Empty matches any
	// category; once set it is immutable.
	Category string `json:"category,omitempty"`

	Dates    DateInterval `json:"dates"`
	Capacity CapacityPair `json:"capacity"`
	Usage    UsagePair    `json:"usage"`
	Pricing  PricePair    `json:"pricing"`

	// Relative adds the required range's price/deposit to this range's own.
	Relative        bool   `json:"relative"`
	RequiredRangeID *int64 `json:"required_range_id,omitempty"`

	// SuperEventRequired demands an active registration of the same contact
	// on the parent event before this range may be used.
	SuperEventRequired bool `json:"super_event_required"`
}

// SetCategory assigns the target category. The first non-empty assignment
// wins; a later change is rejected.
func (r *RegistrationRange) SetCategory(category string) error {
	if r.Category != "" && r.Category != category {
		return &NotImplementedError{Field: "registration range category"}
	}
	r.Category = category
	return nil
}

func (r *RegistrationRange) matchesCategory(category string) bool {
	return r.Category == "" || r.Category == category
}

// IsApplicable reports whether the range accepts the category at the given
// instant. Both interval ends are inclusive; an unset end is unbounded.
func (r *RegistrationRange) IsApplicable(category string, at time.Time) bool {
	return r.matchesCategory(category) && r.Dates.Contains(at)
}

// RemainingCapacity returns capacity minus usage (nil = unlimited), clamped
// at zero for display. Delta checks use the raw difference internally.
func (r *RegistrationRange) RemainingCapacity(full bool) *int {
	return Remaining(r.Capacity, r.Usage, full)
}

// SetEndDateTime stores the new end. An end in the past is clamped to now
// unless force is set, so that a registration window is never silently closed
// or reopened at a moment that already passed.
func (r *RegistrationRange) SetEndDateTime(end time.Time, force bool, now time.Time) {
	if end.Before(now) && !force {
		end = now
	}
	r.Dates.End = &end
}

// Price returns the price for the category: the range's own price when the
// category matches, plus the required range's price when Relative is set.
// The result is floored at zero.
func (r *RegistrationRange) Price(category string, ranges RangeLookup) int {
	return floorZero(r.amount(category, ranges, pickPrice, map[int64]bool{}))
}

// Deposit is the deposit analogue of Price.
func (r *RegistrationRange) Deposit(category string, ranges RangeLookup) int {
	return floorZero(r.amount(category, ranges, pickDeposit, map[int64]bool{}))
}

func pickPrice(p PricePair) int   { return p.Price }
func pickDeposit(p PricePair) int { return p.Deposit }

func (r *RegistrationRange) amount(category string, ranges RangeLookup, pick func(PricePair) int, seen map[int64]bool) int {
	if seen[r.ID] {
		return 0
	}
	seen[r.ID] = true

	total := 0
	if r.matchesCategory(category) {
		total = pick(r.Pricing)
	}
	if r.Relative && r.RequiredRangeID != nil && ranges != nil {
		if required, ok := ranges.RangeByID(*r.RequiredRangeID); ok {
			total += required.amount(category, ranges, pick, seen)
		}
	}
	return total
}

// SimulateAdd checks whether one more participant of the given category fits
// the range at the given instant. It is a pure validation pass: no state is
// touched and repeated calls return the same result. Flag validation is a
// separate step on top of this one.
func (r *RegistrationRange) SimulateAdd(category string, at time.Time, allowOverflow bool) error {
	if !r.IsApplicable(category, at) {
		return &CapacityExceededError{Subject: r.Name}
	}
	if rest, limited := RawRemaining(r.Capacity, r.Usage, allowOverflow); limited && rest < 1 {
		return &CapacityExceededError{Subject: r.Name}
	}
	return nil
}
