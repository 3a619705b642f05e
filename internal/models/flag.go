package models

// FlagCategory groups flag offers under one theme, e.g. "t-shirt size" or
// "accommodation". A participant holds at most one active selection group per
// category.
type FlagCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FlagGroupOffer fixes how many flags may be selected from its offers for one
// registration range.
type FlagGroupOffer struct {
	ID             int64 `json:"id"`
	RangeID        int64 `json:"range_id"`
	FlagCategoryID int64 `json:"flag_category_id"`

	Min int `json:"min"`
	Max int `json:"max"`

	OfferIDs []int64 `json:"offer_ids"`
}

func (g *FlagGroupOffer) HasOffer(offerID int64) bool {
	for _, id := range g.OfferIDs {
		if id == offerID {
			return true
		}
	}
	return false
}

// FlagOffer is one selectable flag with its own price, deposit, capacity and
// per-participant selection bounds (normally 0/1).
type FlagOffer struct {
	ID      int64  `json:"id"`
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`

	Pricing  PricePair    `json:"pricing"`
	Capacity CapacityPair `json:"capacity"`
	Usage    UsagePair    `json:"usage"`

	Min int `json:"min"`
	Max int `json:"max"`
}

// RemainingCapacity mirrors RegistrationRange.RemainingCapacity; full selects
// the administrative overflow limit.
func (o *FlagOffer) RemainingCapacity(full bool) *int {
	return Remaining(o.Capacity, o.Usage, full)
}

// FlagOfferLookup resolves flag offers by id for price computations.
type FlagOfferLookup interface {
	FlagOfferByID(id int64) (*FlagOffer, bool)
}
