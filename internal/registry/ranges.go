package registry

import (
	"time"

	"eventRegistrar/internal/models"
)

// CreateRangeParams carries everything needed to attach a new registration
// range to an event.
type CreateRangeParams struct {
	EventID            int64
	Name               string
	Category           string
	Dates              models.DateInterval
	Capacity           models.CapacityPair
	Pricing            models.PricePair
	Relative           bool
	RequiredRangeID    *int64
	SuperEventRequired bool
}

// CreateRange attaches a range to its event. This is the single authoritative
// mutation; there is no back-pointer on the event to keep in sync.
func (reg *Registry) CreateRange(params CreateRangeParams) (int64, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.events[params.EventID]; !ok {
		return 0, ErrEventNotFound
	}
	if params.RequiredRangeID != nil {
		if _, ok := reg.ranges[*params.RequiredRangeID]; !ok {
			return 0, ErrRangeNotFound
		}
	}

	rng := &models.RegistrationRange{
		ID:                 reg.nextID(),
		EventID:            params.EventID,
		Name:               params.Name,
		Category:           params.Category,
		Dates:              params.Dates,
		Capacity:           params.Capacity,
		Pricing:            params.Pricing,
		Relative:           params.Relative,
		RequiredRangeID:    params.RequiredRangeID,
		SuperEventRequired: params.SuperEventRequired,
	}
	reg.ranges[rng.ID] = rng

	if reg.store != nil {
		if err := reg.store.SaveRange(rng); err != nil {
			delete(reg.ranges, rng.ID)
			return 0, err
		}
	}
	return rng.ID, nil
}

// SetRangeCategory assigns the target category; the first assignment wins.
func (reg *Registry) SetRangeCategory(id int64, category string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rng, ok := reg.ranges[id]
	if !ok {
		return ErrRangeNotFound
	}
	if err := rng.SetCategory(category); err != nil {
		return err
	}
	if reg.store != nil {
		return reg.store.SaveRange(rng)
	}
	return nil
}

// SetRangeEnd moves the end of the registration window. Without force, an end
// in the past is clamped to now.
func (reg *Registry) SetRangeEnd(id int64, end time.Time, force bool) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rng, ok := reg.ranges[id]
	if !ok {
		return ErrRangeNotFound
	}
	rng.SetEndDateTime(end, force, reg.now())

	if reg.store != nil {
		return reg.store.SaveRange(rng)
	}
	return nil
}

// DeleteRange removes a range that never admitted anyone. A range with
// non-zero base usage is part of capacity history and cannot be deleted.
func (reg *Registry) DeleteRange(id int64) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rng, ok := reg.ranges[id]
	if !ok {
		return ErrRangeNotFound
	}
	if rng.Usage.Base > 0 {
		return ErrRangeInUse
	}
	delete(reg.ranges, id)
	return nil
}

// RangeSummary is the outward view of one range.
type RangeSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	Price         int    `json:"price"`
	Deposit       int    `json:"deposit"`
	RemainingBase *int   `json:"remaining_base,omitempty"`
	RemainingFull *int   `json:"remaining_full,omitempty"`
	Applicable    bool   `json:"applicable"`
}

// EventInfo aggregates an event with its recursive dates, children and
// ranges.
type EventInfo struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Dates          models.DateInterval `json:"dates"`
	StartRecursive *time.Time          `json:"start_recursive,omitempty"`
	EndRecursive   *time.Time          `json:"end_recursive,omitempty"`
	ChildIDs       []int64             `json:"child_ids,omitempty"`
	Ranges         []RangeSummary      `json:"ranges,omitempty"`
}

// GetEventInfo resolves the aggregate view used by the read endpoint.
func (reg *Registry) GetEventInfo(id int64) (EventInfo, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	event, ok := reg.events[id]
	if !ok {
		return EventInfo{}, ErrEventNotFound
	}

	info := EventInfo{
		ID:             event.ID,
		Name:           event.Name,
		Dates:          event.Dates,
		StartRecursive: reg.recursiveDate(id, func(d models.DateInterval) *time.Time { return d.Start }, func(a, b time.Time) bool { return a.Before(b) }),
		EndRecursive:   reg.recursiveDate(id, func(d models.DateInterval) *time.Time { return d.End }, func(a, b time.Time) bool { return a.After(b) }),
		ChildIDs:       append([]int64(nil), reg.children[id]...),
	}

	now := reg.now()
	lookup := rangeLookup{reg}
	for _, rng := range reg.ranges {
		if rng.EventID != id {
			continue
		}
		info.Ranges = append(info.Ranges, RangeSummary{
			ID:            rng.ID,
			Name:          rng.Name,
			Category:      rng.Category,
			Price:         rng.Price(rng.Category, lookup),
			Deposit:       rng.Deposit(rng.Category, lookup),
			RemainingBase: rng.RemainingCapacity(false),
			RemainingFull: rng.RemainingCapacity(true),
			Applicable:    rng.IsApplicable(rng.Category, now),
		})
	}
	return info, nil
}
