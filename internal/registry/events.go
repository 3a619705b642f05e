package registry

import (
	"time"

	"eventRegistrar/internal/models"
)

// CreateEvent adds an event, optionally as a child of an existing parent.
func (reg *Registry) CreateEvent(name string, dates models.DateInterval, parentID *int64, priceRecursive bool) (int64, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if parentID != nil {
		if _, ok := reg.events[*parentID]; !ok {
			return 0, ErrEventNotFound
		}
	}

	event := &models.Event{
		ID:                       reg.nextID(),
		Name:                     name,
		Dates:                    dates,
		ParentID:                 parentID,
		PriceRecursiveFromParent: priceRecursive,
	}
	reg.events[event.ID] = event
	if parentID != nil {
		reg.children[*parentID] = append(reg.children[*parentID], event.ID)
	}

	if reg.store != nil {
		if err := reg.store.SaveEvent(event); err != nil {
			if parentID != nil {
				reg.detachChild(*parentID, event.ID)
			}
			delete(reg.events, event.ID)
			return 0, err
		}
	}
	return event.ID, nil
}

// ReparentEvent moves an event under a new parent (nil makes it a root). The
// child is detached from the old parent's collection before attaching to the
// new one, so both sides never disagree about membership.
func (reg *Registry) ReparentEvent(id int64, newParentID *int64) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	event, ok := reg.events[id]
	if !ok {
		return ErrEventNotFound
	}
	if newParentID != nil {
		if _, ok := reg.events[*newParentID]; !ok {
			return ErrEventNotFound
		}
		for cursor := newParentID; cursor != nil; {
			if *cursor == id {
				return ErrEventCycle
			}
			parent := reg.events[*cursor]
			if parent == nil {
				break
			}
			cursor = parent.ParentID
		}
	}

	if !event.IsRoot() {
		reg.detachChild(*event.ParentID, id)
	}
	event.ParentID = newParentID
	if newParentID != nil {
		reg.children[*newParentID] = append(reg.children[*newParentID], id)
	}

	if reg.store != nil {
		return reg.store.SaveEvent(event)
	}
	return nil
}

func (reg *Registry) detachChild(parentID, childID int64) {
	kids := reg.children[parentID]
	for i, kid := range kids {
		if kid == childID {
			reg.children[parentID] = append(kids[:i], kids[i+1:]...)
			return
		}
	}
}

// ChildrenOf returns the ids of direct child events.
func (reg *Registry) ChildrenOf(id int64) []int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return append([]int64(nil), reg.children[id]...)
}

// StartDateRecursive is the earliest start across the event and all of its
// descendants. nil means neither the event nor any descendant has a start.
func (reg *Registry) StartDateRecursive(id int64) (*time.Time, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.events[id]; !ok {
		return nil, ErrEventNotFound
	}
	return reg.recursiveDate(id, func(d models.DateInterval) *time.Time { return d.Start }, func(a, b time.Time) bool { return a.Before(b) }), nil
}

// EndDateRecursive is the latest end across the event and its descendants.
func (reg *Registry) EndDateRecursive(id int64) (*time.Time, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.events[id]; !ok {
		return nil, ErrEventNotFound
	}
	return reg.recursiveDate(id, func(d models.DateInterval) *time.Time { return d.End }, func(a, b time.Time) bool { return a.After(b) }), nil
}

func (reg *Registry) recursiveDate(id int64, pick func(models.DateInterval) *time.Time, better func(a, b time.Time) bool) *time.Time {
	event := reg.events[id]
	if event == nil {
		return nil
	}

	best := pick(event.Dates)
	for _, childID := range reg.children[id] {
		candidate := reg.recursiveDate(childID, pick, better)
		if candidate == nil {
			continue
		}
		if best == nil || better(*candidate, *best) {
			t := *candidate
			best = &t
		}
	}
	if best != nil {
		t := *best
		return &t
	}
	return nil
}

// EventPrice resolves the price of registering for the event under the given
// category: the first matching direct range wins; otherwise the parent is
// consulted when PriceRecursiveFromParent is set; otherwise zero.
func (reg *Registry) EventPrice(id int64, category string) (int, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.eventAmount(id, category, (*models.RegistrationRange).Price)
}

// EventDeposit is the deposit analogue of EventPrice.
func (reg *Registry) EventDeposit(id int64, category string) (int, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.eventAmount(id, category, (*models.RegistrationRange).Deposit)
}

func (reg *Registry) eventAmount(id int64, category string, pick func(*models.RegistrationRange, string, models.RangeLookup) int) (int, error) {
	event, ok := reg.events[id]
	if !ok {
		return 0, ErrEventNotFound
	}

	if rng := reg.directRange(id, category); rng != nil {
		return pick(rng, category, rangeLookup{reg}), nil
	}
	if event.PriceRecursiveFromParent && !event.IsRoot() {
		return reg.eventAmount(*event.ParentID, category, pick)
	}
	return 0, nil
}

// directRange returns the event's own range matching the category, lowest id
// first so the resolution is deterministic.
func (reg *Registry) directRange(eventID int64, category string) *models.RegistrationRange {
	var best *models.RegistrationRange
	for _, rng := range reg.ranges {
		if rng.EventID != eventID {
			continue
		}
		if rng.Category != "" && rng.Category != category {
			continue
		}
		if best == nil || rng.ID < best.ID {
			best = rng
		}
	}
	return best
}
