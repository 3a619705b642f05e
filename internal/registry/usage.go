package registry

import "eventRegistrar/internal/models"

// UpdateUsage recomputes the denormalized usage counters of a range and all
// flag offers reachable from it. The counters are a cache over the active
// bindings, which stay the source of truth.
func (reg *Registry) UpdateUsage(rangeID int64) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.ranges[rangeID]; !ok {
		return ErrRangeNotFound
	}
	return reg.updateUsage(rangeID)
}

// UpdateAllUsage recomputes every range, the periodic safety net behind the
// per-commit updates.
func (reg *Registry) UpdateAllUsage() error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for rangeID := range reg.ranges {
		if err := reg.updateUsage(rangeID); err != nil {
			return err
		}
	}
	return nil
}

// updateUsage recomputes in memory and writes the counters through the
// store. Callers hold reg.mu.
func (reg *Registry) updateUsage(rangeID int64) error {
	reg.recomputeUsage(rangeID)

	if reg.store == nil {
		return nil
	}
	rng := reg.ranges[rangeID]
	offerUsage := make(map[int64]models.UsagePair)
	for _, group := range reg.groupOffersOfRange(rangeID) {
		for _, offerID := range group.OfferIDs {
			if offer := reg.flagOffers[offerID]; offer != nil {
				offerUsage[offerID] = offer.Usage
			}
		}
	}
	return reg.store.SaveUsage(rangeID, rng.Usage, offerUsage)
}

// recomputeUsage counts active bindings and rewrites both counters of the
// pair. Callers hold reg.mu.
func (reg *Registry) recomputeUsage(rangeID int64) {
	rng := reg.ranges[rangeID]
	if rng == nil {
		return
	}

	bound := 0
	for _, participant := range reg.participants {
		for _, binding := range participant.Bindings {
			if binding.Active() && binding.RangeID == rangeID {
				bound++
			}
		}
	}
	rng.Usage = models.UsagePair{Base: bound, Full: bound}

	for _, group := range reg.groupOffersOfRange(rangeID) {
		for _, offerID := range group.OfferIDs {
			offer := reg.flagOffers[offerID]
			if offer == nil {
				continue
			}
			selected := 0
			for _, participant := range reg.participants {
				for _, pg := range participant.Groups {
					if pg.GroupOfferID == group.ID {
						selected += pg.ActiveCount(offerID)
					}
				}
			}
			offer.Usage = models.UsagePair{Base: selected, Full: selected}
		}
	}
}
