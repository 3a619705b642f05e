package registry

import (
	"fmt"

	"eventRegistrar/internal/models"
)

// FlagSelection is one proposed flag choice.
type FlagSelection struct {
	OfferID   int64  `json:"offer_id"`
	TextValue string `json:"text_value,omitempty"`
}

// SetParticipantFlags replaces a participant's selections for one flag group.
// With simulateOnly the call is a pure validation pass.
func (reg *Registry) SetParticipantFlags(participantID, groupOfferID int64, newSelection []FlagSelection, admin, simulateOnly bool) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	participant, ok := reg.participants[participantID]
	if !ok {
		return ErrParticipantNotFound
	}
	groupOffer, ok := reg.groupOffers[groupOfferID]
	if !ok {
		return ErrGroupOfferNotFound
	}

	current := participant.GroupForOffer(groupOfferID)
	groups := cloneGroups(participant.Groups)
	if err := reg.setParticipantFlags(participant, current, groupOffer, newSelection, admin, simulateOnly); err != nil {
		return err
	}
	if simulateOnly {
		return nil
	}

	if err := reg.persistParticipant(participant, groupOffer.RangeID); err != nil {
		participant.Groups = groups
		reg.recomputeUsage(groupOffer.RangeID)
		return fmt.Errorf("persist flag selection: %w", err)
	}
	return nil
}

// setParticipantFlags validates and (unless simulateOnly) applies a new
// selection set. The group-level bound is checked before any per-offer
// capacity, so an oversized selection is reported as such instead of as a
// misleading capacity rejection on one offer.
func (reg *Registry) setParticipantFlags(participant *models.Participant, current *models.FlagGroupOfParticipant, groupOffer *models.FlagGroupOffer, newSelection []FlagSelection, admin, simulateOnly bool) error {
	groupName := reg.flagGroupName(groupOffer)

	// 1. group-level [min,max]
	if len(newSelection) < groupOffer.Min || len(newSelection) > groupOffer.Max {
		return &models.OutOfRangeError{
			Subject: groupName,
			Count:   len(newSelection),
			Min:     groupOffer.Min,
			Max:     groupOffer.Max,
		}
	}

	// 2. every selected offer must be reachable from the group
	newCounts := make(map[int64]int, len(newSelection))
	for _, sel := range newSelection {
		if !groupOffer.HasOffer(sel.OfferID) {
			return &models.OutOfRangeError{
				Subject: groupName,
				Count:   1,
				Min:     0,
				Max:     0,
			}
		}
		newCounts[sel.OfferID]++
	}

	// 3. per-offer capacity deltas, then per-offer bounds
	for _, offerID := range groupOffer.OfferIDs {
		offer := reg.flagOffers[offerID]
		if offer == nil {
			return ErrFlagOfferNotFound
		}

		currentCount := 0
		if current != nil {
			currentCount = current.ActiveCount(offerID)
		}
		newCount := newCounts[offerID]

		if delta := newCount - currentCount; delta > 0 {
			if rest, limited := models.RawRemaining(offer.Capacity, offer.Usage, admin); limited && rest < delta {
				return &models.CapacityExceededError{Subject: offer.Name}
			}
		}
		if newCount < offer.Min || newCount > offer.Max {
			return &models.OutOfRangeError{
				Subject: offer.Name,
				Count:   newCount,
				Min:     offer.Min,
				Max:     offer.Max,
			}
		}
	}

	if simulateOnly {
		return nil
	}

	// 4. commit: deactivate removed, activate added
	if current == nil {
		current = &models.FlagGroupOfParticipant{
			ID:           reg.nextID(),
			GroupOfferID: groupOffer.ID,
		}
		participant.Groups = append(participant.Groups, current)
	}

	now := reg.now()
	for _, offerID := range groupOffer.OfferIDs {
		target := newCounts[offerID]
		for _, sel := range current.Selections {
			if sel.FlagOfferID != offerID || !sel.Active() {
				continue
			}
			if target > 0 {
				target--
				continue
			}
			sel.DeletedAt = &now
		}
		for ; target > 0; target-- {
			sel := &models.FlagOfParticipant{
				ID:        reg.nextID(),
				Activated: true,
				TextValue: textValueFor(newSelection, offerID),
			}
			if err := sel.BindOffer(offerID); err != nil {
				return err
			}
			current.Selections = append(current.Selections, sel)
		}
	}
	return nil
}

// ReplaceParticipantFlag swaps one selection to a new offer in the same
// group: the old selection is soft-deleted and a fresh one activated, but
// only after re-checking the new offer's remaining capacity.
func (reg *Registry) ReplaceParticipantFlag(participantID, selectionID, newOfferID int64, admin bool) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	participant, ok := reg.participants[participantID]
	if !ok {
		return ErrParticipantNotFound
	}
	newOffer, ok := reg.flagOffers[newOfferID]
	if !ok {
		return ErrFlagOfferNotFound
	}

	for _, group := range participant.Groups {
		for _, sel := range group.Selections {
			if sel.ID != selectionID {
				continue
			}
			groupOffer := reg.groupOffers[group.GroupOfferID]
			if groupOffer == nil || !groupOffer.HasOffer(newOfferID) {
				return &models.OutOfRangeError{Subject: newOffer.Name, Count: 1, Min: 0, Max: 0}
			}
			if rest, limited := models.RawRemaining(newOffer.Capacity, newOffer.Usage, admin); limited && rest < 1 {
				return &models.CapacityExceededError{Subject: newOffer.Name}
			}

			groups := cloneGroups(participant.Groups)
			now := reg.now()
			sel.DeletedAt = &now
			replacement := &models.FlagOfParticipant{
				ID:        reg.nextID(),
				Activated: true,
				TextValue: sel.TextValue,
			}
			if err := replacement.BindOffer(newOfferID); err != nil {
				return err
			}
			group.Selections = append(group.Selections, replacement)

			if err := reg.persistParticipant(participant, groupOffer.RangeID); err != nil {
				participant.Groups = groups
				reg.recomputeUsage(groupOffer.RangeID)
				return fmt.Errorf("persist flag replacement: %w", err)
			}
			return nil
		}
	}
	return ErrFlagOfferNotFound
}

func (reg *Registry) flagGroupName(groupOffer *models.FlagGroupOffer) string {
	if category := reg.flagCategories[groupOffer.FlagCategoryID]; category != nil {
		return category.Name
	}
	return "flag group"
}

func textValueFor(selection []FlagSelection, offerID int64) string {
	for _, sel := range selection {
		if sel.OfferID == offerID && sel.TextValue != "" {
			return sel.TextValue
		}
	}
	return ""
}
