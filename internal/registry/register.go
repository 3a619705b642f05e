package registry

import (
	"fmt"

	"github.com/google/uuid"

	"eventRegistrar/internal/models"
)

// RegistrationRequest is a candidate registration: one contact, one target
// range, and the proposed flag selections keyed by flag group offer id.
type RegistrationRequest struct {
	ContactID int64
	RangeID   int64
	Category  string

	Flags map[int64][]FlagSelection

	// Admin allows administrative overflow: full flag-offer capacity during
	// flag validation.
	Admin bool
	// AllowOverflow checks the range against its full capacity instead of
	// the base one.
	AllowOverflow bool
}

// RegistrationResult is returned to the caller after a successful commit.
type RegistrationResult struct {
	ParticipantID  int64  `json:"participant_id"`
	VariableSymbol string `json:"variable_symbol"`
	Token          string `json:"token"`
	Price          int    `json:"price"`
	Deposit        int    `json:"deposit"`
}

// SimulateRegistration runs the full validation pass without committing
// anything. It is safe to call repeatedly.
func (reg *Registry) SimulateRegistration(req RegistrationRequest) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	_, err := reg.simulate(req)
	return err
}

// RegisterParticipant validates and commits a registration as one step under
// the registry lock: simulate, bind, select flags, persist, recompute usage.
// On any rejection nothing is committed.
func (reg *Registry) RegisterParticipant(req RegistrationRequest) (RegistrationResult, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rng, err := reg.simulate(req)
	if err != nil {
		return RegistrationResult{}, err
	}

	now := reg.now()
	participant := &models.Participant{
		ID:        reg.nextID(),
		Category:  req.Category,
		Token:     uuid.New(),
		CreatedAt: now,
	}
	if err := participant.SetContact(req.ContactID); err != nil {
		return RegistrationResult{}, err
	}
	if err := participant.BindRange(rng.ID, now); err != nil {
		return RegistrationResult{}, err
	}

	for _, group := range reg.groupOffersOfRange(rng.ID) {
		selection := req.Flags[group.ID]
		if len(selection) == 0 && group.Min == 0 {
			continue
		}
		// already validated in simulate; commit pass
		if err := reg.setParticipantFlags(participant, nil, group, selection, req.Admin, false); err != nil {
			return RegistrationResult{}, err
		}
	}

	reg.participants[participant.ID] = participant
	reg.recomputeUsage(rng.ID)

	if reg.store != nil {
		err := reg.store.SaveParticipant(participant)
		if err == nil {
			err = reg.updateUsage(rng.ID)
		}
		if err != nil {
			delete(reg.participants, participant.ID)
			reg.recomputeUsage(rng.ID)
			return RegistrationResult{}, fmt.Errorf("persist registration: %w", err)
		}
	}

	reg.notify("confirmation", participant)

	price, err := participant.Price(rangeLookup{reg}, flagOfferLookup{reg})
	if err != nil {
		return RegistrationResult{}, err
	}
	deposit, err := participant.Deposit(rangeLookup{reg}, flagOfferLookup{reg})
	if err != nil {
		return RegistrationResult{}, err
	}

	return RegistrationResult{
		ParticipantID:  participant.ID,
		VariableSymbol: participant.VariableSymbol(),
		Token:          participant.Token.String(),
		Price:          price,
		Deposit:        deposit,
	}, nil
}

// simulate is the shared validation pass. Callers hold reg.mu.
func (reg *Registry) simulate(req RegistrationRequest) (*models.RegistrationRange, error) {
	if _, ok := reg.contacts[req.ContactID]; !ok {
		return nil, ErrContactNotFound
	}
	rng, ok := reg.ranges[req.RangeID]
	if !ok {
		return nil, ErrRangeNotFound
	}

	if err := rng.SimulateAdd(req.Category, reg.now(), req.AllowOverflow); err != nil {
		return nil, err
	}

	if rng.SuperEventRequired {
		event := reg.events[rng.EventID]
		if event != nil && event.ParentID != nil && !reg.contactRegisteredOn(*event.ParentID, req.ContactID) {
			return nil, ErrSuperEventRequired
		}
	}

	groups := reg.groupOffersOfRange(rng.ID)
	for groupID := range req.Flags {
		known := false
		for _, group := range groups {
			if group.ID == groupID {
				known = true
				break
			}
		}
		if !known {
			return nil, &models.OutOfRangeError{Subject: fmt.Sprintf("flag group %d", groupID), Count: 1, Min: 0, Max: 0}
		}
	}
	for _, group := range groups {
		if err := reg.setParticipantFlags(nil, nil, group, req.Flags[group.ID], req.Admin, true); err != nil {
			return nil, err
		}
	}
	return rng, nil
}

// contactRegisteredOn reports whether the contact holds an active
// registration on any range of the given event.
func (reg *Registry) contactRegisteredOn(eventID, contactID int64) bool {
	for _, participant := range reg.participants {
		if participant.ContactID != contactID || !participant.Active() {
			continue
		}
		for _, binding := range participant.Bindings {
			if !binding.Active() {
				continue
			}
			if rng := reg.ranges[binding.RangeID]; rng != nil && rng.EventID == eventID {
				return true
			}
		}
	}
	return false
}

// CancelParticipant soft-deletes a registration. Flag selections are
// deactivated with it; the range binding record stays for audit.
func (reg *Registry) CancelParticipant(id int64) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	participant, ok := reg.participants[id]
	if !ok {
		return ErrParticipantNotFound
	}
	if !participant.Active() {
		return nil
	}

	binding, err := participant.ActiveBinding()
	if err != nil {
		return err
	}

	bindings := cloneBindings(participant.Bindings)
	groups := cloneGroups(participant.Groups)

	participant.Cancel(reg.now())

	var rangeID int64
	if binding != nil {
		rangeID = binding.RangeID
	}
	if err := reg.persistParticipant(participant, rangeID); err != nil {
		participant.DeletedAt = nil
		participant.Bindings = bindings
		participant.Groups = groups
		if binding != nil {
			reg.recomputeUsage(binding.RangeID)
		}
		return fmt.Errorf("persist cancellation: %w", err)
	}

	reg.notify("cancellation", participant)
	return nil
}
