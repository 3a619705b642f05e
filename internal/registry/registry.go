package registry

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"eventRegistrar/internal/lib/logger/sl"
	"eventRegistrar/internal/models"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrRangeNotFound       = errors.New("registration range not found")
	ErrContactNotFound     = errors.New("contact not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrGroupOfferNotFound  = errors.New("flag group offer not found")
	ErrFlagOfferNotFound   = errors.New("flag offer not found")

	// ErrRangeInUse guards structural deletion of a range that already
	// admitted participants.
	ErrRangeInUse = errors.New("range has registered participants")

	// ErrSuperEventRequired rejects a range that demands an active
	// registration on the parent event first.
	ErrSuperEventRequired = errors.New("registration on the super event is required first")

	ErrEventCycle = errors.New("reparenting would create a cycle")
)

// Store is the persistence provider the registry writes through. Within one
// registry operation the store is treated as synchronous and consistent; a
// failed write aborts the operation before the in-memory state changes.
type Store interface {
	SaveEvent(e *models.Event) error
	SaveRange(r *models.RegistrationRange) error
	SaveFlagOffer(o *models.FlagOffer) error
	SaveParticipant(p *models.Participant) error
	SaveUsage(rangeID int64, usage models.UsagePair, offerUsage map[int64]models.UsagePair) error
}

// Notifier delivers participant-facing messages. Delivery failures are
// logged and counted, never surfaced as engine errors.
type Notifier interface {
	Notify(kind string, p *models.Participant, contact *models.Contact) error
}

// Registry is the in-memory registration engine. One mutex serializes every
// simulate-commit-recompute sequence, which closes the oversubscription race
// a non-transactional usage counter would otherwise allow.
type Registry struct {
	mu  sync.Mutex
	log *slog.Logger

	store    Store
	notifier Notifier
	now      func() time.Time

	events         map[int64]*models.Event
	children       map[int64][]int64
	ranges         map[int64]*models.RegistrationRange
	flagCategories map[int64]*models.FlagCategory
	groupOffers    map[int64]*models.FlagGroupOffer
	flagOffers     map[int64]*models.FlagOffer
	contacts       map[int64]*models.Contact
	participants   map[int64]*models.Participant

	seq int64
}

func New(log *slog.Logger) *Registry {
	return &Registry{
		log:            log,
		now:            time.Now,
		events:         make(map[int64]*models.Event),
		children:       make(map[int64][]int64),
		ranges:         make(map[int64]*models.RegistrationRange),
		flagCategories: make(map[int64]*models.FlagCategory),
		groupOffers:    make(map[int64]*models.FlagGroupOffer),
		flagOffers:     make(map[int64]*models.FlagOffer),
		contacts:       make(map[int64]*models.Contact),
		participants:   make(map[int64]*models.Participant),
	}
}

// UseStore attaches the persistence provider. Call before serving traffic.
func (reg *Registry) UseStore(store Store) {
	reg.store = store
}

// UseNotifier attaches the notification collaborator.
func (reg *Registry) UseNotifier(n Notifier) {
	reg.notifier = n
}

// UseClock overrides the time source, for tests.
func (reg *Registry) UseClock(now func() time.Time) {
	reg.now = now
}

func (reg *Registry) nextID() int64 {
	reg.seq++
	return reg.seq
}

// rangeLookup adapts the unlocked range map to models.RangeLookup. Only for
// use while reg.mu is held.
type rangeLookup struct{ reg *Registry }

func (l rangeLookup) RangeByID(id int64) (*models.RegistrationRange, bool) {
	r, ok := l.reg.ranges[id]
	return r, ok
}

type flagOfferLookup struct{ reg *Registry }

func (l flagOfferLookup) FlagOfferByID(id int64) (*models.FlagOffer, bool) {
	o, ok := l.reg.flagOffers[id]
	return o, ok
}

// RangeByID returns a range by id.
func (reg *Registry) RangeByID(id int64) (*models.RegistrationRange, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.ranges[id]
	return r, ok
}

// CreateContact registers a contact after validating its type against the
// allow-list.
func (reg *Registry) CreateContact(name, contactType, email string) (int64, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	contact, err := models.NewContact(0, name, contactType, email)
	if err != nil {
		return 0, err
	}
	contact.ID = reg.nextID()
	reg.contacts[contact.ID] = contact
	return contact.ID, nil
}

// AddRepresented records an individual contact as represented by an
// organization contact.
func (reg *Registry) AddRepresented(orgID, contactID int64) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	org, ok := reg.contacts[orgID]
	if !ok {
		return ErrContactNotFound
	}
	if org.Type != models.ContactTypeOrganization {
		return &models.InvalidTypeError{Value: org.Type, Allowed: []string{models.ContactTypeOrganization}}
	}
	if _, ok := reg.contacts[contactID]; !ok {
		return ErrContactNotFound
	}
	org.RepresentedIDs = append(org.RepresentedIDs, contactID)
	return nil
}

// CreateFlagCategory registers a flag category.
func (reg *Registry) CreateFlagCategory(name string) int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := reg.nextID()
	reg.flagCategories[id] = &models.FlagCategory{ID: id, Name: name}
	return id
}

// CreateFlagGroupOffer binds a flag category to a range with group-level
// selection bounds.
func (reg *Registry) CreateFlagGroupOffer(rangeID, categoryID int64, min, max int) (int64, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.ranges[rangeID]; !ok {
		return 0, ErrRangeNotFound
	}
	if _, ok := reg.flagCategories[categoryID]; !ok {
		return 0, ErrGroupOfferNotFound
	}
	id := reg.nextID()
	reg.groupOffers[id] = &models.FlagGroupOffer{
		ID:             id,
		RangeID:        rangeID,
		FlagCategoryID: categoryID,
		Min:            min,
		Max:            max,
	}
	return id, nil
}

// CreateFlagOffer adds a selectable flag to a group offer.
func (reg *Registry) CreateFlagOffer(groupID int64, name string, pricing models.PricePair, capacity models.CapacityPair, min, max int) (int64, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	group, ok := reg.groupOffers[groupID]
	if !ok {
		return 0, ErrGroupOfferNotFound
	}
	id := reg.nextID()
	offer := &models.FlagOffer{
		ID:       id,
		GroupID:  groupID,
		Name:     name,
		Pricing:  pricing,
		Capacity: capacity,
		Min:      min,
		Max:      max,
	}
	reg.flagOffers[id] = offer
	group.OfferIDs = append(group.OfferIDs, id)

	if reg.store != nil {
		if err := reg.store.SaveFlagOffer(offer); err != nil {
			group.OfferIDs = group.OfferIDs[:len(group.OfferIDs)-1]
			delete(reg.flagOffers, id)
			return 0, err
		}
	}
	return id, nil
}

// Participant returns a participant by id.
func (reg *Registry) Participant(id int64) (*models.Participant, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	p, ok := reg.participants[id]
	return p, ok
}

// persistParticipant saves the participant and refreshes the range's usage
// counters. Callers hold reg.mu and restore the in-memory state when an error
// comes back, so a failed write never leaves memory ahead of the store.
func (reg *Registry) persistParticipant(p *models.Participant, rangeID int64) error {
	if reg.store != nil {
		if err := reg.store.SaveParticipant(p); err != nil {
			return err
		}
	}
	if rangeID != 0 {
		return reg.updateUsage(rangeID)
	}
	return nil
}

func cloneBindings(bindings []*models.RangeBinding) []*models.RangeBinding {
	cloned := make([]*models.RangeBinding, len(bindings))
	for i, b := range bindings {
		c := *b
		cloned[i] = &c
	}
	return cloned
}

func cloneGroups(groups []*models.FlagGroupOfParticipant) []*models.FlagGroupOfParticipant {
	cloned := make([]*models.FlagGroupOfParticipant, len(groups))
	for i, g := range groups {
		cg := *g
		cg.Selections = make([]*models.FlagOfParticipant, len(g.Selections))
		for j, sel := range g.Selections {
			cs := *sel
			cg.Selections[j] = &cs
		}
		cloned[i] = &cg
	}
	return cloned
}

func (reg *Registry) groupOffersOfRange(rangeID int64) []*models.FlagGroupOffer {
	var groups []*models.FlagGroupOffer
	for _, g := range reg.groupOffers {
		if g.RangeID == rangeID {
			groups = append(groups, g)
		}
	}
	return groups
}

func (reg *Registry) notify(kind string, p *models.Participant) {
	if reg.notifier == nil {
		return
	}
	contact := reg.contacts[p.ContactID]
	if err := reg.notifier.Notify(kind, p, contact); err != nil {
		reg.log.Error("notification failed",
			slog.String("kind", kind),
			slog.Int64("participant_id", p.ID),
			sl.Err(err),
		)
	}
}
