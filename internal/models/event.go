package models

// Event is a node in the event tree. The parent is referenced by id only;
// children are derived from an index in the registry, never stored on the
// event itself.
type Event struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Dates    DateInterval `json:"dates"`
	ParentID *int64       `json:"parent_id,omitempty"`

	// PriceRecursiveFromParent makes price/deposit lookups fall back to the
	// parent event when this event has no direct range for the category.
	PriceRecursiveFromParent bool `json:"price_recursive_from_parent"`
}

func (e *Event) IsRoot() bool {
	return e.ParentID == nil
}
