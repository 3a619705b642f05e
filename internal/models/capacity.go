package models

// CapacityPair holds the base capacity and the full capacity of an offer.
// Full capacity includes administratively allowed overflow beyond the base
// limit. A nil value means unlimited.
type CapacityPair struct {
	Base *int `json:"base,omitempty"`
	Full *int `json:"full,omitempty"`
}

// UsagePair is the denormalized counter pair recomputed by the usage ledger.
// The source of truth is the count of active bindings, not these counters.
type UsagePair struct {
	Base int `json:"base"`
	Full int `json:"full"`
}

func Capacity(base, full *int) CapacityPair {
	return CapacityPair{Base: base, Full: full}
}

func IntPtr(n int) *int {
	return &n
}

func Int64Ptr(n int64) *int64 {
	return &n
}

func (c CapacityPair) value(full bool) *int {
	if full {
		return c.Full
	}
	return c.Base
}

func (u UsagePair) value(full bool) int {
	if full {
		return u.Full
	}
	return u.Base
}

// Remaining returns capacity minus usage, clamped at zero, or nil when the
// selected capacity is unlimited.
func Remaining(c CapacityPair, u UsagePair, full bool) *int {
	cap := c.value(full)
	if cap == nil {
		return nil
	}
	rest := *cap - u.value(full)
	if rest < 0 {
		rest = 0
	}
	return &rest
}

// RawRemaining keeps the sign so that delta checks can distinguish "exactly
// full" from "already oversubscribed". Unlimited reports ok=false.
func RawRemaining(c CapacityPair, u UsagePair, full bool) (rest int, ok bool) {
	cap := c.value(full)
	if cap == nil {
		return 0, false
	}
	return *cap - u.value(full), true
}
