package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the business rejection taxonomy. Carrier structs below
// attach display details while still matching these via errors.Is.
var (
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrOutOfRange       = errors.New("selection out of range")
	ErrNotImplemented   = errors.New("change not implemented")
	ErrInvalidType      = errors.New("invalid type")
	ErrPriceInvalid     = errors.New("price cannot be resolved")

	// ErrMultipleBindings signals a corrupted participant with more than one
	// live range binding. This is defect detection, not a business rejection.
	ErrMultipleBindings = errors.New("participant has multiple active range bindings")
)

// CapacityExceededError names the range or flag offer whose capacity (or
// group bound) would be violated.
type CapacityExceededError struct {
	Subject string
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded for %q", e.Subject)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// OutOfRangeError reports a selection cardinality outside [Min,Max], or a
// flag that is not reachable from the target range (Count < 0 unused then).
type OutOfRangeError struct {
	Subject  string
	Count    int
	Min, Max int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("selection of %d for %q is outside [%d,%d]", e.Count, e.Subject, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// NotImplementedError marks an attempted mutation of an intentionally
// immutable relationship.
type NotImplementedError struct {
	Field string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("changing %s is not implemented", e.Field)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// InvalidTypeError reports a type string outside its entity's allow-list.
type InvalidTypeError struct {
	Value   string
	Allowed []string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type %q, allowed: %s", e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidTypeError) Is(target error) bool {
	return target == ErrInvalidType
}

// PriceInvalidError is returned when a price or deposit is requested while
// the range or category cannot be resolved. Price is undefined in that state,
// not zero.
type PriceInvalidError struct {
	Reason string
}

func (e *PriceInvalidError) Error() string {
	return "price invalid: " + e.Reason
}

func (e *PriceInvalidError) Is(target error) bool {
	return target == ErrPriceInvalid
}
