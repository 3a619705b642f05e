package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		capacity CapacityPair
		usage    UsagePair
		full     bool
		expected *int
	}{
		{
			name:     "Base capacity with room",
			capacity: Capacity(IntPtr(10), IntPtr(12)),
			usage:    UsagePair{Base: 4, Full: 4},
			full:     false,
			expected: IntPtr(6),
		},
		{
			name:     "Full capacity with room",
			capacity: Capacity(IntPtr(10), IntPtr(12)),
			usage:    UsagePair{Base: 10, Full: 10},
			full:     true,
			expected: IntPtr(2),
		},
		{
			name:     "Oversubscribed clamps to zero",
			capacity: Capacity(IntPtr(10), IntPtr(12)),
			usage:    UsagePair{Base: 13, Full: 13},
			full:     false,
			expected: IntPtr(0),
		},
		{
			name:     "Nil base capacity is unlimited",
			capacity: Capacity(nil, IntPtr(12)),
			usage:    UsagePair{Base: 100, Full: 100},
			full:     false,
			expected: nil,
		},
		{
			name:     "Nil full capacity is unlimited",
			capacity: Capacity(IntPtr(10), nil),
			usage:    UsagePair{Base: 100, Full: 100},
			full:     true,
			expected: nil,
		},
		{
			name:     "Exactly full",
			capacity: Capacity(IntPtr(10), IntPtr(10)),
			usage:    UsagePair{Base: 10, Full: 10},
			full:     false,
			expected: IntPtr(0),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Remaining(tc.capacity, tc.usage, tc.full)
			if tc.expected == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tc.expected, *got)
			}
		})
	}
}

func TestRawRemaining(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		capacity CapacityPair
		usage    UsagePair
		full     bool
		rest     int
		ok       bool
	}{
		{
			name:     "Room left",
			capacity: Capacity(IntPtr(10), nil),
			usage:    UsagePair{Base: 4},
			rest:     6,
			ok:       true,
		},
		{
			name:     "Oversubscribed keeps the sign",
			capacity: Capacity(IntPtr(10), nil),
			usage:    UsagePair{Base: 13},
			rest:     -3,
			ok:       true,
		},
		{
			name:     "Unlimited reports not limited",
			capacity: Capacity(nil, nil),
			usage:    UsagePair{Base: 100},
			rest:     0,
			ok:       false,
		},
		{
			name:     "Full capacity selected",
			capacity: Capacity(IntPtr(10), IntPtr(12)),
			usage:    UsagePair{Base: 11, Full: 11},
			full:     true,
			rest:     1,
			ok:       true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rest, ok := RawRemaining(tc.capacity, tc.usage, tc.full)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.rest, rest)
		})
	}
}
