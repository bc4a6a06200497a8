package relaypager

import (
	"fmt"

	"github.com/samber/lo"
)

// PageRequest is intended for API payloads. It follows the Relay connection
// arguments: First/After page forward, Last/Before page backward.
//
//	type UsersQuery struct {
//	    Paging relaypager.PageRequest `json:",inline"`
//	}
type PageRequest struct {
	// First - maximum number of records to return when paging forward.
	First *int `json:"first,omitempty"`
	// After - cursor obtained from an edge; the page starts right after it.
	After *string `json:"after,omitempty"`
	// Last - maximum number of records to return when paging backward.
	Last *int `json:"last,omitempty"`
	// Before - cursor obtained from an edge; the page ends right before it.
	// When set, backward semantics win over After.
	Before *string `json:"before,omitempty"`
}

// Forward builds a request for the page of up to first records following after.
// An empty after starts from the beginning of the collection.
func Forward(first int, after string) PageRequest {
	return PageRequest{
		First: lo.ToPtr(first),
		After: lo.EmptyableToPtr(after),
	}
}

// Backward builds a request for the page of up to last records preceding before.
func Backward(last int, before string) PageRequest {
	return PageRequest{
		Last:   lo.ToPtr(last),
		Before: lo.EmptyableToPtr(before),
	}
}

// IsBackward returns true if a before cursor was supplied.
func (r PageRequest) IsBackward() bool {
	return lo.FromPtr(r.Before) != ""
}

// HasCursor returns true if either an after or a before cursor was supplied.
func (r PageRequest) HasCursor() bool {
	return lo.FromPtr(r.After) != "" || r.IsBackward()
}

// Limit returns the effective page size: First, then Last, then DefaultLimit,
// clamped to maxLimit.
func (r PageRequest) Limit(maxLimit int) int {
	requested := 0
	switch {
	case r.First != nil:
		requested = *r.First
	case r.Last != nil:
		requested = *r.Last
	}

	return NormalizeLimitMax(requested, maxLimit)
}

// Decode decodes both cursors and fails if either of them is malformed. Only
// one of the returned keys is set: before when a before cursor is present,
// after otherwise.
func (r PageRequest) Decode() (after *Key, before *Key, err error) {
	after, err = DecodeCursor(lo.FromPtr(r.After))
	if err != nil {
		return nil, nil, fmt.Errorf("after: %w", err)
	}

	before, err = DecodeCursor(lo.FromPtr(r.Before))
	if err != nil {
		return nil, nil, fmt.Errorf("before: %w", err)
	}

	if before != nil {
		return nil, before, nil
	}

	return after, nil, nil
}
