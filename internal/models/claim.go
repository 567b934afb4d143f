package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ClaimKind selects which allocation rule applies to a claim.
type ClaimKind string

const (
	// ClaimExclusive marks portions the participant personally took.
	// Each portion consumes one unit of the item's quantity and costs the
	// unit price.
	ClaimExclusive ClaimKind = "exclusive"

	// ClaimShared marks membership in an equal split of the whole item.
	// Portions holds the size of the sharing group; each member owes
	// itemTotal / groupSize and consumes a single quantity slot.
	ClaimShared ClaimKind = "shared"
)

var (
	// ErrInvalidPortions is returned when an exclusive claim is created
	// with a non-positive portion count.
	ErrInvalidPortions = errors.New("portions must be a positive integer")

	// ErrInvalidGroupSize is returned when a shared claim is created with
	// a non-positive group size.
	ErrInvalidGroupSize = errors.New("group size must be a positive integer")

	// ErrMissingParticipant is returned when a claim references no
	// participant.
	ErrMissingParticipant = errors.New("claim requires a participant")
)

// Claim records one participant's declared stake in a line item.
//
// Claims are built through NewExclusiveClaim or NewSharedClaim so the dual
// meaning of Portions is pinned down by Kind at construction time and the
// positive-count invariant always holds downstream.
type Claim struct {
	// ID is the unique identifier for the claim (UUID format).
	ID string

	// ParticipantID references the participant on the owning receipt.
	ParticipantID string

	// Kind selects the allocation rule. See ClaimExclusive and ClaimShared.
	Kind ClaimKind

	// Portions is the number of units taken (exclusive) or the number of
	// people splitting the item (shared). Always positive.
	Portions int

	// ClaimedAt is the Unix timestamp when the claim was recorded.
	// Informational only; no ordering guarantee depends on it.
	ClaimedAt int64
}

// NewExclusiveClaim creates a claim for portions the participant took for
// themselves.
func NewExclusiveClaim(participantID string, portions int) (Claim, error) {
	if participantID == "" {
		return Claim{}, ErrMissingParticipant
	}
	if portions <= 0 {
		return Claim{}, ErrInvalidPortions
	}
	return Claim{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		Kind:          ClaimExclusive,
		Portions:      portions,
		ClaimedAt:     time.Now().Unix(),
	}, nil
}

// NewSharedClaim creates a claim recording that the participant is one of
// groupSize people splitting the item equally. A group of one is legal (one
// person taking a whole platter).
func NewSharedClaim(participantID string, groupSize int) (Claim, error) {
	if participantID == "" {
		return Claim{}, ErrMissingParticipant
	}
	if groupSize <= 0 {
		return Claim{}, ErrInvalidGroupSize
	}
	return Claim{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		Kind:          ClaimShared,
		Portions:      groupSize,
		ClaimedAt:     time.Now().Unix(),
	}, nil
}

// IsShared reports whether the claim is a shared-group membership.
func (c Claim) IsShared() bool {
	return c.Kind == ClaimShared
}
