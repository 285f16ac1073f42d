package domain

import (
	"context"
	"time"
)

// EventMembership records that a member participates in an event. At most one
// record exists per (event, member) pair; the schema enforces this with a
// unique index so concurrent invites cannot produce duplicates.
// swagger:model EventMembership
type EventMembership struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	MemberID  string    `json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEventMembership returns a new EventMembership. ID is set by the
// repository on create.
func NewEventMembership(eventID, memberID string, createdAt time.Time) *EventMembership {
	return &EventMembership{
		EventID:   eventID,
		MemberID:  memberID,
		CreatedAt: createdAt,
	}
}

// MembershipRepository is the authoritative ledger of (event, member) pairs.
// Find backs the authorization predicate: a caller is a member of an event
// exactly when Find succeeds.
type MembershipRepository interface {
	// Add inserts a membership record. Adding an existing pair returns
	// ErrAlreadyMember.
	Add(ctx context.Context, m *EventMembership) error
	// Remove deletes the single record for the pair. Removing an absent pair
	// returns ErrNotAMember.
	Remove(ctx context.Context, eventID, memberID string) error
	// RemoveAllForEvent deletes every record for the event. Used only as part
	// of event deletion.
	RemoveAllForEvent(ctx context.Context, eventID string) error
	// Find returns the record for the pair, or ErrNotFound.
	Find(ctx context.Context, eventID, memberID string) (*EventMembership, error)
	// ListMembers returns the event's members in membership insertion order.
	ListMembers(ctx context.Context, eventID string) ([]*Member, error)
}
