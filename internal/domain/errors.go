package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is the generic repository miss, used where a more specific
	// sentinel would leak storage details.
	ErrNotFound = errors.New("not found")

	// ErrMemberNotFound is returned when a member lookup fails. It is also the
	// outcome for requests arriving without a credential pair, so callers
	// cannot tell a missing credential from an unknown member.
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvalidCredential is returned when a presented token fails
	// verification (bad signature, expired, malformed).
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrEventNotFound is returned when the target event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrNotAMember is returned when the caller has no membership record for
	// an event that requires one.
	ErrNotAMember = errors.New("not a participant of the event")

	// ErrAlreadyMember is returned when inviting a member who already has a
	// membership record for the event.
	ErrAlreadyMember = errors.New("already a participant of the event")

	// ErrMalformedDateTime is returned when an event schedule string does not
	// match the expected pattern.
	ErrMalformedDateTime = errors.New("malformed event date-time")
)
