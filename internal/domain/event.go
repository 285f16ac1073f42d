package domain

import (
	"context"
	"time"
)

// EventTimeLayout is the fixed textual pattern for event schedules,
// e.g. "2024-05-01-12-00-00".
const EventTimeLayout = "2006-01-02-15-04-05"

// ParseEventTime parses a schedule string in EventTimeLayout. A string that
// does not match returns ErrMalformedDateTime.
func ParseEventTime(s string) (time.Time, error) {
	t, err := time.Parse(EventTimeLayout, s)
	if err != nil {
		return time.Time{}, ErrMalformedDateTime
	}
	return t, nil
}

// Event represents a scheduled meetup. Its member list is not a field here:
// participation lives exclusively in the membership ledger.
// swagger:model Event
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	EventDateTime time.Time `json:"event_date_time"`
	Place         string    `json:"place"`
	Content       string    `json:"content"`
	Point         int64     `json:"point"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewEvent returns a new Event. ID is set by the repository on create.
func NewEvent(title string, eventDateTime time.Time, place, content string, point int64, createdAt time.Time) *Event {
	return &Event{
		Title:         title,
		EventDateTime: eventDateTime,
		Place:         place,
		Content:       content,
		Point:         point,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

// EventUpdate carries the mutable event fields. Membership is never part of
// an update.
type EventUpdate struct {
	Title         string
	EventDateTime time.Time
	Place         string
	Content       string
	Point         int64
}

// ApplyUpdate returns a copy of e with the update applied and UpdatedAt set.
// It is a pure transformation; persisting the result is the caller's step.
func ApplyUpdate(e Event, u EventUpdate, now time.Time) Event {
	e.Title = u.Title
	e.EventDateTime = u.EventDateTime
	e.Place = u.Place
	e.Content = u.Content
	e.Point = u.Point
	e.UpdatedAt = now
	return e
}

// EventRepository defines event storage. CreateWithCreator and
// DeleteWithMemberships each run as one transaction so an event never exists
// without its creator's membership and never outlives (or is outlived by)
// its membership records.
type EventRepository interface {
	// CreateWithCreator inserts the event and the creator's membership record
	// in one transaction, returning the created membership.
	CreateWithCreator(ctx context.Context, event *Event, creatorID string) (*EventMembership, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	// DeleteWithMemberships removes every membership record for the event and
	// then the event itself, in one transaction.
	DeleteWithMemberships(ctx context.Context, id string) error
}

// EventDetails bundles an event with its current member list in ledger
// insertion order.
type EventDetails struct {
	Event   *Event
	Members []*Member
}

// EventDraft is the caller-supplied shape for create and update. The schedule
// arrives as text and is parsed before any mutation.
type EventDraft struct {
	Title         string
	EventDateTime string
	Place         string
	Content       string
	Point         int64
}

// EventService defines the event lifecycle and the membership workflow. The
// caller is the Member resolved once at the boundary; operations never
// re-derive the caller's identity.
type EventService interface {
	Create(ctx context.Context, caller *Member, draft EventDraft) (*EventDetails, error)
	Get(ctx context.Context, eventID string) (*EventDetails, error)
	Update(ctx context.Context, caller *Member, eventID string, draft EventDraft) (*EventDetails, error)
	Delete(ctx context.Context, caller *Member, eventID string) error
	Invite(ctx context.Context, caller *Member, eventID, nickname string) (*EventDetails, error)
	Exit(ctx context.Context, caller *Member, eventID string) error
}
