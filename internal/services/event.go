package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetpoint/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	memberRepo     domain.MemberRepository
	membershipRepo domain.MembershipRepository
	contextTimeout time.Duration
}

// NewEventService creates the EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	memberRepo domain.MemberRepository,
	membershipRepo domain.MembershipRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, caller *domain.Member, draft domain.EventDraft) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventTime, err := domain.ParseEventTime(draft.EventDateTime)
	if err != nil {
		return nil, err
	}

	event := domain.NewEvent(draft.Title, eventTime, draft.Place, draft.Content, draft.Point, time.Now())
	if _, err := s.eventRepo.CreateWithCreator(ctx, event, caller.ID); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return &domain.EventDetails{
		Event:   event,
		Members: []*domain.Member{caller},
	}, nil
}

func (s *eventService) Get(ctx context.Context, eventID string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.details(ctx, event)
}

func (s *eventService) Update(ctx context.Context, caller *domain.Member, eventID string, draft domain.EventDraft) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := s.requireMember(ctx, eventID, caller.ID); err != nil {
		return nil, err
	}

	eventTime, err := domain.ParseEventTime(draft.EventDateTime)
	if err != nil {
		return nil, err
	}

	updated := domain.ApplyUpdate(*event, domain.EventUpdate{
		Title:         draft.Title,
		EventDateTime: eventTime,
		Place:         draft.Place,
		Content:       draft.Content,
		Point:         draft.Point,
	}, time.Now())
	if err := s.eventRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return s.details(ctx, &updated)
}

func (s *eventService) Delete(ctx context.Context, caller *domain.Member, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.requireMember(ctx, eventID, caller.ID); err != nil {
		return err
	}

	if err := s.eventRepo.DeleteWithMemberships(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// Invite adds the member with the given nickname to the event. The caller
// must authenticate but is not required to be a member of the event
// themselves.
func (s *eventService) Invite(ctx context.Context, caller *domain.Member, eventID, nickname string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invitee, err := s.memberRepo.GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member by nickname: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	m := domain.NewEventMembership(event.ID, invitee.ID, time.Now())
	if err := s.membershipRepo.Add(ctx, m); err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("add membership: %w", err)
	}
	return s.details(ctx, event)
}

// Exit removes the caller's own membership record. The event survives even
// when its last member leaves.
func (s *eventService) Exit(ctx context.Context, caller *domain.Member, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	if _, err := s.membershipRepo.Find(ctx, event.ID, caller.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotAMember
		}
		return fmt.Errorf("find membership: %w", err)
	}

	if err := s.membershipRepo.Remove(ctx, event.ID, caller.ID); err != nil {
		if errors.Is(err, domain.ErrNotAMember) {
			return domain.ErrNotAMember
		}
		return fmt.Errorf("remove membership: %w", err)
	}
	return nil
}

// requireMember is the ledger authorization predicate: the caller must hold a
// membership record for the event. Authorship grants nothing on its own.
func (s *eventService) requireMember(ctx context.Context, eventID, memberID string) error {
	if _, err := s.membershipRepo.Find(ctx, eventID, memberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotAMember
		}
		return fmt.Errorf("find membership: %w", err)
	}
	return nil
}

// details re-reads the ledger so the response reflects membership as of
// response-assembly time.
func (s *eventService) details(ctx context.Context, event *domain.Event) (*domain.EventDetails, error) {
	members, err := s.membershipRepo.ListMembers(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*domain.Member{}
	}
	return &domain.EventDetails{
		Event:   event,
		Members: members,
	}, nil
}
