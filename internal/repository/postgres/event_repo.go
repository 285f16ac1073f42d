package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"meetpoint/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns the EventRepository backed by the events table.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) CreateWithCreator(ctx context.Context, e *domain.Event, creatorID string) (*domain.EventMembership, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	insertEvent := `
		INSERT INTO events (title, event_datetime, place, content, point, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insertEvent,
		e.Title, e.EventDateTime, e.Place, e.Content, e.Point, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	m := domain.NewEventMembership(e.ID, creatorID, e.CreatedAt)
	if err := addMembership(ctx, tx, m); err != nil {
		return nil, fmt.Errorf("insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return m, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, event_datetime, place, content, point, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var content sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.EventDateTime, &e.Place, &content, &e.Point, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	e.Content = content.String
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, event_datetime = $2, place = $3, content = $4, point = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.EventDateTime, e.Place, e.Content, e.Point, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// DeleteWithMemberships removes the event's membership records and then the
// event, in one transaction. Either everything goes or nothing does.
func (r *eventRepository) DeleteWithMemberships(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := removeAllForEvent(ctx, tx, id); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
