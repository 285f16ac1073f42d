package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"meetpoint/internal/domain"
)

// execer and queryRower are satisfied by both *sql.DB and *sql.Tx so
// membership writes can run inside the event repository's transactions.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type membershipRepository struct {
	DB *sql.DB
}

// NewMembershipRepository returns the MembershipRepository backed by the
// event_members table.
func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{
		DB: db,
	}
}

// addMembership inserts one membership row, filling the record's ID and
// CreatedAt. The unique index on (event_id, member_id) turns a duplicate
// insert into ErrAlreadyMember, including under concurrent invites.
func addMembership(ctx context.Context, db queryRower, m *domain.EventMembership) error {
	query := `
		INSERT INTO event_members (event_id, member_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := db.QueryRowContext(ctx, query, m.EventID, m.MemberID).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func removeAllForEvent(ctx context.Context, ex execer, eventID string) error {
	query := `DELETE FROM event_members WHERE event_id = $1`
	_, err := ex.ExecContext(ctx, query, eventID)
	return err
}

func (r *membershipRepository) Add(ctx context.Context, m *domain.EventMembership) error {
	return addMembership(ctx, r.DB, m)
}

func (r *membershipRepository) Remove(ctx context.Context, eventID, memberID string) error {
	query := `DELETE FROM event_members WHERE event_id = $1 AND member_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, memberID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotAMember
	}
	return nil
}

func (r *membershipRepository) RemoveAllForEvent(ctx context.Context, eventID string) error {
	return removeAllForEvent(ctx, r.DB, eventID)
}

func (r *membershipRepository) Find(ctx context.Context, eventID, memberID string) (*domain.EventMembership, error) {
	query := `
		SELECT id, event_id, member_id, created_at
		FROM event_members
		WHERE event_id = $1 AND member_id = $2
	`
	m := &domain.EventMembership{}
	err := r.DB.QueryRowContext(ctx, query, eventID, memberID).
		Scan(&m.ID, &m.EventID, &m.MemberID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) ListMembers(ctx context.Context, eventID string) ([]*domain.Member, error) {
	query := `
		SELECT m.id, m.nickname, m.phone_number, m.email, m.credit, m.point, m.profile_image_url
		FROM event_members em
		JOIN members m ON m.id = em.member_id
		WHERE em.event_id = $1
		ORDER BY em.created_at, em.id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]*domain.Member, 0)
	for rows.Next() {
		m := &domain.Member{}
		var phone, email, image sql.NullString
		if err := rows.Scan(&m.ID, &m.Nickname, &phone, &email, &m.Credit, &m.Point, &image); err != nil {
			return nil, err
		}
		m.PhoneNumber = phone.String
		m.Email = email.String
		m.ProfileImageURL = image.String
		members = append(members, m)
	}
	return members, rows.Err()
}
