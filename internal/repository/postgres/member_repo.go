package postgres

import (
	"context"
	"database/sql"
	"errors"

	"meetpoint/internal/domain"
)

type memberRepository struct {
	DB *sql.DB
}

// NewMemberRepository returns a read-only MemberRepository backed by the
// members table. Members are written by the registration service.
func NewMemberRepository(db *sql.DB) domain.MemberRepository {
	return &memberRepository{
		DB: db,
	}
}

const memberColumns = `id, nickname, phone_number, email, credit, point, profile_image_url`

func scanMember(row *sql.Row) (*domain.Member, error) {
	m := &domain.Member{}
	var phone, email, image sql.NullString
	err := row.Scan(&m.ID, &m.Nickname, &phone, &email, &m.Credit, &m.Point, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	m.PhoneNumber = phone.String
	m.Email = email.String
	m.ProfileImageURL = image.String
	return m, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1
	`
	return scanMember(r.DB.QueryRowContext(ctx, query, id))
}

func (r *memberRepository) GetByNickname(ctx context.Context, nickname string) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE nickname = $1
	`
	return scanMember(r.DB.QueryRowContext(ctx, query, nickname))
}
