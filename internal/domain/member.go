package domain

import "context"

// Member represents a registered member. Members are created by the external
// registration flow; this service only reads them.
// swagger:model Member
type Member struct {
	ID              string `json:"id"`
	Nickname        string `json:"nickname"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	Credit          int64  `json:"credit"`
	Point           int64  `json:"point"`
	ProfileImageURL string `json:"profile_image_url"`
}

// MemberRepository defines read-only member storage. Nickname lookup backs
// the invite flow.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByNickname(ctx context.Context, nickname string) (*Member, error)
}
