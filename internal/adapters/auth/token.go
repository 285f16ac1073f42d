package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"meetpoint/internal/domain"
)

// memberClaims is the access-token payload. The member identity travels in
// the token, so resolving the caller needs no database round-trip.
type memberClaims struct {
	jwt.RegisteredClaims
	Nickname        string `json:"nickname"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Email           string `json:"email,omitempty"`
	Credit          int64  `json:"credit"`
	Point           int64  `json:"point"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a CredentialVerifier that checks HS256 JWTs signed
// with the given secret. Token issuance belongs to the identity service; this
// side only verifies.
func NewJWTVerifier(secret string) domain.CredentialVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) keyFunc(t *jwt.Token) (interface{}, error) {
	return v.secret, nil
}

// Validate checks the refresh token's signature and expiry. Every failure
// collapses to ErrInvalidCredential.
func (v *jwtVerifier) Validate(refreshToken string) error {
	_, err := jwt.Parse(refreshToken, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.ErrInvalidCredential
	}
	return nil
}

// ResolveMember parses the access token and returns the member embedded in
// its claims. Only meaningful after Validate has accepted the refresh token.
func (v *jwtVerifier) ResolveMember(accessToken string) (*domain.Member, error) {
	claims := &memberClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, domain.ErrInvalidCredential
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidCredential
	}
	return &domain.Member{
		ID:              claims.Subject,
		Nickname:        claims.Nickname,
		PhoneNumber:     claims.PhoneNumber,
		Email:           claims.Email,
		Credit:          claims.Credit,
		Point:           claims.Point,
		ProfileImageURL: claims.ProfileImageURL,
	}, nil
}
