package domain

// Credentials is the token pair a caller presents: an access token carrying
// the member's identity and a refresh token proving the session is current.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// CredentialVerifier verifies caller credentials. ResolveMember is only
// meaningful after Validate has accepted the refresh token; both collapse
// every verification failure to ErrInvalidCredential.
type CredentialVerifier interface {
	Validate(refreshToken string) error
	ResolveMember(accessToken string) (*Member, error)
}
