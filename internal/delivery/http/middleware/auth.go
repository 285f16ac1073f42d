package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"meetpoint/internal/delivery/http/helpers"
	"meetpoint/internal/domain"
)

type contextKey string

const memberKey contextKey = "member"

// SetMember returns a context with the resolved caller set. Used by the auth
// middleware.
func SetMember(ctx context.Context, m *domain.Member) context.Context {
	return context.WithValue(ctx, memberKey, m)
}

// MemberFromContext returns the authenticated caller from the context, if
// present.
func MemberFromContext(ctx context.Context) (*domain.Member, bool) {
	m, ok := ctx.Value(memberKey).(*domain.Member)
	return m, ok
}

// RequireMember returns a wrapper that resolves the caller from the
// Authorization/RefreshToken header pair and sets the Member in the request
// context. A request missing either header is answered as "member not found"
// so callers cannot distinguish a missing credential from an unknown member;
// a failed verification is answered as an invalid credential.
func RequireMember(verifier domain.CredentialVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			access := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
			refresh := r.Header.Get("RefreshToken")
			if access == "" || refresh == "" {
				helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeMemberNotFound, domain.ErrMemberNotFound.Error())
				return
			}
			if err := verifier.Validate(refresh); err != nil {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeInvalidCredential, "invalid or expired token")
				return
			}
			member, err := verifier.ResolveMember(access)
			if err != nil {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeInvalidCredential, "invalid or expired token")
				return
			}
			r = r.WithContext(SetMember(r.Context(), member))
			next(w, r)
		}
	}
}
