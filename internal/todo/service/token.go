package service

import (
	"time"

	"github.com/listkeeper/listkeeper/pkg/jwtx"
)

// TokenService mints access tokens. Tokens are stateless: there is no
// revocation or refresh path, so a token stays valid until its TTL elapses
// and logout is purely client-side token discard.
type TokenService struct {
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Issue signs an access token for the given user id, expiring at issue time
// plus the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(userID, s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}
