package jwtverify

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/luxonlabs/luxon-tms/internal/config"
	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/port"
)

// Claims are the claims we expect in access tokens minted by the identity
// provider. Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Verifier validates HS256 access tokens against the shared signing secret.
type Verifier struct {
	cfg config.AuthConfig
}

// NewVerifier creates a token verifier from auth config.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{cfg: cfg}
}

func (v *Verifier) Verify(tokenString string) (*port.IdentityClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if v.cfg.Issuer != "" && claims.Issuer != v.cfg.Issuer {
		return nil, domain.ErrUnauthorized
	}
	if v.cfg.Audience != "" {
		found := false
		for _, aud := range claims.Audience {
			if aud == v.cfg.Audience {
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrUnauthorized
		}
	}
	if claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	return &port.IdentityClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}

// Compile-time check.
var _ port.TokenVerifier = (*Verifier)(nil)
