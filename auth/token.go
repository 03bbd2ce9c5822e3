package auth

import (
	"avatar-chat/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const Issuer = "avatar-chat"

// Claims is what a session token carries about its identity.
type Claims struct {
	UserID    string `json:"user_id"`
	Provider  string `json:"provider"`
	Anonymous bool   `json:"anonymous"`
	jwt.RegisteredClaims
}

// Signer issues and checks HS256 session tokens.
type Signer struct {
	key      []byte
	issuer   string
	duration time.Duration
	now      func() time.Time
}

func NewSigner(secret string, issuer string, duration time.Duration) *Signer {
	return &Signer{
		key:      []byte(secret),
		issuer:   issuer,
		duration: duration,
		now:      time.Now,
	}
}

func (s *Signer) Sign(userID, provider string, anonymous bool) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:    userID,
		Provider:  provider,
		Anonymous: anonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Parse checks signature, issuer and expiration of a token.
func (s *Signer) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidCredential, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidCredential, jwt.ErrSignatureInvalid)
	}
	return claims, nil
}
