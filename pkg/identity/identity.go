// Package identity bridges the club's identity provider and the workflow.
// Actors arrive as signed HS256 tokens whose claims carry the user id, the
// club-wide roles, and the captained team ids; everything downstream works
// with the decoded model.Actor and never sees credentials.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/mhofmann-club/aufstellung/pkg/core/model"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the token payload issued for an acting user.
type Claims struct {
	Roles     []string `json:"roles"`
	CaptainOf []string `json:"captain_of,omitempty"`
	jwt.RegisteredClaims
}

// ParseActor verifies the token signature and decodes the actor.
func ParseActor(tokenString string, signingKey []byte) (*model.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse actor token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("actor token is not valid")
	}
	if claims.Subject == "" {
		return nil, errors.New("actor token has no subject")
	}

	actor := &model.Actor{
		UserID:    claims.Subject,
		CaptainOf: claims.CaptainOf,
	}
	for _, r := range claims.Roles {
		actor.Roles = append(actor.Roles, model.Role(r))
	}
	return actor, nil
}

// NewActorToken mints a token for the given actor. Used by the make-token
// command and by tests; production tokens come from the club's identity
// provider with the same claim shape.
func NewActorToken(actor model.Actor, signingKey []byte, ttl time.Duration) (string, error) {
	roles := make([]string, 0, len(actor.Roles))
	for _, r := range actor.Roles {
		roles = append(roles, string(r))
	}
	now := time.Now()
	claims := &Claims{
		Roles:     roles,
		CaptainOf: actor.CaptainOf,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(signingMethod, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign actor token: %w", err)
	}
	return signed, nil
}
