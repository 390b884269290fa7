package utils // package utils provides helpers for token creation and password hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// BearerToken represents a signed HS256 JWT along with its expiry. The token
// is the sole credential artifact: no session state is retained server-side,
// the claims it carries are the complete identity.
type BearerToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewBearerToken builds and signs an HS256 JWT for a user. The claims embed
// the user identifier, email and display name together with the standard
// exp/iat timestamps. ttlMin controls how many minutes the token stays valid.
func NewBearerToken(secret string, userID uint64, email, name string, ttlMin int) (BearerToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"name":  name,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return BearerToken{}, err
	}
	return BearerToken{Token: signed, Exp: exp}, nil
}
