package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT plus its expiry. Admin sessions are
// stateless; the token carries the admin id (sub) and display name so
// lifecycle mutations can stamp confirmed_by/rejected_by without a lookup.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken signs a token for an admin. TTL is in minutes.
func NewAccessToken(secret string, adminID uint, fullName string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  adminID,
		"name": fullName,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
