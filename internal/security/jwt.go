package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tazhibayda/inventory-service/internal/domain"
)

// Claims is the payload of access and refresh tokens: the user id only.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

type ActivationClaims struct {
	User domain.UserDraft `json:"user"`
	Code string           `json:"activationCode"`
	jwt.RegisteredClaims
}

var hs256 = jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})

func registered(ttl time.Duration, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func MakeToken(secret, id string, ttl time.Duration) (string, error) {
	c := Claims{ID: id, RegisteredClaims: registered(ttl, time.Now())}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

// ParseToken returns the jwt error untouched so callers can tell expired from malformed.
func ParseToken(secret, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, hs256)
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.ID == "" {
		return nil, errors.New("invalid token")
	}
	return c, nil
}

func MakeActivation(secret string, draft domain.UserDraft, code string, ttl time.Duration) (string, error) {
	c := ActivationClaims{User: draft, Code: code, RegisteredClaims: registered(ttl, time.Now())}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func ParseActivation(secret, token string) (*ActivationClaims, error) {
	t, err := jwt.ParseWithClaims(token, &ActivationClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, hs256)
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*ActivationClaims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	return c, nil
}
