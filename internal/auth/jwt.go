package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const SessionTokenExpirationTime = 30 * 24 * time.Hour

var ErrInvalidSessionToken = errors.New("invalid cart session token")

// SessionClaim identifies an anonymous cart session.
type SessionClaim struct {
	SessionId string `json:"sid"`
	jwt.RegisteredClaims
}

// GenerateSessionJWT signs a token for sessionID.
func GenerateSessionJWT(secret []byte, sessionID string) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(SessionTokenExpirationTime)

	claims := SessionClaim{
		SessionId: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign session token")
	}
	return tokenString, expirationTime, nil
}

// ValidateSessionJWT checks signature and expiry and returns the claims.
func ValidateSessionJWT(secret []byte, signedToken string) (*SessionClaim, error) {
	claims := &SessionClaim{}
	token, err := jwt.ParseWithClaims(signedToken, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSessionToken, err.Error())
	}
	if !token.Valid || claims.SessionId == "" {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}
