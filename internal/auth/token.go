// internal/auth/token.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"messagely/internal/util"
)

// Claims is the set of token claims: the registered claims plus the
// username of the authenticated subject.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken creates a signed HS256 token carrying the username claim,
// expiring after validityDuration.
func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUsernameFromToken parses and validates the token and returns the
// username claim. Any parse, signature or expiry failure yields
// util.ErrInvalidToken.
func GetUsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", util.ErrInvalidToken
	}

	if !token.Valid || claims.Username == "" {
		return "", util.ErrInvalidToken
	}

	return claims.Username, nil
}
