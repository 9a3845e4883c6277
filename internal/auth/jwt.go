package auth

import (
	"time"

	"careerprep/internal/shared"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs an HS256 session token for the user, valid for the
// given duration. The expiry is returned so callers can report it.
func GenerateToken(userID string, secretKey []byte, validity time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(validity)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken verifies a session token and returns the user id and expiry.
func ParseToken(tokenString string, secretKey []byte) (string, time.Time, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", time.Time{}, shared.ErrInvalidToken
	}
	if !token.Valid {
		return "", time.Time{}, shared.ErrInvalidToken
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.UserID, expiresAt, nil
}
