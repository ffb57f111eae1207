package services

import (
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"

	apperrors "pms/errors"
)

// UserClaims is the JWT payload issued at login.
type UserClaims struct {
	UserID uint `json:"userId"`
	Role   int  `json:"role"`
	jwt.StandardClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken issues a signed access token for the user.
func GenerateToken(userID uint, role int, expiryMinutes int) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// GetUserIDFromToken parses a bearer token and returns the user id and
// role it carries.
func GetUserIDFromToken(tokenString string) (uint, int, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Unexpected signing method", nil)
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid token", err)
	}
	return claims.UserID, claims.Role, nil
}
