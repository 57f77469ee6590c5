package utils

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"social-hub/infrastructure/logger"
)

// GenerateToken issues the HS256 session token consumed by the auth
// middleware: the user id travels in the issuer claim and the user name in a
// custom claim.
func GenerateToken(userID int64, userName, secretKey string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_name": userName,
		"iss":       strconv.FormatInt(userID, 10),
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while signing session token")
		return "", err
	}
	return tokenString, nil
}
