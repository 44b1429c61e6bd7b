package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the claim set carried by every access token.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

var errInvalidToken = errors.New("invalid token")

// GenerateToken signs an HS256 token for the given identity.
func GenerateToken(secret []byte, ttl time.Duration, identity Identity) (string, error) {
	claims := jwt.MapClaims{
		"id":       identity.ID,
		"email":    identity.Email,
		"username": identity.Username,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// VerifyToken parses and validates a signed token, returning the identity
// it carries. Expired or tampered tokens fail.
func VerifyToken(secret []byte, tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errInvalidToken
	}

	id, _ := claims["id"].(string)
	if strings.TrimSpace(id) == "" {
		return Identity{}, errInvalidToken
	}
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)

	return Identity{ID: id, Email: email, Username: username}, nil
}
