package permissions

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// ErrInvalidToken is returned for malformed, expired or badly signed tokens
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by a bearer token
type Claims struct {
	jwt.RegisteredClaims
	Role   string   `json:"role"`
	Scopes []string `json:"scopes,omitempty"`
}

// Sign returns an HS256 token for subject. A zero ttl means no expiry.
func Sign(secret, subject string, role models.UserRole, ttl time.Duration, scopes ...string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Role:   role.String(),
		Scopes: scopes,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Resolve verifies an HS256 token and returns the permissions it grants
func Resolve(secret, token string) (PermissionSet, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return PermissionSet{}, errors.Join(ErrInvalidToken, err)
	}
	return fromClaims(claims)
}

// ResolveUnverified reads the permissions from a token without checking its
// signature. The CLI uses it to hide actions the server would refuse; the
// server always verifies.
func ResolveUnverified(token string) (PermissionSet, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return PermissionSet{}, errors.Join(ErrInvalidToken, err)
	}
	return fromClaims(claims)
}

func fromClaims(claims Claims) (PermissionSet, error) {
	role := models.UserRoleViewer
	if claims.Role != "" {
		r, err := models.ParseUserRole(claims.Role)
		if err != nil {
			return PermissionSet{}, errors.Join(ErrInvalidToken, err)
		}
		role = r
	}
	return New(claims.Subject, role, claims.Scopes...), nil
}
