package admin

import (
	"errors"
	"time"

	adminerrors "go-absensi/internal/admin/errors"
	"go-absensi/internal/shared/clock"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies HS256 admin access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenManager(secret string, ttl time.Duration, clk clock.Clock) *TokenManager {
	if clk == nil {
		clk = clock.System
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, clock: clk}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(a *Admin) (string, time.Time, error) {
	now := m.clock.Now()
	exp := now.Add(m.ttl)
	claims := jwt.MapClaims{
		"admin_id": a.ID.String(),
		"username": a.Username,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (m *TokenManager) Verify(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, adminerrors.ErrInvalidToken
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", adminerrors.ErrTokenExpired
		}
		return "", "", adminerrors.ErrInvalidToken
	}
	if !token.Valid {
		return "", "", adminerrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", adminerrors.ErrInvalidToken
	}
	adminID, ok := claims["admin_id"].(string)
	if !ok || adminID == "" {
		return "", "", adminerrors.ErrInvalidToken
	}
	username, _ := claims["username"].(string)

	return adminID, username, nil
}
