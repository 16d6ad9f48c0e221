package admin_test

import (
	"testing"
	"time"

	"go-absensi/internal/admin"
	adminerrors "go-absensi/internal/admin/errors"
	"go-absensi/internal/shared/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenManager_IssueVerify(t *testing.T) {
	issued := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	acc := &admin.Admin{ID: uuid.New(), Username: "admin"}

	tokens := admin.NewTokenManager("secret", time.Hour, clock.Fixed(issued))
	token, exp, err := tokens.Issue(acc)
	assert.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour), exp)

	t.Run("valid", func(t *testing.T) {
		id, username, err := tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, acc.ID.String(), id)
		assert.Equal(t, "admin", username)
	})

	t.Run("expired", func(t *testing.T) {
		later := admin.NewTokenManager("secret", time.Hour, clock.Fixed(issued.Add(2*time.Hour)))
		_, _, err := later.Verify(token)
		assert.ErrorIs(t, err, adminerrors.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := admin.NewTokenManager("other", time.Hour, clock.Fixed(issued))
		_, _, err := other.Verify(token)
		assert.ErrorIs(t, err, adminerrors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := tokens.Verify("not.a.jwt")
		assert.ErrorIs(t, err, adminerrors.ErrInvalidToken)
	})

	t.Run("missing admin id", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"username": "admin",
			"exp":      issued.Add(time.Hour).Unix(),
		})
		signed, err := raw.SignedString([]byte("secret"))
		assert.NoError(t, err)

		_, _, err = tokens.Verify(signed)
		assert.ErrorIs(t, err, adminerrors.ErrInvalidToken)
	})
}
