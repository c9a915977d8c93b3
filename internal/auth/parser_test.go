package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/ecoreports/internal/model"
)

func TestParser(t *testing.T) {
	parser := NewParser("test-secret")
	principal := model.Principal{
		UserID:   uuid.New(),
		Username: "ana",
		Role:     "staff",
		IsStaff:  true,
	}

	t.Run("round trip", func(t *testing.T) {
		token, err := parser.Sign(principal, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		require.NoError(t, err)

		got, err := parser.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, principal.UserID, got.UserID)
		assert.Equal(t, "ana", got.Username)
		assert.Equal(t, "STAFF", got.Role)
		assert.True(t, got.IsStaffMember())
	})

	t.Run("subject is used when user_id is absent", func(t *testing.T) {
		id := uuid.New()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: id.String()})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		got, err := parser.Parse(signed)
		require.NoError(t, err)
		assert.Equal(t, id, got.UserID)
		assert.False(t, got.IsStaffMember())
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewParser("other").Sign(principal, jwt.RegisteredClaims{})
		require.NoError(t, err)

		_, err = parser.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := parser.Sign(principal, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})
		require.NoError(t, err)

		_, err = parser.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = parser.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := parser.Parse("  ")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
