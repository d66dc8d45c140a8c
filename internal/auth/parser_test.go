package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obratech/contracts-service/internal/model"
)

func signToken(t *testing.T, secret string, claimSet jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claimSet)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParse(t *testing.T) {
	parser := NewParser("test-secret")
	userID := uuid.New()
	orgID := uuid.New()

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": userID.String(),
		"org_id":  orgID.String(),
		"role":    "MANAGER",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	principal, err := parser.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, orgID, principal.OrgID)
	assert.Equal(t, model.RoleManager, principal.Role)
	assert.True(t, principal.CanWrite())
}

func TestParseRejects(t *testing.T) {
	parser := NewParser("test-secret")
	valid := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"org_id":  uuid.NewString(),
		"role":    "VIEWER",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	t.Run("wrong secret", func(t *testing.T) {
		signed := signToken(t, "other-secret", valid)
		_, err := parser.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := jwt.MapClaims{
			"user_id": uuid.NewString(),
			"org_id":  uuid.NewString(),
			"role":    "VIEWER",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}
		_, err := parser.Parse(signToken(t, "test-secret", expired))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		bad := jwt.MapClaims{
			"user_id": uuid.NewString(),
			"org_id":  uuid.NewString(),
			"role":    "SUPERUSER",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}
		_, err := parser.Parse(signToken(t, "test-secret", bad))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parser.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
