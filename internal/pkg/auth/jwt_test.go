package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
)

func testService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "placementhub.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Email:    "student@placementhub.edu",
		RoleType: models.RoleStudent,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "student@placementhub.edu", claims.Email)
	assert.Equal(t, "STUDENT", claims.RoleType)
	assert.Equal(t, "placementhub.test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testService(-time.Minute)

	token, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := testService(time.Hour)
	token, _, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	verifier := NewJWTService(JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "placementhub.test",
	})
	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := testService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)

	assert.True(t, CheckPassword(hash, "Sup3rSecret!"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}
