package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseToken_Expired(t *testing.T) {
	defer func() { Now = time.Now }()

	// Issue a token in the past, then validate with the real clock.
	Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := GenerateToken(7, time.Hour)
	require.NoError(t, err)

	Now = time.Now
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WithinExpiry(t *testing.T) {
	defer func() { Now = time.Now }()

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	Now = func() time.Time { return issued }
	token, err := GenerateToken(7, time.Hour)
	require.NoError(t, err)

	// 59 minutes later the token still verifies.
	Now = func() time.Time { return issued.Add(59 * time.Minute) }
	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)

	// 61 minutes later it does not.
	Now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Tampered(t *testing.T) {
	token, err := GenerateToken(7, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}
