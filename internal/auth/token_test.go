package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJWTService_IssueAndParse(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())

	pair, err := svc.IssuePair("7b0c4c8e-1111-4d2b-9c55-2f6a2a1d0001", "andi@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshID)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, err := svc.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "7b0c4c8e-1111-4d2b-9c55-2f6a2a1d0001", access.Subject)
	assert.Equal(t, "andi@example.com", access.Email)

	refresh, err := svc.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshID, refresh.ID)
}

func TestJWTService_TokenKindsAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())
	pair, err := svc.IssuePair("subject", "")
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(pair.AccessToken)
	assert.Error(t, err)
	_, err = svc.ParseAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestJWTService_ExpiredAccessToken(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	pair, err := svc.IssuePair("subject", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(16 * time.Minute) }
	_, err = svc.ParseAccessToken(pair.AccessToken)
	assert.Error(t, err)

	_, err = svc.ParseRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestJWTService_RejectsForeignSignatures(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())

	otherCfg := testConfig()
	otherCfg.JWTSecretKey = "another-secret-key-that-is-long-enough"
	other := NewJWTService(otherCfg, zap.NewNop())
	pair, err := other.IssuePair("subject", "")
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsUnsignedTokens(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    accessIssuer,
		Subject:   "subject",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(unsigned)
	assert.Error(t, err)
}
