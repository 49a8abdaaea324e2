package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "rosa@yuyitos.cl", []string{"seller"}, []string{"sales:create"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "rosa@yuyitos.cl", claims.Email)
	assert.Equal(t, []string{"seller"}, claims.Roles)
	assert.Equal(t, []string{"sales:create"}, claims.Permissions)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour, 24*time.Hour)
	userID := uuid.New()

	refresh, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	access, err := m.GenerateAccessToken(userID, "rosa@yuyitos.cl", nil, nil)
	require.NoError(t, err)
	got, err := m.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	assert.Equal(t, uuid.Nil, got)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour, 24*time.Hour)
	userID := uuid.New()
	now := time.Now()
	registered := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
		Subject:   userID.String(),
	}

	sign := func(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	t.Run("untyped token", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, testSecret, registered)
		_, err := m.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
		_, err = m.ValidateRefreshToken(token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("other secret", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, "other", &JWTClaims{TokenType: TokenTypeAccess, UserID: userID, RegisteredClaims: registered})
		_, err := m.ValidateAccessToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS512, testSecret, &JWTClaims{TokenType: TokenTypeAccess, UserID: userID, RegisteredClaims: registered})
		_, err := m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("other issuer", func(t *testing.T) {
		claims := registered
		claims.Issuer = "someone-else"
		token := sign(t, jwt.SigningMethodHS256, testSecret, &JWTClaims{TokenType: TokenTypeAccess, UserID: userID, RegisteredClaims: claims})
		_, err := m.ValidateAccessToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("no expiry", func(t *testing.T) {
		claims := registered
		claims.ExpiresAt = nil
		token := sign(t, jwt.SigningMethodHS256, testSecret, &JWTClaims{TokenType: TokenTypeAccess, UserID: userID, RegisteredClaims: claims})
		_, err := m.ValidateAccessToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
	})

	t.Run("nil user", func(t *testing.T) {
		token, err := m.GenerateAccessToken(uuid.Nil, "", nil, nil)
		require.NoError(t, err)
		_, err = m.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenSubject)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, testSecret, &JWTClaims{TokenType: TokenTypeRefresh, UserID: uuid.New(), RegisteredClaims: registered})
		_, err := m.ValidateRefreshToken(token)
		assert.ErrorIs(t, err, ErrTokenSubject)
	})
}

func TestExpiredTokenIsRejected(t *testing.T) {
	m := NewJWTManager(testSecret, -time.Minute, -time.Minute)

	access, err := m.GenerateAccessToken(uuid.New(), "rosa@yuyitos.cl", nil, nil)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(access)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	refresh, err := m.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(refresh)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
