package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sharenote/internal/auth/adapters/services"
	domainservices "sharenote/internal/auth/domain/services"
	"sharenote/internal/config"
)

const (
	testSecret   = "test-secret"
	testPassword = "validPassword123"
	testUserID   = int64(42)
)

const (
	msgNoErrorValidPassword = "should not return error for valid password"
	msgHashNotEmpty         = "hash should not be empty"
	msgHashVerifiable       = "created hash should be verifiable"
	msgErrorInvalidPassword = "error should be err invalid password"
	msgDifferentSalts       = "hashes of same password should differ due to salt"
)

func TestHashSuccess(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost)

	hash, err := service.Hash(context.Background(), testPassword)

	require.NoError(t, err, msgNoErrorValidPassword)
	assert.NotEmpty(t, hash, msgHashNotEmpty)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(testPassword)), msgHashVerifiable)
}

func TestHashInvalidPasswords(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "empty", password: ""},
		{name: "too long", password: strings.Repeat("a", domainservices.MaxPasswordLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := service.Hash(context.Background(), tt.password)

			require.Error(t, err)
			assert.Empty(t, hash)
			assert.ErrorIs(t, err, domainservices.ErrInvalidPassword, msgErrorInvalidPassword)
		})
	}
}

func TestHashUsesSalt(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost)

	first, err := service.Hash(context.Background(), testPassword)
	require.NoError(t, err)
	second, err := service.Hash(context.Background(), testPassword)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, msgDifferentSalts)
}

func TestNewBcryptCostFloor(t *testing.T) {
	service := services.NewBcrypt(1)

	hash, err := service.Hash(context.Background(), testPassword)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerify(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	hash, err := service.Hash(ctx, testPassword)
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		ok, err := service.Verify(ctx, testPassword, hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password", func(t *testing.T) {
		ok, err := service.Verify(ctx, "wrongPassword", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty input", func(t *testing.T) {
		ok, err := service.Verify(ctx, "", hash)
		require.ErrorIs(t, err, domainservices.ErrInvalidPassword)
		assert.False(t, ok)
	})

	t.Run("too long password", func(t *testing.T) {
		ok, err := service.Verify(ctx, strings.Repeat("a", domainservices.MaxPasswordLength+1), hash)
		require.ErrorIs(t, err, domainservices.ErrInvalidPassword)
		assert.False(t, ok)
	})

	t.Run("malformed hash", func(t *testing.T) {
		ok, err := service.Verify(ctx, testPassword, "not-a-bcrypt-hash")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domainservices.ErrInvalidPassword)
		assert.False(t, ok)
	})
}

func TestGenerateAccessToken(t *testing.T) {
	service := services.NewJWT(testSecret, time.Hour)

	before := time.Now()
	token, expiresAt, err := service.GenerateAccessToken(context.Background(), testUserID)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, before.Add(time.Hour), expiresAt, 2*time.Second)

	claims := &services.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), parsed.Method.Alg())
}

func TestGenerateAccessTokenEmptySecret(t *testing.T) {
	service := services.NewJWT("", time.Hour)

	token, _, err := service.GenerateAccessToken(context.Background(), testUserID)

	require.ErrorIs(t, err, domainservices.ErrGeneratingJWTToken)
	assert.Empty(t, token)
}

func TestValidateAccessToken(t *testing.T) {
	service := services.NewJWT(testSecret, time.Hour)
	ctx := context.Background()

	valid, _, err := service.GenerateAccessToken(ctx, testUserID)
	require.NoError(t, err)

	signed := func(t *testing.T, method jwt.SigningMethod, key any, claims services.Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	now := time.Now()
	expired := signed(t, jwt.SigningMethodHS256, []byte(testSecret), services.Claims{
		UserID: testUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})
	foreign := signed(t, jwt.SigningMethodHS256, []byte("other-secret"), services.Claims{
		UserID: testUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	noUser := signed(t, jwt.SigningMethodHS256, []byte(testSecret), services.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	noExpiry := signed(t, jwt.SigningMethodHS256, []byte(testSecret), services.Claims{UserID: testUserID})
	unsigned := signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, services.Claims{
		UserID: testUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})

	tests := []struct {
		name    string
		token   string
		wantID  int64
		wantErr error
	}{
		{name: "valid token", token: valid, wantID: testUserID},
		{name: "expired token", token: expired, wantErr: domainservices.ErrExpiredJWTToken},
		{name: "foreign signature", token: foreign, wantErr: domainservices.ErrInvalidJWTToken},
		{name: "missing user id", token: noUser, wantErr: domainservices.ErrInvalidJWTToken},
		{name: "missing expiry", token: noExpiry, wantErr: domainservices.ErrInvalidJWTToken},
		{name: "none algorithm", token: unsigned, wantErr: domainservices.ErrInvalidJWTToken},
		{name: "malformed", token: "not.a.token", wantErr: domainservices.ErrInvalidJWTToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := service.ValidateAccessToken(ctx, tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, userID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, userID)
		})
	}
}

func TestServiceFactory(t *testing.T) {
	t.Run("services share the configured secret and ttl", func(t *testing.T) {
		factory, err := services.NewServiceFactory(&config.JWTConfig{
			SecretKey:  testSecret,
			TokenTTL:   "30m",
			BCryptCost: bcrypt.MinCost,
		})
		require.NoError(t, err)

		before := time.Now()
		token, expiresAt, err := factory.TokenService().GenerateAccessToken(context.Background(), testUserID)
		require.NoError(t, err)
		assert.WithinDuration(t, before.Add(30*time.Minute), expiresAt, 5*time.Second)

		userID, err := services.NewJWT(testSecret, time.Hour).ValidateAccessToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, testUserID, userID)

		hash, err := factory.PasswordService().Hash(context.Background(), testPassword)
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	})

	t.Run("blank secret is rejected", func(t *testing.T) {
		for _, secret := range []string{"", "   "} {
			factory, err := services.NewServiceFactory(&config.JWTConfig{SecretKey: secret, TokenTTL: "1h"})
			require.ErrorIs(t, err, domainservices.ErrEmptySecretKey)
			assert.Nil(t, factory)
		}
	})
}
