package service

import (
	"log/slog"
	"testing"
	"time"

	autherror "github.com/Felopater-Melika/Questly/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(secret string, ttl time.Duration) *TokenService {
	return NewTokenService(secret, ttl, slog.Default())
}

func TestTokenService_Generate(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		ttl      time.Duration
		playerID string
	}{
		{
			name:     "successful token generation",
			secret:   "test-access-secret-key-123",
			ttl:      15 * time.Minute,
			playerID: "player-123",
		},
		{
			name:     "short ttl",
			secret:   "another-secret",
			ttl:      time.Minute,
			playerID: "player-456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestTokenService(tt.secret, tt.ttl)

			signed, err := ts.Generate(tt.playerID)
			require.NoError(t, err)
			require.NotEmpty(t, signed)

			claims := &AccessTokenClaims{}
			parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(tt.secret), nil
			})
			require.NoError(t, err)
			require.True(t, parsed.Valid)

			assert.Equal(t, tt.playerID, claims.PlayerID)
			assert.Equal(t, tt.playerID, claims.Subject)
			assert.NotEmpty(t, claims.ID, "every token carries a unique jti")
			assert.WithinDuration(t, time.Now().Add(tt.ttl), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestTokenService_Generate_UniqueTokenIDs(t *testing.T) {
	ts := newTestTokenService("secret", 15*time.Minute)

	seen := make(map[string]bool)

	for i := 0; i < 10; i++ {
		signed, err := ts.Generate("player-123")
		require.NoError(t, err)

		claims := &AccessTokenClaims{}
		_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		require.NoError(t, err)

		assert.False(t, seen[claims.ID], "jti %q issued twice", claims.ID)
		seen[claims.ID] = true
	}
}

func TestTokenService_Verify(t *testing.T) {
	ts := newTestTokenService("verify-secret", 15*time.Minute)

	signed, err := ts.Generate("player-123")
	require.NoError(t, err)

	playerID, err := ts.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "player-123", playerID)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	// A negative TTL mints a token that is already past its expiry.
	expiredService := newTestTokenService("verify-secret", -time.Minute)

	signed, err := expiredService.Generate("player-123")
	require.NoError(t, err)

	ts := newTestTokenService("verify-secret", 15*time.Minute)

	_, err = ts.Verify(signed)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := newTestTokenService("issuer-secret", 15*time.Minute)
	verifier := newTestTokenService("other-secret", 15*time.Minute)

	signed, err := issuer.Generate("player-123")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	ts := newTestTokenService("verify-secret", 15*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a jwt", token: "garbage"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Verify(tt.token)
			assert.ErrorIs(t, err, autherror.ErrInvalidToken)
		})
	}
}

func TestTokenService_Verify_RejectsNonHMAC(t *testing.T) {
	ts := newTestTokenService("verify-secret", 15*time.Minute)

	// alg=none tokens must never pass.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "player-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.Verify(unsigned)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
}

func TestTokenService_AccessTokenTTL(t *testing.T) {
	ts := newTestTokenService("secret", 30*time.Minute)
	assert.Equal(t, 30*time.Minute, ts.AccessTokenTTL())
}
