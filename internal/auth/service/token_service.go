package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Felopater-Melika/Questly/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	autherror "github.com/Felopater-Melika/Questly/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenGenerator interface {
	Generate(playerID string) (string, error)
	Verify(tokenString string) (string, error)
	AccessTokenTTL() time.Duration
}

// TokenService signs and verifies the short-lived access tokens. It keeps
// no state beyond its configuration; validity is decided purely by the
// signature and the expiry claim at verification time.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

type AccessTokenClaims struct {
	jwt.RegisteredClaims
	PlayerID string `json:"player_id"`
}

func NewTokenService(secret string, ttl time.Duration, logger *slog.Logger) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

func (ts *TokenService) Generate(playerID string) (string, error) {
	now := time.Now()

	claims := AccessTokenClaims{
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry (no leeway; tokens die exactly at
// their stated instant) and returns the subject player id. The distinct
// failure causes are logged but the caller always sees ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			ts.logger.Warn("access token expired", "player_id", claims.PlayerID)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			ts.logger.Warn("access token signature invalid")
		default:
			ts.logger.Warn("access token malformed", "error", err)
		}

		return "", autherror.ErrInvalidToken
	}

	if !token.Valid || claims.PlayerID == "" {
		ts.logger.Warn("access token rejected", "player_id", claims.PlayerID)
		return "", autherror.ErrInvalidToken
	}

	return claims.PlayerID, nil
}

func (ts *TokenService) AccessTokenTTL() time.Duration {
	return ts.ttl
}
