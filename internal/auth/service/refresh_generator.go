package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/Felopater-Melika/Questly/internal/auth/domain"
)

// refreshTokenEntropyBytes is the amount of raw entropy behind every
// refresh token value.
const refreshTokenEntropyBytes = 48

// RefreshTokenGenerator mints opaque refresh token values. Collisions are
// practically impossible at this entropy size; the storage check is a
// safety net that keeps the uniqueness invariant airtight.
type RefreshTokenGenerator struct {
	repo domain.PlayerRepository
	ttl  time.Duration
	rand io.Reader
}

func NewRefreshTokenGenerator(repo domain.PlayerRepository, ttl time.Duration) *RefreshTokenGenerator {
	return &RefreshTokenGenerator{
		repo: repo,
		ttl:  ttl,
		rand: rand.Reader,
	}
}

func (g *RefreshTokenGenerator) Generate(ctx context.Context, playerID string, origin domain.Origin) (*domain.RefreshToken, error) {
	for {
		buf := make([]byte, refreshTokenEntropyBytes)
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return nil, fmt.Errorf("read token entropy: %w", err)
		}

		value := base64.RawURLEncoding.EncodeToString(buf)

		exists, err := g.repo.RefreshTokenExists(ctx, value)
		if err != nil {
			return nil, fmt.Errorf("check token uniqueness: %w", err)
		}
		if exists {
			continue
		}

		now := time.Now()

		return &domain.RefreshToken{
			Token:       value,
			PlayerID:    playerID,
			CreatedAt:   now,
			ExpiresAt:   now.Add(g.ttl),
			CreatedByIP: origin.IPAddress,
			UserAgent:   origin.UserAgent,
		}, nil
	}
}
