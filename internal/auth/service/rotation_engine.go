package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Felopater-Melika/Questly/internal/auth/domain"
	autherror "github.com/Felopater-Melika/Questly/internal/errors"
)

const (
	revocationReasonRotated   = "rotated"
	revocationReasonLoggedOut = "logged out"
)

// RotationEngine owns every mutation of a player's refresh token history:
// rotation, logout revocation, reuse-triggered cascade revocation, and
// pruning. Each mutation runs inside the repository's locked update, so two
// concurrent writers on the same player serialize and cannot both rotate
// the same base token.
type RotationEngine struct {
	repo      domain.PlayerRepository
	generator *RefreshTokenGenerator
	retention time.Duration
	logger    *slog.Logger
}

func NewRotationEngine(repo domain.PlayerRepository, generator *RefreshTokenGenerator,
	retention time.Duration, logger *slog.Logger) *RotationEngine {
	return &RotationEngine{
		repo:      repo,
		generator: generator,
		retention: retention,
		logger:    logger,
	}
}

// Rotate exchanges an active refresh token for a fresh one, linking the two
// and revoking the old. Presenting an already revoked token is treated as
// evidence of theft: every still-active descendant in its chain is revoked
// before the call fails with ErrInvalidToken. The presented token is
// validated against the history loaded under the row lock, so the loser of
// a concurrent double rotation sees the winner's revocation and fails.
func (e *RotationEngine) Rotate(ctx context.Context, presented string, origin domain.Origin) (*domain.Player, *domain.RefreshToken, error) {
	var (
		owner    *domain.Player
		newToken *domain.RefreshToken
	)

	err := e.repo.UpdateByRefreshToken(ctx, presented, func(player *domain.Player) (bool, error) {
		if player == nil {
			return false, autherror.ErrInvalidToken
		}

		old := player.FindRefreshToken(presented)
		if old == nil {
			return false, autherror.ErrInvalidToken
		}

		now := time.Now()

		if old.IsRevoked() {
			revoked := e.revokeDescendants(player, old, origin, now)

			e.logger.Warn("revoked refresh token reused, chain invalidated",
				"player_id", player.ID,
				"ip", origin.IPAddress,
				"descendants_revoked", revoked)

			return revoked > 0, autherror.ErrInvalidToken
		}

		if old.IsExpired(now) {
			return false, autherror.ErrInvalidToken
		}

		minted, err := e.generator.Generate(ctx, player.ID, origin)
		if err != nil {
			return false, err
		}

		revoke(old, origin, now, revocationReasonRotated, minted.Token)
		player.RefreshTokens = append(player.RefreshTokens, *minted)

		e.prune(player, now)

		owner = player
		newToken = minted

		return true, nil
	})
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidToken) {
			return nil, nil, err
		}

		return nil, nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return owner, newToken, nil
}

// Revoke ends a session by revoking the presented token without issuing a
// replacement. The token must belong to the given player. Revoking an
// already inactive token is a no-op so logout stays idempotent.
func (e *RotationEngine) Revoke(ctx context.Context, playerID, presented string, origin domain.Origin) error {
	err := e.repo.UpdateByRefreshToken(ctx, presented, func(player *domain.Player) (bool, error) {
		if player == nil || player.ID != playerID {
			return false, autherror.ErrInvalidToken
		}

		target := player.FindRefreshToken(presented)
		if target == nil {
			return false, autherror.ErrInvalidToken
		}

		now := time.Now()
		if !target.IsActive(now) {
			return false, nil
		}

		revoke(target, origin, now, revocationReasonLoggedOut, "")
		e.prune(player, now)

		return true, nil
	})
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidToken) {
			return err
		}

		return fmt.Errorf("revoke refresh token: %w", err)
	}

	e.logger.Info("session revoked", "player_id", playerID, "ip", origin.IPAddress)

	return nil
}

// IssueInitial mints the first token of a new chain, for login and
// external sign-in.
func (e *RotationEngine) IssueInitial(ctx context.Context, playerID string, origin domain.Origin) (*domain.RefreshToken, error) {
	token, err := e.generator.Generate(ctx, playerID, origin)
	if err != nil {
		return nil, err
	}

	err = e.repo.UpdateByID(ctx, playerID, func(player *domain.Player) (bool, error) {
		if player == nil {
			return false, autherror.ErrPlayerNotFound
		}

		player.RefreshTokens = append(player.RefreshTokens, *token)
		e.prune(player, time.Now())

		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("save issued token: %w", err)
	}

	return token, nil
}

// revokeDescendants walks the replaced-by chain forward from the presented
// token, revoking every still-active descendant. The chain is resolved
// through an in-memory index instead of recursion so the walk is bounded
// by the size of the player's token list.
func (e *RotationEngine) revokeDescendants(player *domain.Player, from *domain.RefreshToken, origin domain.Origin, now time.Time) int {
	byValue := make(map[string]*domain.RefreshToken, len(player.RefreshTokens))
	for i := range player.RefreshTokens {
		byValue[player.RefreshTokens[i].Token] = &player.RefreshTokens[i]
	}

	reason := fmt.Sprintf("reuse of revoked ancestor token: %s", from.Token)
	revoked := 0

	for next := from.ReplacedByToken; next != ""; {
		child, ok := byValue[next]
		if !ok {
			break
		}

		if child.IsActive(now) {
			revoke(child, origin, now, reason, "")
			revoked++
		}

		next = child.ReplacedByToken
	}

	return revoked
}

// prune drops tokens that are both inactive and older than the retention
// window. Active tokens are never pruned.
func (e *RotationEngine) prune(player *domain.Player, now time.Time) {
	kept := player.RefreshTokens[:0]
	for _, rt := range player.RefreshTokens {
		if rt.IsActive(now) || now.Before(rt.CreatedAt.Add(e.retention)) {
			kept = append(kept, rt)
		}
	}

	player.RefreshTokens = kept
}

func revoke(token *domain.RefreshToken, origin domain.Origin, now time.Time, reason, replacedBy string) {
	revokedAt := now
	token.RevokedAt = &revokedAt
	token.RevokedByIP = origin.IPAddress
	token.RevocationReason = reason
	token.ReplacedByToken = replacedBy
}
