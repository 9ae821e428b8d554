package domain

//go:generate mockgen -destination=../../mocks/mock_player_repository.go -package=mocks github.com/Felopater-Melika/Questly/internal/auth/domain PlayerRepository

import "context"

// UpdateFn mutates a player aggregate in place. It returns true when the
// mutation must be persisted; its error is propagated to the caller either
// way. The callback receives nil when nothing matched the lookup key.
type UpdateFn func(player *Player) (save bool, err error)

type PlayerRepository interface {
	GetByID(ctx context.Context, id string) (*Player, error)
	GetByEmail(ctx context.Context, email string) (*Player, error)
	GetByRefreshToken(ctx context.Context, token string) (*Player, error)
	GetAll(ctx context.Context) ([]Player, error)
	Create(ctx context.Context, player *Player) error

	// UpdateByID and UpdateByRefreshToken run fn against the aggregate
	// with the player row locked, so concurrent mutations of the same
	// player's token history serialize. The aggregate is loaded after the
	// lock is held and persisted in the same transaction.
	UpdateByID(ctx context.Context, id string, fn UpdateFn) error
	UpdateByRefreshToken(ctx context.Context, token string, fn UpdateFn) error

	Delete(ctx context.Context, id string) error
	RefreshTokenExists(ctx context.Context, token string) (bool, error)
}
