package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Felopater-Melika/Questly/internal/auth/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// querier covers both the pool and an open transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const playerColumns = `id, email, first_name, last_name, password_hash, created_at, updated_at`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1 LIMIT 1`

	return r.getPlayer(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE email = $1 LIMIT 1`

	return r.getPlayer(ctx, query, email)
}

func (r *PostgresRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.Player, error) {
	query := `SELECT p.id, p.email, p.first_name, p.last_name, p.password_hash, p.created_at, p.updated_at
		FROM players p
		JOIN refresh_tokens rt ON rt.player_id = p.id
		WHERE rt.token = $1
		LIMIT 1`

	return r.getPlayer(ctx, query, token)
}

func (r *PostgresRepository) getPlayer(ctx context.Context, query string, arg any) (*domain.Player, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var p domain.Player
	err := row.Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	tokens, err := r.loadRefreshTokens(ctx, r.db, p.ID)
	if err != nil {
		return nil, err
	}
	p.RefreshTokens = tokens

	return &p, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName,
			&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, player *domain.Player) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO players (id, email, first_name, last_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, player.ID, player.Email, player.FirstName, player.LastName,
		player.PasswordHash, player.CreatedAt, player.UpdatedAt)

	return err
}

func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, fn domain.UpdateFn) error {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1 FOR UPDATE`

	return r.update(ctx, query, id, fn)
}

func (r *PostgresRepository) UpdateByRefreshToken(ctx context.Context, token string, fn domain.UpdateFn) error {
	query := `SELECT p.id, p.email, p.first_name, p.last_name, p.password_hash, p.created_at, p.updated_at
		FROM players p
		JOIN refresh_tokens rt ON rt.player_id = p.id
		WHERE rt.token = $1
		FOR UPDATE OF p`

	return r.update(ctx, query, token, fn)
}

// update is the single write path for the aggregate: lock the player row,
// load the token history after the lock is held, apply fn, and persist the
// whole collection before committing. Two writers racing on the same player
// therefore serialize, and the loser sees the winner's committed history.
func (r *PostgresRepository) update(ctx context.Context, query string, arg any, fn domain.UpdateFn) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	var p domain.Player
	err = tx.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName,
		&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		_, fnErr := fn(nil)
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("lock player: %w", err)
	}

	tokens, err := r.loadRefreshTokens(ctx, tx, p.ID)
	if err != nil {
		return err
	}
	p.RefreshTokens = tokens

	save, fnErr := fn(&p)
	if !save {
		return fnErr
	}

	if err := persistPlayer(ctx, tx, &p); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}

	return fnErr
}

// persistPlayer writes the player row and replaces its full refresh token
// collection, so a rotation can never be observed half applied.
func persistPlayer(ctx context.Context, tx pgx.Tx, player *domain.Player) error {
	_, err := tx.Exec(ctx, `
		UPDATE players
		SET email = $2, first_name = $3, last_name = $4, password_hash = $5, updated_at = $6
		WHERE id = $1
	`, player.ID, player.Email, player.FirstName, player.LastName,
		player.PasswordHash, player.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE player_id = $1`, player.ID)
	if err != nil {
		return fmt.Errorf("clear refresh tokens: %w", err)
	}

	for i := range player.RefreshTokens {
		rt := &player.RefreshTokens[i]
		_, err = tx.Exec(ctx, `
			INSERT INTO refresh_tokens (token, player_id, created_at, expires_at, created_by_ip,
				user_agent, revoked_at, revoked_by_ip, revocation_reason, replaced_by_token)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, rt.Token, rt.PlayerID, rt.CreatedAt, rt.ExpiresAt, rt.CreatedByIP,
			rt.UserAgent, rt.RevokedAt, rt.RevokedByIP, rt.RevocationReason, rt.ReplacedByToken)
		if err != nil {
			return fmt.Errorf("insert refresh token: %w", err)
		}
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	// refresh_tokens rows go with the player via ON DELETE CASCADE.
	_, err := r.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)

	return err
}

func (r *PostgresRepository) RefreshTokenExists(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE token = $1)`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) loadRefreshTokens(ctx context.Context, q querier, playerID string) ([]domain.RefreshToken, error) {
	rows, err := q.Query(ctx, `
		SELECT token, player_id, created_at, expires_at, created_by_ip,
			user_agent, revoked_at, revoked_by_ip, revocation_reason, replaced_by_token
		FROM refresh_tokens
		WHERE player_id = $1
		ORDER BY created_at
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.RefreshToken
	for rows.Next() {
		var rt domain.RefreshToken
		if err := rows.Scan(&rt.Token, &rt.PlayerID, &rt.CreatedAt, &rt.ExpiresAt, &rt.CreatedByIP,
			&rt.UserAgent, &rt.RevokedAt, &rt.RevokedByIP, &rt.RevocationReason, &rt.ReplacedByToken); err != nil {
			return nil, fmt.Errorf("failed to scan refresh token: %w", err)
		}
		tokens = append(tokens, rt)
	}

	return tokens, rows.Err()
}
