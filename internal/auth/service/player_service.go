package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Felopater-Melika/Questly/internal/auth/domain"
	"github.com/Felopater-Melika/Questly/internal/auth/dto"
	autherror "github.com/Felopater-Melika/Questly/internal/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PlayerService is the entry point for every session flow: signup, login,
// external sign-in and refresh. It orchestrates the account reconciler,
// the rotation engine and the token codec.
type PlayerService struct {
	repo     domain.PlayerRepository
	tokens   TokenGenerator
	rotation *RotationEngine
	logger   *slog.Logger
}

func NewPlayerService(repo domain.PlayerRepository, tokens TokenGenerator,
	rotation *RotationEngine, logger *slog.Logger) *PlayerService {
	return &PlayerService{
		repo:     repo,
		tokens:   tokens,
		rotation: rotation,
		logger:   logger,
	}
}

func (s *PlayerService) SignUp(ctx context.Context, input dto.SignUpInput) (*domain.Player, error) {
	if input.Password != input.ConfirmPassword {
		return nil, autherror.ErrPasswordMismatch
	}

	email := normalizeEmail(input.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	player := &domain.Player{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player signed up", "player_id", player.ID)

	return player, nil
}

func (s *PlayerService) Login(ctx context.Context, input dto.LoginInput, origin domain.Origin) (*dto.TokenPair, error) {
	player, err := s.repo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}

	// A missing account, an OAuth-only account and a wrong password all
	// fail the same way so responses cannot be used to enumerate emails.
	if player == nil || player.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(input.Password)) != nil {
		s.logger.Warn("login rejected", "ip", origin.IPAddress)
		return nil, autherror.ErrInvalidCredentials
	}

	return s.issueSession(ctx, player, origin)
}

// Reconcile matches externally verified identity claims to a player
// record, creating one when the email is unknown. Existing records are
// returned untouched so provider claims never clobber local edits.
func (s *PlayerService) Reconcile(ctx context.Context, claims dto.ExternalIdentityClaims) (*domain.Player, error) {
	if strings.TrimSpace(claims.Email) == "" {
		return nil, autherror.ErrMissingEmailClaim
	}

	email := normalizeEmail(claims.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()

	player := &domain.Player{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player created from external identity", "player_id", player.ID)

	return player, nil
}

func (s *PlayerService) SignInWithExternalIdentity(ctx context.Context, claims dto.ExternalIdentityClaims, origin domain.Origin) (*dto.TokenPair, error) {
	player, err := s.Reconcile(ctx, claims)
	if err != nil {
		return nil, err
	}

	return s.issueSession(ctx, player, origin)
}

// Profile returns the account behind an authenticated session.
func (s *PlayerService) Profile(ctx context.Context, playerID string) (*domain.Player, error) {
	player, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, autherror.ErrPlayerNotFound
	}

	return player, nil
}

// Logout revokes the presented refresh token for the authenticated player,
// ending that session's chain. The access token stays valid until it
// expires on its own.
func (s *PlayerService) Logout(ctx context.Context, playerID, presented string, origin domain.Origin) error {
	return s.rotation.Revoke(ctx, playerID, presented, origin)
}

func (s *PlayerService) Refresh(ctx context.Context, presented string, origin domain.Origin) (*dto.TokenPair, error) {
	player, newToken, err := s.rotation.Rotate(ctx, presented, origin)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.Generate(player.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newToken.Token,
	}, nil
}

func (s *PlayerService) issueSession(ctx context.Context, player *domain.Player, origin domain.Origin) (*dto.TokenPair, error) {
	accessToken, err := s.tokens.Generate(player.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.rotation.IssueInitial(ctx, player.ID, origin)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
	}, nil
}

// Emails match case-insensitively; every boundary normalizes before
// touching storage so the uniqueness invariant holds.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
