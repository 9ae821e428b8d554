package handler

//go:generate mockgen -destination=../../mocks/mock_claims_source.go -package=mocks github.com/Felopater-Melika/Questly/internal/auth/handler IdentityClaimsSource

import (
	"context"
	"errors"
	"time"

	"github.com/Felopater-Melika/Questly/internal/auth/domain"
	"github.com/Felopater-Melika/Questly/internal/auth/dto"
	"github.com/Felopater-Melika/Questly/internal/auth/service"
	autherror "github.com/Felopater-Melika/Questly/internal/errors"
	"github.com/Felopater-Melika/Questly/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IdentityClaimsSource is the handshake with the external identity
// provider, seen from the handler's side.
type IdentityClaimsSource interface {
	AuthCodeURL(state string) string
	Authenticate(ctx context.Context, code string) (dto.ExternalIdentityClaims, error)
}

type AuthHandler struct {
	playerService *service.PlayerService
	tokens        service.TokenGenerator
	provider      IdentityClaimsSource
}

func NewAuthHandler(playerService *service.PlayerService, tokens service.TokenGenerator,
	provider IdentityClaimsSource) *AuthHandler {
	return &AuthHandler{
		playerService: playerService,
		tokens:        tokens,
		provider:      provider,
	}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var input dto.SignUpInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	player, err := h.playerService.SignUp(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrEmailAlreadyInUse):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already in use"})
		case errors.Is(err, autherror.ErrPasswordMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "passwords do not match"})
		default:
			return internalError(c)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    player.ID,
		"email": player.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	pair, err := h.playerService.Login(c.Context(), input, originFrom(c))
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}

		return internalError(c)
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"accessToken": pair.AccessToken})
}

// SignIn starts the Google challenge: a CSRF state cookie plus a redirect
// to the provider's consent screen.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	state := uuid.NewString()

	c.Cookie(&fiber.Cookie{
		Name:     constant.OAuthStateCookie,
		Value:    state,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(15 * time.Minute),
	})

	return c.Redirect(h.provider.AuthCodeURL(state), fiber.StatusFound)
}

func (h *AuthHandler) SignInCallback(c *fiber.Ctx) error {
	if c.Query("error") != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication failed"})
	}

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" || state != c.Cookies(constant.OAuthStateCookie) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication failed"})
	}

	claims, err := h.provider.Authenticate(c.Context(), code)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication failed"})
	}

	pair, err := h.playerService.SignInWithExternalIdentity(c.Context(), claims, originFrom(c))
	if err != nil {
		if errors.Is(err, autherror.ErrMissingEmailClaim) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication failed"})
		}

		return internalError(c)
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"accessToken": pair.AccessToken})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	presented := input.RefreshToken
	if presented == "" {
		presented = c.Cookies(constant.RefreshTokenCookie)
	}
	if presented == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid refresh token"})
	}

	pair, err := h.playerService.Refresh(c.Context(), presented, originFrom(c))
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid refresh token"})
		}

		return internalError(c)
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(pair)
}

// Logout revokes the presented refresh token and clears its cookie. The
// token may come from the body or from the cookie itself.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	playerID, _ := c.Locals(constant.PlayerIDKey).(string)

	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	presented := input.RefreshToken
	if presented == "" {
		presented = c.Cookies(constant.RefreshTokenCookie)
	}
	if presented == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid refresh token"})
	}

	if err := h.playerService.Logout(c.Context(), playerID, presented, originFrom(c)); err != nil {
		if errors.Is(err, autherror.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid refresh token"})
		}

		return internalError(c)
	}

	h.clearRefreshCookie(c)

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	playerID, _ := c.Locals(constant.PlayerIDKey).(string)

	player, err := h.playerService.Profile(c.Context(), playerID)
	if err != nil {
		if errors.Is(err, autherror.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}

		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":        player.ID,
		"email":     player.Email,
		"firstName": player.FirstName,
		"lastName":  player.LastName,
	})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/auth",
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/auth",
		Expires:  time.Unix(0, 0),
	})
}

func originFrom(c *fiber.Ctx) domain.Origin {
	return domain.Origin{
		IPAddress: c.IP(),
		UserAgent: string(c.Request().Header.UserAgent()),
	}
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
