// Package oauth implements the Google sign-in handshake. The provider is
// treated as a black box that, on success, yields verified email and name
// claims; everything past the callback works with those claims only.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Felopater-Melika/Questly/internal/auth/dto"
	autherror "github.com/Felopater-Melika/Questly/internal/errors"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type GoogleProvider struct {
	cfg        Config
	httpClient *http.Client

	authURL     string
	tokenURL    string
	userInfoURL string
}

func NewGoogleProvider(cfg Config) *GoogleProvider {
	return &GoogleProvider{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		authURL:     googleAuthURL,
		tokenURL:    googleTokenURL,
		userInfoURL: googleUserInfoURL,
	}
}

// AuthCodeURL builds the challenge redirect for the given CSRF state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", p.cfg.ClientID)
	query.Set("redirect_uri", p.cfg.RedirectURL)
	query.Set("scope", "openid email profile")
	query.Set("state", state)

	return p.authURL + "?" + query.Encode()
}

// Authenticate exchanges the callback code for an access token, fetches
// the userinfo document and maps it to the narrow claims struct.
func (p *GoogleProvider) Authenticate(ctx context.Context, code string) (dto.ExternalIdentityClaims, error) {
	accessToken, err := p.exchangeCode(ctx, code)
	if err != nil {
		return dto.ExternalIdentityClaims{}, err
	}

	return p.fetchClaims(ctx, accessToken)
}

func (p *GoogleProvider) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)
	form.Set("redirect_uri", p.cfg.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token exchange: %v", autherror.ErrProviderAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", autherror.ErrProviderAuth, resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", autherror.ErrProviderAuth, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", autherror.ErrProviderAuth)
	}

	return payload.AccessToken, nil
}

func (p *GoogleProvider) fetchClaims(ctx context.Context, accessToken string) (dto.ExternalIdentityClaims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return dto.ExternalIdentityClaims{}, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return dto.ExternalIdentityClaims{}, fmt.Errorf("%w: userinfo fetch: %v", autherror.ErrProviderAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dto.ExternalIdentityClaims{}, fmt.Errorf("%w: userinfo endpoint returned %d", autherror.ErrProviderAuth, resp.StatusCode)
	}

	var payload struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return dto.ExternalIdentityClaims{}, fmt.Errorf("%w: decode userinfo: %v", autherror.ErrProviderAuth, err)
	}

	return dto.ExternalIdentityClaims{
		Email:     payload.Email,
		FirstName: payload.GivenName,
		LastName:  payload.FamilyName,
	}, nil
}
