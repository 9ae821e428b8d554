package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	autherror "github.com/Felopater-Melika/Questly/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(tokenURL, userInfoURL string) *GoogleProvider {
	p := NewGoogleProvider(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/auth/signin-callback",
	})
	if tokenURL != "" {
		p.tokenURL = tokenURL
	}
	if userInfoURL != "" {
		p.userInfoURL = userInfoURL
	}

	return p
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	p := newTestProvider("", "")

	raw := p.AuthCodeURL("the-state")

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://app.example.com/auth/signin-callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "the-state", q.Get("state"))
}

func TestGoogleProvider_Authenticate(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "the-code", r.Form.Get("code"))
		assert.Equal(t, "client-id", r.Form.Get("client_id"))
		assert.Equal(t, "client-secret", r.Form.Get("client_secret"))

		json.NewEncoder(w).Encode(map[string]string{"access_token": "provider-token"})
	}))
	defer tokenSrv.Close()

	userSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]string{
			"email":       "ada@example.com",
			"given_name":  "Ada",
			"family_name": "Lovelace",
		})
	}))
	defer userSrv.Close()

	p := newTestProvider(tokenSrv.URL, userSrv.URL)

	claims, err := p.Authenticate(context.Background(), "the-code")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
}

func TestGoogleProvider_Authenticate_ExchangeRejected(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer tokenSrv.Close()

	p := newTestProvider(tokenSrv.URL, "")

	_, err := p.Authenticate(context.Background(), "bad-code")
	assert.ErrorIs(t, err, autherror.ErrProviderAuth)
}

func TestGoogleProvider_Authenticate_EmptyAccessToken(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer tokenSrv.Close()

	p := newTestProvider(tokenSrv.URL, "")

	_, err := p.Authenticate(context.Background(), "the-code")
	assert.ErrorIs(t, err, autherror.ErrProviderAuth)
}

func TestGoogleProvider_Authenticate_UserInfoRejected(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "provider-token"})
	}))
	defer tokenSrv.Close()

	userSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer userSrv.Close()

	p := newTestProvider(tokenSrv.URL, userSrv.URL)

	_, err := p.Authenticate(context.Background(), "the-code")
	assert.ErrorIs(t, err, autherror.ErrProviderAuth)
}
