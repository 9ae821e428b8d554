package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Felopater-Melika/Questly/internal/mocks"
)

// TestRegisterRoutes verifies that every auth route is mounted.
func TestRegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPlayerRepository(ctrl)
	mockProvider := mocks.NewMockIdentityClaimsSource(ctrl)
	mockProvider.EXPECT().AuthCodeURL(gomock.Any()).Return("https://accounts.google.com/o/oauth2/v2/auth").AnyTimes()

	app := newTestApp(t, mockRepo, mockProvider)

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/signin"},
		{http.MethodGet, "/auth/signin-callback"},
		{http.MethodPost, "/auth/signup"},
		{http.MethodPost, "/auth/login"},
		{http.MethodPost, "/auth/refresh"},
		{http.MethodPost, "/auth/logout"},
		{http.MethodGet, "/auth/me"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s_%s_exists", tc.method, tc.path), func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)

			// We only care that the route exists. A 404 means it doesn't.
			// The handlers themselves return other codes (e.g. 400 for a
			// missing body), which is fine for this existence check.
			assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}
