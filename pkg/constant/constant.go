package constant

const (
	RefreshTokenCookie = "refresh_token"
	OAuthStateCookie   = "oauth_state"

	// PlayerIDKey is the fiber locals key under which RequireAuth stores
	// the authenticated player's id.
	PlayerIDKey = "playerID"
)
