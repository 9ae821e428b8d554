package dto

// TokenPair is what the session flows hand back to the transport layer.
// The handler decides how each half travels (body vs http-only cookie).
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
