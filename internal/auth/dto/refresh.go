package dto

type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}
