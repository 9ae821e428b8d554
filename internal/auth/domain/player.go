package domain

import "time"

type Player struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// RefreshTokens is the player's full token history, owned by the
	// player aggregate and saved with it in one transaction.
	RefreshTokens []RefreshToken
}

// Origin identifies the client endpoint a token operation came from.
type Origin struct {
	IPAddress string
	UserAgent string
}

type RefreshToken struct {
	Token       string
	PlayerID    string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	CreatedByIP string
	UserAgent   string

	RevokedAt        *time.Time
	RevokedByIP      string
	RevocationReason string

	// ReplacedByToken links to the token issued when this one was
	// rotated, forming a forward chain from original to newest.
	ReplacedByToken string
}

func (rt *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(rt.ExpiresAt)
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsActive(now time.Time) bool {
	return !rt.IsRevoked() && !rt.IsExpired(now)
}

// FindRefreshToken returns the player's token with the given value, or nil.
func (p *Player) FindRefreshToken(value string) *RefreshToken {
	for i := range p.RefreshTokens {
		if p.RefreshTokens[i].Token == value {
			return &p.RefreshTokens[i]
		}
	}

	return nil
}
