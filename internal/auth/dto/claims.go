package dto

// ExternalIdentityClaims is the narrow, verified claim set produced at the
// OAuth boundary. Nothing downstream touches the provider's raw payload.
type ExternalIdentityClaims struct {
	Email     string
	FirstName string
	LastName  string
}
