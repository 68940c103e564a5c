package port

// IdentityClaims is the already-validated caller identity extracted from the
// external identity provider's access token.
type IdentityClaims struct {
	UserID string
	Email  string
}

// TokenVerifier validates access tokens issued by the external identity
// provider. The backend never issues credentials itself.
type TokenVerifier interface {
	Verify(token string) (*IdentityClaims, error)
}
