package auth

// Identity is the decoded payload of a verified access token.
type Identity struct {
	Subject string
	Email   string
}

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Generate(identity Identity) (string, error)
	Verify(token string) (Identity, error)
}
