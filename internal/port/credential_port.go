package port

import "context"

// CredentialSource yields the bearer token for outbound requests.
// An empty token with a nil error means "not signed in".
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
}
