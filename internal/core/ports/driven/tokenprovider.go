package driven

import "context"

// TokenProvider supplies access tokens for authenticated API calls.
// Anonymous search must keep working when no token is available, so an
// empty token is not an error.
type TokenProvider interface {
	// GetToken returns a valid access token, or "" for anonymous access.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated reports whether a token is available.
	IsAuthenticated() bool
}
