// Package auth provides token providers for the search gateway. Tokens are
// an external concern; the client only attaches them when present.
package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
)

// Ensure providers implement the interface.
var (
	_ driven.TokenProvider = (*SourceProvider)(nil)
	_ driven.TokenProvider = (*NullProvider)(nil)
)

// SourceProvider adapts an oauth2.TokenSource to driven.TokenProvider.
// Refreshing, when the source supports it, happens inside the source.
type SourceProvider struct {
	source oauth2.TokenSource
}

// NewStaticProvider creates a provider serving one fixed access token,
// typically read from config or the AGORA_TOKEN environment variable.
func NewStaticProvider(token string) *SourceProvider {
	return &SourceProvider{
		source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	}
}

// NewSourceProvider wraps an arbitrary oauth2 token source.
func NewSourceProvider(source oauth2.TokenSource) *SourceProvider {
	return &SourceProvider{source: source}
}

// GetToken returns a valid access token.
func (p *SourceProvider) GetToken(_ context.Context) (string, error) {
	token, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return token.AccessToken, nil
}

// IsAuthenticated reports whether a token is available.
func (p *SourceProvider) IsAuthenticated() bool {
	token, err := p.source.Token()
	return err == nil && token.AccessToken != ""
}

// NullProvider is the anonymous provider: no token, never an error.
type NullProvider struct{}

// NewNullProvider creates an anonymous token provider.
func NewNullProvider() *NullProvider {
	return &NullProvider{}
}

// GetToken returns an empty token for anonymous access.
func (p *NullProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// IsAuthenticated always reports false.
func (p *NullProvider) IsAuthenticated() bool {
	return false
}
