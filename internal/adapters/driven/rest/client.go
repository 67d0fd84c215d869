// Package rest implements the search gateway against the Agora platform's
// REST backend. The backend's payloads and ranking are opaque; this adapter
// only decodes them and classifies failures onto the domain taxonomy.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ProactiveRate throttles outgoing search calls (requests per second)
	// so bursts of previews stay under the backend's limits.
	ProactiveRate = 5.0

	// ProactiveBurst is the throttle bucket size.
	ProactiveBurst = 5
)

// Ensure Gateway implements the interface.
var _ driven.SearchGateway = (*Gateway)(nil)

// Gateway is the HTTP implementation of driven.SearchGateway.
type Gateway struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider driven.TokenProvider
	limiter       *rate.Limiter
}

// NewGateway creates a gateway for the backend at baseURL. The token
// provider may be nil for anonymous-only use.
func NewGateway(baseURL string, tokenProvider driven.TokenProvider) *Gateway {
	return &Gateway{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: DefaultTimeout},
		tokenProvider: tokenProvider,
		limiter:       rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
}

// SetHTTPClient overrides the underlying HTTP client. Useful for testing.
func (g *Gateway) SetHTTPClient(client *http.Client) {
	if client != nil {
		g.httpClient = client
	}
}

// FetchAll queries every content domain in one round trip.
func (g *Gateway) FetchAll(ctx context.Context, query string) (*driven.SearchPayload, error) {
	body, err := g.get(ctx, g.baseURL+"/search/", query)
	if err != nil {
		return nil, err
	}

	var wire wirePayload
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: decoding search payload: %v", domain.ErrUnknown, err)
	}
	return wire.toPayload(), nil
}

// FetchDomain queries a single content domain.
func (g *Gateway) FetchDomain(ctx context.Context, query string, d domain.ContentDomain) ([]domain.SearchResult, error) {
	body, err := g.get(ctx, g.baseURL+"/search/"+url.PathEscape(string(d)), query)
	if err != nil {
		return nil, err
	}
	return decodeDomainResults(body, d)
}

// get performs a throttled, authenticated GET and returns the response
// body. Every failure comes back already classified.
func (g *Gateway) get(ctx context.Context, endpoint, query string) ([]byte, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, domain.ClassifyTransport(err)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: bad endpoint %q: %v", domain.ErrUnknown, endpoint, err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", domain.ErrUnknown, err)
	}
	req.Header.Set("Accept", "application/json")

	if g.tokenProvider != nil {
		token, terr := g.tokenProvider.GetToken(ctx)
		if terr != nil {
			// Anonymous search keeps working without a token.
			logger.Warn("Token lookup failed, searching anonymously: %v", terr)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger.Debug("GET %s", u.Redacted())
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, domain.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	if serr := domain.ClassifyHTTPStatus(resp.StatusCode); serr != nil {
		return nil, fmt.Errorf("%w: %s returned %d", serr, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ClassifyTransport(err)
	}
	return body, nil
}
