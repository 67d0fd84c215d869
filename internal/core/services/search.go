package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/core/ports/driving"
	"github.com/agora-labs/agora-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// streamFlight tracks the in-flight request for one cancellation stream.
type streamFlight struct {
	key    string
	ctx    context.Context
	cancel context.CancelFunc
}

// SearchService composes the response cache, per-stream request
// cancellation, the remote gateway and the scorer. Raw payloads are cached;
// scores are always recomputed at read time.
type SearchService struct {
	gateway  driven.SearchGateway
	cache    driven.ResponseCache
	clock    driven.Clock
	cacheTTL time.Duration

	mu       sync.Mutex
	inFlight map[domain.Stream]*streamFlight
	group    singleflight.Group
}

// NewSearchService creates a search service with the default cache TTL.
func NewSearchService(gateway driven.SearchGateway, cache driven.ResponseCache, clock driven.Clock) *SearchService {
	if clock == nil {
		clock = driven.SystemClock()
	}
	return &SearchService{
		gateway:  gateway,
		cache:    cache,
		clock:    clock,
		cacheTTL: driven.DefaultCacheTTL,
		inFlight: make(map[domain.Stream]*streamFlight),
	}
}

// SetCacheTTL overrides the cache entry lifetime.
func (s *SearchService) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

// SearchAll searches every content domain and aggregates scored, sorted
// results. Blank queries are rejected with domain.ErrEmptyQuery before any
// network attempt.
func (s *SearchService) SearchAll(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, stream: %s", query, opts.EffectiveStream())

	if domain.IsBlankQuery(query) {
		return nil, domain.ErrEmptyQuery
	}

	normalized := domain.NormalizeQuery(query)
	key := driven.CacheKey("all", normalized)

	if !opts.SkipCache {
		if payload, ok := s.cachedPayload(key); ok {
			logger.Debug("Cache hit: %s", key)
			return s.assemble(payload, normalized), nil
		}
	}

	payload, err := s.fetchAll(ctx, opts.EffectiveStream(), key, normalized)
	if err != nil {
		return nil, err
	}

	return s.assemble(payload, normalized), nil
}

// SearchByType searches a single content domain under its own cache
// namespace, with the same cache and cancellation contract as SearchAll.
func (s *SearchService) SearchByType(
	ctx context.Context, query string, d domain.ContentDomain, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, domain: %s, stream: %s", query, d, opts.EffectiveStream())

	if domain.IsBlankQuery(query) {
		return nil, domain.ErrEmptyQuery
	}
	if _, ok := domain.ParseDomain(string(d)); !ok {
		return nil, fmt.Errorf("%w: unknown domain %q", domain.ErrInvalidQuery, d)
	}

	normalized := domain.NormalizeQuery(query)
	key := driven.CacheKey(string(d), normalized)

	if !opts.SkipCache {
		if raw, ok := s.cache.Get(key); ok {
			var results []domain.SearchResult
			if err := json.Unmarshal(raw, &results); err == nil {
				logger.Debug("Cache hit: %s", key)
				return ScoreAndSort(results, normalized, s.clock.Now()), nil
			}
			s.cache.Invalidate(key)
		}
	}

	results, err := s.fetchDomain(ctx, opts.EffectiveStream(), key, normalized, d)
	if err != nil {
		return nil, err
	}

	return ScoreAndSort(results, normalized, s.clock.Now()), nil
}

// Cancel aborts the stream's in-flight request, if any. Callers use this
// when a consumer goes away (e.g. the dropdown unmounts).
func (s *SearchService) Cancel(stream domain.Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fl := s.inFlight[stream]; fl != nil {
		fl.cancel()
		delete(s.inFlight, stream)
	}
}

// InvalidateCache drops every cached payload.
func (s *SearchService) InvalidateCache() {
	s.cache.Clear()
}

// fetchAll performs a deduplicated, cancellable cross-domain fetch and
// caches the raw payload on success.
func (s *SearchService) fetchAll(
	ctx context.Context, stream domain.Stream, key, normalized string,
) (*driven.SearchPayload, error) {
	fctx := s.begin(ctx, stream, key)

	v, err, _ := s.group.Do(flightKey(stream, key), func() (any, error) {
		defer s.finish(stream, key)

		payload, err := s.gateway.FetchAll(fctx, normalized)
		if err != nil {
			return nil, s.classify(fctx, err, normalized)
		}

		if raw, merr := json.Marshal(payload); merr == nil {
			s.cache.Set(key, raw, s.cacheTTL)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	payload, ok := v.(*driven.SearchPayload)
	if !ok || payload == nil {
		return nil, domain.ErrUnknown
	}
	return payload, nil
}

// fetchDomain is the single-domain counterpart of fetchAll.
func (s *SearchService) fetchDomain(
	ctx context.Context, stream domain.Stream, key, normalized string, d domain.ContentDomain,
) ([]domain.SearchResult, error) {
	fctx := s.begin(ctx, stream, key)

	v, err, _ := s.group.Do(flightKey(stream, key), func() (any, error) {
		defer s.finish(stream, key)

		results, err := s.gateway.FetchDomain(fctx, normalized, d)
		if err != nil {
			return nil, s.classify(fctx, err, normalized)
		}

		if raw, merr := json.Marshal(results); merr == nil {
			s.cache.Set(key, raw, s.cacheTTL)
		}
		return results, nil
	})
	if err != nil {
		return nil, err
	}

	results, ok := v.([]domain.SearchResult)
	if !ok {
		return nil, domain.ErrUnknown
	}
	return results, nil
}

// begin claims the stream's cancellation slot for key. A prior in-flight
// request for a different key is cancelled; an in-flight request for the
// same key is joined (its context is reused so singleflight callers share
// one fetch).
func (s *SearchService) begin(ctx context.Context, stream domain.Stream, key string) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fl := s.inFlight[stream]; fl != nil {
		if fl.key == key {
			return fl.ctx
		}
		logger.Debug("Superseding in-flight request on stream %s", stream)
		fl.cancel()
	}

	fctx, cancel := context.WithCancel(ctx)
	s.inFlight[stream] = &streamFlight{key: key, ctx: fctx, cancel: cancel}
	return fctx
}

// finish releases the stream slot if it still belongs to key.
func (s *SearchService) finish(stream domain.Stream, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fl := s.inFlight[stream]; fl != nil && fl.key == key {
		fl.cancel()
		delete(s.inFlight, stream)
	}
}

// classify maps a fetch failure onto the domain taxonomy. Cancellation of
// the flight context always wins over whatever the transport reported.
func (s *SearchService) classify(fctx context.Context, err error, query string) error {
	if fctx.Err() != nil {
		return domain.ErrSearchCancelled
	}
	classified := domain.ClassifyTransport(err)
	if errors.Is(classified, domain.ErrUnknown) {
		logger.Warn("Unclassified search failure for query %q: %v", query, err)
	} else {
		logger.Debug("Search failed for query %q: %v", query, classified)
	}
	return classified
}

// assemble scores and sorts a raw payload into the aggregate response.
func (s *SearchService) assemble(payload *driven.SearchPayload, normalized string) *domain.SearchResponse {
	now := s.clock.Now()
	resp := &domain.SearchResponse{
		Clubs:   ScoreAndSort(payload.Clubs, normalized, now),
		Threads: ScoreAndSort(payload.Threads, normalized, now),
		Events:  ScoreAndSort(payload.Events, normalized, now),
		Media:   ScoreAndSort(payload.Media, normalized, now),
	}
	resp.TotalResults = len(resp.Clubs) + len(resp.Threads) + len(resp.Events) + len(resp.Media)
	logger.Debug("Assembled %d results", resp.TotalResults)
	return resp
}

// cachedPayload loads and decodes a cached cross-domain payload.
// A corrupted entry is dropped and treated as a miss.
func (s *SearchService) cachedPayload(key string) (*driven.SearchPayload, bool) {
	raw, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	var payload driven.SearchPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.cache.Invalidate(key)
		return nil, false
	}
	return &payload, true
}

func flightKey(stream domain.Stream, key string) string {
	return string(stream) + "|" + key
}
