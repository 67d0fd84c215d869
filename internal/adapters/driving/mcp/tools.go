package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query"`
	Type  string `json:"type,omitempty" jsonschema:"restrict to one content domain: club, thread, event or media"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results per domain (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID          string  `json:"id"`
	Domain      string  `json:"domain"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// HistoryInput is the input schema for the search_history tool.
type HistoryInput struct{}

// HistoryOutput is the output schema for the search_history tool.
type HistoryOutput struct {
	Items []HistoryItemOutput `json:"items"`
	Count int                 `json:"count"`
}

// HistoryItemOutput represents one remembered search.
type HistoryItemOutput struct {
	Query       string `json:"query"`
	ResultCount int    `json:"result_count"`
	Timestamp   string `json:"timestamp"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search clubs, threads, events and media on the Agora platform",
	}, s.handleSearch)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_history",
			Description: "List the user's recent searches",
		}, s.handleHistory)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	var opts domain.SearchOptions

	var results []domain.SearchResult
	if input.Type != "" {
		d, ok := domain.ParseDomain(input.Type)
		if !ok {
			return nil, SearchOutput{}, fmt.Errorf("unknown content domain %q", input.Type)
		}
		domainResults, err := s.ports.Search.SearchByType(ctx, input.Query, d, opts)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		results = domainResults
	} else {
		resp, err := s.ports.Search.SearchAll(ctx, input.Query, opts)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		resp = resp.Truncate(limit)
		for _, d := range domain.Domains() {
			results = append(results, resp.ByDomain(d)...)
		}
	}

	if len(results) > limit && input.Type != "" {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		out := SearchResultOutput{
			ID:          results[i].ID,
			Domain:      string(results[i].Domain),
			Title:       results[i].Title,
			Description: results[i].Description,
			Score:       results[i].RelevanceScore,
		}
		if !results[i].CreatedAt.IsZero() {
			out.CreatedAt = results[i].CreatedAt.Format("2006-01-02")
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

// handleHistory handles the search_history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	items, err := s.ports.History.List(ctx)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Items: make([]HistoryItemOutput, len(items)),
		Count: len(items),
	}
	for i := range items {
		output.Items[i] = HistoryItemOutput{
			Query:       items[i].Query,
			ResultCount: items[i].ResultCount,
			Timestamp:   items[i].Timestamp.Format("2006-01-02 15:04"),
		}
	}

	return nil, output, nil
}
