package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

var (
	searchType    string
	searchSort    string
	searchTime    string
	searchLimit   int
	searchJSON    bool
	searchNoCache bool
	searchShare   bool
	searchFromURL string
	searchDomains []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search clubs, threads, events and media",
	Long: `Searches every content domain on the platform and prints results
ordered by relevance. Results are cached for a few minutes, so repeating
a query is cheap.

Use --type to restrict the search to one domain, --domains to fan out
over a subset of domains concurrently, and --sort/--time to reorder or
narrow the results.`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 && searchFromURL == "" {
			return errors.New("requires a query argument or --from-url")
		}
		return nil
	},
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "all", "restrict to one domain (club|thread|event|media|all)")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "", "sort order (relevance|recent|popular)")
	searchCmd.Flags().StringVar(&searchTime, "time", "", "restrict by age (day|week|month|year)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum results per domain (0 = no limit)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "bypass the response cache")
	searchCmd.Flags().BoolVar(&searchShare, "share", false, "print a shareable search URL")
	searchCmd.Flags().StringVar(&searchFromURL, "from-url", "", "rerun a search from a shared URL")
	searchCmd.Flags().StringSliceVar(&searchDomains, "domains", nil, "fan out over specific domains (e.g. club,event)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchFromURL != "" {
		return runSearchFromURL(cmd)
	}

	query := strings.Join(args, " ")

	if len(searchDomains) > 0 {
		return runDomainFanout(cmd, query)
	}

	if searchStore == nil {
		return errors.New("search store not configured")
	}

	partial, err := parseFilterFlags()
	if err != nil {
		return err
	}

	// Filters are applied while the query is still blank so only one
	// search runs.
	if err := searchStore.PerformFilteredSearch(cmd.Context(), partial); err != nil {
		return err
	}

	perform := searchStore.PerformSearch
	if searchNoCache {
		// Bypasses the cache for this query only; other entries survive.
		perform = searchStore.PerformSearchBypassingCache
	}

	if err := perform(cmd.Context(), query, true); err != nil {
		if msg := domain.UserMessage(err); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	state := searchStore.State()
	resp := state.Response
	if searchLimit > 0 && resp != nil {
		resp = resp.Truncate(searchLimit)
	}

	if searchShare {
		params := domain.EncodeQuery(query, state.Filters)
		cmd.Printf("Share: %s/search?%s\n\n", appConfig.BaseURL, params.Encode())
	}

	if searchJSON {
		return outputJSON(cmd, resp)
	}
	outputResponse(cmd, resp)
	return nil
}

// runSearchFromURL decodes a shared search URL and reruns it. Restored
// searches never touch history.
func runSearchFromURL(cmd *cobra.Command) error {
	if searchStore == nil {
		return errors.New("search store not configured")
	}

	u, err := url.Parse(searchFromURL)
	if err != nil {
		return fmt.Errorf("parsing shared URL: %w", err)
	}
	query, filters := domain.DecodeQuery(u.Query())

	if err := searchStore.RestoreFromURL(cmd.Context(), query, filters); err != nil {
		if msg := domain.UserMessage(err); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	resp := searchStore.State().Response
	if searchLimit > 0 && resp != nil {
		resp = resp.Truncate(searchLimit)
	}
	if searchJSON {
		return outputJSON(cmd, resp)
	}
	outputResponse(cmd, resp)
	return nil
}

// runDomainFanout searches a subset of domains concurrently and merges
// the per-domain results into one response.
func runDomainFanout(cmd *cobra.Command, query string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	domains := make([]domain.ContentDomain, 0, len(searchDomains))
	for _, raw := range searchDomains {
		d, ok := domain.ParseDomain(strings.TrimSpace(raw))
		if !ok {
			return fmt.Errorf("unknown domain %q (want club, thread, event or media)", raw)
		}
		domains = append(domains, d)
	}

	opts := domain.SearchOptions{SkipCache: searchNoCache}
	resp := &domain.SearchResponse{}
	buckets := make([][]domain.SearchResult, len(domains))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, d := range domains {
		g.Go(func() error {
			results, err := searchService.SearchByType(ctx, query, d, opts)
			if err != nil {
				return fmt.Errorf("searching %s: %w", d, err)
			}
			buckets[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if msg := domain.UserMessage(err); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	for i, d := range domains {
		switch d {
		case domain.DomainClub:
			resp.Clubs = buckets[i]
		case domain.DomainThread:
			resp.Threads = buckets[i]
		case domain.DomainEvent:
			resp.Events = buckets[i]
		case domain.DomainMedia:
			resp.Media = buckets[i]
		}
		resp.TotalResults += len(buckets[i])
	}

	if searchLimit > 0 {
		resp = resp.Truncate(searchLimit)
	}
	if searchJSON {
		return outputJSON(cmd, resp)
	}
	outputResponse(cmd, resp)
	return nil
}

func parseFilterFlags() (domain.PartialFilters, error) {
	var partial domain.PartialFilters

	if searchType != "" && searchType != string(domain.TypeAll) {
		if _, ok := domain.ParseDomain(searchType); !ok {
			return partial, fmt.Errorf("unknown type %q (want club, thread, event, media or all)", searchType)
		}
	}
	tf := domain.TypeFilter(searchType)
	if searchType == "" {
		tf = domain.TypeAll
	}
	partial.Type = &tf

	if searchSort != "" {
		switch domain.SortOrder(searchSort) {
		case domain.SortRelevance, domain.SortRecent, domain.SortPopular:
		default:
			return partial, fmt.Errorf("unknown sort order %q (want relevance, recent or popular)", searchSort)
		}
		so := domain.SortOrder(searchSort)
		partial.SortBy = &so
	}

	if searchTime != "" {
		switch searchTime {
		case "day", "week", "month", "year":
		default:
			return partial, fmt.Errorf("unknown time range %q (want day, week, month or year)", searchTime)
		}
	}
	partial.TimeRange = &searchTime

	return partial, nil
}

func outputJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResponse(cmd *cobra.Command, resp *domain.SearchResponse) {
	if resp == nil || resp.Empty() {
		cmd.Println("No results found.")
		return
	}

	cmd.Printf("Results (%d):\n", resp.TotalResults)
	for _, d := range domain.Domains() {
		results := resp.ByDomain(d)
		if len(results) == 0 {
			continue
		}
		cmd.Println()
		cmd.Printf("%s (%d)\n", domainHeading(d), len(results))
		for i := range results {
			printResult(cmd, results[i])
		}
	}
}

func printResult(cmd *cobra.Command, r domain.SearchResult) {
	cmd.Printf("  %s (%.1f)\n", r.Title, r.RelevanceScore)
	if r.Description != "" {
		cmd.Printf("      %s\n", snippet(r.Description, 80))
	}
	switch {
	case r.Club != nil:
		cmd.Printf("      %d members\n", r.Club.MemberCount)
	case r.Thread != nil:
		cmd.Printf("      %d views, %d comments\n", r.Thread.ViewCount, r.Thread.CommentCount)
	case r.Event != nil:
		cmd.Printf("      %s, %d/%d attending\n", r.Event.Date.Format("Jan 2 2006"), r.Event.CurrentParticipants, r.Event.Capacity)
	case r.Media != nil:
		cmd.Printf("      %s (%d)\n", r.Media.Author, r.Media.ReleaseYear)
	}
}

func domainHeading(d domain.ContentDomain) string {
	switch d {
	case domain.DomainClub:
		return "Clubs"
	case domain.DomainThread:
		return "Threads"
	case domain.DomainEvent:
		return "Events"
	case domain.DomainMedia:
		return "Media"
	default:
		return string(d)
	}
}

func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
