package domain

// Stream names a logical sequence of searches sharing one cancellation
// slot. Issuing a new search in a stream cancels the stream's prior
// in-flight request; only the latest request may commit its result.
type Stream string

const (
	// StreamSubmit carries explicit "search everything" submissions.
	StreamSubmit Stream = "submit"

	// StreamDropdown carries debounced dropdown previews. It is a
	// separate consumer and never cancels submit-stream requests.
	StreamDropdown Stream = "dropdown"
)

// SearchOptions configures a single search call.
type SearchOptions struct {
	// SkipCache bypasses the response cache and forces a network fetch.
	// The fresh payload still replaces the cached entry on success.
	SkipCache bool

	// Stream selects the cancellation stream. Empty means StreamSubmit.
	Stream Stream
}

// EffectiveStream returns the stream, defaulting to StreamSubmit.
func (o SearchOptions) EffectiveStream() Stream {
	if o.Stream == "" {
		return StreamSubmit
	}
	return o.Stream
}
