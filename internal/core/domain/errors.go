package domain

import (
	"context"
	"errors"
	"net/http"
)

// Domain errors represent search failures after classification.
// The search service never surfaces raw transport errors; every failure is
// mapped onto one of these sentinels before it reaches a caller.
var (
	// ErrSearchCancelled indicates the request was superseded or explicitly
	// aborted. It is never shown to the user; callers drop it silently.
	ErrSearchCancelled = errors.New("search cancelled")

	// ErrEmptyQuery indicates a blank or whitespace-only query was
	// submitted. Rejected before any network attempt.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNetwork indicates a transport-level failure (connection refused,
	// DNS failure, broken pipe).
	ErrNetwork = errors.New("network error")

	// ErrInvalidQuery indicates the backend rejected the query as
	// malformed (HTTP 400).
	ErrInvalidQuery = errors.New("invalid query")

	// ErrAuthRequired indicates the endpoint demands authentication the
	// caller lacks (HTTP 401).
	ErrAuthRequired = errors.New("authentication required")

	// ErrForbidden indicates the caller is authenticated but not permitted
	// (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates the backend asked the caller to slow down
	// (HTTP 429). The core performs no automatic retry.
	ErrRateLimited = errors.New("rate limited")

	// ErrServer indicates a backend failure (HTTP 5xx).
	ErrServer = errors.New("server error")

	// ErrUnknown is the fallback for unclassifiable failures.
	ErrUnknown = errors.New("unknown error")
)

// ClassifyHTTPStatus maps an HTTP status code onto the error taxonomy.
// Returns nil for success codes.
func ClassifyHTTPStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusBadRequest:
		return ErrInvalidQuery
	case code == http.StatusUnauthorized:
		return ErrAuthRequired
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return ErrServer
	default:
		return ErrUnknown
	}
}

// ClassifyTransport maps a transport-level error onto the taxonomy.
// Context cancellation becomes ErrSearchCancelled so superseded requests can
// be distinguished from genuine failures and suppressed.
func ClassifyTransport(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return ErrSearchCancelled
	case errors.Is(err, ErrSearchCancelled),
		errors.Is(err, ErrEmptyQuery),
		errors.Is(err, ErrNetwork),
		errors.Is(err, ErrInvalidQuery),
		errors.Is(err, ErrAuthRequired),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrServer),
		errors.Is(err, ErrUnknown):
		return err
	default:
		return ErrNetwork
	}
}

// IsCancelled reports whether an error represents a superseded or aborted
// request, including a bare context.Canceled that escaped classification.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrSearchCancelled) || errors.Is(err, context.Canceled)
}

// UserMessage renders a classified error as the single human-readable string
// the search state store records. Cancelled requests have no user-visible
// message and yield "".
func UserMessage(err error) string {
	switch {
	case err == nil, IsCancelled(err):
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return "Please enter a search query."
	case errors.Is(err, ErrNetwork):
		return "Could not reach Agora. Check your network connection and try again."
	case errors.Is(err, ErrInvalidQuery):
		return "That search query could not be understood. Try different terms."
	case errors.Is(err, ErrAuthRequired):
		return "You need to sign in to search."
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to search this content."
	case errors.Is(err, ErrRateLimited):
		return "You are searching too quickly. Wait a moment and try again."
	case errors.Is(err, ErrServer):
		return "Agora is having trouble right now. Try again later."
	default:
		return "Something went wrong with your search. Try again."
	}
}
