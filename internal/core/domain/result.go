package domain

import "time"

// ContentDomain identifies one of the four searchable content kinds.
type ContentDomain string

const (
	// DomainClub is the club content domain.
	DomainClub ContentDomain = "club"

	// DomainThread is the discussion thread content domain.
	DomainThread ContentDomain = "thread"

	// DomainEvent is the event content domain.
	DomainEvent ContentDomain = "event"

	// DomainMedia is the media (books, films, music) content domain.
	DomainMedia ContentDomain = "media"
)

// Domains lists all searchable content domains in canonical order.
func Domains() []ContentDomain {
	return []ContentDomain{DomainClub, DomainThread, DomainEvent, DomainMedia}
}

// ParseDomain validates a domain string.
func ParseDomain(s string) (ContentDomain, bool) {
	switch ContentDomain(s) {
	case DomainClub, DomainThread, DomainEvent, DomainMedia:
		return ContentDomain(s), true
	default:
		return "", false
	}
}

// SearchResult is a single search hit from any content domain.
// Exactly one of Club, Thread, Event or Media is set, matching Domain.
type SearchResult struct {
	// ID is the backend identifier of the item.
	ID string

	// Domain identifies which content kind this result belongs to.
	Domain ContentDomain

	// Title is the display title of the item.
	Title string

	// Description is an optional longer description or body excerpt.
	Description string

	// CreatedAt is when the item was created on the platform.
	CreatedAt time.Time

	// RelevanceScore is recomputed client-side at read time and is never
	// trusted from the server payload. Non-negative, one decimal place.
	RelevanceScore float64

	// Club holds club-specific fields when Domain is DomainClub.
	Club *ClubDetails

	// Thread holds thread-specific fields when Domain is DomainThread.
	Thread *ThreadDetails

	// Event holds event-specific fields when Domain is DomainEvent.
	Event *EventDetails

	// Media holds media-specific fields when Domain is DomainMedia.
	Media *MediaDetails
}

// ClubDetails carries the club-specific relevance signals.
type ClubDetails struct {
	// IsMember is true when the caller already belongs to the club.
	IsMember bool

	// MemberCount is the club's total membership.
	MemberCount int
}

// ThreadDetails carries the thread-specific relevance signals.
type ThreadDetails struct {
	// ViewCount is the number of times the thread was viewed.
	ViewCount int

	// CommentCount is the number of comments on the thread.
	CommentCount int

	// IsPinned is true for moderator-pinned threads.
	IsPinned bool
}

// EventDetails carries the event-specific relevance signals.
type EventDetails struct {
	// Date is when the event takes place.
	Date time.Time

	// Capacity is the maximum number of participants (0 = unlimited).
	Capacity int

	// CurrentParticipants is the current signup count.
	CurrentParticipants int
}

// MediaDetails carries the media-specific relevance signals.
type MediaDetails struct {
	// Author is the creator of the media item.
	Author string

	// ReleaseYear is the publication year.
	ReleaseYear int

	// Genre is the media genre.
	Genre string
}
