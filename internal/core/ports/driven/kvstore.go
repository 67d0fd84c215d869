package driven

// Storage slot keys. History lives under a profile-scoped key that outlives
// any single session; search state lives under a session-scoped key.
const (
	// HistorySlotKey is the durable slot holding serialized search history.
	HistorySlotKey = "agora_search_history"

	// SessionSlotKey is the session-scoped slot holding search state.
	SessionSlotKey = "agora_search_session"
)

// KVStore is a small string key-value slot abstraction over whatever
// storage the host environment provides (a file, an in-memory session map).
// Readers must tolerate corrupted or missing values: a slot that fails to
// parse is treated as absent, never as an error to surface.
type KVStore interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key.
	Set(key, value string) error

	// Delete removes key.
	Delete(key string) error
}
