package gateway

// StorageLayout maps video ids onto the shared filesystem namespace and
// owns directory lifecycle. Ids are assumed collision-free.
type StorageLayout interface {
	// Root returns the storage root directory.
	Root() string
	// DirFor returns the directory a video id maps to, without creating it.
	DirFor(videoUUID string) string
	// EnsureRoot creates the storage root if absent.
	EnsureRoot() error
	// EnsureDir creates the id's directory (and parents) if absent and
	// returns its path; it is idempotent.
	EnsureDir(videoUUID string) (string, error)
	// RemoveTree deletes dir depth-first, children before parents. It is
	// best-effort: individual delete errors are logged and skipped, and
	// the call never fails.
	RemoveTree(dir string)
	// Exists reports whether path exists.
	Exists(path string) bool
}
