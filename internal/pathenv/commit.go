package pathenv

// Committer persists a new search-path value to the places the user's next
// shell will read it from. The reconciler commits at most once per run,
// after all appends are decided.
type Committer interface {
	// Current reads the persisted search-path value.
	Current() (string, error)

	// Commit writes the new value.
	Commit(value string) error
}
