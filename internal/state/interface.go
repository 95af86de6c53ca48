package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetSession(sourceKey string) (*SessionRecord, error)
	SaveSession(rec SessionRecord)
	SaveSessionNow(rec SessionRecord) error
	History(limit int) ([]SessionRecord, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
