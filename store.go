package cityvizor

import "context"

// Outcome reports what a Store did with a request
type Outcome int

const (
	// OutcomeSkipped means the store is not configured and nothing was written
	OutcomeSkipped Outcome = iota
	// OutcomeWritten means exactly one row was appended
	OutcomeWritten
	// OutcomeFailed means the write was attempted and failed
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeWritten:
		return "written"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Store persists city requests
type Store interface {
	// Insert appends the request to the backing store. A failed write returns
	// OutcomeFailed together with a *StoreError.
	Insert(ctx context.Context, request *CityRequest) (Outcome, error)
}

// ProfileSource loads profiles from a backing spreadsheet
type ProfileSource interface {
	LoadProfiles(ctx context.Context) ([]*Profile, error)
}
