package jobs

import "time"

// Record is one job as reported by the queue backend for a single poll.
type Record struct {
	User           string
	Name           string
	Status         string
	Submitted      time.Time
	CompletedUnits int
	TotalUnits     int
	Remaining      Remaining
}

// Snapshot is the full set of records fetched in one poll cycle.
type Snapshot []Record

// RemainingKind tags the state of a remaining-time estimate.
type RemainingKind int

const (
	// RemainingKnown carries a usable duration.
	RemainingKnown RemainingKind = iota
	// RemainingUnknown means the backend has not produced an estimate yet.
	RemainingUnknown
	// RemainingInvalid means the backend value could not be decoded.
	RemainingInvalid
)

// Remaining is the estimated time left on a job. Backends decode their own
// encoding into one of the three kinds so formatting never sees raw strings.
type Remaining struct {
	kind     RemainingKind
	duration time.Duration
	err      error
}

// KnownRemaining wraps a decoded duration.
func KnownRemaining(d time.Duration) Remaining {
	return Remaining{kind: RemainingKnown, duration: d}
}

// UnknownRemaining is the "not yet estimable" sentinel.
func UnknownRemaining() Remaining {
	return Remaining{kind: RemainingUnknown}
}

// InvalidRemaining records why a backend value could not be decoded.
func InvalidRemaining(err error) Remaining {
	return Remaining{kind: RemainingInvalid, err: err}
}

// Kind reports which state the estimate is in.
func (r Remaining) Kind() RemainingKind { return r.kind }

// Duration returns the estimate and whether it is known.
func (r Remaining) Duration() (time.Duration, bool) {
	return r.duration, r.kind == RemainingKnown
}

// Err returns the decode failure for invalid estimates.
func (r Remaining) Err() error { return r.err }
