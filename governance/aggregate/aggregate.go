// Package aggregate owns the single in-memory state tree the rest of the
// governance module operates on: teams, epochs, proposals, raffles, and
// votes, plus the pointer to whichever epoch is currently active.
//
// There is exactly one aggregate per running process. It is not
// goroutine-safe by design: none of the maps below carry their own locks,
// and nothing in this module serializes access to them, so callers must
// issue one mutation at a time, the way a single-threaded event loop would.
package aggregate

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// HistoryEntry is one append-only record of a state-changing operation,
// used for audit and for "what happened in epoch X" style reporting.
type HistoryEntry struct {
	At time.Time
	Op string
}

// Aggregate is the root of all governance state.
type Aggregate struct {
	Teams      map[domain.ID]*domain.Team
	Epochs     map[domain.ID]*domain.Epoch
	Proposals  map[domain.ID]*domain.Proposal
	Raffles    map[domain.ID]*domain.Raffle
	Votes      map[domain.ID]*domain.Vote

	CurrentEpoch *domain.ID

	History []HistoryEntry

	nowFn func() time.Time
}

// Option customizes a new Aggregate.
type Option func(*Aggregate)

// WithClock overrides the aggregate's notion of "now", for deterministic
// tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregate) { a.nowFn = now }
}

// New constructs an empty Aggregate.
func New(opts ...Option) *Aggregate {
	a := &Aggregate{
		Teams:     map[domain.ID]*domain.Team{},
		Epochs:    map[domain.ID]*domain.Epoch{},
		Proposals: map[domain.ID]*domain.Proposal{},
		Raffles:   map[domain.ID]*domain.Raffle{},
		Votes:     map[domain.ID]*domain.Vote{},
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregate) now() time.Time { return a.nowFn() }

func (a *Aggregate) record(op string) {
	a.History = append(a.History, HistoryEntry{At: a.now(), Op: op})
}

// CurrentEpochID returns the active epoch's ID, or false if none is set.
func (a *Aggregate) CurrentEpochID() (domain.ID, bool) {
	if a.CurrentEpoch == nil {
		return domain.ZeroID, false
	}
	return *a.CurrentEpoch, true
}
