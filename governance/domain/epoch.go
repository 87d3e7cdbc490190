package domain

import "time"

// EpochStatus is the monotonic Planned -> Active -> Closed lifecycle.
type EpochStatus string

const (
	EpochPlanned EpochStatus = "planned"
	EpochActive  EpochStatus = "active"
	EpochClosed  EpochStatus = "closed"
)

// EpochReward is the total pot declared for an epoch before distribution.
type EpochReward struct {
	Token  string
	Amount float64
}

// TeamReward is one team's share of an epoch's reward, computed at close.
type TeamReward struct {
	Percentage float64
	Amount     float64
}

// Epoch is a bounded time window over which proposals and votes accrue
// points toward an eventual reward distribution.
type Epoch struct {
	ID                   ID
	Name                 string
	StartDate            time.Time
	EndDate              time.Time
	Status               EpochStatus
	AssociatedProposals  []ID
	Reward               *EpochReward
	TeamRewards          map[ID]TeamReward
}

// NewEpoch constructs a Planned epoch, validating start < end.
func NewEpoch(name string, start, end time.Time) (*Epoch, error) {
	const op = "NewEpoch"
	if !start.Before(end) {
		return nil, InvalidArgument(op, "start date must be before end date")
	}
	return &Epoch{
		ID:        NewID(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    EpochPlanned,
		TeamRewards: map[ID]TeamReward{},
	}, nil
}

// Overlaps reports whether this epoch's open interval [StartDate, EndDate)
// intersects other's, per spec.md's non-overlap invariant. Back-to-back
// epochs (one's end equals the other's start) do not overlap.
func (e *Epoch) Overlaps(other *Epoch) bool {
	return e.StartDate.Before(other.EndDate) && other.StartDate.Before(e.EndDate)
}

// SetReward declares the total pot for the epoch.
func (e *Epoch) SetReward(token string, amount float64) {
	e.Reward = &EpochReward{Token: token, Amount: amount}
}

// Activate transitions Planned -> Active.
func (e *Epoch) Activate() error {
	if e.Status != EpochPlanned {
		return PreconditionFailed("Epoch.Activate", "epoch %s is %s, not planned", e.ID, e.Status)
	}
	e.Status = EpochActive
	return nil
}

// Close transitions Active -> Closed. Reopening is not possible.
func (e *Epoch) Close() error {
	if e.Status != EpochActive {
		return PreconditionFailed("Epoch.Close", "epoch %s is %s, not active", e.ID, e.Status)
	}
	e.Status = EpochClosed
	return nil
}

// AssociateProposal records that a proposal belongs to this epoch.
func (e *Epoch) AssociateProposal(id ID) {
	for _, existing := range e.AssociatedProposals {
		if existing == id {
			return
		}
	}
	e.AssociatedProposals = append(e.AssociatedProposals, id)
}

// DaysOpen returns how many whole days the epoch spans, clamped against
// asOf for an epoch still in progress. This is a reporting convenience,
// not part of the lifecycle invariants.
func (e *Epoch) DaysOpen(asOf time.Time) int {
	end := e.EndDate
	if e.Status != EpochClosed && asOf.Before(end) {
		end = asOf
	}
	if end.Before(e.StartDate) {
		return 0
	}
	return int(end.Sub(e.StartDate).Hours() / 24)
}

// NameMatches satisfies the name-resolution contract (spec §4.7).
func (e *Epoch) NameMatches(name string) bool { return e.Name == name }
