package domain

import (
	"math"
	"strings"
)

// TeamStatusKind discriminates the TeamStatus sum type.
type TeamStatusKind string

const (
	TeamEarner     TeamStatusKind = "earner"
	TeamSupporter  TeamStatusKind = "supporter"
	TeamInactive   TeamStatusKind = "inactive"
)

// TeamStatus is a closed sum type: Earner carries 1..3 trailing monthly
// revenue figures, Supporter and Inactive carry nothing.
type TeamStatus struct {
	Kind                   TeamStatusKind
	TrailingMonthlyRevenue []uint64 // only meaningful when Kind == TeamEarner
}

// Supporter returns the Supporter status value.
func Supporter() TeamStatus { return TeamStatus{Kind: TeamSupporter} }

// Inactive returns the Inactive status value.
func Inactive() TeamStatus { return TeamStatus{Kind: TeamInactive} }

// Earner returns the Earner status value for the given trailing revenue
// figures. Validation of the 1..3 length happens where status is assigned
// to a Team, not here, so tests can build the deliberately-invalid shape.
func Earner(revenue []uint64) TeamStatus {
	return TeamStatus{Kind: TeamEarner, TrailingMonthlyRevenue: append([]uint64(nil), revenue...)}
}

func (s TeamStatus) validate(op string) error {
	if s.Kind != TeamEarner {
		return nil
	}
	if len(s.TrailingMonthlyRevenue) < 1 || len(s.TrailingMonthlyRevenue) > 3 {
		return InvalidArgument(op, "earner revenue must have 1 to 3 entries, got %d", len(s.TrailingMonthlyRevenue))
	}
	return nil
}

// Team is a collective participant: an Earner (with trailing revenue),
// a Supporter, or Inactive (retired). Teams are never destroyed; retirement
// is a status flip to Inactive.
type Team struct {
	ID             ID
	Name           string
	Representative string
	Status         TeamStatus
	PaymentAddress *PaymentAddress
}

// NewTeam constructs a Team, validating the non-empty name/representative
// invariant and the Earner revenue-length invariant.
func NewTeam(name, representative string, status TeamStatus, address *PaymentAddress) (*Team, error) {
	const op = "NewTeam"
	if strings.TrimSpace(name) == "" {
		return nil, InvalidArgument(op, "team name must not be empty")
	}
	if strings.TrimSpace(representative) == "" {
		return nil, InvalidArgument(op, "representative name must not be empty")
	}
	if err := status.validate(op); err != nil {
		return nil, err
	}
	return &Team{
		ID:             NewID(),
		Name:           name,
		Representative: representative,
		Status:         status,
		PaymentAddress: address,
	}, nil
}

// SetStatus transitions the team to a new status, re-checking the Earner
// revenue invariant (spec §3: "transitioning to Earner requires non-empty
// revenue").
func (t *Team) SetStatus(status TeamStatus) error {
	if err := status.validate("Team.SetStatus"); err != nil {
		return err
	}
	t.Status = status
	return nil
}

// IsActive reports whether the team currently participates (not Inactive).
func (t *Team) IsActive() bool { return t.Status.Kind != TeamInactive }

// IsEarner reports whether the team is currently an Earner.
func (t *Team) IsEarner() bool { return t.Status.Kind == TeamEarner }

// IsSupporter reports whether the team is currently a Supporter.
func (t *Team) IsSupporter() bool { return t.Status.Kind == TeamSupporter }

// Clone returns a deep copy so callers cannot mutate aggregate-owned state
// through a returned pointer.
func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Status.TrailingMonthlyRevenue = append([]uint64(nil), t.Status.TrailingMonthlyRevenue...)
	if t.PaymentAddress != nil {
		addr := *t.PaymentAddress
		clone.PaymentAddress = &addr
	}
	return &clone
}

// NameMatches satisfies the name-resolution contract (spec §4.7).
func (t *Team) NameMatches(name string) bool { return t.Name == name }

// TicketCount implements the spec §4.2.1 allocation table:
//
//	Earner:     max(1, floor(sqrt(mean(revenue)/1000)))
//	Supporter:  1
//	Inactive:   0
func (t *Team) TicketCount() uint64 {
	switch t.Status.Kind {
	case TeamEarner:
		return earnerTicketCount(t.Status.TrailingMonthlyRevenue)
	case TeamSupporter:
		return 1
	default:
		return 0
	}
}

func earnerTicketCount(revenue []uint64) uint64 {
	if len(revenue) == 0 {
		return 1
	}
	var sum uint64
	for _, r := range revenue {
		sum += r
	}
	mean := float64(sum) / float64(len(revenue))
	scaled := mean / 1000.0
	var root float64
	if scaled > 0 {
		root = math.Sqrt(scaled)
	}
	count := uint64(math.Floor(root))
	if count < 1 {
		return 1
	}
	return count
}
