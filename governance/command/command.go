// Package command defines the set of mutating and read operations the
// governance engine accepts, and an Engine that dispatches them against an
// in-memory aggregate. Every Command here corresponds to a leaf of the
// original system's command enum except RunScript, which orchestrates a
// sequence of these commands from outside the engine rather than being one
// itself.
package command

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// Command is a marker interface implemented by every request Execute
// accepts. The concrete types below carry the parameters; Execute
// type-switches on them.
type Command interface {
	commandName() string
}

type CreateEpoch struct {
	Name  string
	Start time.Time
	End   time.Time
}

func (CreateEpoch) commandName() string { return "CreateEpoch" }

type ActivateEpoch struct {
	EpochName string
}

func (ActivateEpoch) commandName() string { return "ActivateEpoch" }

type SetEpochReward struct {
	EpochName string
	Token     string
	Amount    float64
}

func (SetEpochReward) commandName() string { return "SetEpochReward" }

type CloseEpoch struct {
	EpochName string // empty means the current epoch
}

func (CloseEpoch) commandName() string { return "CloseEpoch" }

type UpdateEpochDates struct {
	EpochName string
	Start     time.Time
	End       time.Time
}

func (UpdateEpochDates) commandName() string { return "UpdateEpochDates" }

type AddTeam struct {
	Name           string
	Representative string
	Status         domain.TeamStatus
	Address        *domain.PaymentAddress
}

func (AddTeam) commandName() string { return "AddTeam" }

// TeamUpdates carries the optional field updates for UpdateTeam; a nil
// pointer leaves that field untouched.
type TeamUpdates struct {
	Name           *string
	Representative *string
	Status         *domain.TeamStatus
	Address        *domain.PaymentAddress
	ClearAddress   bool
}

type UpdateTeam struct {
	TeamName string
	Updates  TeamUpdates
}

func (UpdateTeam) commandName() string { return "UpdateTeam" }

// RemoveTeam does not delete a team's history: it transitions the team to
// Inactive status, the same way the aggregate's RemoveTeam operation does,
// so past raffles, votes, and payments that reference the team stay valid.
type RemoveTeam struct {
	TeamName string
}

func (RemoveTeam) commandName() string { return "RemoveTeam" }

type AddProposal struct {
	Title         string
	URL           *string
	BudgetRequest *domain.BudgetRequest
	AnnouncedAt   *time.Time
	PublishedAt   *time.Time
	IsHistorical  bool
}

func (AddProposal) commandName() string { return "AddProposal" }

type ProposalUpdates struct {
	Title       *string
	URL         *string
	AnnouncedAt *time.Time
	PublishedAt *time.Time
	ResolvedAt  *time.Time
}

type UpdateProposal struct {
	ProposalName string
	Updates      ProposalUpdates
}

func (UpdateProposal) commandName() string { return "UpdateProposal" }

type CloseProposal struct {
	ProposalName string
	Resolution   domain.Resolution
}

func (CloseProposal) commandName() string { return "CloseProposal" }

// CreateRaffle runs a raffle synchronously against a pre-resolved
// randomness value, used for tests and offline replays. Live raffle
// creation against a real block-randomness oracle goes through
// ExecuteStreaming instead, since it must wait on-chain.
type CreateRaffle struct {
	ProposalName      string
	Randomness        string
	TotalCountedSeats int
	MaxEarnerSeats    int
	ExcludedTeams     []string
}

func (CreateRaffle) commandName() string { return "CreateRaffle" }

type ImportPredefinedRaffle struct {
	ProposalName      string
	CountedTeams      []string
	UncountedTeams    []string
	TotalCountedSeats int
	MaxEarnerSeats    int
}

func (ImportPredefinedRaffle) commandName() string { return "ImportPredefinedRaffle" }

// ImportHistoricalRaffle backfills a raffle for a proposal whose randomness
// already landed on chain: unlike CreateRaffleLive it never waits for a
// future block, it fetches randomness for an already-final block once and
// runs the normal scoring and seat-selection pipeline against it. Routed
// through Engine.ImportHistoricalRaffle rather than Execute since it needs
// an oracle.Oracle the plain Command union has no slot for.
type ImportHistoricalRaffle struct {
	ProposalName      string
	InitiationBlock   uint64
	TargetBlock       uint64
	TotalCountedSeats int
	MaxEarnerSeats    int
	ExcludedTeams     []string
}

func (ImportHistoricalRaffle) commandName() string { return "ImportHistoricalRaffle" }

type CreateAndProcessVote struct {
	ProposalName    string
	CountedVotes    map[string]domain.VoteChoice
	UncountedVotes  map[string]domain.VoteChoice
	Threshold       float64
	CountedPoints   uint32
	UncountedPoints uint32
	OpenedAt        time.Time
	ClosedAt        time.Time
}

func (CreateAndProcessVote) commandName() string { return "CreateAndProcessVote" }

type ImportHistoricalVote struct {
	ProposalName           string
	Passed                 bool
	ParticipatingTeams     []string
	NonParticipatingTeams  []string
	CountedPoints          *uint32
	UncountedPoints        *uint32
	DefaultThreshold       float64
	Now                    time.Time
}

func (ImportHistoricalVote) commandName() string { return "ImportHistoricalVote" }

type LogPayment struct {
	PaymentTx      domain.TxHash
	PaymentDate    time.Time
	ProposalNames  []string
}

func (LogPayment) commandName() string { return "LogPayment" }

// GenerateUnpaidRequestsReport and GenerateEpochPaymentsReport are thin
// read-only wrappers over governance/reports, included in the Command union
// so a caller that already drives everything through Engine.Execute does
// not need a second code path just to read a report back out.
type GenerateUnpaidRequestsReport struct {
	EpochName string // empty means across all epochs
}

func (GenerateUnpaidRequestsReport) commandName() string { return "GenerateUnpaidRequestsReport" }

type GenerateEpochPaymentsReport struct {
	EpochName string
}

func (GenerateEpochPaymentsReport) commandName() string { return "GenerateEpochPaymentsReport" }

type GenerateAllEpochsReport struct{}

func (GenerateAllEpochsReport) commandName() string { return "GenerateAllEpochsReport" }
