package domain

import "time"

// RaffleParticipationStatus records whether a team snapshot was eligible to
// win seats in a given raffle.
type RaffleParticipationStatus string

const (
	RaffleIncluded RaffleParticipationStatus = "included"
	RaffleExcluded RaffleParticipationStatus = "excluded"
)

// RaffleConfig captures every input that determined how a raffle ran.
type RaffleConfig struct {
	ProposalID         ID
	EpochID            ID
	InitiationBlock    uint64
	RandomnessBlock    uint64
	BlockRandomness    string
	TotalCountedSeats  int
	MaxEarnerSeats     int
	ExcludedTeams      []ID
	CustomAllocation   map[ID]uint64
	CustomTeamOrder    []ID
	IsHistorical       bool
}

// TeamSnapshot freezes a team's identity and status at raffle time, so the
// raffle's outcome survives later edits to the team itself.
type TeamSnapshot struct {
	ID             ID
	Name           string
	Representative string
	Status         TeamStatus
	SnapshotTime   time.Time
	ParticipationStatus RaffleParticipationStatus
}

// RaffleTicket is one chance entry: a team, an ordinal index among all
// tickets issued, and the score assigned once randomness lands.
type RaffleTicket struct {
	TeamID ID
	Index  uint64
	Score  float64
}

// RaffleResult is the seat assignment computed from ticket scores.
type RaffleResult struct {
	Counted   []ID
	Uncounted []ID
}

// Raffle is a single seat-selection run tied to a proposal.
type Raffle struct {
	ID            ID
	Config        RaffleConfig
	TeamSnapshots []TeamSnapshot
	Tickets       []RaffleTicket
	Result        *RaffleResult
}

// DecidingTeams returns the counted-seat teams, or nil if the raffle has
// not yet produced a result.
func (r *Raffle) DecidingTeams() []ID {
	if r.Result == nil {
		return nil
	}
	return r.Result.Counted
}

// EtherscanURL renders a block-explorer link for the block whose mix digest
// supplied the raffle's randomness.
func (r *Raffle) EtherscanURL() string {
	return blockExplorerURL(r.Config.RandomnessBlock)
}

func blockExplorerURL(block uint64) string {
	return "https://etherscan.io/block/" + uintToDecimal(block) + "#consensusinfo"
}

func uintToDecimal(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
