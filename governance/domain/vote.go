package domain

import "time"

// VoteChoice is a single team's ballot.
type VoteChoice string

const (
	VoteYes VoteChoice = "yes"
	VoteNo  VoteChoice = "no"
)

// VoteStatus is Open or terminally Closed; votes never reopen.
type VoteStatus string

const (
	VoteOpen   VoteStatus = "open"
	VoteClosed VoteStatus = "closed"
)

// VoteKind discriminates the VoteType sum type.
type VoteKind string

const (
	VoteFormal   VoteKind = "formal"
	VoteInformal VoteKind = "informal"
)

// VoteType carries the parameters that distinguish a formal (raffle-backed,
// threshold-gated, point-bearing) vote from an informal one.
type VoteType struct {
	Kind              VoteKind
	RaffleID          ID      // Formal only
	TotalEligibleSeats uint32 // Formal only
	Threshold         float64 // Formal only
	CountedPoints     uint32  // Formal only
	UncountedPoints   uint32  // Formal only
}

// FormalVoteType builds a Formal VoteType.
func FormalVoteType(raffleID ID, totalEligibleSeats uint32, threshold float64, countedPoints, uncountedPoints uint32) VoteType {
	return VoteType{
		Kind:               VoteFormal,
		RaffleID:           raffleID,
		TotalEligibleSeats: totalEligibleSeats,
		Threshold:          threshold,
		CountedPoints:      countedPoints,
		UncountedPoints:    uncountedPoints,
	}
}

// InformalVoteType builds an Informal VoteType.
func InformalVoteType() VoteType { return VoteType{Kind: VoteInformal} }

// VoteCount tallies yes/no ballots within one participation bucket.
type VoteCount struct {
	Yes uint32
	No  uint32
}

// VoteParticipation records which teams are eligible/participating,
// partitioned into counted/uncounted for Formal votes or a flat list for
// Informal ones.
type VoteParticipation struct {
	Counted   []ID // Formal only
	Uncounted []ID // Formal only
	Informal  []ID // Informal only
}

// VoteResult is the outcome computed once a vote closes.
type VoteResult struct {
	Counted   VoteCount // Formal only
	Uncounted VoteCount // Formal only
	Passed    bool      // Formal only
	Informal  VoteCount // Informal only
}

// Vote is a single up/down decision attached to a proposal.
type Vote struct {
	ID            ID
	ProposalID    ID
	EpochID       ID
	Type          VoteType
	Status        VoteStatus
	Participation VoteParticipation
	Result        *VoteResult
	OpenedAt      time.Time
	ClosedAt      *time.Time
	IsHistorical  bool

	ballots map[ID]VoteChoice
}

// NewVote opens a new vote of the given type on proposalID within epochID.
func NewVote(proposalID, epochID ID, voteType VoteType, openedAt time.Time, isHistorical bool) *Vote {
	return &Vote{
		ID:            NewID(),
		ProposalID:    proposalID,
		EpochID:       epochID,
		Type:          voteType,
		Status:        VoteOpen,
		Participation: VoteParticipation{},
		OpenedAt:      openedAt,
		IsHistorical:  isHistorical,
		ballots:       map[ID]VoteChoice{},
	}
}

// IsClosed reports whether the vote has already closed.
func (v *Vote) IsClosed() bool { return v.Status == VoteClosed }

// IsFormal reports whether this is a Formal (raffle-backed) vote.
func (v *Vote) IsFormal() bool { return v.Type.Kind == VoteFormal }

func (v *Vote) containsCounted(teamID ID) bool {
	for _, id := range v.Participation.Counted {
		if id == teamID {
			return true
		}
	}
	return false
}

func (v *Vote) containsUncounted(teamID ID) bool {
	for _, id := range v.Participation.Uncounted {
		if id == teamID {
			return true
		}
	}
	return false
}

func (v *Vote) containsInformal(teamID ID) bool {
	for _, id := range v.Participation.Informal {
		if id == teamID {
			return true
		}
	}
	return false
}

// AddParticipant registers a team as eligible to vote. For Formal votes
// isCounted selects the counted or uncounted seat bucket; it is ignored for
// Informal votes.
func (v *Vote) AddParticipant(teamID ID, isCounted bool) {
	switch v.Type.Kind {
	case VoteFormal:
		if isCounted {
			if !v.containsCounted(teamID) {
				v.Participation.Counted = append(v.Participation.Counted, teamID)
			}
		} else if !v.containsUncounted(teamID) {
			v.Participation.Uncounted = append(v.Participation.Uncounted, teamID)
		}
	case VoteInformal:
		if !v.containsInformal(teamID) {
			v.Participation.Informal = append(v.Participation.Informal, teamID)
		}
	}
}

// CastVote records teamID's ballot. Formal votes require the team to
// already be a registered participant (counted or uncounted); Informal
// votes accept any team and self-register it on first ballot.
func (v *Vote) CastVote(teamID ID, choice VoteChoice) error {
	const op = "Vote.CastVote"
	if v.IsClosed() {
		return PreconditionFailed(op, "vote %s is closed", v.ID)
	}
	switch v.Type.Kind {
	case VoteFormal:
		if !v.containsCounted(teamID) && !v.containsUncounted(teamID) {
			return IneligibleVoter(op, "team %s is not a participant in formal vote %s", teamID, v.ID)
		}
	case VoteInformal:
		if !v.containsInformal(teamID) {
			v.Participation.Informal = append(v.Participation.Informal, teamID)
		}
	}
	v.ballots[teamID] = choice
	return nil
}

// Close closes the vote, computes its Result, and discards the raw
// ballots (only counts survive, matching spec §4.3's "votes are not stored
// individually past close").
func (v *Vote) Close(closedAt time.Time) error {
	const op = "Vote.Close"
	if v.IsClosed() {
		return PreconditionFailed(op, "vote %s is already closed", v.ID)
	}
	v.Status = VoteClosed
	v.ClosedAt = &closedAt
	v.Result = v.computeResult()
	v.ballots = map[ID]VoteChoice{}
	return nil
}

func (v *Vote) computeResult() *VoteResult {
	switch v.Type.Kind {
	case VoteFormal:
		counted, uncounted := v.tallyFormal()
		var passed bool
		if v.Type.TotalEligibleSeats > 0 {
			passed = float64(counted.Yes)/float64(v.Type.TotalEligibleSeats) >= v.Type.Threshold
		}
		return &VoteResult{Counted: counted, Uncounted: uncounted, Passed: passed}
	default:
		return &VoteResult{Informal: v.tallyInformal()}
	}
}

func (v *Vote) tallyFormal() (VoteCount, VoteCount) {
	var counted, uncounted VoteCount
	for teamID, choice := range v.ballots {
		switch {
		case v.containsCounted(teamID):
			tally(&counted, choice)
		case v.containsUncounted(teamID):
			tally(&uncounted, choice)
		}
	}
	return counted, uncounted
}

func (v *Vote) tallyInformal() VoteCount {
	var count VoteCount
	for _, choice := range v.ballots {
		tally(&count, choice)
	}
	return count
}

func tally(count *VoteCount, choice VoteChoice) {
	if choice == VoteYes {
		count.Yes++
	} else {
		count.No++
	}
}

// Passed reports whether a closed Formal vote met its threshold. It
// returns false for Informal votes or a vote that has not yet closed.
func (v *Vote) Passed() bool {
	return v.Result != nil && v.Result.Passed
}
