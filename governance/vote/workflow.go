// Package vote drives the multi-step workflows around domain.Vote: casting
// a full ballot set against a raffle's seat assignment, closing the vote,
// and folding the outcome back into the proposal's resolution.
package vote

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

// Ballots maps team name to choice, the shape callers supply for a formal
// vote's counted and uncounted buckets.
type Ballots map[string]domain.VoteChoice

// CreateAndProcess runs the full formal-vote lifecycle against proposalName
// in one atomic step: resolve the proposal and its raffle, open a Formal
// vote scoped to the raffle's seats, cast every named ballot, close the
// vote, and fold Approved/Rejected back onto the proposal. Any failure
// partway (unknown team name, already-resolved proposal, raffle without a
// result) aborts before the vote is opened, so the aggregate is left
// untouched on error.
func CreateAndProcess(agg *aggregate.Aggregate, proposalName string, countedBallots, uncountedBallots Ballots, threshold float64, countedPoints, uncountedPoints uint32, openedAt, closedAt time.Time) (*domain.Vote, error) {
	const op = "vote.CreateAndProcess"

	proposalID, ok := agg.ProposalIDByName(proposalName)
	if !ok {
		return nil, domain.NotFound(op, "proposal %q not found", proposalName)
	}
	proposal, _ := agg.Proposal(proposalID)
	if proposal.Resolution != nil {
		return nil, domain.PreconditionFailed(op, "proposal %q already has a resolution", proposalName)
	}

	var raffle *domain.Raffle
	for _, r := range agg.Raffles {
		if r.Config.ProposalID == proposalID {
			raffle = r
			break
		}
	}
	if raffle == nil {
		return nil, domain.NotFound(op, "no raffle found for proposal %q", proposalName)
	}
	if raffle.Result == nil {
		return nil, domain.PreconditionFailed(op, "raffle for proposal %q has not produced a result", proposalName)
	}

	resolved := make(map[domain.ID]domain.VoteChoice, len(countedBallots)+len(uncountedBallots))
	for name, choice := range countedBallots {
		id, ok := agg.TeamIDByName(name)
		if !ok {
			return nil, domain.NotFound(op, "team %q not found", name)
		}
		resolved[id] = choice
	}
	for name, choice := range uncountedBallots {
		id, ok := agg.TeamIDByName(name)
		if !ok {
			return nil, domain.NotFound(op, "team %q not found", name)
		}
		resolved[id] = choice
	}

	voteType := domain.FormalVoteType(raffle.ID, uint32(raffle.Config.TotalCountedSeats), threshold, countedPoints, uncountedPoints)
	v := domain.NewVote(proposalID, raffle.Config.EpochID, voteType, openedAt, false)
	for _, id := range raffle.Result.Counted {
		v.AddParticipant(id, true)
	}
	for _, id := range raffle.Result.Uncounted {
		v.AddParticipant(id, false)
	}

	for teamID, choice := range resolved {
		if err := v.CastVote(teamID, choice); err != nil {
			return nil, err
		}
	}

	if err := v.Close(closedAt); err != nil {
		return nil, err
	}

	resolvedAt := closedAt
	if err := proposal.SetDates(nil, nil, &resolvedAt); err != nil {
		return nil, err
	}
	if v.Passed() {
		if err := proposal.Approve(); err != nil {
			return nil, err
		}
	} else {
		if err := proposal.Reject(); err != nil {
			return nil, err
		}
	}

	agg.Votes[v.ID] = v
	return v, nil
}
