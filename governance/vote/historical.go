package vote

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

// ImportHistoricalVote backfills a vote that was decided before this system
// tracked individual ballots. Rather than casting real votes it sets
// participation directly from the raffle's seat result and records the
// already-known outcome; the per-team tally is intentionally left at zero
// because the historical record this is backfilling never preserved it,
// only the pass/fail outcome.
func ImportHistoricalVote(agg *aggregate.Aggregate, proposalName string, passed bool, participatingTeams, nonParticipatingTeams []string, countedPoints, uncountedPoints *uint32, defaultThreshold float64, now time.Time) (*domain.Vote, error) {
	const op = "vote.ImportHistoricalVote"

	proposalID, ok := agg.ProposalIDByName(proposalName)
	if !ok {
		return nil, domain.NotFound(op, "proposal %q not found", proposalName)
	}
	proposal, _ := agg.Proposal(proposalID)

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

	participating := map[domain.ID]bool{}
	for _, name := range participatingTeams {
		id, ok := agg.TeamIDByName(name)
		if !ok {
			return nil, domain.NotFound(op, "team %q not found", name)
		}
		participating[id] = true
	}
	nonParticipating := map[domain.ID]bool{}
	for _, name := range nonParticipatingTeams {
		id, ok := agg.TeamIDByName(name)
		if !ok {
			return nil, domain.NotFound(op, "team %q not found", name)
		}
		nonParticipating[id] = true
	}

	resolvedCountedPoints := uint32(0)
	if countedPoints != nil {
		resolvedCountedPoints = *countedPoints
	}
	resolvedUncountedPoints := uint32(0)
	if uncountedPoints != nil {
		resolvedUncountedPoints = *uncountedPoints
	}

	voteType := domain.FormalVoteType(raffle.ID, uint32(raffle.Config.TotalCountedSeats), defaultThreshold, resolvedCountedPoints, resolvedUncountedPoints)
	v := domain.NewVote(proposalID, raffle.Config.EpochID, voteType, now, true)

	for _, id := range raffle.Result.Counted {
		if nonParticipating[id] {
			continue
		}
		if len(participating) == 0 || participating[id] {
			v.AddParticipant(id, true)
		}
	}
	for _, id := range raffle.Result.Uncounted {
		if nonParticipating[id] {
			continue
		}
		if len(participating) == 0 || participating[id] {
			v.AddParticipant(id, false)
		}
	}

	if err := v.Close(now); err != nil {
		return nil, err
	}
	// The tally above is necessarily empty since no ballots were cast; the
	// outcome comes from the caller, not from computeResult.
	v.Result = &domain.VoteResult{Passed: passed}

	if passed {
		if err := proposal.Approve(); err != nil {
			return nil, err
		}
	} else {
		if err := proposal.Reject(); err != nil {
			return nil, err
		}
	}
	resolvedAt := now
	if err := proposal.SetDates(nil, nil, &resolvedAt); err != nil {
		return nil, err
	}

	agg.Votes[v.ID] = v
	return v, nil
}
