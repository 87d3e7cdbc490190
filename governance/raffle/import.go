package raffle

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// ImportPredefined builds a historical raffle whose result is supplied
// directly rather than computed from randomness — used to backfill raffles
// that happened before this system tracked them. The counted team count
// must exactly match totalCountedSeats.
func ImportPredefined(proposalID, epochID domain.ID, countedTeamIDs, uncountedTeamIDs []domain.ID, totalCountedSeats, maxEarnerSeats int, teams map[domain.ID]*domain.Team, now time.Time) (*domain.Raffle, error) {
	const op = "raffle.ImportPredefined"
	if len(countedTeamIDs) != totalCountedSeats {
		return nil, domain.InvalidArgument(op, "total counted seats (%d) does not match counted team count (%d)", totalCountedSeats, len(countedTeamIDs))
	}
	if maxEarnerSeats > totalCountedSeats {
		return nil, domain.InvalidArgument(op, "max earner seats (%d) cannot exceed total counted seats (%d)", maxEarnerSeats, totalCountedSeats)
	}

	allTeamIDs := append(append([]domain.ID{}, countedTeamIDs...), uncountedTeamIDs...)
	config := domain.RaffleConfig{
		ProposalID:        proposalID,
		EpochID:           epochID,
		TotalCountedSeats: totalCountedSeats,
		MaxEarnerSeats:    maxEarnerSeats,
		BlockRandomness:   "N/A",
		CustomTeamOrder:   allTeamIDs,
		IsHistorical:      true,
	}

	raffle, err := New(config, teams, now)
	if err != nil {
		return nil, err
	}
	raffle.Result = &domain.RaffleResult{Counted: countedTeamIDs, Uncounted: uncountedTeamIDs}
	return raffle, nil
}
