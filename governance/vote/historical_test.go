package vote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

func TestImportHistoricalVotePreservesOutcomeWithZeroTally(t *testing.T) {
	agg, proposalName, names := setupProposalWithRaffle(t, 2, 1)

	countedPoints := uint32(5)
	uncountedPoints := uint32(2)

	v, err := ImportHistoricalVote(agg, proposalName, true, names, nil, &countedPoints, &uncountedPoints, 0.5, time.Now())
	require.NoError(t, err)
	require.True(t, v.IsHistorical)
	require.True(t, v.IsClosed())
	require.True(t, v.Passed())
	require.Zero(t, v.Result.Counted.Yes)
	require.Zero(t, v.Result.Counted.No)
	require.Zero(t, v.Result.Uncounted.Yes)
	require.Zero(t, v.Result.Uncounted.No)

	proposalID, _ := agg.ProposalIDByName(proposalName)
	proposal, _ := agg.Proposal(proposalID)
	require.True(t, proposal.IsApproved())
}

func TestImportHistoricalVoteRejectedOutcome(t *testing.T) {
	agg, proposalName, names := setupProposalWithRaffle(t, 2, 1)

	v, err := ImportHistoricalVote(agg, proposalName, false, names, nil, nil, nil, 0.5, time.Now())
	require.NoError(t, err)
	require.False(t, v.Passed())

	proposalID, _ := agg.ProposalIDByName(proposalName)
	proposal, _ := agg.Proposal(proposalID)
	require.False(t, proposal.IsApproved())
	require.NotNil(t, proposal.Resolution)
	require.Equal(t, domain.ResolutionRejected, *proposal.Resolution)
}

func TestImportHistoricalVoteRejectsUnknownTeam(t *testing.T) {
	agg, proposalName, _ := setupProposalWithRaffle(t, 1, 1)

	_, err := ImportHistoricalVote(agg, proposalName, true, []string{"Nonexistent"}, nil, nil, nil, 0.5, time.Now())
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportHistoricalVoteHonorsNonParticipating(t *testing.T) {
	agg, proposalName, names := setupProposalWithRaffle(t, 2, 1)

	v, err := ImportHistoricalVote(agg, proposalName, true, nil, names[:1], nil, nil, 0.5, time.Now())
	require.NoError(t, err)

	excludedID, _ := agg.TeamIDByName(names[0])
	for _, id := range v.Participation.Counted {
		require.NotEqual(t, excludedID, id)
	}
	for _, id := range v.Participation.Uncounted {
		require.NotEqual(t, excludedID, id)
	}
}
