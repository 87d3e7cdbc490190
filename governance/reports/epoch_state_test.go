package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

func TestBuildEpochStateReportCountsResolutionsAndDaysOpen(t *testing.T) {
	agg := aggregate.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	epoch, err := agg.CreateEpoch("Epoch One", start, end)
	require.NoError(t, err)
	require.NoError(t, agg.ActivateEpoch(epoch.ID))

	approved, err := agg.AddProposal(epoch.ID, "Approved Proposal", nil, nil, nil, nil, false)
	require.NoError(t, err)
	require.NoError(t, agg.CloseProposal(approved.ID, domain.ResolutionApproved))

	announced := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	br, err := domain.NewBudgetRequest(nil, map[string]float64{"ETH": 3}, nil, nil)
	require.NoError(t, err)
	open, err := agg.AddProposal(epoch.ID, "Still Open", nil, br, &announced, nil, false)
	require.NoError(t, err)

	now := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	report, err := BuildEpochStateReport(agg, epoch.ID, now)
	require.NoError(t, err)

	require.Equal(t, 2, report.TotalProposals)
	require.Equal(t, 1, report.CountsByResolution[string(domain.ResolutionApproved)])
	require.Equal(t, 1, report.CountsByResolution[unresolvedBucket])

	require.Len(t, report.ActionableProposals, 1)
	actionable := report.ActionableProposals[0]
	require.Equal(t, open.ID, actionable.ProposalID)
	require.Equal(t, 15, actionable.DaysOpen)
	require.Equal(t, 3.0, actionable.RequestedAmounts["ETH"])
}

func TestBuildEpochStateReportRejectsUnknownEpoch(t *testing.T) {
	agg := aggregate.New()
	_, err := BuildEpochStateReport(agg, domain.NewID(), time.Now())
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
