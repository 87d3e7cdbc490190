package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

func mustAddress(t *testing.T, s string) domain.PaymentAddress {
	t.Helper()
	addr, err := domain.ParsePaymentAddress(s)
	require.NoError(t, err)
	return addr
}

func setupClosedEpoch(t *testing.T) (*aggregate.Aggregate, domain.ID) {
	t.Helper()
	agg := aggregate.New()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	epoch, err := agg.CreateEpoch("Epoch One", start, end)
	require.NoError(t, err)
	require.NoError(t, agg.ActivateEpoch(epoch.ID))
	require.NoError(t, agg.SetEpochReward(epoch.ID, "ETH", 100))

	teamA, err := agg.AddTeam("Alpha", "Alpha Rep", domain.Supporter(), nil)
	require.NoError(t, err)
	teamB, err := agg.AddTeam("Beta", "Beta Rep", domain.Supporter(), nil)
	require.NoError(t, err)

	address := mustAddress(t, "0x1111111111111111111111111111111111111111")
	br, err := domain.NewBudgetRequest(&teamA.ID, map[string]float64{"ETH": 10}, nil, nil)
	require.NoError(t, err)
	proposal, err := agg.AddProposal(epoch.ID, "Fund Alpha", nil, br, nil, nil, false)
	require.NoError(t, err)
	require.NoError(t, agg.UpdateTeam(teamA.ID, nil, nil, nil, &address, false))
	require.NoError(t, agg.CloseProposal(proposal.ID, domain.ResolutionApproved))

	_, err = agg.AddTeam("Gamma", "Gamma Rep", domain.Supporter(), nil)
	require.NoError(t, err)
	_ = teamB

	r, err := agg.LogPayment(mustHash(t), time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), []string{"Fund Alpha"})
	require.NoError(t, err)
	require.Len(t, r, 1)

	raffleProposal, err := agg.AddProposal(epoch.ID, "Raise Points", nil, nil, nil, nil, false)
	require.NoError(t, err)
	require.NoError(t, agg.CloseProposal(raffleProposal.ID, domain.ResolutionApproved))

	voteType := domain.FormalVoteType(domain.NewID(), 1, 0.5, 5, 2)
	v := domain.NewVote(raffleProposal.ID, epoch.ID, voteType, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), false)
	v.AddParticipant(teamA.ID, true)
	require.NoError(t, v.CastVote(teamA.ID, domain.VoteYes))
	require.NoError(t, v.Close(time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)))
	agg.Votes[v.ID] = v

	require.NoError(t, agg.CloseEpoch(epoch.ID))

	return agg, epoch.ID
}

func mustHash(t *testing.T) domain.TxHash {
	t.Helper()
	h, err := domain.ParseTxHash("0x1100000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	return h
}

func TestBuildEpochStatsComputesApprovalRate(t *testing.T) {
	agg, epochID := setupClosedEpoch(t)
	selected := SelectEpochs(agg, false)
	require.Len(t, selected, 1)
	require.Equal(t, epochID, selected[0].ID)

	stats := BuildEpochStats(agg, selected)
	require.Len(t, stats, 1)
	require.Equal(t, 2, stats[0].NumProposals)
	require.Equal(t, 2, stats[0].NumApproved)
	require.NotNil(t, stats[0].ApprovalRate)
	require.InDelta(t, 100.0, *stats[0].ApprovalRate, 0.001)
	require.Equal(t, 10.0, stats[0].PaidBudget["ETH"])
}

func TestBuildOverallStatsAggregatesAcrossEpochs(t *testing.T) {
	agg, _ := setupClosedEpoch(t)
	selected := SelectEpochs(agg, true)
	epochStats := BuildEpochStats(agg, selected)
	overall := BuildOverallStats(agg, selected, epochStats)

	require.Equal(t, 1, overall.NumClosed)
	require.Equal(t, 10.0, overall.TotalPaidBudget["ETH"])
	require.Equal(t, 1, overall.TotalPaidProposals)
	require.Equal(t, 3, overall.TotalActiveTeams)
}

func TestBuildTeamPerformanceSummariesBreaksPointsDownPerEpoch(t *testing.T) {
	agg, epochID := setupClosedEpoch(t)
	selected := SelectEpochs(agg, false)

	summaries := BuildTeamPerformanceSummaries(agg, selected)
	var alpha *TeamPerformanceSummary
	for i := range summaries {
		if summaries[i].TeamName == "Alpha" {
			alpha = &summaries[i]
		}
	}
	require.NotNil(t, alpha)
	require.Len(t, alpha.PointsByEpoch, 1)
	require.Equal(t, epochID, alpha.PointsByEpoch[0].EpochID)
	require.Equal(t, uint32(5), alpha.PointsByEpoch[0].Points)
	require.Equal(t, alpha.TotalPointsEarned, alpha.PointsByEpoch[0].Points)
}

func TestBuildUnpaidRequestsReportExcludesPaid(t *testing.T) {
	agg := aggregate.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	epoch, err := agg.CreateEpoch("Epoch", start, end)
	require.NoError(t, err)

	team, err := agg.AddTeam("Alpha", "Alpha Rep", domain.Supporter(), nil)
	require.NoError(t, err)
	br, err := domain.NewBudgetRequest(&team.ID, map[string]float64{"ETH": 5}, nil, nil)
	require.NoError(t, err)
	proposal, err := agg.AddProposal(epoch.ID, "Fund Alpha", nil, br, nil, nil, false)
	require.NoError(t, err)
	require.NoError(t, agg.CloseProposal(proposal.ID, domain.ResolutionApproved))

	report := BuildUnpaidRequestsReport(agg, nil, time.Now())
	require.Len(t, report.UnpaidRequests, 1)
	require.Equal(t, "Fund Alpha", report.UnpaidRequests[0].Title)

	_, err = agg.LogPayment(mustHash(t), time.Now(), []string{"Fund Alpha"})
	require.NoError(t, err)

	report = BuildUnpaidRequestsReport(agg, nil, time.Now())
	require.Empty(t, report.UnpaidRequests)
}

func TestBuildEpochPaymentsReportRequiresClosedEpochWithReward(t *testing.T) {
	agg, epochID := setupClosedEpoch(t)
	report, err := BuildEpochPaymentsReport(agg, epochID)
	require.NoError(t, err)
	require.Equal(t, "ETH", report.Token)
	require.Equal(t, 100.0, report.TotalAmount)
	require.NotEmpty(t, report.Payments)

	var total float64
	for _, p := range report.Payments {
		total += p.Amount
	}
	require.InDelta(t, 100.0, total, 0.01)
}

func TestBuildEpochPaymentsReportRejectsOpenEpoch(t *testing.T) {
	agg := aggregate.New()
	epoch, err := agg.CreateEpoch("Epoch", time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = BuildEpochPaymentsReport(agg, epoch.ID)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrPreconditionFailed)
}
