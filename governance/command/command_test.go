package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
	"github.com/yearn/robokitty-sub000/governance/oracle"
	"github.com/yearn/robokitty-sub000/governance/raffle"
	"github.com/yearn/robokitty-sub000/governance/reports"
)

func newTestEngine() (*Engine, *aggregate.Aggregate) {
	agg := aggregate.New()
	return New(agg), agg
}

func TestExecuteCreateEpochAndAddTeam(t *testing.T) {
	e, agg := newTestEngine()
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	result, err := e.Execute(ctx, CreateEpoch{Name: "Epoch One", Start: start, End: end})
	require.NoError(t, err)
	epoch, ok := result.(*domain.Epoch)
	require.True(t, ok)
	require.Equal(t, "Epoch One", epoch.Name)

	result, err = e.Execute(ctx, AddTeam{Name: "Alpha", Representative: "Alice", Status: domain.Supporter()})
	require.NoError(t, err)
	team, ok := result.(*domain.Team)
	require.True(t, ok)
	require.Equal(t, "Alpha", team.Name)

	_, err = e.Execute(ctx, ActivateEpoch{EpochName: "Epoch One"})
	require.NoError(t, err)

	current, ok := agg.CurrentEpochID()
	require.True(t, ok)
	require.Equal(t, epoch.ID, current)
}

func TestExecuteUnknownEpochNameFails(t *testing.T) {
	e, _ := newTestEngine()
	_, err := e.Execute(context.Background(), ActivateEpoch{EpochName: "Missing"})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecuteAddProposalAndCloseAndLogPayment(t *testing.T) {
	e, agg := newTestEngine()
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := e.Execute(ctx, CreateEpoch{Name: "Epoch One", Start: start, End: end})
	require.NoError(t, err)
	_, err = e.Execute(ctx, ActivateEpoch{EpochName: "Epoch One"})
	require.NoError(t, err)

	addr, err := domain.ParsePaymentAddress("0x00000000000000000000000000000000000000aa")
	require.NoError(t, err)
	_, err = e.Execute(ctx, AddTeam{Name: "Alpha", Representative: "Alice", Status: domain.Supporter(), Address: &addr})
	require.NoError(t, err)

	teamID, ok := agg.TeamIDByName("Alpha")
	require.True(t, ok)

	budgetRequest, err := domain.NewBudgetRequest(&teamID, map[string]float64{"ETH": 10}, nil, nil)
	require.NoError(t, err)

	result, err := e.Execute(ctx, AddProposal{Title: "Fund Alpha", BudgetRequest: budgetRequest})
	require.NoError(t, err)
	proposal, ok := result.(*domain.Proposal)
	require.True(t, ok)
	require.Equal(t, "Fund Alpha", proposal.Title)

	_, err = e.Execute(ctx, CloseProposal{ProposalName: "Fund Alpha", Resolution: domain.ResolutionApproved})
	require.NoError(t, err)

	txHash, err := domain.ParseTxHash("0x11111111111111111111111111111111111111111111111111111111111111aa")
	require.NoError(t, err)

	result, err = e.Execute(ctx, LogPayment{PaymentTx: txHash, PaymentDate: time.Now().UTC(), ProposalNames: []string{"Fund Alpha"}})
	require.NoError(t, err)
	records, ok := result.([]aggregate.PaymentRecord)
	require.True(t, ok)
	require.Len(t, records, 1)
	require.Equal(t, "Alpha", records[0].TeamName)

	_, err = e.Execute(ctx, LogPayment{PaymentTx: txHash, PaymentDate: time.Now().UTC(), ProposalNames: []string{"Fund Alpha"}})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func setupProposalWithRaffle(t *testing.T, agg *aggregate.Aggregate, countedSeats, maxEarnerSeats int) (string, []string) {
	t.Helper()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	epoch, err := agg.CreateEpoch("Epoch One", start, end)
	require.NoError(t, err)
	require.NoError(t, agg.ActivateEpoch(epoch.ID))

	var names []string
	for i := 0; i < countedSeats+1; i++ {
		name := "Team" + string(rune('A'+i))
		_, err := agg.AddTeam(name, name+" Rep", domain.Supporter(), nil)
		require.NoError(t, err)
		names = append(names, name)
	}

	proposal, err := agg.AddProposal(epoch.ID, "Proposal One", nil, nil, nil, nil, false)
	require.NoError(t, err)

	teams := map[domain.ID]*domain.Team{}
	for _, name := range names {
		id, _ := agg.TeamIDByName(name)
		team, _ := agg.Team(id)
		teams[id] = team
	}

	config := domain.RaffleConfig{
		ProposalID:        proposal.ID,
		EpochID:           epoch.ID,
		TotalCountedSeats: countedSeats,
		MaxEarnerSeats:    maxEarnerSeats,
		BlockRandomness:   "seed-for-command-test",
	}
	r, err := raffle.New(config, teams, time.Now())
	require.NoError(t, err)
	raffle.GenerateScores(r)
	raffle.SelectTeams(r)
	agg.Raffles[r.ID] = r

	return "Proposal One", names
}

func TestExecuteCreateAndProcessVoteApproves(t *testing.T) {
	e, agg := newTestEngine()
	proposalName, _ := setupProposalWithRaffle(t, agg, 2, 1)

	var r *domain.Raffle
	for _, rr := range agg.Raffles {
		r = rr
	}
	require.NotNil(t, r)

	counted := map[string]domain.VoteChoice{}
	for _, id := range r.Result.Counted {
		team, _ := agg.Team(id)
		counted[team.Name] = domain.VoteYes
	}

	openedAt := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	closedAt := openedAt.Add(48 * time.Hour)

	result, err := e.Execute(context.Background(), CreateAndProcessVote{
		ProposalName: proposalName,
		CountedVotes: counted,
		Threshold:    0.5,
		CountedPoints: 5,
		UncountedPoints: 2,
		OpenedAt:     openedAt,
		ClosedAt:     closedAt,
	})
	require.NoError(t, err)
	v, ok := result.(*domain.Vote)
	require.True(t, ok)
	require.True(t, v.Passed())
}

func TestExecuteImportHistoricalVotePreservesOutcome(t *testing.T) {
	e, agg := newTestEngine()
	proposalName, names := setupProposalWithRaffle(t, agg, 2, 1)

	result, err := e.Execute(context.Background(), ImportHistoricalVote{
		ProposalName:       proposalName,
		Passed:             true,
		ParticipatingTeams: names,
		DefaultThreshold:   0.5,
		Now:                time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	v, ok := result.(*domain.Vote)
	require.True(t, ok)
	require.True(t, v.Passed())
	require.True(t, v.IsClosed())

	proposalID, _ := agg.ProposalIDByName(proposalName)
	proposal, _ := agg.Proposal(proposalID)
	require.True(t, proposal.IsApproved())
}

func TestExecuteUpdateEpochDatesAndRemoveTeam(t *testing.T) {
	e, agg := newTestEngine()
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := e.Execute(ctx, CreateEpoch{Name: "Epoch One", Start: start, End: end})
	require.NoError(t, err)

	newEnd := end.Add(7 * 24 * time.Hour)
	_, err = e.Execute(ctx, UpdateEpochDates{EpochName: "Epoch One", Start: start, End: newEnd})
	require.NoError(t, err)

	epochID, _ := agg.EpochIDByName("Epoch One")
	epoch, _ := agg.Epoch(epochID)
	require.True(t, epoch.EndDate.Equal(newEnd))

	_, err = e.Execute(ctx, AddTeam{Name: "Alpha", Representative: "Alice", Status: domain.Supporter()})
	require.NoError(t, err)
	_, err = e.Execute(ctx, RemoveTeam{TeamName: "Alpha"})
	require.NoError(t, err)

	teamID, _ := agg.TeamIDByName("Alpha")
	team, _ := agg.Team(teamID)
	require.False(t, team.IsActive())
}

func TestExecuteImportHistoricalRaffleFetchesRandomnessOnce(t *testing.T) {
	e, agg := newTestEngine()
	_, _ = setupProposalWithRaffle(t, agg, 2, 1) // seeds teams + one proposal, raffle result ignored here

	src := &oracle.Fake{Blocks: []uint64{500}, Randomness: "cafebabe"}
	result, err := e.ImportHistoricalRaffle(context.Background(), ImportHistoricalRaffle{
		ProposalName:      "Proposal One",
		InitiationBlock:   500,
		TargetBlock:       500,
		TotalCountedSeats: 2,
		MaxEarnerSeats:    1,
	}, src)
	require.NoError(t, err)
	require.True(t, result.Config.IsHistorical)
	require.Equal(t, "cafebabe", result.Config.BlockRandomness)
	require.NotNil(t, result.Result)
}

func TestExecuteGenerateReports(t *testing.T) {
	e, agg := newTestEngine()
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := e.Execute(ctx, CreateEpoch{Name: "Epoch One", Start: start, End: end})
	require.NoError(t, err)
	_, err = e.Execute(ctx, ActivateEpoch{EpochName: "Epoch One"})
	require.NoError(t, err)

	result, err := e.Execute(ctx, GenerateUnpaidRequestsReport{EpochName: "Epoch One"})
	require.NoError(t, err)
	report, ok := result.(reports.UnpaidRequestsReport)
	require.True(t, ok)
	require.Empty(t, report.UnpaidRequests)

	result, err = e.Execute(ctx, GenerateAllEpochsReport{})
	require.NoError(t, err)
	all, ok := result.(reports.AllEpochsReport)
	require.True(t, ok)
	require.Len(t, all.Epochs, 1)
}

type unregisteredCommand struct{}

func (unregisteredCommand) commandName() string { return "Unregistered" }

func TestExecuteUnrecognizedCommandFails(t *testing.T) {
	e, _ := newTestEngine()
	_, err := e.Execute(context.Background(), unregisteredCommand{})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}
