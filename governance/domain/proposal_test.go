package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProposalLifecycleApprove(t *testing.T) {
	p, err := NewProposal(NewID(), "Fund the thing", nil, nil, nil, nil, false)
	require.NoError(t, err)
	require.True(t, p.IsOpen())
	require.True(t, p.IsActionable())

	require.NoError(t, p.Approve())
	require.True(t, p.IsClosed())
	require.True(t, p.IsApproved())
	require.False(t, p.IsActionable())
}

func TestProposalApproveRejectsNonActionable(t *testing.T) {
	p, err := NewProposal(NewID(), "Fund the thing", nil, nil, nil, nil, false)
	require.NoError(t, err)
	require.NoError(t, p.Reject())
	require.Error(t, p.Approve())
}

func TestProposalReopenClearsResolution(t *testing.T) {
	p, err := NewProposal(NewID(), "Fund the thing", nil, nil, nil, nil, false)
	require.NoError(t, err)
	require.NoError(t, p.Reject())
	require.NoError(t, p.Reopen())
	require.True(t, p.IsActionable())
	require.Nil(t, p.Resolution)
}

func TestProposalSetDatesValidatesOrdering(t *testing.T) {
	p, err := NewProposal(NewID(), "Fund the thing", nil, nil, nil, nil, false)
	require.NoError(t, err)

	announced := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	published := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	err = p.SetDates(&announced, &published, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestProposalMarkPaidRequiresApprovedBudgetRequest(t *testing.T) {
	p, err := NewProposal(NewID(), "Fund the thing", nil, nil, nil, nil, false)
	require.NoError(t, err)
	require.Error(t, p.MarkPaid())

	amount := map[string]float64{"ETH": 100}
	br, err := NewBudgetRequest(nil, amount, nil, nil)
	require.NoError(t, err)
	p.BudgetRequest = br
	require.Error(t, p.MarkPaid(), "not approved yet")

	require.NoError(t, p.Approve())
	require.NoError(t, p.MarkPaid())
	require.True(t, p.BudgetRequest.IsPaid())

	require.ErrorIs(t, p.MarkPaid(), ErrAlreadyPaid)
}

func TestBudgetRequestRejectsEmptyOrNonPositiveAmounts(t *testing.T) {
	_, err := NewBudgetRequest(nil, nil, nil, nil)
	require.Error(t, err)

	_, err = NewBudgetRequest(nil, map[string]float64{"ETH": -1}, nil, nil)
	require.Error(t, err)
}

func TestBudgetRequestTotalRequestAmount(t *testing.T) {
	br, err := NewBudgetRequest(nil, map[string]float64{"ETH": 100, "USDC": 50}, nil, nil)
	require.NoError(t, err)
	require.InDelta(t, 150, br.TotalRequestAmount(), 0.0001)
}
