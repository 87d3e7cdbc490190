package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTeamRejectsEmptyName(t *testing.T) {
	_, err := NewTeam("", "Alice", Supporter(), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewTeamRejectsEmptyRepresentative(t *testing.T) {
	_, err := NewTeam("Rocketeers", "", Supporter(), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewTeamRejectsOversizedEarnerRevenue(t *testing.T) {
	_, err := NewTeam("Rocketeers", "Alice", Earner([]uint64{1, 2, 3, 4}), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTicketCountSupporterIsAlwaysOne(t *testing.T) {
	team, err := NewTeam("Rocketeers", "Alice", Supporter(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, team.TicketCount())
}

func TestTicketCountInactiveIsAlwaysZero(t *testing.T) {
	team, err := NewTeam("Rocketeers", "Alice", Inactive(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, team.TicketCount())
}

func TestTicketCountEarnerZeroRevenueFloorsToOne(t *testing.T) {
	team, err := NewTeam("Rocketeers", "Alice", Earner([]uint64{0, 0, 0}), nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, team.TicketCount())
}

func TestTicketCountEarnerScalesWithRevenue(t *testing.T) {
	team, err := NewTeam("Rocketeers", "Alice", Earner([]uint64{9000}), nil)
	require.NoError(t, err)
	// sqrt(9000/1000) = sqrt(9) = 3
	require.EqualValues(t, 3, team.TicketCount())
}

func TestTicketCountEarnerUsesMeanOfTrailingRevenue(t *testing.T) {
	team, err := NewTeam("Rocketeers", "Alice", Earner([]uint64{0, 0, 27000}), nil)
	require.NoError(t, err)
	// mean = 9000, sqrt(9000/1000) = 3
	require.EqualValues(t, 3, team.TicketCount())
}

func TestSetStatusValidatesEarnerRevenue(t *testing.T) {
	team, err := NewTeam("Rocketeers", "Alice", Supporter(), nil)
	require.NoError(t, err)

	err = team.SetStatus(Earner(nil))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, team.SetStatus(Earner([]uint64{5000})))
	require.True(t, team.IsEarner())
}

func TestTeamIsActiveReflectsStatus(t *testing.T) {
	team, err := NewTeam("Rocketeers", "Alice", Supporter(), nil)
	require.NoError(t, err)
	require.True(t, team.IsActive())

	require.NoError(t, team.SetStatus(Inactive()))
	require.False(t, team.IsActive())
}

func TestTeamCloneIsIndependent(t *testing.T) {
	addr, err := ParsePaymentAddress("0x00000000000000000000000000000000000000aa")
	require.NoError(t, err)
	team, err := NewTeam("Rocketeers", "Alice", Earner([]uint64{1000}), &addr)
	require.NoError(t, err)

	clone := team.Clone()
	clone.Status.TrailingMonthlyRevenue[0] = 999999
	clone.PaymentAddress.String()
	require.NotEqual(t, clone.Status.TrailingMonthlyRevenue[0], team.Status.TrailingMonthlyRevenue[0])
}
