package raffle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

type fakeOracle struct {
	blocks     []uint64
	call       int
	randomness string
}

func (f *fakeOracle) CurrentBlock(ctx context.Context) (uint64, error) {
	block := f.blocks[f.call]
	if f.call < len(f.blocks)-1 {
		f.call++
	}
	return block, nil
}

func (f *fakeOracle) RandomnessAt(ctx context.Context, block uint64) (string, error) {
	return f.randomness, nil
}

func TestCreateWithProgressEmitsOrderedEvents(t *testing.T) {
	origInterval := PollInterval
	PollInterval = time.Millisecond
	defer func() { PollInterval = origInterval }()

	team := mustTeam(t, "A", domain.Supporter())
	teams := map[domain.ID]*domain.Team{team.ID: team}
	config := domain.RaffleConfig{TotalCountedSeats: 1, MaxEarnerSeats: 1}

	oracle := &fakeOracle{blocks: []uint64{100, 101, 102}, randomness: "deadbeef"}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events := CreateWithProgress(ctx, config, teams, 2, oracle, func() time.Time { return time.Now() })

	var kinds []ProgressKind
	var completed *domain.Raffle
	for event := range events {
		require.NoError(t, event.Err)
		kinds = append(kinds, event.Kind)
		if event.Kind == ProgressCompleted {
			completed = event.Result
		}
	}

	require.Equal(t, ProgressKind(ProgressPreparing), kinds[0])
	require.Equal(t, ProgressKind(ProgressCompleted), kinds[len(kinds)-1])
	require.NotNil(t, completed)
	require.NotNil(t, completed.Result)

	var sawRandomness bool
	for _, k := range kinds {
		if k == ProgressRandomnessAcquired {
			sawRandomness = true
		}
	}
	require.True(t, sawRandomness)
}

func TestCreateWithProgressStopsOnCancellation(t *testing.T) {
	origInterval := PollInterval
	PollInterval = time.Millisecond
	defer func() { PollInterval = origInterval }()

	team := mustTeam(t, "A", domain.Supporter())
	teams := map[domain.ID]*domain.Team{team.ID: team}
	config := domain.RaffleConfig{TotalCountedSeats: 1, MaxEarnerSeats: 1}

	oracle := &fakeOracle{blocks: []uint64{100}, randomness: "deadbeef"}

	ctx, cancel := context.WithCancel(context.Background())
	events := CreateWithProgress(ctx, config, teams, 100, oracle, func() time.Time { return time.Now() })

	<-events // Preparing
	cancel()

	var sawCompleted bool
	for event := range events {
		if event.Kind == ProgressCompleted {
			sawCompleted = true
		}
	}
	require.False(t, sawCompleted)
}
