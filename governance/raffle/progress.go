package raffle

import (
	"context"
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
	"github.com/yearn/robokitty-sub000/governance/oracle"
)

// ProgressKind discriminates the four ordered events a raffle creation
// stream emits.
type ProgressKind string

const (
	ProgressPreparing           ProgressKind = "preparing"
	ProgressWaitingForBlock     ProgressKind = "waiting_for_block"
	ProgressRandomnessAcquired  ProgressKind = "randomness_acquired"
	ProgressCompleted           ProgressKind = "completed"
)

// Progress is one event on a raffle creation stream.
type Progress struct {
	Kind           ProgressKind
	RaffleID       domain.ID
	CurrentBlock   uint64
	TargetBlock    uint64
	Randomness     string
	Result         *domain.Raffle // set only on ProgressCompleted
	Err            error          // set only if the stream terminated early
}

// Oracle is the narrow capability the streaming workflow needs from a
// block-randomness source. It is an alias of oracle.Oracle so callers can
// pass either name interchangeably; the canonical definition lives in
// governance/oracle alongside its chain-backed implementation.
type Oracle = oracle.Oracle

// PollInterval is how often the stream re-checks the current block while
// waiting for the target block. The original workflow hardcodes one
// second; exposed here as a var so tests can shrink it.
var PollInterval = time.Second

// CreateWithProgress runs the raffle creation workflow, emitting ordered
// Preparing -> WaitingForBlock(*) -> RandomnessAcquired -> Completed events
// on the returned channel. The channel is closed after the terminal event
// (Completed, or an event carrying a non-nil Err). Cancelling ctx stops the
// poll loop and closes the channel without emitting Completed; the caller
// is left with whatever raffle state existed at cancellation, which is a
// valid inspectable intermediate, never a torn write to the aggregate.
func CreateWithProgress(ctx context.Context, config domain.RaffleConfig, teams map[domain.ID]*domain.Team, blockOffset uint64, oracle Oracle, now func() time.Time) <-chan Progress {
	events := make(chan Progress)

	go func() {
		defer close(events)

		raffle, err := New(config, teams, now())
		if err != nil {
			emit(ctx, events, Progress{Kind: ProgressPreparing, Err: err})
			return
		}

		if !emit(ctx, events, Progress{Kind: ProgressPreparing, RaffleID: raffle.ID}) {
			return
		}

		currentBlock, err := oracle.CurrentBlock(ctx)
		if err != nil {
			emit(ctx, events, Progress{Kind: ProgressWaitingForBlock, RaffleID: raffle.ID, Err: err})
			return
		}
		targetBlock := currentBlock + blockOffset
		raffle.Config.InitiationBlock = currentBlock
		raffle.Config.RandomnessBlock = targetBlock

		ticker := time.NewTicker(PollInterval)
		defer ticker.Stop()

		for currentBlock < targetBlock {
			if !emit(ctx, events, Progress{
				Kind:         ProgressWaitingForBlock,
				RaffleID:     raffle.ID,
				CurrentBlock: currentBlock,
				TargetBlock:  targetBlock,
			}) {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			currentBlock, err = oracle.CurrentBlock(ctx)
			if err != nil {
				emit(ctx, events, Progress{Kind: ProgressWaitingForBlock, RaffleID: raffle.ID, Err: err})
				return
			}
		}

		randomness, err := oracle.RandomnessAt(ctx, targetBlock)
		if err != nil {
			emit(ctx, events, Progress{Kind: ProgressRandomnessAcquired, RaffleID: raffle.ID, Err: err})
			return
		}
		raffle.Config.BlockRandomness = randomness

		if !emit(ctx, events, Progress{
			Kind:         ProgressRandomnessAcquired,
			RaffleID:     raffle.ID,
			CurrentBlock: currentBlock,
			TargetBlock:  targetBlock,
			Randomness:   randomness,
		}) {
			return
		}

		GenerateScores(raffle)
		SelectTeams(raffle)

		emit(ctx, events, Progress{Kind: ProgressCompleted, RaffleID: raffle.ID, Result: raffle})
	}()

	return events
}

// emit sends p on events unless ctx is cancelled first. Returns false if
// the send was abandoned due to cancellation.
func emit(ctx context.Context, events chan<- Progress, p Progress) bool {
	select {
	case events <- p:
		return true
	case <-ctx.Done():
		return false
	}
}
