package command

import (
	"context"

	"github.com/yearn/robokitty-sub000/governance/domain"
	"github.com/yearn/robokitty-sub000/governance/oracle"
	"github.com/yearn/robokitty-sub000/governance/raffle"
)

// CreateRaffleLive is the parameters for running a raffle against a real
// block-randomness oracle rather than a pre-resolved value. Unlike every
// other Command it cannot return through Execute, since the result only
// exists after a chain-dependent wait; ExecuteStreaming reports progress
// as it happens instead.
type CreateRaffleLive struct {
	ProposalName      string
	TotalCountedSeats int
	MaxEarnerSeats    int
	ExcludedTeams     []string
	BlockOffset       uint64
}

// ExecuteStreaming runs a live raffle creation against src, emitting the
// same ordered progress events as raffle.CreateWithProgress. On a
// ProgressCompleted event the created raffle is stored on the aggregate
// before the channel closes; on any earlier failure or cancellation
// nothing is written back.
func (e *Engine) ExecuteStreaming(ctx context.Context, c CreateRaffleLive, src oracle.Oracle) <-chan raffle.Progress {
	proposalID, ok := e.agg.ProposalIDByName(c.ProposalName)
	if !ok {
		events := make(chan raffle.Progress, 1)
		events <- raffle.Progress{Kind: raffle.ProgressPreparing, Err: domain.NotFound("Engine.ExecuteStreaming", "proposal %q not found", c.ProposalName)}
		close(events)
		return events
	}
	proposal, _ := e.agg.Proposal(proposalID)

	excluded := make([]domain.ID, 0, len(c.ExcludedTeams))
	for _, name := range c.ExcludedTeams {
		id, ok := e.agg.TeamIDByName(name)
		if !ok {
			events := make(chan raffle.Progress, 1)
			events <- raffle.Progress{Kind: raffle.ProgressPreparing, Err: domain.NotFound("Engine.ExecuteStreaming", "team %q not found", name)}
			close(events)
			return events
		}
		excluded = append(excluded, id)
	}

	config := domain.RaffleConfig{
		ProposalID:        proposalID,
		EpochID:           proposal.EpochID,
		TotalCountedSeats: c.TotalCountedSeats,
		MaxEarnerSeats:    c.MaxEarnerSeats,
		ExcludedTeams:     excluded,
	}

	upstream := raffle.CreateWithProgress(ctx, config, e.agg.Teams, c.BlockOffset, src, e.nowFn)
	out := make(chan raffle.Progress)

	go func() {
		defer close(out)
		for p := range upstream {
			switch p.Kind {
			case raffle.ProgressWaitingForBlock:
				e.metrics.ObserveRaffleTick("waiting_for_block")
			case raffle.ProgressCompleted:
				e.agg.Raffles[p.Result.ID] = p.Result
				e.metrics.ObserveRaffleTick("completed")
				e.metrics.SetCurrentEpochSeats(c.TotalCountedSeats)
			}
			if p.Err != nil {
				e.log.Warn("raffle stream failed", "proposal", c.ProposalName, "kind", p.Kind, "error", p.Err)
			} else {
				e.log.Info("raffle progress", "proposal", c.ProposalName, "kind", p.Kind)
			}
			if !emit(ctx, out, p) {
				return
			}
		}
	}()

	return out
}

// ImportHistoricalRaffle backfills a raffle against a block whose
// randomness has already landed: it fetches randomness once, synchronously,
// and runs the normal scoring pipeline, rather than polling for a future
// block the way ExecuteStreaming does. Routed outside Execute because it
// needs an oracle.Oracle.
func (e *Engine) ImportHistoricalRaffle(ctx context.Context, c ImportHistoricalRaffle, src oracle.Oracle) (*domain.Raffle, error) {
	const op = "Engine.ImportHistoricalRaffle"

	proposalID, ok := e.agg.ProposalIDByName(c.ProposalName)
	if !ok {
		return nil, domain.NotFound(op, "proposal %q not found", c.ProposalName)
	}
	proposal, _ := e.agg.Proposal(proposalID)

	excluded := make([]domain.ID, 0, len(c.ExcludedTeams))
	for _, name := range c.ExcludedTeams {
		id, ok := e.agg.TeamIDByName(name)
		if !ok {
			return nil, domain.NotFound(op, "team %q not found", name)
		}
		excluded = append(excluded, id)
	}

	randomness, err := src.RandomnessAt(ctx, c.TargetBlock)
	if err != nil {
		return nil, domain.OracleFailure(op, "reading randomness at block %d: %v", c.TargetBlock, err)
	}

	config := domain.RaffleConfig{
		ProposalID:        proposalID,
		EpochID:           proposal.EpochID,
		InitiationBlock:   c.InitiationBlock,
		RandomnessBlock:   c.TargetBlock,
		BlockRandomness:   randomness,
		TotalCountedSeats: c.TotalCountedSeats,
		MaxEarnerSeats:    c.MaxEarnerSeats,
		ExcludedTeams:     excluded,
		IsHistorical:      true,
	}

	r, err := raffle.New(config, e.agg.Teams, e.nowFn())
	if err != nil {
		return nil, err
	}
	raffle.GenerateScores(r)
	raffle.SelectTeams(r)
	e.agg.Raffles[r.ID] = r
	e.metrics.ObserveRaffleTick("historical")
	return r, nil
}

func emit(ctx context.Context, events chan<- raffle.Progress, p raffle.Progress) bool {
	select {
	case events <- p:
		return true
	case <-ctx.Done():
		return false
	}
}
