package aggregate

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// CreateEpoch creates a Planned epoch, rejecting a name collision or a date
// range that overlaps any existing epoch.
func (a *Aggregate) CreateEpoch(name string, start, end time.Time) (*domain.Epoch, error) {
	const op = "Aggregate.CreateEpoch"
	if _, exists := a.EpochIDByName(name); exists {
		return nil, domain.InvalidArgument(op, "an epoch named %q already exists", name)
	}
	epoch, err := domain.NewEpoch(name, start, end)
	if err != nil {
		return nil, err
	}
	for _, existing := range a.Epochs {
		if epoch.Overlaps(existing) {
			return nil, domain.InvalidArgument(op, "epoch dates overlap existing epoch %q", existing.Name)
		}
	}
	a.Epochs[epoch.ID] = epoch
	a.record(op)
	return epoch, nil
}

// ActivateEpoch transitions the named epoch to Active and makes it current.
// Only one epoch may be current at a time.
func (a *Aggregate) ActivateEpoch(id domain.ID) error {
	const op = "Aggregate.ActivateEpoch"
	epoch, ok := a.Epochs[id]
	if !ok {
		return domain.NotFound(op, "epoch %s not found", id)
	}
	if a.CurrentEpoch != nil {
		return domain.PreconditionFailed(op, "epoch %s is already active", *a.CurrentEpoch)
	}
	if err := epoch.Activate(); err != nil {
		return err
	}
	current := epoch.ID
	a.CurrentEpoch = &current
	a.record(op)
	return nil
}

// SetEpochReward declares the total pot for an epoch.
func (a *Aggregate) SetEpochReward(id domain.ID, token string, amount float64) error {
	const op = "Aggregate.SetEpochReward"
	epoch, ok := a.Epochs[id]
	if !ok {
		return domain.NotFound(op, "epoch %s not found", id)
	}
	epoch.SetReward(token, amount)
	a.record(op)
	return nil
}

// UpdateEpochDates replaces an epoch's date range, re-checking the
// non-overlap invariant against every other epoch.
func (a *Aggregate) UpdateEpochDates(id domain.ID, start, end time.Time) error {
	const op = "Aggregate.UpdateEpochDates"
	epoch, ok := a.Epochs[id]
	if !ok {
		return domain.NotFound(op, "epoch %s not found", id)
	}
	if !start.Before(end) {
		return domain.InvalidArgument(op, "start date must be before end date")
	}
	candidate := &domain.Epoch{ID: epoch.ID, StartDate: start, EndDate: end}
	for otherID, existing := range a.Epochs {
		if otherID == id {
			continue
		}
		if candidate.Overlaps(existing) {
			return domain.InvalidArgument(op, "epoch dates overlap existing epoch %q", existing.Name)
		}
	}
	epoch.StartDate = start
	epoch.EndDate = end
	a.record(op)
	return nil
}

// CloseEpoch closes the given epoch, computing and storing each team's
// reward share from the epoch's accrued points. Closing requires every
// proposal associated with the epoch to be non-actionable (Closed) first.
func (a *Aggregate) CloseEpoch(id domain.ID) error {
	const op = "Aggregate.CloseEpoch"
	epoch, ok := a.Epochs[id]
	if !ok {
		return domain.NotFound(op, "epoch %s not found", id)
	}

	for _, p := range a.ProposalsForEpoch(id) {
		if p.IsActionable() {
			return domain.PreconditionFailed(op, "epoch %s has actionable proposals remaining", id)
		}
	}

	if epoch.Reward != nil {
		totalPoints := a.TotalPointsForEpoch(id)
		if totalPoints == 0 {
			return domain.PreconditionFailed(op, "no points earned in epoch %s", id)
		}
		rewards := make(map[domain.ID]domain.TeamReward, len(a.Teams))
		for teamID := range a.Teams {
			points := a.TeamPointsForEpoch(teamID, id)
			percentage := float64(points) / float64(totalPoints) * 100
			amount := epoch.Reward.Amount * (percentage / 100)
			rewards[teamID] = domain.TeamReward{Percentage: percentage, Amount: amount}
		}
		epoch.TeamRewards = rewards
	}

	if err := epoch.Close(); err != nil {
		return err
	}

	if a.CurrentEpoch != nil && *a.CurrentEpoch == id {
		a.CurrentEpoch = nil
	}
	a.record(op)
	return nil
}

// TeamPointsForEpoch sums the counted/uncounted points a team earned across
// every closed formal vote attached to the epoch's proposals. It is a pure
// function over the aggregate: points are never stored, only derived.
func (a *Aggregate) TeamPointsForEpoch(teamID, epochID domain.ID) uint32 {
	epoch, ok := a.Epochs[epochID]
	if !ok {
		return 0
	}
	var total uint32
	for _, proposalID := range epoch.AssociatedProposals {
		vote, ok := a.VoteForProposal(proposalID)
		if !ok || !vote.IsFormal() || vote.Result == nil {
			continue
		}
		switch {
		case contains(vote.Participation.Counted, teamID):
			total += vote.Type.CountedPoints
		case contains(vote.Participation.Uncounted, teamID):
			total += vote.Type.UncountedPoints
		}
	}
	return total
}

// TotalPointsForEpoch sums TeamPointsForEpoch across every known team.
func (a *Aggregate) TotalPointsForEpoch(epochID domain.ID) uint32 {
	var total uint32
	for teamID := range a.Teams {
		total += a.TeamPointsForEpoch(teamID, epochID)
	}
	return total
}

func contains(ids []domain.ID, target domain.ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
