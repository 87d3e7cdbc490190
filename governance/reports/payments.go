package reports

import (
	"sort"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

// TeamPayment is one team's computed reward share within a closed epoch.
type TeamPayment struct {
	TeamID     domain.ID
	TeamName   string
	Points     uint32
	Percentage float64
	Amount     float64
}

// EpochPaymentsReport is the per-team reward breakdown for a closed epoch,
// grounded on the same point-weighted distribution CloseEpoch computes.
type EpochPaymentsReport struct {
	EpochID     domain.ID
	EpochName   string
	Token       string
	TotalAmount float64
	TotalPoints uint32
	Payments    []TeamPayment
}

// BuildEpochPaymentsReport reconstructs the reward breakdown for an already
// closed epoch from its stored TeamRewards, so the report reflects exactly
// what CloseEpoch computed rather than recomputing it from points (points
// can keep accruing via new votes after close in principle, but the reward
// split is fixed at close time).
func BuildEpochPaymentsReport(agg *aggregate.Aggregate, epochID domain.ID) (EpochPaymentsReport, error) {
	const op = "reports.BuildEpochPaymentsReport"
	epoch, ok := agg.Epoch(epochID)
	if !ok {
		return EpochPaymentsReport{}, domain.NotFound(op, "epoch %s not found", epochID)
	}
	if epoch.Status != domain.EpochClosed {
		return EpochPaymentsReport{}, domain.PreconditionFailed(op, "epoch %s is not closed", epochID)
	}
	if epoch.Reward == nil {
		return EpochPaymentsReport{}, domain.PreconditionFailed(op, "epoch %s has no reward configured", epochID)
	}

	report := EpochPaymentsReport{
		EpochID:     epoch.ID,
		EpochName:   epoch.Name,
		Token:       epoch.Reward.Token,
		TotalAmount: epoch.Reward.Amount,
		TotalPoints: agg.TotalPointsForEpoch(epochID),
	}

	for teamID, reward := range epoch.TeamRewards {
		if reward.Amount == 0 && reward.Percentage == 0 {
			continue
		}
		team, ok := agg.Team(teamID)
		if !ok {
			continue
		}
		report.Payments = append(report.Payments, TeamPayment{
			TeamID:     teamID,
			TeamName:   team.Name,
			Points:     agg.TeamPointsForEpoch(teamID, epochID),
			Percentage: reward.Percentage,
			Amount:     reward.Amount,
		})
	}

	sort.Slice(report.Payments, func(i, j int) bool { return report.Payments[i].Amount > report.Payments[j].Amount })
	return report, nil
}
