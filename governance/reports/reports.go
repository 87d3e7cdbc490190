// Package reports computes aggregate-wide summaries — team performance,
// epoch financials, unpaid requests, payment breakdowns — as plain Go
// structs. Rendering them to markdown or any other presentation format is
// left to the caller.
package reports

import (
	"sort"
	"time"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

// EpochStats summarizes one epoch's financial, approval, and voting
// activity.
type EpochStats struct {
	EpochID               domain.ID
	Name                  string
	Status                domain.EpochStatus
	StartDate             time.Time
	EndDate               time.Time
	AllocatedBudget       map[string]float64
	RequestedBudget       map[string]float64
	PaidBudget            map[string]float64
	NumProposals          int
	NumResolved           int
	NumApproved           int
	ApprovalRate          *float64
	AvgResolutionTimeDays *float64
	AvgYesVotesPassed     *float64
	AvgNoVotesRejected    *float64
}

// OverallStats rolls EpochStats up across every epoch selected for a
// report.
type OverallStats struct {
	TotalEpochsIncluded   int
	NumActiveOrPlanned    int
	NumClosed             int
	FirstEpochStartDate   *time.Time
	LatestEpochEndDate    *time.Time
	TotalAllocatedBudget  map[string]float64
	TotalRequestedBudget  map[string]float64
	TotalPaidBudget       map[string]float64
	TotalProposals        int
	TotalResolvedProposals int
	TotalApprovedProposals int
	TotalPaidProposals     int
	OverallApprovalRate    *float64
	TotalActiveTeams       int
}

// EpochPoints is one epoch's point contribution within a team's
// performance summary.
type EpochPoints struct {
	EpochID domain.ID
	Name    string
	Points  uint32
}

// TeamPerformanceSummary rolls up one team's proposal and points activity
// across the selected epochs.
type TeamPerformanceSummary struct {
	TeamID                  domain.ID
	TeamName                string
	CurrentStatus           domain.TeamStatusKind
	TotalProposalsSubmitted int
	TotalProposalsApproved  int
	TotalBudgetPaid         map[string]float64
	TotalPointsEarned       uint32
	PointsByEpoch           []EpochPoints
}

// AllEpochsReport bundles the three summaries that together describe the
// whole history of the collective, the combination the original system's
// end-of-run report printed as one document.
type AllEpochsReport struct {
	Epochs   []EpochStats
	Overall  OverallStats
	Teams    []TeamPerformanceSummary
}

// BuildAllEpochsReport runs the three summary builders over every epoch in
// agg, closed or not.
func BuildAllEpochsReport(agg *aggregate.Aggregate) AllEpochsReport {
	selected := SelectEpochs(agg, false)
	epochStats := BuildEpochStats(agg, selected)
	return AllEpochsReport{
		Epochs:  epochStats,
		Overall: BuildOverallStats(agg, selected, epochStats),
		Teams:   BuildTeamPerformanceSummaries(agg, selected),
	}
}

// SelectEpochs returns every epoch in agg, optionally restricted to closed
// ones, sorted by start date.
func SelectEpochs(agg *aggregate.Aggregate, onlyClosed bool) []*domain.Epoch {
	var selected []*domain.Epoch
	for _, epoch := range agg.Epochs {
		if onlyClosed && epoch.Status != domain.EpochClosed {
			continue
		}
		selected = append(selected, epoch)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].StartDate.Before(selected[j].StartDate) })
	return selected
}

func average(sum float64, count int) *float64 {
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

func daysBetween(start, end *time.Time) (int, bool) {
	if start == nil || end == nil || end.Before(*start) {
		return 0, false
	}
	return int(end.Sub(*start).Hours() / 24), true
}

func containsID(ids []domain.ID, target domain.ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

// BuildEpochStats computes one EpochStats per selected epoch.
func BuildEpochStats(agg *aggregate.Aggregate, selected []*domain.Epoch) []EpochStats {
	out := make([]EpochStats, 0, len(selected))
	for _, epoch := range selected {
		stats := EpochStats{
			EpochID:         epoch.ID,
			Name:            epoch.Name,
			Status:          epoch.Status,
			StartDate:       epoch.StartDate,
			EndDate:         epoch.EndDate,
			AllocatedBudget: map[string]float64{},
			RequestedBudget: map[string]float64{},
			PaidBudget:      map[string]float64{},
		}
		if epoch.Reward != nil {
			stats.AllocatedBudget[epoch.Reward.Token] = epoch.Reward.Amount
		}

		var resolutionSum float64
		var resolutionCount int
		var yesSum float64
		var yesCount int
		var noSum float64
		var noCount int

		proposals := agg.ProposalsForEpoch(epoch.ID)
		stats.NumProposals = len(proposals)

		for _, proposal := range proposals {
			resolved := proposal.Resolution != nil
			if resolved {
				stats.NumResolved++
			}
			if proposal.IsApproved() {
				stats.NumApproved++
				if proposal.BudgetRequest != nil {
					for token, amount := range proposal.BudgetRequest.RequestAmounts {
						stats.RequestedBudget[token] += amount
					}
					if proposal.BudgetRequest.IsPaid() {
						for token, amount := range proposal.BudgetRequest.RequestAmounts {
							stats.PaidBudget[token] += amount
						}
					}
				}
			}

			startDate := proposal.PublishedAt
			if startDate == nil {
				startDate = proposal.AnnouncedAt
			}
			if resolved {
				if days, ok := daysBetween(startDate, proposal.ResolvedAt); ok {
					resolutionSum += float64(days)
					resolutionCount++
				}
			}

			if vote, ok := agg.VoteForProposal(proposal.ID); ok && vote.IsFormal() && vote.Result != nil {
				switch {
				case proposal.IsApproved():
					yesSum += float64(vote.Result.Counted.Yes)
					yesCount++
				case resolved && proposal.Resolution != nil && *proposal.Resolution == domain.ResolutionRejected:
					noSum += float64(vote.Result.Counted.No)
					noCount++
				}
			}
		}

		stats.ApprovalRate = average(float64(stats.NumApproved)*100, stats.NumResolved)
		stats.AvgResolutionTimeDays = average(resolutionSum, resolutionCount)
		stats.AvgYesVotesPassed = average(yesSum, yesCount)
		stats.AvgNoVotesRejected = average(noSum, noCount)

		out = append(out, stats)
	}
	return out
}

// BuildOverallStats rolls the per-epoch stats up into a single summary.
func BuildOverallStats(agg *aggregate.Aggregate, selected []*domain.Epoch, epochStats []EpochStats) OverallStats {
	stats := OverallStats{
		TotalEpochsIncluded:  len(selected),
		TotalAllocatedBudget: map[string]float64{},
		TotalRequestedBudget: map[string]float64{},
		TotalPaidBudget:      map[string]float64{},
	}

	for _, epoch := range selected {
		if epoch.Status == domain.EpochClosed {
			stats.NumClosed++
		} else {
			stats.NumActiveOrPlanned++
		}
		if stats.FirstEpochStartDate == nil || epoch.StartDate.Before(*stats.FirstEpochStartDate) {
			start := epoch.StartDate
			stats.FirstEpochStartDate = &start
		}
		if stats.LatestEpochEndDate == nil || epoch.EndDate.After(*stats.LatestEpochEndDate) {
			end := epoch.EndDate
			stats.LatestEpochEndDate = &end
		}
	}

	for _, es := range epochStats {
		for token, amount := range es.AllocatedBudget {
			stats.TotalAllocatedBudget[token] += amount
		}
		for token, amount := range es.RequestedBudget {
			stats.TotalRequestedBudget[token] += amount
		}
		for token, amount := range es.PaidBudget {
			stats.TotalPaidBudget[token] += amount
		}
		stats.TotalProposals += es.NumProposals
		stats.TotalResolvedProposals += es.NumResolved
		stats.TotalApprovedProposals += es.NumApproved
	}

	for _, epoch := range selected {
		for _, proposal := range agg.ProposalsForEpoch(epoch.ID) {
			if proposal.IsApproved() && proposal.BudgetRequest != nil && proposal.BudgetRequest.IsPaid() {
				stats.TotalPaidProposals++
			}
		}
	}

	stats.OverallApprovalRate = average(float64(stats.TotalApprovedProposals)*100, stats.TotalResolvedProposals)

	for _, team := range agg.Teams {
		if team.IsActive() {
			stats.TotalActiveTeams++
		}
	}

	return stats
}

// BuildTeamPerformanceSummaries computes one summary per team, restricted
// to activity within the selected epochs.
func BuildTeamPerformanceSummaries(agg *aggregate.Aggregate, selected []*domain.Epoch) []TeamPerformanceSummary {
	epochSet := make(map[domain.ID]bool, len(selected))
	for _, epoch := range selected {
		epochSet[epoch.ID] = true
	}

	out := make([]TeamPerformanceSummary, 0, len(agg.Teams))
	for teamID, team := range agg.Teams {
		summary := TeamPerformanceSummary{
			TeamID:          teamID,
			TeamName:        team.Name,
			CurrentStatus:   team.Status.Kind,
			TotalBudgetPaid: map[string]float64{},
		}

		var totalPoints uint32
		summary.PointsByEpoch = make([]EpochPoints, 0, len(selected))
		for _, epoch := range selected {
			points := agg.TeamPointsForEpoch(teamID, epoch.ID)
			totalPoints += points
			summary.PointsByEpoch = append(summary.PointsByEpoch, EpochPoints{EpochID: epoch.ID, Name: epoch.Name, Points: points})
		}
		summary.TotalPointsEarned = totalPoints

		for _, proposal := range agg.Proposals {
			if !epochSet[proposal.EpochID] || proposal.BudgetRequest == nil || proposal.BudgetRequest.Team == nil {
				continue
			}
			if *proposal.BudgetRequest.Team != teamID {
				continue
			}
			summary.TotalProposalsSubmitted++
			if proposal.IsApproved() {
				summary.TotalProposalsApproved++
				if proposal.BudgetRequest.IsPaid() {
					for token, amount := range proposal.BudgetRequest.RequestAmounts {
						summary.TotalBudgetPaid[token] += amount
					}
				}
			}
		}

		out = append(out, summary)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TeamName < out[j].TeamName })
	return out
}
