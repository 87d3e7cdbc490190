package reports

import (
	"sort"
	"time"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

// ActionableProposal is one still-open or reopened proposal within an
// epoch-state report, carrying enough detail to decide whether it needs
// attention.
type ActionableProposal struct {
	ProposalID       domain.ID
	Title            string
	AnnouncedAt      *time.Time
	PublishedAt      *time.Time
	RequestedAmounts map[string]float64
	DaysOpen         int
}

// EpochStateReport is a point-in-time overview of a single epoch: its
// proposals bucketed by resolution, and the ones still awaiting one.
type EpochStateReport struct {
	EpochID             domain.ID
	EpochName           string
	Status              domain.EpochStatus
	StartDate           time.Time
	EndDate             time.Time
	GeneratedAt         time.Time
	TotalProposals      int
	CountsByResolution  map[string]int
	ActionableProposals []ActionableProposal
}

const unresolvedBucket = "unresolved"

// BuildEpochStateReport summarizes epochID as of now: how its proposals
// have resolved so far, and how long each still-actionable one has been
// open.
func BuildEpochStateReport(agg *aggregate.Aggregate, epochID domain.ID, now time.Time) (EpochStateReport, error) {
	const op = "reports.BuildEpochStateReport"
	epoch, ok := agg.Epoch(epochID)
	if !ok {
		return EpochStateReport{}, domain.NotFound(op, "epoch %s not found", epochID)
	}

	report := EpochStateReport{
		EpochID:            epoch.ID,
		EpochName:          epoch.Name,
		Status:             epoch.Status,
		StartDate:          epoch.StartDate,
		EndDate:            epoch.EndDate,
		GeneratedAt:        now,
		CountsByResolution: map[string]int{},
	}

	proposals := agg.ProposalsForEpoch(epochID)
	report.TotalProposals = len(proposals)

	for _, proposal := range proposals {
		bucket := unresolvedBucket
		if proposal.Resolution != nil {
			bucket = string(*proposal.Resolution)
		}
		report.CountsByResolution[bucket]++

		if !proposal.IsActionable() {
			continue
		}
		var amounts map[string]float64
		if proposal.BudgetRequest != nil {
			amounts = proposal.BudgetRequest.RequestAmounts
		}
		report.ActionableProposals = append(report.ActionableProposals, ActionableProposal{
			ProposalID:       proposal.ID,
			Title:            proposal.Title,
			AnnouncedAt:      proposal.AnnouncedAt,
			PublishedAt:      proposal.PublishedAt,
			RequestedAmounts: amounts,
			DaysOpen:         daysOpenSince(proposal.AnnouncedAt, now),
		})
	}

	sort.Slice(report.ActionableProposals, func(i, j int) bool {
		return report.ActionableProposals[i].DaysOpen > report.ActionableProposals[j].DaysOpen
	})

	return report, nil
}

// daysOpenSince counts whole days between announcedAt and now, falling back
// to zero when the proposal was never announced rather than treating it as
// infinitely old.
func daysOpenSince(announcedAt *time.Time, now time.Time) int {
	if announcedAt == nil {
		return 0
	}
	days := int(now.Sub(*announcedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
