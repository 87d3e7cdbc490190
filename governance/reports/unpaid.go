package reports

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

// UnpaidRequest is one approved, unpaid budget request.
type UnpaidRequest struct {
	ProposalID     domain.ID
	Title          string
	URL            *string
	TeamName       string
	Amounts        map[string]float64
	PaymentAddress *domain.PaymentAddress
	ApprovedDate   *time.Time
	StartDate      *time.Time
	EpochName      string
}

// UnpaidRequestsReport lists every approved proposal whose budget request
// has not yet been paid, optionally scoped to a single epoch.
type UnpaidRequestsReport struct {
	GeneratedAt    time.Time
	UnpaidRequests []UnpaidRequest
}

// BuildUnpaidRequestsReport collects approved, unpaid budget requests. If
// epochID is non-nil, only proposals in that epoch are considered.
func BuildUnpaidRequestsReport(agg *aggregate.Aggregate, epochID *domain.ID, now time.Time) UnpaidRequestsReport {
	var unpaid []UnpaidRequest
	for _, proposal := range agg.Proposals {
		if epochID != nil && proposal.EpochID != *epochID {
			continue
		}
		if !proposal.IsApproved() || proposal.BudgetRequest == nil || proposal.BudgetRequest.IsPaid() {
			continue
		}

		teamName := ""
		var address *domain.PaymentAddress
		if proposal.BudgetRequest.Team != nil {
			if team, ok := agg.Team(*proposal.BudgetRequest.Team); ok {
				teamName = team.Name
				address = team.PaymentAddress
			}
		}
		epochName := ""
		if epoch, ok := agg.Epoch(proposal.EpochID); ok {
			epochName = epoch.Name
		}

		unpaid = append(unpaid, UnpaidRequest{
			ProposalID:     proposal.ID,
			Title:          proposal.Title,
			URL:            proposal.URL,
			TeamName:       teamName,
			Amounts:        proposal.BudgetRequest.RequestAmounts,
			PaymentAddress: address,
			ApprovedDate:   proposal.ResolvedAt,
			StartDate:      proposal.BudgetRequest.StartDate,
			EpochName:      epochName,
		})
	}
	return UnpaidRequestsReport{GeneratedAt: now, UnpaidRequests: unpaid}
}
