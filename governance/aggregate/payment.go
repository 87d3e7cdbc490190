package aggregate

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// PaymentRecord is one line item of a logged payment batch.
type PaymentRecord struct {
	ProposalID domain.ID
	Title      string
	TeamName   string
	TxHash     domain.TxHash
	PaidAt     time.Time
}

// LogPayment marks every named proposal's budget request as Paid in a
// single all-or-nothing batch: every proposal is validated (exists,
// Approved, carries a budget request, currently Unpaid) before any of them
// is mutated, so a single bad name in the list leaves the whole ledger
// untouched.
func (a *Aggregate) LogPayment(txHash domain.TxHash, paymentDate time.Time, proposalTitles []string) ([]PaymentRecord, error) {
	const op = "Aggregate.LogPayment"
	if paymentDate.After(time.Now().UTC()) {
		return nil, domain.InvalidArgument(op, "payment date cannot be in the future")
	}

	proposals := make([]*domain.Proposal, 0, len(proposalTitles))
	for _, title := range proposalTitles {
		id, ok := a.ProposalIDByName(title)
		if !ok {
			return nil, domain.NotFound(op, "proposal %q not found", title)
		}
		proposal := a.Proposals[id]
		if !proposal.IsApproved() {
			return nil, domain.PreconditionFailed(op, "proposal %q is not approved", title)
		}
		if proposal.BudgetRequest == nil {
			return nil, domain.PreconditionFailed(op, "proposal %q has no budget request", title)
		}
		if proposal.BudgetRequest.IsPaid() {
			return nil, domain.AlreadyPaid(op, "proposal %q is already paid", title)
		}
		proposals = append(proposals, proposal)
	}

	records := make([]PaymentRecord, 0, len(proposals))
	for i, proposal := range proposals {
		proposal.BudgetRequest.MarkPaid()
		teamName := ""
		if proposal.BudgetRequest.Team != nil {
			if team, ok := a.Teams[*proposal.BudgetRequest.Team]; ok {
				teamName = team.Name
			}
		}
		records = append(records, PaymentRecord{
			ProposalID: proposal.ID,
			Title:      proposalTitles[i],
			TeamName:   teamName,
			TxHash:     txHash,
			PaidAt:     paymentDate,
		})
	}
	a.record(op)
	return records, nil
}
