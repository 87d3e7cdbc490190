package aggregate

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// AddProposal creates a proposal within epochID and associates it with
// that epoch.
func (a *Aggregate) AddProposal(epochID domain.ID, title string, url *string, budgetRequest *domain.BudgetRequest, announcedAt, publishedAt *time.Time, isHistorical bool) (*domain.Proposal, error) {
	const op = "Aggregate.AddProposal"
	epoch, ok := a.Epochs[epochID]
	if !ok {
		return nil, domain.NotFound(op, "epoch %s not found", epochID)
	}
	if _, exists := a.ProposalIDByName(title); exists {
		return nil, domain.InvalidArgument(op, "a proposal titled %q already exists", title)
	}
	proposal, err := domain.NewProposal(epochID, title, url, budgetRequest, announcedAt, publishedAt, isHistorical)
	if err != nil {
		return nil, err
	}
	a.Proposals[proposal.ID] = proposal
	epoch.AssociateProposal(proposal.ID)
	a.record(op)
	return proposal, nil
}

// UpdateProposal applies field updates to an existing proposal.
func (a *Aggregate) UpdateProposal(id domain.ID, title, url *string, announcedAt, publishedAt, resolvedAt *time.Time) error {
	const op = "Aggregate.UpdateProposal"
	proposal, ok := a.Proposals[id]
	if !ok {
		return domain.NotFound(op, "proposal %s not found", id)
	}
	if title != nil {
		if existing, exists := a.ProposalIDByName(*title); exists && existing != id {
			return domain.InvalidArgument(op, "a proposal titled %q already exists", *title)
		}
		proposal.Title = *title
	}
	if url != nil {
		proposal.URL = url
	}
	if err := proposal.SetDates(announcedAt, publishedAt, resolvedAt); err != nil {
		return err
	}
	a.record(op)
	return nil
}

// CloseProposal resolves an actionable proposal as Approved or Rejected.
func (a *Aggregate) CloseProposal(id domain.ID, resolution domain.Resolution) error {
	const op = "Aggregate.CloseProposal"
	proposal, ok := a.Proposals[id]
	if !ok {
		return domain.NotFound(op, "proposal %s not found", id)
	}
	var err error
	switch resolution {
	case domain.ResolutionApproved:
		err = proposal.Approve()
	case domain.ResolutionRejected:
		err = proposal.Reject()
	default:
		err = proposal.Resolve(resolution)
	}
	if err != nil {
		return err
	}
	a.record(op)
	return nil
}

// ReopenProposal transitions a Closed proposal back to Reopened.
func (a *Aggregate) ReopenProposal(id domain.ID) error {
	const op = "Aggregate.ReopenProposal"
	proposal, ok := a.Proposals[id]
	if !ok {
		return domain.NotFound(op, "proposal %s not found", id)
	}
	if err := proposal.Reopen(); err != nil {
		return err
	}
	a.record(op)
	return nil
}
