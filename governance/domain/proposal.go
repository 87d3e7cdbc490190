package domain

import "time"

// ProposalStatus is the lifecycle state of a proposal: Open and Reopened
// are both actionable, Closed is terminal for voting purposes.
type ProposalStatus string

const (
	ProposalOpen     ProposalStatus = "open"
	ProposalClosed   ProposalStatus = "closed"
	ProposalReopened ProposalStatus = "reopened"
)

// Resolution records how a closed proposal was disposed of.
type Resolution string

const (
	ResolutionApproved  Resolution = "approved"
	ResolutionRejected  Resolution = "rejected"
	ResolutionInvalid   Resolution = "invalid"
	ResolutionDuplicate Resolution = "duplicate"
	ResolutionRetracted Resolution = "retracted"
)

// Proposal is a single agenda item considered within an epoch, optionally
// carrying a BudgetRequest if it asks for funds.
type Proposal struct {
	ID             ID
	EpochID        ID
	Title          string
	URL            *string
	Status         ProposalStatus
	Resolution     *Resolution
	BudgetRequest  *BudgetRequest
	AnnouncedAt    *time.Time
	PublishedAt    *time.Time
	ResolvedAt     *time.Time
	IsHistorical   bool
}

// NewProposal constructs an Open proposal attached to epochID.
func NewProposal(epochID ID, title string, url *string, budgetRequest *BudgetRequest, announcedAt, publishedAt *time.Time, isHistorical bool) (*Proposal, error) {
	if title == "" {
		return nil, InvalidArgument("NewProposal", "title must not be empty")
	}
	return &Proposal{
		ID:            NewID(),
		EpochID:       epochID,
		Title:         title,
		URL:           url,
		Status:        ProposalOpen,
		BudgetRequest: budgetRequest,
		AnnouncedAt:   announcedAt,
		PublishedAt:   publishedAt,
		IsHistorical:  isHistorical,
	}, nil
}

// NameMatches satisfies the name-resolution contract (spec §4.7).
func (p *Proposal) NameMatches(name string) bool { return p.Title == name }

// IsOpen reports whether the proposal is Open.
func (p *Proposal) IsOpen() bool { return p.Status == ProposalOpen }

// IsClosed reports whether the proposal is Closed.
func (p *Proposal) IsClosed() bool { return p.Status == ProposalClosed }

// IsActionable reports whether the proposal can still be approved/rejected
// (Open or Reopened).
func (p *Proposal) IsActionable() bool {
	return p.Status == ProposalOpen || p.Status == ProposalReopened
}

// IsApproved reports whether the proposal's resolution is Approved.
func (p *Proposal) IsApproved() bool {
	return p.Resolution != nil && *p.Resolution == ResolutionApproved
}

// IsBudgetRequest reports whether the proposal carries a budget request.
func (p *Proposal) IsBudgetRequest() bool { return p.BudgetRequest != nil }

// Approve closes the proposal with an Approved resolution.
func (p *Proposal) Approve() error {
	if !p.IsActionable() {
		return PreconditionFailed("Proposal.Approve", "proposal %s is not actionable", p.ID)
	}
	p.Status = ProposalClosed
	resolution := ResolutionApproved
	p.Resolution = &resolution
	return nil
}

// Reject closes the proposal with a Rejected resolution.
func (p *Proposal) Reject() error {
	if !p.IsActionable() {
		return PreconditionFailed("Proposal.Reject", "proposal %s is not actionable", p.ID)
	}
	p.Status = ProposalClosed
	resolution := ResolutionRejected
	p.Resolution = &resolution
	return nil
}

// Resolve closes the proposal with an arbitrary resolution (Invalid,
// Duplicate, Retracted); Approved/Rejected should go through Approve/Reject
// so the resolution and point-accrual semantics stay paired.
func (p *Proposal) Resolve(resolution Resolution) error {
	if !p.IsActionable() {
		return PreconditionFailed("Proposal.Resolve", "proposal %s is not actionable", p.ID)
	}
	p.Status = ProposalClosed
	p.Resolution = &resolution
	return nil
}

// Reopen transitions a Closed proposal back to Reopened, clearing its
// resolution.
func (p *Proposal) Reopen() error {
	if p.Status != ProposalClosed {
		return PreconditionFailed("Proposal.Reopen", "proposal %s is not closed", p.ID)
	}
	p.Status = ProposalReopened
	p.Resolution = nil
	return nil
}

// SetDates validates and applies the announced/published/resolved ordering
// invariant: announced <= published <= resolved.
func (p *Proposal) SetDates(announcedAt, publishedAt, resolvedAt *time.Time) error {
	const op = "Proposal.SetDates"
	if announcedAt != nil && publishedAt != nil && announcedAt.After(*publishedAt) {
		return InvalidArgument(op, "announced date cannot be after published date")
	}
	if publishedAt != nil && resolvedAt != nil && publishedAt.After(*resolvedAt) {
		return InvalidArgument(op, "published date cannot be after resolved date")
	}
	if announcedAt != nil {
		p.AnnouncedAt = announcedAt
	}
	if publishedAt != nil {
		p.PublishedAt = publishedAt
	}
	if resolvedAt != nil {
		p.ResolvedAt = resolvedAt
	}
	return nil
}

// MarkPaid flips the proposal's budget request to Paid, enforcing the
// precondition that only an approved budget request can be paid.
func (p *Proposal) MarkPaid() error {
	const op = "Proposal.MarkPaid"
	if !p.IsApproved() {
		return PreconditionFailed(op, "proposal %s is not approved", p.ID)
	}
	if p.BudgetRequest == nil {
		return PreconditionFailed(op, "proposal %s is not a budget request", p.ID)
	}
	if p.BudgetRequest.IsPaid() {
		return AlreadyPaid(op, "proposal %s is already paid", p.ID)
	}
	p.BudgetRequest.MarkPaid()
	return nil
}

// DurationDays returns the number of days between AnnouncedAt and
// ResolvedAt, or -1 if either is unset.
func (p *Proposal) DurationDays() int {
	if p.AnnouncedAt == nil || p.ResolvedAt == nil {
		return -1
	}
	return int(p.ResolvedAt.Sub(*p.AnnouncedAt).Hours() / 24)
}
