package aggregate

import "github.com/yearn/robokitty-sub000/governance/domain"

// named is satisfied by every entity that can be looked up by its display
// name instead of its ID.
type named interface {
	NameMatches(name string) bool
}

func findIDByName[T named](items map[domain.ID]T, name string) (domain.ID, bool) {
	for id, item := range items {
		if item.NameMatches(name) {
			return id, true
		}
	}
	return domain.ZeroID, false
}

// TeamIDByName resolves a team's display name to its ID via a linear scan.
// The corpus of teams is small (hundreds at most), so this trades a map
// lookup for resolver simplicity rather than maintaining a parallel index.
func (a *Aggregate) TeamIDByName(name string) (domain.ID, bool) {
	return findIDByName(a.Teams, name)
}

// EpochIDByName resolves an epoch's display name to its ID.
func (a *Aggregate) EpochIDByName(name string) (domain.ID, bool) {
	return findIDByName(a.Epochs, name)
}

// ProposalIDByName resolves a proposal's title to its ID.
func (a *Aggregate) ProposalIDByName(name string) (domain.ID, bool) {
	return findIDByName(a.Proposals, name)
}

// Team looks up a team by ID.
func (a *Aggregate) Team(id domain.ID) (*domain.Team, bool) {
	t, ok := a.Teams[id]
	return t, ok
}

// Epoch looks up an epoch by ID.
func (a *Aggregate) Epoch(id domain.ID) (*domain.Epoch, bool) {
	e, ok := a.Epochs[id]
	return e, ok
}

// Proposal looks up a proposal by ID.
func (a *Aggregate) Proposal(id domain.ID) (*domain.Proposal, bool) {
	p, ok := a.Proposals[id]
	return p, ok
}

// Raffle looks up a raffle by ID.
func (a *Aggregate) Raffle(id domain.ID) (*domain.Raffle, bool) {
	r, ok := a.Raffles[id]
	return r, ok
}

// Vote looks up a vote by ID.
func (a *Aggregate) Vote(id domain.ID) (*domain.Vote, bool) {
	v, ok := a.Votes[id]
	return v, ok
}

// VoteForProposal finds the vote attached to a given proposal, if any.
func (a *Aggregate) VoteForProposal(proposalID domain.ID) (*domain.Vote, bool) {
	for _, v := range a.Votes {
		if v.ProposalID == proposalID {
			return v, true
		}
	}
	return nil, false
}

// ProposalsForEpoch returns every proposal associated with the given
// epoch, in the order the epoch recorded them.
func (a *Aggregate) ProposalsForEpoch(epochID domain.ID) []*domain.Proposal {
	epoch, ok := a.Epochs[epochID]
	if !ok {
		return nil
	}
	proposals := make([]*domain.Proposal, 0, len(epoch.AssociatedProposals))
	for _, id := range epoch.AssociatedProposals {
		if p, ok := a.Proposals[id]; ok {
			proposals = append(proposals, p)
		}
	}
	return proposals
}
