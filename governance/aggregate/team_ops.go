package aggregate

import "github.com/yearn/robokitty-sub000/governance/domain"

// AddTeam registers a new team, rejecting a duplicate display name.
func (a *Aggregate) AddTeam(name, representative string, status domain.TeamStatus, address *domain.PaymentAddress) (*domain.Team, error) {
	const op = "Aggregate.AddTeam"
	if _, exists := a.TeamIDByName(name); exists {
		return nil, domain.InvalidArgument(op, "a team named %q already exists", name)
	}
	team, err := domain.NewTeam(name, representative, status, address)
	if err != nil {
		return nil, err
	}
	a.Teams[team.ID] = team
	a.record(op)
	return team, nil
}

// UpdateTeam applies the given field updates to an existing team. Any nil
// argument leaves that field untouched.
func (a *Aggregate) UpdateTeam(id domain.ID, name, representative *string, status *domain.TeamStatus, address *domain.PaymentAddress, clearAddress bool) error {
	const op = "Aggregate.UpdateTeam"
	team, ok := a.Teams[id]
	if !ok {
		return domain.NotFound(op, "team %s not found", id)
	}
	if name != nil {
		if existing, exists := a.TeamIDByName(*name); exists && existing != id {
			return domain.InvalidArgument(op, "a team named %q already exists", *name)
		}
		team.Name = *name
	}
	if representative != nil {
		team.Representative = *representative
	}
	if status != nil {
		if err := team.SetStatus(*status); err != nil {
			return err
		}
	}
	if clearAddress {
		team.PaymentAddress = nil
	} else if address != nil {
		team.PaymentAddress = address
	}
	a.record(op)
	return nil
}

// RemoveTeam retires a team by flipping its status to Inactive. Teams are
// never deleted from the aggregate: history (votes, points, payments) keeps
// referring to the same ID.
func (a *Aggregate) RemoveTeam(id domain.ID) error {
	const op = "Aggregate.RemoveTeam"
	team, ok := a.Teams[id]
	if !ok {
		return domain.NotFound(op, "team %s not found", id)
	}
	if err := team.SetStatus(domain.Inactive()); err != nil {
		return err
	}
	a.record(op)
	return nil
}
