package reports

import (
	"time"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

// ProposalRaffleDossier is the raffle section of a proposal's report, if a
// raffle was ever run for it.
type ProposalRaffleDossier struct {
	RaffleID          domain.ID
	InitiationBlock   uint64
	RandomnessBlock   uint64
	BlockRandomness   string
	EtherscanURL      string
	TotalCountedSeats int
	MaxEarnerSeats    int
	IsHistorical      bool
	TeamSnapshots     []domain.TeamSnapshot
	CountedTeams      []string
	UncountedTeams    []string
}

// ProposalVoteParticipant is one team's role in a proposal's vote, without
// its ballot: closing a vote discards individual ballots, only the tally
// survives.
type ProposalVoteParticipant struct {
	TeamID        domain.ID
	TeamName      string
	Participation VoteParticipationType
}

// ProposalVoteDossier is the vote section of a proposal's report, if a vote
// was ever opened for it.
type ProposalVoteDossier struct {
	VoteID         domain.ID
	Type           domain.VoteKind
	Status         domain.VoteStatus
	OpenedAt       time.Time
	ClosedAt       *time.Time
	Passed         *bool
	CountedYes     uint32
	CountedNo      uint32
	UncountedYes   uint32
	UncountedNo    uint32
	AbsentSeats    int
	InformalYes    uint32
	InformalNo     uint32
	Participants   []ProposalVoteParticipant
}

// ProposalReport is the full dossier for a single proposal: identity,
// budget request, raffle tables, and vote tally tables, all in one
// structure so a caller can render or inspect the whole proposal at once.
type ProposalReport struct {
	ProposalID       domain.ID
	Title            string
	URL              *string
	EpochID          domain.ID
	EpochName        string
	Status           domain.ProposalStatus
	Resolution       *domain.Resolution
	AnnouncedAt      *time.Time
	PublishedAt      *time.Time
	ResolvedAt       *time.Time
	ResolutionDays   *int
	IsHistorical     bool
	TeamName         string
	RequestedAmounts map[string]float64
	StartDate        *time.Time
	EndDate          *time.Time
	PaymentAddress   *domain.PaymentAddress
	IsPaid           bool
	Raffle           *ProposalRaffleDossier
	Vote             *ProposalVoteDossier
}

// BuildProposalReport assembles the full dossier for proposalID.
func BuildProposalReport(agg *aggregate.Aggregate, proposalID domain.ID) (ProposalReport, error) {
	const op = "reports.BuildProposalReport"
	proposal, ok := agg.Proposal(proposalID)
	if !ok {
		return ProposalReport{}, domain.NotFound(op, "proposal %s not found", proposalID)
	}

	report := ProposalReport{
		ProposalID:   proposal.ID,
		Title:        proposal.Title,
		URL:          proposal.URL,
		EpochID:      proposal.EpochID,
		Status:       proposal.Status,
		Resolution:   proposal.Resolution,
		AnnouncedAt:  proposal.AnnouncedAt,
		PublishedAt:  proposal.PublishedAt,
		ResolvedAt:   proposal.ResolvedAt,
		IsHistorical: proposal.IsHistorical,
	}
	if epoch, ok := agg.Epoch(proposal.EpochID); ok {
		report.EpochName = epoch.Name
	}
	if days, ok := daysBetween(proposal.AnnouncedAt, proposal.ResolvedAt); ok {
		report.ResolutionDays = &days
	}

	if br := proposal.BudgetRequest; br != nil {
		report.RequestedAmounts = br.RequestAmounts
		report.StartDate = br.StartDate
		report.EndDate = br.EndDate
		report.IsPaid = br.IsPaid()
		if br.Team != nil {
			if team, ok := agg.Team(*br.Team); ok {
				report.TeamName = team.Name
				report.PaymentAddress = team.PaymentAddress
			}
		}
	}

	for _, raffle := range agg.Raffles {
		if raffle.Config.ProposalID != proposalID {
			continue
		}
		report.Raffle = buildRaffleDossier(agg, raffle)
		break
	}

	if vote, ok := agg.VoteForProposal(proposalID); ok {
		report.Vote = buildVoteDossier(agg, vote)
	}

	return report, nil
}

func buildRaffleDossier(agg *aggregate.Aggregate, r *domain.Raffle) *ProposalRaffleDossier {
	dossier := &ProposalRaffleDossier{
		RaffleID:          r.ID,
		InitiationBlock:   r.Config.InitiationBlock,
		RandomnessBlock:   r.Config.RandomnessBlock,
		BlockRandomness:   r.Config.BlockRandomness,
		EtherscanURL:      r.EtherscanURL(),
		TotalCountedSeats: r.Config.TotalCountedSeats,
		MaxEarnerSeats:    r.Config.MaxEarnerSeats,
		IsHistorical:      r.Config.IsHistorical,
		TeamSnapshots:     r.TeamSnapshots,
	}
	if r.Result != nil {
		dossier.CountedTeams = teamNames(agg, r.Result.Counted)
		dossier.UncountedTeams = teamNames(agg, r.Result.Uncounted)
	}
	return dossier
}

func teamNames(agg *aggregate.Aggregate, ids []domain.ID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if team, ok := agg.Team(id); ok {
			names = append(names, team.Name)
		}
	}
	return names
}

func buildVoteDossier(agg *aggregate.Aggregate, v *domain.Vote) *ProposalVoteDossier {
	dossier := &ProposalVoteDossier{
		VoteID:   v.ID,
		Type:     v.Type.Kind,
		Status:   v.Status,
		OpenedAt: v.OpenedAt,
		ClosedAt: v.ClosedAt,
	}

	for _, id := range v.Participation.Counted {
		dossier.Participants = append(dossier.Participants, participant(agg, id, ParticipationCounted))
	}
	for _, id := range v.Participation.Uncounted {
		dossier.Participants = append(dossier.Participants, participant(agg, id, ParticipationUncounted))
	}
	for _, id := range v.Participation.Informal {
		dossier.Participants = append(dossier.Participants, participant(agg, id, ParticipationInformal))
	}

	if v.Result == nil {
		return dossier
	}
	switch v.Type.Kind {
	case domain.VoteFormal:
		passed := v.Result.Passed
		dossier.Passed = &passed
		dossier.CountedYes = v.Result.Counted.Yes
		dossier.CountedNo = v.Result.Counted.No
		dossier.UncountedYes = v.Result.Uncounted.Yes
		dossier.UncountedNo = v.Result.Uncounted.No
		absent := int(v.Type.TotalEligibleSeats) - int(v.Result.Counted.Yes+v.Result.Counted.No)
		if absent > 0 {
			dossier.AbsentSeats = absent
		}
	case domain.VoteInformal:
		dossier.InformalYes = v.Result.Informal.Yes
		dossier.InformalNo = v.Result.Informal.No
	}
	return dossier
}

func participant(agg *aggregate.Aggregate, teamID domain.ID, kind VoteParticipationType) ProposalVoteParticipant {
	p := ProposalVoteParticipant{TeamID: teamID, Participation: kind}
	if team, ok := agg.Team(teamID); ok {
		p.TeamName = team.Name
	}
	return p
}
