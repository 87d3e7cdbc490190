package reports

import (
	"sort"
	"time"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/domain"
)

// VoteParticipationType is how a team took part in a single vote.
type VoteParticipationType string

const (
	ParticipationCounted   VoteParticipationType = "counted"
	ParticipationUncounted VoteParticipationType = "uncounted"
	ParticipationInformal  VoteParticipationType = "informal"
)

// VoteParticipationResult is the outcome of a vote from a participating
// team's perspective.
type VoteParticipationResult string

const (
	VoteResultPassed   VoteParticipationResult = "passed"
	VoteResultRejected VoteParticipationResult = "rejected"
	VoteResultInformal VoteParticipationResult = "informal"
	VoteResultPending  VoteParticipationResult = "pending"
)

// TeamVoteEntry is one vote a team participated in.
type TeamVoteEntry struct {
	VoteID            domain.ID
	ProposalID        domain.ID
	ProposalTitle     string
	Participation     VoteParticipationType
	Result            VoteParticipationResult
	PointsEarned      uint32
	OpenedAt          time.Time
}

// TeamVoteParticipationReport lists every vote a team took part in within a
// single epoch, newest first.
type TeamVoteParticipationReport struct {
	TeamID    domain.ID
	TeamName  string
	EpochID   domain.ID
	EpochName string
	Entries   []TeamVoteEntry
}

// BuildTeamVoteParticipationReport walks every vote attached to epochID's
// proposals and keeps the ones teamID participated in, either as a counted
// or uncounted formal seat or as an informal participant.
func BuildTeamVoteParticipationReport(agg *aggregate.Aggregate, teamID, epochID domain.ID) (TeamVoteParticipationReport, error) {
	const op = "reports.BuildTeamVoteParticipationReport"
	team, ok := agg.Team(teamID)
	if !ok {
		return TeamVoteParticipationReport{}, domain.NotFound(op, "team %s not found", teamID)
	}
	epoch, ok := agg.Epoch(epochID)
	if !ok {
		return TeamVoteParticipationReport{}, domain.NotFound(op, "epoch %s not found", epochID)
	}

	report := TeamVoteParticipationReport{
		TeamID:    teamID,
		TeamName:  team.Name,
		EpochID:   epochID,
		EpochName: epoch.Name,
	}

	for _, proposalID := range epoch.AssociatedProposals {
		vote, ok := agg.VoteForProposal(proposalID)
		if !ok {
			continue
		}
		entry, participates := teamVoteEntry(agg, vote, teamID)
		if !participates {
			continue
		}
		report.Entries = append(report.Entries, entry)
	}

	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].OpenedAt.After(report.Entries[j].OpenedAt)
	})

	return report, nil
}

func teamVoteEntry(agg *aggregate.Aggregate, v *domain.Vote, teamID domain.ID) (TeamVoteEntry, bool) {
	entry := TeamVoteEntry{
		VoteID:     v.ID,
		ProposalID: v.ProposalID,
		OpenedAt:   v.OpenedAt,
		Result:     VoteResultPending,
	}
	if proposal, ok := agg.Proposal(v.ProposalID); ok {
		entry.ProposalTitle = proposal.Title
	}

	switch {
	case v.IsFormal() && containsID(v.Participation.Counted, teamID):
		entry.Participation = ParticipationCounted
		if v.Result != nil {
			entry.PointsEarned = v.Type.CountedPoints
		}
	case v.IsFormal() && containsID(v.Participation.Uncounted, teamID):
		entry.Participation = ParticipationUncounted
		if v.Result != nil {
			entry.PointsEarned = v.Type.UncountedPoints
		}
	case !v.IsFormal() && containsID(v.Participation.Informal, teamID):
		entry.Participation = ParticipationInformal
	default:
		return TeamVoteEntry{}, false
	}

	if v.Result == nil {
		return entry, true
	}
	if v.IsFormal() {
		if v.Result.Passed {
			entry.Result = VoteResultPassed
		} else {
			entry.Result = VoteResultRejected
		}
	} else {
		entry.Result = VoteResultInformal
	}
	return entry, true
}
