package aggregate

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// Snapshot is the serializable projection of an Aggregate. The persistence
// format itself is intentionally opaque to the rest of the module: callers
// needing durable storage wrap Save/Load with whatever backing store they
// choose. No third-party serialization library is wired in here because no
// SPEC_FULL.md component names a concrete wire format for it; this is the
// one deliberate stdlib encoding in the module, scoped to this boundary
// only.
type Snapshot struct {
	Teams        []*domain.Team     `json:"teams"`
	Epochs       []*domain.Epoch    `json:"epochs"`
	Proposals    []*domain.Proposal `json:"proposals"`
	Raffles      []*domain.Raffle   `json:"raffles"`
	Votes        []voteSnapshot     `json:"votes"`
	CurrentEpoch *domain.ID         `json:"current_epoch,omitempty"`
	SavedAt      time.Time          `json:"saved_at"`
}

// voteSnapshot mirrors domain.Vote's exported fields; the in-flight ballot
// map is unexported by design (spec §4.3: raw ballots do not outlive a
// vote's close) and is never part of a snapshot.
type voteSnapshot struct {
	ID            domain.ID               `json:"id"`
	ProposalID    domain.ID               `json:"proposal_id"`
	EpochID       domain.ID               `json:"epoch_id"`
	Type          domain.VoteType         `json:"type"`
	Status        domain.VoteStatus       `json:"status"`
	Participation domain.VoteParticipation `json:"participation"`
	Result        *domain.VoteResult      `json:"result,omitempty"`
	OpenedAt      time.Time               `json:"opened_at"`
	ClosedAt      *time.Time              `json:"closed_at,omitempty"`
	IsHistorical  bool                    `json:"is_historical"`
}

func toVoteSnapshot(v *domain.Vote) voteSnapshot {
	return voteSnapshot{
		ID:            v.ID,
		ProposalID:    v.ProposalID,
		EpochID:       v.EpochID,
		Type:          v.Type,
		Status:        v.Status,
		Participation: v.Participation,
		Result:        v.Result,
		OpenedAt:      v.OpenedAt,
		ClosedAt:      v.ClosedAt,
		IsHistorical:  v.IsHistorical,
	}
}

func fromVoteSnapshot(s voteSnapshot) *domain.Vote {
	v := domain.NewVote(s.ProposalID, s.EpochID, s.Type, s.OpenedAt, s.IsHistorical)
	v.ID = s.ID
	v.Status = s.Status
	v.Participation = s.Participation
	v.Result = s.Result
	v.ClosedAt = s.ClosedAt
	return v
}

// Save serializes the aggregate's current state to w as JSON.
func (a *Aggregate) Save(w io.Writer) error {
	snap := Snapshot{
		Teams:        make([]*domain.Team, 0, len(a.Teams)),
		Epochs:       make([]*domain.Epoch, 0, len(a.Epochs)),
		Proposals:    make([]*domain.Proposal, 0, len(a.Proposals)),
		Raffles:      make([]*domain.Raffle, 0, len(a.Raffles)),
		Votes:        make([]voteSnapshot, 0, len(a.Votes)),
		CurrentEpoch: a.CurrentEpoch,
		SavedAt:      a.now(),
	}
	for _, t := range a.Teams {
		snap.Teams = append(snap.Teams, t)
	}
	for _, e := range a.Epochs {
		snap.Epochs = append(snap.Epochs, e)
	}
	for _, p := range a.Proposals {
		snap.Proposals = append(snap.Proposals, p)
	}
	for _, r := range a.Raffles {
		snap.Raffles = append(snap.Raffles, r)
	}
	for _, v := range a.Votes {
		snap.Votes = append(snap.Votes, toVoteSnapshot(v))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return domain.Persistence("Aggregate.Save", "encode snapshot: %v", err)
	}
	return nil
}

// Load replaces the aggregate's state with the snapshot read from r.
func (a *Aggregate) Load(r io.Reader) error {
	const op = "Aggregate.Load"
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return domain.Persistence(op, "decode snapshot: %v", err)
	}

	teams := make(map[domain.ID]*domain.Team, len(snap.Teams))
	for _, t := range snap.Teams {
		teams[t.ID] = t
	}
	epochs := make(map[domain.ID]*domain.Epoch, len(snap.Epochs))
	for _, e := range snap.Epochs {
		epochs[e.ID] = e
	}
	proposals := make(map[domain.ID]*domain.Proposal, len(snap.Proposals))
	for _, p := range snap.Proposals {
		proposals[p.ID] = p
	}
	raffles := make(map[domain.ID]*domain.Raffle, len(snap.Raffles))
	for _, r := range snap.Raffles {
		raffles[r.ID] = r
	}
	votes := make(map[domain.ID]*domain.Vote, len(snap.Votes))
	for _, vs := range snap.Votes {
		v := fromVoteSnapshot(vs)
		votes[v.ID] = v
	}

	a.Teams = teams
	a.Epochs = epochs
	a.Proposals = proposals
	a.Raffles = raffles
	a.Votes = votes
	a.CurrentEpoch = snap.CurrentEpoch
	return nil
}
