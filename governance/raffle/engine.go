// Package raffle implements the verifiable-random jury selection that
// decides which teams' votes count toward a formal vote's threshold.
package raffle

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// New builds a Raffle from config and the current team roster: every
// active (non-Inactive) team is snapshotted, ordered by CustomTeamOrder if
// given or else by name, and issued tickets per its status's allocation.
// Scores are not yet assigned; call GenerateScores once randomness lands.
func New(config domain.RaffleConfig, teams map[domain.ID]*domain.Team, now time.Time) (*domain.Raffle, error) {
	const op = "raffle.New"
	if config.BlockRandomness == "" {
		return nil, domain.InvalidArgument(op, "block randomness must be provided")
	}
	if config.MaxEarnerSeats > config.TotalCountedSeats {
		return nil, domain.InvalidArgument(op, "max earner seats cannot exceed total counted seats")
	}

	active := make([]*domain.Team, 0, len(teams))
	for _, team := range teams {
		if team.IsActive() {
			active = append(active, team)
		}
	}
	sortTeams(active, config.CustomTeamOrder)

	excluded := toSet(config.ExcludedTeams)

	raffle := &domain.Raffle{
		ID:     domain.NewID(),
		Config: config,
	}

	for _, team := range active {
		status := domain.RaffleIncluded
		if excluded[team.ID] {
			status = domain.RaffleExcluded
		}
		raffle.TeamSnapshots = append(raffle.TeamSnapshots, domain.TeamSnapshot{
			ID:                  team.ID,
			Name:                team.Name,
			Representative:      team.Representative,
			Status:              team.Status,
			SnapshotTime:        now,
			ParticipationStatus: status,
		})

		for i := uint64(0); i < team.TicketCount(); i++ {
			raffle.Tickets = append(raffle.Tickets, domain.RaffleTicket{
				TeamID: team.ID,
				Index:  uint64(len(raffle.Tickets)),
			})
		}
	}

	return raffle, nil
}

func sortTeams(teams []*domain.Team, customOrder []domain.ID) {
	if len(customOrder) > 0 {
		position := make(map[domain.ID]int, len(customOrder))
		for i, id := range customOrder {
			position[id] = i
		}
		sort.SliceStable(teams, func(i, j int) bool {
			pi, oki := position[teams[i].ID]
			pj, okj := position[teams[j].ID]
			if !oki {
				pi = len(customOrder)
			}
			if !okj {
				pj = len(customOrder)
			}
			return pi < pj
		})
		return
	}
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
}

func toSet(ids []domain.ID) map[domain.ID]bool {
	set := make(map[domain.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// GenerateScores assigns a deterministic score to every non-excluded
// ticket, derived from the raffle's randomness seed and the ticket's
// index. Excluded tickets keep a zero score.
func GenerateScores(r *domain.Raffle) {
	excluded := toSet(r.Config.ExcludedTeams)
	for i := range r.Tickets {
		ticket := &r.Tickets[i]
		if excluded[ticket.TeamID] {
			continue
		}
		ticket.Score = ScoreFromSeed(r.Config.BlockRandomness, ticket.Index)
	}
}

// ScoreFromSeed reproduces the spec's SHA-256-seeded scoring formula
// bit-for-bit: score = BE_uint64(SHA256(randomness + "_" + index)[0:8]) / 2^64.
func ScoreFromSeed(randomness string, index uint64) float64 {
	seed := fmt.Sprintf("%s_%d", randomness, index)
	sum := sha256.Sum256([]byte(seed))
	hashNum := binary.BigEndian.Uint64(sum[:8])
	return float64(hashNum) / float64(^uint64(0))
}

// SelectTeams computes the raffle's seat assignment from ticket scores:
// Earner tickets fill counted seats up to MaxEarnerSeats, then Supporter
// tickets fill the remaining counted seats up to TotalCountedSeats; every
// other included team lands in uncounted. Excluded teams appear in
// neither list.
func SelectTeams(r *domain.Raffle) {
	statusByTeam := make(map[domain.ID]domain.TeamStatusKind, len(r.TeamSnapshots))
	for _, snap := range r.TeamSnapshots {
		statusByTeam[snap.ID] = snap.Status.Kind
	}
	excluded := toSet(r.Config.ExcludedTeams)

	var earnerTickets, supporterTickets []domain.RaffleTicket
	for _, ticket := range r.Tickets {
		if excluded[ticket.TeamID] {
			continue
		}
		switch statusByTeam[ticket.TeamID] {
		case domain.TeamEarner:
			earnerTickets = append(earnerTickets, ticket)
		case domain.TeamSupporter:
			supporterTickets = append(supporterTickets, ticket)
		}
	}
	sort.SliceStable(earnerTickets, func(i, j int) bool { return earnerTickets[i].Score > earnerTickets[j].Score })
	sort.SliceStable(supporterTickets, func(i, j int) bool { return supporterTickets[i].Score > supporterTickets[j].Score })

	var counted []domain.ID
	containsID := func(ids []domain.ID, target domain.ID) bool {
		for _, id := range ids {
			if id == target {
				return true
			}
		}
		return false
	}

	for _, ticket := range earnerTickets {
		if len(counted) >= r.Config.MaxEarnerSeats {
			break
		}
		if !containsID(counted, ticket.TeamID) {
			counted = append(counted, ticket.TeamID)
		}
	}
	for _, ticket := range supporterTickets {
		if len(counted) >= r.Config.TotalCountedSeats {
			break
		}
		if !containsID(counted, ticket.TeamID) {
			counted = append(counted, ticket.TeamID)
		}
	}

	var uncounted []domain.ID
	for _, ticket := range r.Tickets {
		if excluded[ticket.TeamID] || containsID(counted, ticket.TeamID) || containsID(uncounted, ticket.TeamID) {
			continue
		}
		uncounted = append(uncounted, ticket.TeamID)
	}

	r.Result = &domain.RaffleResult{Counted: counted, Uncounted: uncounted}
}
