package services

import (
	"fmt"
	"sort"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
)

const (
	roundRobinWinPoints  = 3
	roundRobinDrawPoints = 1
)

// GroupBySport partitions matches by sport, keeping their original order.
func GroupBySport(matches []models.Match) map[string][]models.Match {
	groups := make(map[string][]models.Match)
	for _, m := range matches {
		groups[m.Sport] = append(groups[m.Sport], m)
	}
	return groups
}

func sortedSports(groups map[string][]models.Match) []string {
	sports := make([]string, 0, len(groups))
	for sport := range groups {
		sports = append(sports, sport)
	}
	sort.Strings(sports)
	return sports
}

// AggregateBracketDeltas resolves every sport independently and sums the
// placement awards. Incomplete sports contribute nothing. The first sport that
// fails to resolve aborts the whole aggregation.
func AggregateBracketDeltas(resolver *brackets.Resolver, matches []models.Match) (map[string]int, []models.Placement, error) {
	groups := GroupBySport(matches)
	deltas := make(map[string]int)
	placements := make([]models.Placement, 0, len(groups))

	for _, sport := range sortedSports(groups) {
		placement, complete, err := resolver.Resolve(groups[sport])
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s bracket: %w", sport, err)
		}
		if !complete {
			continue
		}
		for participant, points := range resolver.PointDeltas(placement) {
			deltas[participant] += points
		}
		placements = append(placements, placement)
	}
	return deltas, placements, nil
}

// AggregateRoundRobinDeltas awards 3 points per win and 1 to each side of a
// draw. Only finished matches count.
func AggregateRoundRobinDeltas(matches []models.Match) map[string]int {
	deltas := make(map[string]int)
	for _, m := range matches {
		if !m.IsFinished() {
			continue
		}
		if winner, ok := m.Winner(); ok {
			deltas[winner] += roundRobinWinPoints
			continue
		}
		deltas[m.ParticipantA] += roundRobinDrawPoints
		deltas[m.ParticipantB] += roundRobinDrawPoints
	}
	return deltas
}

// AggregatePlayerDeltas is AggregateRoundRobinDeltas credited to each player
// of a "p1 & p2" pair.
func AggregatePlayerDeltas(matches []models.Match) map[string]int {
	deltas := make(map[string]int)
	for pair, points := range AggregateRoundRobinDeltas(matches) {
		for _, player := range models.SplitPair(pair) {
			deltas[player] += points
		}
	}
	return deltas
}

// ComputeDeltas dispatches on the scoring mode. Placements are only produced
// in bracket mode.
func ComputeDeltas(mode models.ScoringMode, resolver *brackets.Resolver, matches []models.Match) (map[string]int, []models.Placement, error) {
	switch mode {
	case models.ScoringBracket:
		return AggregateBracketDeltas(resolver, matches)
	case models.ScoringRoundRobin:
		return AggregateRoundRobinDeltas(matches), nil, nil
	case models.ScoringPlayers:
		return AggregatePlayerDeltas(matches), nil, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown scoring mode %q", ErrValidationFailed, mode)
}

// ApplyDeltas returns a new registry with deltas added to each team's points.
// The input is not modified; deltas for unknown participants are ignored.
func ApplyDeltas(registry []models.Team, deltas map[string]int) []models.Team {
	next := make([]models.Team, len(registry))
	for i, team := range registry {
		team.Points += deltas[team.Name]
		next[i] = team
	}
	return next
}

// ResetPoints returns a copy of the registry with every total set to zero.
func ResetPoints(registry []models.Team) []models.Team {
	next := make([]models.Team, len(registry))
	for i, team := range registry {
		team.Points = 0
		next[i] = team
	}
	return next
}

type matchRecord struct {
	played, wins, draws, losses int
}

func tallyRecords(mode models.ScoringMode, matches []models.Match) map[string]*matchRecord {
	records := make(map[string]*matchRecord)
	credit := func(participant string, apply func(r *matchRecord)) {
		names := []string{participant}
		if mode == models.ScoringPlayers {
			names = models.SplitPair(participant)
		}
		for _, name := range names {
			r, ok := records[name]
			if !ok {
				r = &matchRecord{}
				records[name] = r
			}
			apply(r)
		}
	}

	for _, m := range matches {
		if !m.IsFinished() {
			continue
		}
		winner, decided := m.Winner()
		for _, p := range []string{m.ParticipantA, m.ParticipantB} {
			p := p
			credit(p, func(r *matchRecord) {
				r.played++
				switch {
				case !decided:
					r.draws++
				case p == winner:
					r.wins++
				default:
					r.losses++
				}
			})
		}
	}
	return records
}

// BuildStandings ranks the registry by points (desc) then name. Equal points
// share a rank, the next rank skips accordingly (1, 2, 2, 4).
func BuildStandings(registry []models.Team, matches []models.Match, mode models.ScoringMode) []models.Standing {
	records := tallyRecords(mode, matches)

	teams := make([]models.Team, len(registry))
	copy(teams, registry)
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Points != teams[j].Points {
			return teams[i].Points > teams[j].Points
		}
		return teams[i].Name < teams[j].Name
	})

	standings := make([]models.Standing, 0, len(teams))
	for i, team := range teams {
		rank := i + 1
		if i > 0 && team.Points == teams[i-1].Points {
			rank = standings[i-1].Rank
		}
		s := models.Standing{
			Rank:   rank,
			Team:   team.Name,
			Color:  team.Color,
			Points: team.Points,
		}
		if r, ok := records[team.Name]; ok {
			s.GamesPlayed = r.played
			s.Wins = r.wins
			s.Draws = r.draws
			s.Losses = r.losses
		}
		standings = append(standings, s)
	}
	return standings
}
