package models

type Rank int

const (
	RankFirst  Rank = 1
	RankSecond Rank = 2
	RankThird  Rank = 3
	RankFourth Rank = 4
)

// PointsAward maps a bracket rank to the points it is worth.
type PointsAward map[Rank]int

// DefaultPointsAward is the fixed 3/2/1/0 policy.
var DefaultPointsAward = PointsAward{
	RankFirst:  3,
	RankSecond: 2,
	RankThird:  1,
	RankFourth: 0,
}

// Placement is the 1st-4th ranking derived from one sport's finished bracket.
// It is recomputed on every resolution and never stored.
type Placement struct {
	Sport  string `json:"sport"`
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
	Fourth string `json:"fourth"`

	SemifinalWinners []string `json:"semifinal_winners"`
	SemifinalLosers  []string `json:"semifinal_losers"`
}

func (p Placement) Ranks() map[string]Rank {
	return map[string]Rank{
		p.First:  RankFirst,
		p.Second: RankSecond,
		p.Third:  RankThird,
		p.Fourth: RankFourth,
	}
}

// RankOf returns the participant's rank, or false if it was not placed.
func (p Placement) RankOf(participant string) (Rank, bool) {
	switch participant {
	case "":
		return 0, false
	case p.First:
		return RankFirst, true
	case p.Second:
		return RankSecond, true
	case p.Third:
		return RankThird, true
	case p.Fourth:
		return RankFourth, true
	}
	return 0, false
}

// Deltas converts the placement into per-participant points.
func (p Placement) Deltas(award PointsAward) map[string]int {
	deltas := make(map[string]int, 4)
	for participant, rank := range p.Ranks() {
		deltas[participant] = award[rank]
	}
	return deltas
}
