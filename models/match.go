package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMatch = errors.New("invalid match")

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusOngoing   MatchStatus = "ongoing"
	StatusFinished  MatchStatus = "finished"
)

// BracketStage: позиция матча в сетке вида спорта. StageNone для обычных матчей.
type BracketStage string

const (
	StageNone       BracketStage = "none"
	StageSemifinal  BracketStage = "semifinal"
	StageFinal      BracketStage = "final"
	StageThirdPlace BracketStage = "third_place"
)

// ParseStatus accepts any letter case ("Finished", "finished").
func ParseStatus(s string) (MatchStatus, error) {
	switch MatchStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusOngoing:
		return StatusOngoing, nil
	case StatusFinished:
		return StatusFinished, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidMatch, s)
}

// ParseStage also understands the legacy sheet labels Semis, Finals and Losers.
func ParseStage(s string) (BracketStage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return StageNone, nil
	case "semifinal", "semis":
		return StageSemifinal, nil
	case "final", "finals":
		return StageFinal, nil
	case "third_place", "losers":
		return StageThirdPlace, nil
	}
	return "", fmt.Errorf("%w: unknown bracket stage %q", ErrInvalidMatch, s)
}

type Match struct {
	ID           int          `json:"id"`
	ParticipantA string       `json:"participant_a"`
	ParticipantB string       `json:"participant_b"`
	Sport        string       `json:"sport"`
	Stage        BracketStage `json:"stage"`
	Status       MatchStatus  `json:"status"`
	ScoreA       int          `json:"score_a"`
	ScoreB       int          `json:"score_b"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewMatch builds a scheduled match and validates it.
func NewMatch(a, b, sport string, stage BracketStage) (Match, error) {
	m := Match{
		ParticipantA: strings.TrimSpace(a),
		ParticipantB: strings.TrimSpace(b),
		Sport:        strings.TrimSpace(sport),
		Stage:        stage,
		Status:       StatusScheduled,
	}
	if m.Stage == "" {
		m.Stage = StageNone
	}
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

func (m Match) Validate() error {
	if m.ParticipantA == "" || m.ParticipantB == "" {
		return fmt.Errorf("%w: both participants are required", ErrInvalidMatch)
	}
	if m.ParticipantA == m.ParticipantB {
		return fmt.Errorf("%w: %q cannot play against itself", ErrInvalidMatch, m.ParticipantA)
	}
	if m.Sport == "" {
		return fmt.Errorf("%w: sport is required", ErrInvalidMatch)
	}
	if _, err := ParseStage(string(m.Stage)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(m.Status)); err != nil {
		return err
	}
	if m.ScoreA < 0 || m.ScoreB < 0 {
		return fmt.Errorf("%w: scores must not be negative", ErrInvalidMatch)
	}
	return nil
}

func (m Match) IsFinished() bool {
	return m.Status == StatusFinished
}

// Winner is defined only for finished matches with different scores.
func (m Match) Winner() (string, bool) {
	if !m.IsFinished() || m.ScoreA == m.ScoreB {
		return "", false
	}
	if m.ScoreA > m.ScoreB {
		return m.ParticipantA, true
	}
	return m.ParticipantB, true
}

func (m Match) Loser() (string, bool) {
	if !m.IsFinished() || m.ScoreA == m.ScoreB {
		return "", false
	}
	if m.ScoreA > m.ScoreB {
		return m.ParticipantB, true
	}
	return m.ParticipantA, true
}

// MatchFilter: фильтр для выборки матчей; nil поля не применяются.
type MatchFilter struct {
	Sport  *string
	Stage  *BracketStage
	Status *MatchStatus
}
