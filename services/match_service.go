package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	ListMatches(ctx context.Context, input ListMatchesInput) ([]models.Match, error)
	// ListUnfinished returns scheduled and ongoing matches.
	ListUnfinished(ctx context.Context) ([]models.Match, error)
	UpdateScore(ctx context.Context, matchID int, input UpdateScoreInput) (*models.Match, error)
	UpdateStatus(ctx context.Context, matchID int, status string) (*models.Match, error)
}

type CreateMatchInput struct {
	ParticipantA string `json:"participant_a"`
	ParticipantB string `json:"participant_b"`
	Sport        string `json:"sport"`
	Stage        string `json:"stage,omitempty"`
}

type ListMatchesInput struct {
	Sport  string
	Stage  string
	Status string
}

type UpdateScoreInput struct {
	ScoreA *int `json:"score_a"`
	ScoreB *int `json:"score_b"`
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	broadcaster Broadcaster
	logger      *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, broadcaster Broadcaster, logger *slog.Logger) MatchService {
	return &matchService{matchRepo: matchRepo, broadcaster: broadcaster, logger: logger}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	stage, err := models.ParseStage(input.Stage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	match, err := models.NewMatch(input.ParticipantA, input.ParticipantB, input.Sport, stage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if err := s.matchRepo.Create(ctx, nil, &match); err != nil {
		return nil, handleRepositoryError(err, "create match")
	}
	s.logger.InfoContext(ctx, "match added",
		slog.Int("match_id", match.ID),
		slog.String("sport", match.Sport),
		slog.String("stage", string(match.Stage)),
	)
	broadcast(s.broadcaster, brackets.MessageMatchUpdated, match)
	return &match, nil
}

func (s *matchService) ListMatches(ctx context.Context, input ListMatchesInput) ([]models.Match, error) {
	filter := models.MatchFilter{Sport: optionalString(input.Sport)}
	if input.Stage != "" {
		stage, err := models.ParseStage(input.Stage)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		filter.Stage = &stage
	}
	if input.Status != "" {
		status, err := models.ParseStatus(input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		filter.Status = &status
	}
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, handleRepositoryError(err, "list matches")
	}
	return matches, nil
}

func (s *matchService) ListUnfinished(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx, models.MatchFilter{})
	if err != nil {
		return nil, handleRepositoryError(err, "list matches")
	}
	unfinished := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if !m.IsFinished() {
			unfinished = append(unfinished, m)
		}
	}
	return unfinished, nil
}

func (s *matchService) UpdateScore(ctx context.Context, matchID int, input UpdateScoreInput) (*models.Match, error) {
	if input.ScoreA == nil || input.ScoreB == nil {
		return nil, fmt.Errorf("%w: score_a and score_b are required", ErrValidationFailed)
	}
	if *input.ScoreA < 0 || *input.ScoreB < 0 {
		return nil, ErrNegativeScore
	}
	if err := s.matchRepo.UpdateScore(ctx, matchID, *input.ScoreA, *input.ScoreB); err != nil {
		return nil, handleRepositoryError(err, "update score")
	}
	return s.reload(ctx, matchID)
}

func (s *matchService) UpdateStatus(ctx context.Context, matchID int, raw string) (*models.Match, error) {
	status, err := models.ParseStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if err := s.matchRepo.UpdateStatus(ctx, matchID, status); err != nil {
		return nil, handleRepositoryError(err, "update status")
	}
	return s.reload(ctx, matchID)
}

func (s *matchService) reload(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, handleRepositoryError(err, "reload match")
	}
	s.logger.InfoContext(ctx, "match updated",
		slog.Int("match_id", match.ID),
		slog.String("status", string(match.Status)),
		slog.Int("score_a", match.ScoreA),
		slog.Int("score_b", match.ScoreB),
	)
	broadcast(s.broadcaster, brackets.MessageMatchUpdated, match)
	return match, nil
}
