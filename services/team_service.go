package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, name string) (*models.Team, error)
}

type CreateTeamInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	logger   *slog.Logger
}

func NewTeamService(teamRepo repositories.TeamRepository, logger *slog.Logger) TeamService {
	return &teamService{teamRepo: teamRepo, logger: logger}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	team, err := models.NewTeam(input.Name, input.Color)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTeam) {
			return nil, ErrTeamNameRequired
		}
		return nil, err
	}
	if err := s.teamRepo.Create(ctx, &team); err != nil {
		return nil, handleRepositoryError(err, "create team")
	}
	s.logger.InfoContext(ctx, "team registered", slog.String("team", team.Name), slog.Int("team_id", team.ID))
	return &team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list teams")
	}
	return dereferenceTeams(teams), nil
}

func (s *teamService) GetTeam(ctx context.Context, name string) (*models.Team, error) {
	team, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		return nil, handleRepositoryError(err, "get team")
	}
	return team, nil
}
