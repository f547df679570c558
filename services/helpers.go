package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

// Broadcaster pushes live updates to websocket viewers. *brackets.Hub
// satisfies it.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// Notifier announces rebuilt standings outside the app.
type Notifier interface {
	NotifyStandings(ctx context.Context, standings []models.Standing, reportURL string) error
}

func broadcast(b Broadcaster, msgType string, payload interface{}) {
	if b == nil {
		return
	}
	b.BroadcastToRoom(brackets.StandingsRoom, brackets.WebSocketMessage{
		Type:    msgType,
		Payload: payload,
		RoomID:  brackets.StandingsRoom,
	})
}

// handleRepositoryError переводит ошибки репозитория в ошибки сервисного слоя.
func handleRepositoryError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTeamNotFound):
		return fmt.Errorf("%s: %w", op, ErrTeamNotFound)
	case errors.Is(err, repositories.ErrMatchNotFound):
		return fmt.Errorf("%s: %w", op, ErrMatchNotFound)
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return fmt.Errorf("%s: %w", op, ErrTeamNameConflict)
	case errors.Is(err, repositories.ErrMatchInvalidScore):
		return fmt.Errorf("%s: %w", op, ErrNegativeScore)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func matchPointers(matches []models.Match) []*models.Match {
	result := make([]*models.Match, len(matches))
	for i := range matches {
		result[i] = &matches[i]
	}
	return result
}

func dereferenceTeams(slice []*models.Team) []models.Team {
	if slice == nil {
		return []models.Team{}
	}
	result := make([]models.Team, 0, len(slice))
	for _, ptr := range slice {
		if ptr != nil {
			result = append(result, *ptr)
		}
	}
	return result
}
