package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories/repotest"
)

func intPtr(v int) *int { return &v }

func TestMatchService_CreateMatch(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewMemoryStore()
	b := &recordingBroadcaster{}
	svc := NewMatchService(store.Matches(), b, testLogger())

	m, err := svc.CreateMatch(ctx, CreateMatchInput{ParticipantA: "A", ParticipantB: "B", Sport: "Chess", Stage: "Semis"})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, models.StageSemifinal, m.Stage)
	assert.Equal(t, models.StatusScheduled, m.Status)
	assert.Equal(t, []string{brackets.MessageMatchUpdated}, b.types())

	tests := []struct {
		name  string
		input CreateMatchInput
	}{
		{"unknown stage", CreateMatchInput{ParticipantA: "A", ParticipantB: "B", Sport: "Chess", Stage: "groups"}},
		{"same participant", CreateMatchInput{ParticipantA: "A", ParticipantB: "A", Sport: "Chess"}},
		{"missing sport", CreateMatchInput{ParticipantA: "A", ParticipantB: "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMatch(ctx, tt.input)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestMatchService_ListMatches(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewMemoryStore()
	svc := NewMatchService(store.Matches(), nil, testLogger())

	require.NoError(t, store.Matches().BatchCreate(ctx, nil, matchPointers([]models.Match{
		result("Chess", "A", "B", models.StageSemifinal, 1, 0),
		{ParticipantA: "C", ParticipantB: "D", Sport: "Chess", Stage: models.StageSemifinal, Status: models.StatusScheduled},
		{ParticipantA: "A", ParticipantB: "C", Sport: "Darts", Stage: models.StageNone, Status: models.StatusOngoing},
	})))

	all, err := svc.ListMatches(ctx, ListMatchesInput{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	chess, err := svc.ListMatches(ctx, ListMatchesInput{Sport: "Chess", Stage: "semifinal"})
	require.NoError(t, err)
	assert.Len(t, chess, 2)

	done, err := svc.ListMatches(ctx, ListMatchesInput{Status: "Finished"})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "A", done[0].ParticipantA)

	_, err = svc.ListMatches(ctx, ListMatchesInput{Status: "postponed"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	unfinished, err := svc.ListUnfinished(ctx)
	require.NoError(t, err)
	assert.Len(t, unfinished, 2)
}

func TestMatchService_UpdateScore(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewMemoryStore()
	b := &recordingBroadcaster{}
	svc := NewMatchService(store.Matches(), b, testLogger())

	m, err := svc.CreateMatch(ctx, CreateMatchInput{ParticipantA: "A", ParticipantB: "B", Sport: "Chess"})
	require.NoError(t, err)

	updated, err := svc.UpdateScore(ctx, m.ID, UpdateScoreInput{ScoreA: intPtr(3), ScoreB: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, updated.Status)
	assert.Equal(t, 3, updated.ScoreA)
	assert.Len(t, b.types(), 2)

	_, err = svc.UpdateScore(ctx, m.ID, UpdateScoreInput{ScoreA: intPtr(-1), ScoreB: intPtr(1)})
	assert.ErrorIs(t, err, ErrNegativeScore)

	_, err = svc.UpdateScore(ctx, m.ID, UpdateScoreInput{ScoreA: intPtr(1)})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.UpdateScore(ctx, 999, UpdateScoreInput{ScoreA: intPtr(1), ScoreB: intPtr(0)})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestMatchService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewMemoryStore()
	svc := NewMatchService(store.Matches(), nil, testLogger())

	m, err := svc.CreateMatch(ctx, CreateMatchInput{ParticipantA: "A", ParticipantB: "B", Sport: "Chess"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, m.ID, "Ongoing")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOngoing, updated.Status)

	_, err = svc.UpdateStatus(ctx, m.ID, "cancelled")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.UpdateStatus(ctx, 42, "finished")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
