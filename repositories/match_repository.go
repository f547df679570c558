package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-results/models"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchInvalidScore = errors.New("match scores must not be negative")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	// BatchCreate inserts all matches atomically. Passing a nil exec opens its
	// own transaction.
	BatchCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter models.MatchFilter) ([]models.Match, error)
	ListSports(ctx context.Context) ([]string, error)
	UpdateScore(ctx context.Context, id int, scoreA, scoreB int) error
	UpdateStatus(ctx context.Context, id int, status models.MatchStatus) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const insertMatchQuery = `
	INSERT INTO matches (participant_a, participant_b, sport, stage, status, score_a, score_b)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	err := executor.QueryRowContext(ctx, insertMatchQuery,
		match.ParticipantA, match.ParticipantB, match.Sport, match.Stage, match.Status, match.ScoreA, match.ScoreB,
	).Scan(&match.ID, &match.CreatedAt)
	return mapMatchError(err)
}

func (r *postgresMatchRepository) BatchCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	if exec != nil {
		return r.insertAll(ctx, exec, matches)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return r.insertAll(ctx, tx, matches)
	})
}

func (r *postgresMatchRepository) insertAll(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	for i, match := range matches {
		if err := r.Create(ctx, exec, match); err != nil {
			return fmt.Errorf("BatchCreate failed at match %d (%s vs %s): %w", i, match.ParticipantA, match.ParticipantB, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID, &m.ParticipantA, &m.ParticipantB, &m.Sport, &m.Stage, &m.Status, &m.ScoreA, &m.ScoreB, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

const selectMatchColumns = `SELECT id, participant_a, participant_b, sport, stage, status, score_a, score_b, created_at FROM matches`

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	row := r.db.QueryRowContext(ctx, selectMatchColumns+` WHERE id = $1`, id)
	return r.scanMatch(row)
}

func (r *postgresMatchRepository) List(ctx context.Context, filter models.MatchFilter) ([]models.Match, error) {
	query := selectMatchColumns + ` WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.Sport != nil {
		query += fmt.Sprintf(" AND sport = $%d", argID)
		args = append(args, *filter.Sport)
		argID++
	}
	if filter.Stage != nil {
		query += fmt.Sprintf(" AND stage = $%d", argID)
		args = append(args, *filter.Stage)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
	}
	// Порядок вставки важен: резолвер берёт первые полуфиналы и финал.
	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) ListSports(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT sport FROM matches ORDER BY sport ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	defer rows.Close()

	sports := make([]string, 0)
	for rows.Next() {
		var sport string
		if err := rows.Scan(&sport); err != nil {
			return nil, err
		}
		sports = append(sports, sport)
	}
	return sports, rows.Err()
}

// UpdateScore records a result and marks the match finished.
func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id int, scoreA, scoreB int) error {
	query := `UPDATE matches SET score_a = $1, score_b = $2, status = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, scoreA, scoreB, models.StatusFinished, id)
	if err != nil {
		return mapMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, id int, status models.MatchStatus) error {
	query := `UPDATE matches SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return mapMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func mapMatchError(err error) error {
	if err == nil {
		return nil
	}
	if code, constraint, ok := pqCode(err); ok && code == pqCheckViolation {
		if constraint == "matches_scores_check" {
			return ErrMatchInvalidScore
		}
		return fmt.Errorf("match violates constraint %s: %w", constraint, err)
	}
	return err
}
