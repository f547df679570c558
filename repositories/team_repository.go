package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-results/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name is already in use")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByName(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	// ReplacePoints stores every total in one transaction. Teams missing from
	// totals are reset to zero.
	ReplacePoints(ctx context.Context, totals map[string]int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, color, points)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.Color, team.Points).Scan(&team.ID, &team.CreatedAt)
	if code, _, ok := pqCode(err); ok && code == pqUniqueViolation {
		return ErrTeamNameConflict
	}
	return err
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `SELECT id, name, color, points, created_at FROM teams WHERE name = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&team.ID, &team.Name, &team.Color, &team.Points, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT id, name, color, points, created_at FROM teams ORDER BY points DESC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(&team.ID, &team.Name, &team.Color, &team.Points, &team.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, &team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) ReplacePoints(ctx context.Context, totals map[string]int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE teams SET points = 0`); err != nil {
			return fmt.Errorf("failed to reset points: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `UPDATE teams SET points = $1 WHERE name = $2`)
		if err != nil {
			return fmt.Errorf("failed to prepare points update: %w", err)
		}
		defer stmt.Close()

		for name, points := range totals {
			result, err := stmt.ExecContext(ctx, points, name)
			if err != nil {
				return fmt.Errorf("failed to update points for %q: %w", name, err)
			}
			if err := checkAffectedRows(result, fmt.Errorf("%w: %q", ErrTeamNotFound, name)); err != nil {
				return err
			}
		}
		return nil
	})
}
