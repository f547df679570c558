// Package repotest provides an in-memory store for tests that need the
// repository interfaces without a database.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

// MemoryStore keeps teams and matches in process memory. It implements both
// repository interfaces with the same error semantics as the postgres
// repositories.
type MemoryStore struct {
	mu      sync.RWMutex
	teams   []models.Team
	matches []models.Match
	nextID  int
	now     func() time.Time

	// FailOn forces the named operation ("List", "ReplacePoints", ...) to
	// return the error.
	FailOn map[string]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, now: time.Now, FailOn: map[string]error{}}
}

func (s *MemoryStore) fail(op string) error {
	return s.FailOn[op]
}

// Teams returns the team repository view of the store.
func (s *MemoryStore) Teams() repositories.TeamRepository { return memoryTeams{s} }

// Matches returns the match repository view of the store.
func (s *MemoryStore) Matches() repositories.MatchRepository { return memoryMatches{s} }

type memoryTeams struct{ s *MemoryStore }

func (r memoryTeams) Create(ctx context.Context, team *models.Team) error {
	s := r.s
	if err := s.fail("CreateTeam"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = s.nextID
	team.CreatedAt = s.now()
	s.nextID++
	s.teams = append(s.teams, *team)
	return nil
}

func (r memoryTeams) GetByName(ctx context.Context, name string) (*models.Team, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teams {
		if t.Name == name {
			t := t
			return &t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r memoryTeams) List(ctx context.Context) ([]*models.Team, error) {
	s := r.s
	if err := s.fail("ListTeams"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]*models.Team, 0, len(s.teams))
	for _, t := range s.teams {
		t := t
		teams = append(teams, &t)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Points != teams[j].Points {
			return teams[i].Points > teams[j].Points
		}
		return teams[i].Name < teams[j].Name
	})
	return teams, nil
}

func (r memoryTeams) ReplacePoints(ctx context.Context, totals map[string]int) error {
	s := r.s
	if err := s.fail("ReplacePoints"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int, len(s.teams))
	for i, t := range s.teams {
		index[t.Name] = i
	}
	for name := range totals {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%w: %q", repositories.ErrTeamNotFound, name)
		}
	}
	for i := range s.teams {
		s.teams[i].Points = totals[s.teams[i].Name]
	}
	return nil
}

type memoryMatches struct{ s *MemoryStore }

func (r memoryMatches) Create(ctx context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	s := r.s
	if err := s.fail("CreateMatch"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(match)
	return nil
}

func (s *MemoryStore) insert(match *models.Match) {
	match.ID = s.nextID
	match.CreatedAt = s.now()
	s.nextID++
	s.matches = append(s.matches, *match)
}

func (r memoryMatches) BatchCreate(ctx context.Context, _ repositories.SQLExecutor, matches []*models.Match) error {
	s := r.s
	if err := s.fail("BatchCreate"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range matches {
		if m.ScoreA < 0 || m.ScoreB < 0 {
			return repositories.ErrMatchInvalidScore
		}
	}
	for _, m := range matches {
		s.insert(m)
	}
	return nil
}

func (r memoryMatches) GetByID(ctx context.Context, id int) (*models.Match, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matches {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r memoryMatches) List(ctx context.Context, filter models.MatchFilter) ([]models.Match, error) {
	s := r.s
	if err := s.fail("ListMatches"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]models.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if filter.Sport != nil && m.Sport != *filter.Sport {
			continue
		}
		if filter.Stage != nil && m.Stage != *filter.Stage {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (r memoryMatches) ListSports(ctx context.Context) ([]string, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	sports := make([]string, 0)
	for _, m := range s.matches {
		if !seen[m.Sport] {
			seen[m.Sport] = true
			sports = append(sports, m.Sport)
		}
	}
	sort.Strings(sports)
	return sports, nil
}

func (r memoryMatches) UpdateScore(ctx context.Context, id int, scoreA, scoreB int) error {
	if scoreA < 0 || scoreB < 0 {
		return repositories.ErrMatchInvalidScore
	}
	return r.update(id, func(m *models.Match) {
		m.ScoreA, m.ScoreB = scoreA, scoreB
		m.Status = models.StatusFinished
	})
}

func (r memoryMatches) UpdateStatus(ctx context.Context, id int, status models.MatchStatus) error {
	return r.update(id, func(m *models.Match) { m.Status = status })
}

func (r memoryMatches) update(id int, apply func(m *models.Match)) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.matches {
		if s.matches[i].ID == id {
			apply(&s.matches[i])
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}
