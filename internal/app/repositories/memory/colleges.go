package memory

import (
	"context"
	"strings"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
)

func (s *Store) ListColleges(ctx context.Context) ([]*models.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.College, 0, len(s.collegeOrder))
	for _, id := range s.collegeOrder {
		out = append(out, s.colleges[id].Clone())
	}
	return out, nil
}

func (s *Store) FindCollegeByID(ctx context.Context, id string) (*models.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.colleges[id]
	if !ok {
		return nil, apperrors.ErrCollegeNotFound
	}
	return c.Clone(), nil
}

func (s *Store) SearchColleges(ctx context.Context, query string) ([]*models.College, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.College, 0)
	for _, id := range s.collegeOrder {
		c := s.colleges[id]
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.ShortName), q) ||
			strings.Contains(strings.ToLower(c.Location), q) {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (s *Store) CreateCollege(ctx context.Context, college *models.College) (*models.College, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := college.Clone()
	c.ID = s.idOr(c.ID)
	if _, exists := s.colleges[c.ID]; exists {
		return nil, apperrors.NewConflictError("college already exists")
	}
	c.ApplyStats(models.RatingStats{})

	s.colleges[c.ID] = c
	s.collegeOrder = append(s.collegeOrder, c.ID)
	return c.Clone(), nil
}

func (s *Store) ListDepartmentsByCollegeID(ctx context.Context, collegeID string) ([]*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.deptsByColl[collegeID]
	out := make([]*models.Department, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.departments[id].Clone())
	}
	return out, nil
}

func (s *Store) FindDepartmentByID(ctx context.Context, id string) (*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return d.Clone(), nil
}

func (s *Store) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.colleges[department.CollegeID]; !ok {
		return nil, apperrors.ErrCollegeNotFound
	}
	d := department.Clone()
	d.ID = s.idOr(d.ID)
	if _, exists := s.departments[d.ID]; exists {
		return nil, apperrors.NewConflictError("department already exists")
	}
	d.ApplyStats(models.RatingStats{})

	s.departments[d.ID] = d
	s.deptsByColl[d.CollegeID] = append(s.deptsByColl[d.CollegeID], d.ID)
	return d.Clone(), nil
}
