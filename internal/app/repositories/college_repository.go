package repositories

import (
	"context"

	"github.com/campuscope/campuscope/internal/app/models"
)

// CollegeRepository stores colleges and their departments.
// Derived review stats are not stored; callers fill them from ReviewRepository.RatingStats.
type CollegeRepository interface {
	ListColleges(ctx context.Context) ([]*models.College, error)
	FindCollegeByID(ctx context.Context, id string) (*models.College, error)
	// SearchColleges is a case-insensitive substring match over name, short name and location
	SearchColleges(ctx context.Context, query string) ([]*models.College, error)
	CreateCollege(ctx context.Context, college *models.College) (*models.College, error)

	ListDepartmentsByCollegeID(ctx context.Context, collegeID string) ([]*models.Department, error)
	FindDepartmentByID(ctx context.Context, id string) (*models.Department, error)
	CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error)
}
