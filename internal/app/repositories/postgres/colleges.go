package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
)

var collegeColumns = []string{
	"id", "name", "short_name", "location", "country", "description", "founded", "type",
	"ranking", "nirf_ranking", "acceptance_rate", "student_count", "undergraduate_count",
	"graduate_count", "international_student_percentage", "male_female_ratio", "tuition_fee",
	"average_living_cost", "popular_majors", "top_employers", "average_salary_after_graduation",
	"website", "logo_url", "banner_url", "campus_images", "entrance_exams",
	"reservation_categories", "fee_structure", "placement_stats", "hostel_info", "events",
}

var departmentColumns = []string{
	"id", "college_id", "name", "description", "faculty_count", "student_count", "courses", "facilities",
}

func scanCollege(row pgx.Row) (*models.College, error) {
	var c models.College
	err := row.Scan(
		&c.ID, &c.Name, &c.ShortName, &c.Location, &c.Country, &c.Description, &c.Founded, &c.Type,
		&c.Ranking, &c.NIRFRanking, &c.AcceptanceRate, &c.StudentCount, &c.UndergraduateCount,
		&c.GraduateCount, &c.InternationalStudentPercentage, &c.MaleFemaleRatio, &c.TuitionFee,
		&c.AverageLivingCost, &c.PopularMajors, &c.TopEmployers, &c.AverageSalaryAfterGraduation,
		&c.Website, &c.LogoURL, &c.BannerURL, &c.CampusImages, &c.EntranceExams,
		&c.ReservationCategories, &c.FeeStructure, &c.PlacementStats, &c.HostelInfo, &c.Events,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	err := row.Scan(&d.ID, &d.CollegeID, &d.Name, &d.Description, &d.FacultyCount, &d.StudentCount, &d.Courses, &d.Facilities)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) queryColleges(ctx context.Context, where squirrel.Sqlizer) ([]*models.College, error) {
	b := s.sb.Select(collegeColumns...).From("colleges").OrderBy("seq ASC")
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := build("list colleges", b)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error executing list colleges query")
		return nil, fmt.Errorf("error querying colleges: %w", err)
	}
	return collect(rows, scanCollege)
}

func (s *Store) ListColleges(ctx context.Context) ([]*models.College, error) {
	return s.queryColleges(ctx, nil)
}

func (s *Store) FindCollegeByID(ctx context.Context, id string) (*models.College, error) {
	query, args, err := build("get college", s.sb.Select(collegeColumns...).From("colleges").Where(squirrel.Eq{"id": id}).Limit(1))
	if err != nil {
		return nil, err
	}
	c, err := scanCollege(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, fmt.Errorf("error getting college by ID: %w", err)
	}
	return c, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *Store) SearchColleges(ctx context.Context, query string) ([]*models.College, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.queryColleges(ctx, nil)
	}
	pattern := "%" + likeEscaper.Replace(q) + "%"
	return s.queryColleges(ctx, squirrel.Or{
		squirrel.ILike{"name": pattern},
		squirrel.ILike{"short_name": pattern},
		squirrel.ILike{"location": pattern},
	})
}

func (s *Store) CreateCollege(ctx context.Context, college *models.College) (*models.College, error) {
	c := college.Clone()
	c.ID = s.idOr(c.ID)
	c.ApplyStats(models.RatingStats{})

	query, args, err := build("create college", s.sb.Insert("colleges").Columns(collegeColumns...).Values(
		c.ID, c.Name, c.ShortName, c.Location, c.Country, c.Description, c.Founded, c.Type,
		c.Ranking, c.NIRFRanking, c.AcceptanceRate, c.StudentCount, c.UndergraduateCount,
		c.GraduateCount, c.InternationalStudentPercentage, c.MaleFemaleRatio, c.TuitionFee,
		c.AverageLivingCost, nonNil(c.PopularMajors), nonNil(c.TopEmployers), c.AverageSalaryAfterGraduation,
		c.Website, c.LogoURL, c.BannerURL, nonNil(c.CampusImages), nonNil(c.EntranceExams),
		nonNil(c.ReservationCategories), nonNil(c.FeeStructure), nonNil(c.PlacementStats),
		nonNil(c.HostelInfo), nonNil(c.Events),
	))
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("college already exists")
		}
		s.logger.Error().Err(err).Str("collegeID", c.ID).Msg("Error executing create college query")
		return nil, fmt.Errorf("error creating college: %w", err)
	}
	return c, nil
}

func (s *Store) ListDepartmentsByCollegeID(ctx context.Context, collegeID string) ([]*models.Department, error) {
	query, args, err := build("list departments", s.sb.Select(departmentColumns...).
		From("departments").
		Where(squirrel.Eq{"college_id": collegeID}).
		OrderBy("seq ASC"))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	return collect(rows, scanDepartment)
}

func (s *Store) FindDepartmentByID(ctx context.Context, id string) (*models.Department, error) {
	query, args, err := build("get department", s.sb.Select(departmentColumns...).From("departments").Where(squirrel.Eq{"id": id}).Limit(1))
	if err != nil {
		return nil, err
	}
	d, err := scanDepartment(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error getting department by ID: %w", err)
	}
	return d, nil
}

func (s *Store) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	d := department.Clone()
	d.ID = s.idOr(d.ID)
	d.ApplyStats(models.RatingStats{})

	query, args, err := build("create department", s.sb.Insert("departments").Columns(departmentColumns...).Values(
		d.ID, d.CollegeID, d.Name, d.Description, d.FacultyCount, d.StudentCount, nonNil(d.Courses), nonNil(d.Facilities),
	))
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		switch {
		case dberrors.IsForeignKeyError(err, ""):
			return nil, apperrors.ErrCollegeNotFound
		case dberrors.IsUniqueViolation(err):
			return nil, apperrors.NewConflictError("department already exists")
		}
		return nil, fmt.Errorf("error creating department: %w", err)
	}
	return d, nil
}
