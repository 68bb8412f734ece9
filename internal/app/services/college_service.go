package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// TrendingCollegesLimit is the number of colleges on the trending strip
const TrendingCollegesLimit = 3

// CollegeService serves the college catalogue with live review stats
type CollegeService struct {
	collegeRepo repositories.CollegeRepository
	reviewRepo  repositories.ReviewRepository
	logger      zerolog.Logger
}

// NewCollegeService creates a new CollegeService
func NewCollegeService(collegeRepo repositories.CollegeRepository, reviewRepo repositories.ReviewRepository, logger zerolog.Logger) *CollegeService {
	return &CollegeService{
		collegeRepo: collegeRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

func (s *CollegeService) withStats(ctx context.Context, colleges []*models.College) error {
	stats, err := s.reviewRepo.RatingStats(ctx, repositories.GroupByCollege)
	if err != nil {
		return fmt.Errorf("computing college stats: %w", err)
	}
	for _, c := range colleges {
		c.ApplyStats(stats[c.ID])
	}
	return nil
}

// List searches, filters and sorts the catalogue, then returns the requested page
func (s *CollegeService) List(ctx context.Context, query *dto.CollegeListQuery, page, size int) (*dto.CollegeListResponse, error) {
	if query.MinRanking > 0 && query.MaxRanking > 0 && query.MinRanking > query.MaxRanking {
		return nil, apperrors.NewValidationError("minRanking", "minRanking cannot exceed maxRanking")
	}

	var (
		colleges []*models.College
		err      error
	)
	if q := strings.TrimSpace(query.Query); q != "" {
		colleges, err = s.collegeRepo.SearchColleges(ctx, q)
	} else {
		colleges, err = s.collegeRepo.ListColleges(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("listing colleges: %w", err)
	}

	filtered := colleges[:0]
	for _, c := range colleges {
		if query.Country != "" && !strings.EqualFold(c.Country, query.Country) {
			continue
		}
		if query.Type != "" && !strings.EqualFold(c.Type, query.Type) {
			continue
		}
		if query.MinRanking > 0 && (c.Ranking == 0 || c.Ranking < query.MinRanking) {
			continue
		}
		if query.MaxRanking > 0 && (c.Ranking == 0 || c.Ranking > query.MaxRanking) {
			continue
		}
		filtered = append(filtered, c)
	}

	if err := s.withStats(ctx, filtered); err != nil {
		return nil, err
	}
	sortColleges(filtered, query.Sort)

	items, pagination := helpers.Paginate(filtered, page, size)
	return &dto.CollegeListResponse{Colleges: items, Pagination: pagination}, nil
}

// sortColleges orders in place. Unranked colleges go last when sorting by ranking.
func sortColleges(colleges []*models.College, by string) {
	var less func(a, b *models.College) bool
	switch by {
	case "ranking":
		less = func(a, b *models.College) bool {
			if (a.Ranking == 0) != (b.Ranking == 0) {
				return b.Ranking == 0
			}
			return a.Ranking < b.Ranking
		}
	case "rating":
		less = func(a, b *models.College) bool { return a.AverageRating > b.AverageRating }
	case "reviews":
		less = func(a, b *models.College) bool { return a.ReviewCount > b.ReviewCount }
	case "name":
		less = func(a, b *models.College) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		return
	}
	sort.SliceStable(colleges, func(i, j int) bool { return less(colleges[i], colleges[j]) })
}

// Trending returns the most reviewed colleges
func (s *CollegeService) Trending(ctx context.Context) ([]*models.College, error) {
	colleges, err := s.collegeRepo.ListColleges(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing colleges: %w", err)
	}
	if err := s.withStats(ctx, colleges); err != nil {
		return nil, err
	}
	sortColleges(colleges, "reviews")
	if len(colleges) > TrendingCollegesLimit {
		colleges = colleges[:TrendingCollegesLimit]
	}
	return colleges, nil
}

// Get returns one college with its live review stats
func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	college, err := s.collegeRepo.FindCollegeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.withStats(ctx, []*models.College{college}); err != nil {
		return nil, err
	}
	return college, nil
}

// Departments lists the departments of a college with their live review stats
func (s *CollegeService) Departments(ctx context.Context, collegeID string) ([]*models.Department, error) {
	if _, err := s.collegeRepo.FindCollegeByID(ctx, collegeID); err != nil {
		return nil, err
	}
	departments, err := s.collegeRepo.ListDepartmentsByCollegeID(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}

	stats, err := s.reviewRepo.RatingStats(ctx, repositories.GroupByDepartment)
	if err != nil {
		return nil, fmt.Errorf("computing department stats: %w", err)
	}
	for _, d := range departments {
		d.ApplyStats(stats[d.ID])
	}
	return departments, nil
}
