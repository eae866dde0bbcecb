package services

import (
	"context"
	"math"

	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
)

// StatsService builds the placement office dashboard
type StatsService struct {
	statsRepo *repositories.StatsRepository
}

// NewStatsService creates a new stats service instance
func NewStatsService(statsRepo *repositories.StatsRepository) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
	}
}

// GetTPOStats gathers the placement office counters. The placement rate is
// selected students over approved students, as a percentage.
func (s *StatsService) GetTPOStats(ctx context.Context) (*dto.TPOStats, error) {
	overall, err := s.statsRepo.Overall(ctx)
	if err != nil {
		return nil, err
	}

	var rate float64
	if overall.ApprovedStudents > 0 {
		rate = float64(overall.TotalSelected) / float64(overall.ApprovedStudents) * 100
		rate = math.Round(rate*100) / 100
	}

	return &dto.TPOStats{
		TotalStudents:     overall.TotalStudents,
		ApprovedStudents:  overall.ApprovedStudents,
		TotalCompanies:    overall.TotalCompanies,
		ActiveDrives:      overall.ActiveDrives,
		TotalApplications: overall.TotalApplications,
		TotalSelected:     overall.TotalSelected,
		PlacementRate:     rate,
	}, nil
}

const topCompaniesLimit = 5

// GetAnalytics assembles the analytics view: the busiest companies, the
// application status distribution and per-department placement outcomes.
func (s *StatsService) GetAnalytics(ctx context.Context) (*dto.PlacementAnalytics, error) {
	ranking, err := s.statsRepo.TopCompanies(ctx, topCompaniesLimit)
	if err != nil {
		return nil, err
	}

	distribution, err := s.statsRepo.StatusDistribution(ctx)
	if err != nil {
		return nil, err
	}

	placements, err := s.statsRepo.DepartmentPlacements(ctx)
	if err != nil {
		return nil, err
	}

	analytics := &dto.PlacementAnalytics{
		TopCompanies:       make([]dto.CompanyRanking, 0, len(ranking)),
		StatusDistribution: distribution,
		Departments:        make([]dto.DepartmentPlacementStats, 0, len(placements)),
	}
	for _, row := range ranking {
		analytics.TopCompanies = append(analytics.TopCompanies, dto.CompanyRanking{
			CompanyName:  row.CompanyName,
			Applications: row.Applications,
			Selected:     row.Selected,
		})
	}
	for _, row := range placements {
		analytics.Departments = append(analytics.Departments, dto.DepartmentPlacementStats{
			DepartmentName: row.DepartmentName,
			TotalStudents:  row.TotalStudents,
			PlacedStudents: row.PlacedStudents,
		})
	}

	return analytics, nil
}
