package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OverallStats holds the placement office's headline counters
type OverallStats struct {
	TotalStudents     int64
	ApprovedStudents  int64
	TotalCompanies    int64
	ActiveDrives      int64
	TotalApplications int64
	TotalSelected     int64
}

// StatsRepository aggregates cross-table counters for dashboards
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: db,
	}
}

// Overall gathers the placement office dashboard counters in one round trip
func (r *StatsRepository) Overall(ctx context.Context) (*OverallStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM students WHERE is_approved),
			(SELECT COUNT(*) FROM companies),
			(SELECT COUNT(*) FROM placement_drives WHERE status = 'active'),
			(SELECT COUNT(*) FROM applications),
			(SELECT COUNT(DISTINCT student_id) FROM applications WHERE status = 'selected')
	`

	var stats OverallStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalStudents,
		&stats.ApprovedStudents,
		&stats.TotalCompanies,
		&stats.ActiveDrives,
		&stats.TotalApplications,
		&stats.TotalSelected,
	)
	if err != nil {
		return nil, fmt.Errorf("error retrieving overall stats: %w", err)
	}

	return &stats, nil
}

// CompanyApplications is one row of the top-companies ranking
type CompanyApplications struct {
	CompanyName  string
	Applications int64
	Selected     int64
}

// TopCompanies ranks companies by how many applications their drives drew
func (r *StatsRepository) TopCompanies(ctx context.Context, limit int) ([]CompanyApplications, error) {
	query := `
		SELECT c.name,
		       COUNT(a.id),
		       COUNT(a.id) FILTER (WHERE a.status = 'selected')
		FROM companies c
		JOIN placement_drives pd ON pd.company_id = c.id
		JOIN applications a ON a.drive_id = pd.id
		GROUP BY c.id, c.name
		ORDER BY COUNT(a.id) DESC, c.name
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving top companies: %w", err)
	}
	defer rows.Close()

	var ranking []CompanyApplications
	for rows.Next() {
		var row CompanyApplications
		if err := rows.Scan(&row.CompanyName, &row.Applications, &row.Selected); err != nil {
			return nil, fmt.Errorf("error scanning top companies row: %w", err)
		}
		ranking = append(ranking, row)
	}

	return ranking, rows.Err()
}

// StatusDistribution counts applications per lifecycle status
func (r *StatsRepository) StatusDistribution(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving status distribution: %w", err)
	}
	defer rows.Close()

	distribution := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning status distribution row: %w", err)
		}
		distribution[status] = count
	}

	return distribution, rows.Err()
}

// DepartmentPlacement is one department's placement outcome
type DepartmentPlacement struct {
	DepartmentName string
	TotalStudents  int64
	PlacedStudents int64
}

// DepartmentPlacements counts placed students per department
func (r *StatsRepository) DepartmentPlacements(ctx context.Context) ([]DepartmentPlacement, error) {
	query := `
		SELECT d.name,
		       COUNT(DISTINCT s.id),
		       COUNT(DISTINCT a.student_id) FILTER (WHERE a.status = 'selected')
		FROM departments d
		LEFT JOIN students s ON s.department_id = d.id
		LEFT JOIN applications a ON a.student_id = s.id
		GROUP BY d.id, d.name
		ORDER BY d.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving department placements: %w", err)
	}
	defer rows.Close()

	var placements []DepartmentPlacement
	for rows.Next() {
		var row DepartmentPlacement
		if err := rows.Scan(&row.DepartmentName, &row.TotalStudents, &row.PlacedStudents); err != nil {
			return nil, fmt.Errorf("error scanning department placements row: %w", err)
		}
		placements = append(placements, row)
	}

	return placements, rows.Err()
}
