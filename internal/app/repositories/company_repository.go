package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{
		db: db,
	}
}

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, description, website, industry, location, logo_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		company.Name, company.Description, company.Website,
		company.Industry, company.Location, company.LogoURL, company.CreatedBy,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrCompanyAlreadyExists
		}
		return fmt.Errorf("error creating company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `
		SELECT id, name, description, website, industry, location, logo_url,
		       created_by, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var company models.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&company.Description,
		&company.Website,
		&company.Industry,
		&company.Location,
		&company.LogoURL,
		&company.CreatedBy,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	return &company, nil
}

// GetAll retrieves all companies with drive and application aggregates
func (r *CompanyRepository) GetAll(ctx context.Context) ([]*models.Company, error) {
	query := `
		SELECT c.id, c.name, c.description, c.website, c.industry, c.location, c.logo_url,
		       c.created_by, c.created_at, c.updated_at,
		       COUNT(DISTINCT d.id) AS total_drives,
		       COUNT(a.id) AS total_applications
		FROM companies c
		LEFT JOIN placement_drives d ON d.company_id = c.id
		LEFT JOIN applications a ON a.drive_id = d.id
		GROUP BY c.id
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		var company models.Company
		if err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Description,
			&company.Website,
			&company.Industry,
			&company.Location,
			&company.LogoURL,
			&company.CreatedBy,
			&company.CreatedAt,
			&company.UpdatedAt,
			&company.TotalDrives,
			&company.TotalApplications,
		); err != nil {
			return nil, err
		}
		companies = append(companies, &company)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return companies, nil
}

// Update updates an existing company
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $1, description = $2, website = $3, industry = $4,
		    location = $5, logo_url = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		company.Name, company.Description, company.Website,
		company.Industry, company.Location, company.LogoURL, company.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrCompanyAlreadyExists
		}
		return fmt.Errorf("error updating company: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}

	return nil
}

// Delete deletes a company. Companies with active drives cannot be removed.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	var hasActiveDrives bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM placement_drives WHERE company_id = $1 AND status = 'active')`,
		id).Scan(&hasActiveDrives)
	if err != nil {
		return fmt.Errorf("error checking active drives: %w", err)
	}

	if hasActiveDrives {
		return apperrors.ErrCompanyHasActiveDrives
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting company: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}

	return nil
}
