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

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (name, code)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, department.Name, department.Code).Scan(&department.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT id, name, code
		FROM departments
		WHERE id = $1
	`

	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.Code,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetAll retrieves all departments ordered by name
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT id, name, code
		FROM departments
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(
			&department.ID,
			&department.Name,
			&department.Code,
		); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// ExistsByNameOrCode checks if a department exists by name or code
func (r *DepartmentRepository) ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE name = $1 OR code = $2)`,
		name, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}

	return exists, nil
}
