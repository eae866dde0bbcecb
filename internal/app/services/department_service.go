package services

import (
	"context"
	"strings"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// DepartmentService handles department registry operations
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
	}
}

// CreateDepartment creates a new department. Codes are uppercase alphanumeric.
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	department.Name = strings.TrimSpace(department.Name)
	department.Code = strings.ToUpper(strings.TrimSpace(department.Code))

	if department.Name == "" || department.Code == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "department name and code are required")
	}

	exists, err := s.departmentRepo.ExistsByNameOrCode(ctx, department.Name, department.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	return s.departmentRepo.Create(ctx, department)
}

// GetDepartmentByID retrieves a department by ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// GetAllDepartments retrieves all departments
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}
