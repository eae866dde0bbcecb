package services

import (
	"context"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
)

// CompanyService handles company registry operations
type CompanyService struct {
	companyRepo *repositories.CompanyRepository
}

// NewCompanyService creates a new company service instance
func NewCompanyService(companyRepo *repositories.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
	}
}

// CreateCompany registers a new company
func (s *CompanyService) CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest, createdBy int64) (*models.Company, error) {
	company := &models.Company{
		Name:      req.Name,
		LogoURL:   req.LogoURL,
		CreatedBy: createdBy,
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// GetCompanyByID retrieves a company by ID
func (s *CompanyService) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// GetAllCompanies retrieves all companies with their drive aggregates
func (s *CompanyService) GetAllCompanies(ctx context.Context) ([]*models.Company, error) {
	return s.companyRepo.GetAll(ctx)
}

// UpdateCompany applies a partial update to a company
func (s *CompanyService) UpdateCompany(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.LogoURL != nil {
		company.LogoURL = req.LogoURL
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// DeleteCompany removes a company. Companies with active drives cannot be
// deleted.
func (s *CompanyService) DeleteCompany(ctx context.Context, id int64) error {
	return s.companyRepo.Delete(ctx, id)
}
