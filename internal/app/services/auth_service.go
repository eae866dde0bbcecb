package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserAccountStore is the persistence surface auth needs: account creation
// per role plus the login reads and writes.
type UserAccountStore interface {
	CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error
	CreateHODAccount(ctx context.Context, user *models.User, hod *models.HeadOfDepartment) error
	CreateTPOAccount(ctx context.Context, user *models.User, tpo *models.PlacementOfficer) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// ProfileNameReader resolves display names from role profiles
type ProfileNameReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetHODByUserID(ctx context.Context, userID int64) (*models.HeadOfDepartment, error)
}

// DepartmentReader resolves departments during registration
type DepartmentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// AuthService handles registration, login and token issuance for the three
// roles
type AuthService struct {
	users       UserAccountStore
	profiles    ProfileNameReader
	departments DepartmentReader
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users UserAccountStore,
	profiles ProfileNameReader,
	departments DepartmentReader,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		profiles:    profiles,
		departments: departments,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// validateRegistration checks the request against role requirements before
// any database work
func (s *AuthService) validateRegistration(req *dto.RegisterRequest, role models.RoleType) error {
	if !emailRegex.MatchString(req.Email) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid email format")
	}

	if len(req.Password) < 6 {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "password must be at least 6 characters long")
	}

	switch role {
	case models.RoleStudent:
		if req.DepartmentID <= 0 {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "department is required for students")
		}
		if strings.TrimSpace(req.EnrollmentNumber) == "" {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "enrollment number is required for students")
		}
	case models.RoleHOD:
		if req.DepartmentID <= 0 {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "department is required for HODs")
		}
	}

	return nil
}

// Register creates an account for any of the three roles. Students start
// unapproved; approval is a department concern, not a registration one.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.RoleType(strings.ToUpper(req.Role))
	if !role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	if err := s.validateRegistration(req, role); err != nil {
		return nil, err
	}

	if role == models.RoleStudent || role == models.RoleHOD {
		if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    strings.ToLower(req.Email),
		Password: hashedPassword,
		RoleType: role,
		IsActive: true,
	}

	switch role {
	case models.RoleStudent:
		student := &models.Student{
			DepartmentID:     req.DepartmentID,
			EnrollmentNumber: req.EnrollmentNumber,
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			Phone:            req.Phone,
		}
		err = s.users.CreateStudentAccount(ctx, user, student)

	case models.RoleHOD:
		hod := &models.HeadOfDepartment{
			DepartmentID: req.DepartmentID,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Phone:        req.Phone,
		}
		err = s.users.CreateHODAccount(ctx, user, hod)

	case models.RoleTPO:
		tpo := &models.PlacementOfficer{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Phone:       req.Phone,
			Designation: req.Designation,
		}
		err = s.users.CreateTPOAccount(ctx, user, tpo)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("role", string(role)).Msg("User registered")

	return s.issueToken(user, req.FirstName, req.LastName)
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login")
	}

	firstName, lastName := s.lookupName(ctx, user)
	return s.issueToken(user, firstName, lastName)
}

// GetProfile resolves the authenticated identity for the /me endpoint
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issueToken(user *models.User, firstName, lastName string) (*dto.AuthResponse, error) {
	accessToken, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
		UserID:      user.ID,
		Email:       user.Email,
		Role:        string(user.RoleType),
		FirstName:   firstName,
		LastName:    lastName,
	}, nil
}

// lookupName fetches the display name from the role profile. Login works
// even if the profile read fails; the name is cosmetic.
func (s *AuthService) lookupName(ctx context.Context, user *models.User) (string, string) {
	switch user.RoleType {
	case models.RoleStudent:
		if student, err := s.profiles.GetByUserID(ctx, user.ID); err == nil {
			return student.FirstName, student.LastName
		}
	case models.RoleHOD:
		if hod, err := s.profiles.GetHODByUserID(ctx, user.ID); err == nil {
			return hod.FirstName, hod.LastName
		}
	}
	return "", ""
}
