package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/placementhub/internal/app/models"
	appRepos "github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/auth"
)

// CreateDefaultData creates default departments and a placement officer
// account if they don't exist.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(database.Pool)
	userRepo := appRepos.NewUserRepository(database)

	lgr.Info().Msg("Checking/Creating default data (Departments/TPO account)...")
	var finalErr error

	defaultDepartments := []appModels.Department{
		{Name: "Computer Science and Engineering", Code: "CSE"},
		{Name: "Electronics and Communication Engineering", Code: "ECE"},
		{Name: "Mechanical Engineering", Code: "ME"},
		{Name: "Civil Engineering", Code: "CE"},
	}

	for i := range defaultDepartments {
		dept := defaultDepartments[i]
		err := departmentRepo.Create(ctx, &dept)
		if err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Create Default TPO Account --- //
	tpoEmail := "tpo@placementhub.edu"
	exists, err := userRepo.EmailExists(ctx, tpoEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if TPO account exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		return finalErr
	}

	lgr.Info().Msg("Creating default TPO account...")

	hashedPassword, err := auth.HashPassword("Placement123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing TPO password")
		return errors.Join(finalErr, err)
	}

	user := &appModels.User{
		Email:    tpoEmail,
		Password: hashedPassword,
		RoleType: appModels.RoleTPO,
		IsActive: true,
	}
	tpo := &appModels.PlacementOfficer{
		FirstName:   "Placement",
		LastName:    "Officer",
		Designation: "Training and Placement Officer",
	}
	if err := userRepo.CreateTPOAccount(ctx, user, tpo); err != nil {
		lgr.Error().Err(err).Msg("Error creating default TPO account")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Str("email", tpoEmail).Msg("Default TPO account created")
	return finalErr
}
