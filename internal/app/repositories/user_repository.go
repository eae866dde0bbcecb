package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// UserRepository handles database operations for user accounts and their
// role-specific profile rows
type UserRepository struct {
	database *db.PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		database: database,
	}
}

// CreateStudentAccount creates a user row and its student profile atomically
func (r *UserRepository) CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}

		query := `
			INSERT INTO students (user_id, department_id, enrollment_number, first_name, last_name, phone)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`
		err := tx.QueryRow(ctx, query,
			user.ID, student.DepartmentID, student.EnrollmentNumber,
			student.FirstName, student.LastName, student.Phone,
		).Scan(&student.ID, &student.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrEnrollmentAlreadyExists
			}
			return fmt.Errorf("error creating student profile: %w", err)
		}

		student.UserID = user.ID
		return nil
	})
}

// CreateHODAccount creates a user row and its HOD profile atomically
func (r *UserRepository) CreateHODAccount(ctx context.Context, user *models.User, hod *models.HeadOfDepartment) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}

		query := `
			INSERT INTO hods (user_id, department_id, first_name, last_name, phone)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := tx.QueryRow(ctx, query,
			user.ID, hod.DepartmentID, hod.FirstName, hod.LastName, hod.Phone,
		).Scan(&hod.ID)
		if err != nil {
			return fmt.Errorf("error creating HOD profile: %w", err)
		}

		hod.UserID = user.ID
		return nil
	})
}

// CreateTPOAccount creates a user row and its placement officer profile atomically
func (r *UserRepository) CreateTPOAccount(ctx context.Context, user *models.User, tpo *models.PlacementOfficer) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}

		query := `
			INSERT INTO tpos (user_id, first_name, last_name, phone, designation)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := tx.QueryRow(ctx, query,
			user.ID, tpo.FirstName, tpo.LastName, tpo.Phone, tpo.Designation,
		).Scan(&tpo.ID)
		if err != nil {
			return fmt.Errorf("error creating TPO profile: %w", err)
		}

		tpo.UserID = user.ID
		return nil
	})
}

func insertUser(ctx context.Context, tx pgx.Tx, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role_type, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query,
		user.Email, user.Password, user.RoleType, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role_type, is_active, created_at, last_login_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.database.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.RoleType,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role_type, is_active, created_at, last_login_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.database.Pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.RoleType,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.database.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	cmdTag, err := r.database.Pool.Exec(ctx, `
		UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint error
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
