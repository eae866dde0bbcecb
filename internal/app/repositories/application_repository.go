package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// ApplicationRepository handles database operations for applications. Every
// state change that carries a notification writes both rows in one
// transaction, so a recorded transition always has its notification.
type ApplicationRepository struct {
	database *db.PostgresDB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(database *db.PostgresDB) *ApplicationRepository {
	return &ApplicationRepository{
		database: database,
	}
}

// Insert records a new application and its submission notification
// atomically. A duplicate (student, drive) pair maps to ErrAlreadyApplied via
// the table's unique constraint, which also closes the concurrent-submit race.
func (r *ApplicationRepository) Insert(ctx context.Context, app *models.Application, notif *models.Notification) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO applications (student_id, drive_id, status, current_round)
			VALUES ($1, $2, $3, $4)
			RETURNING id, applied_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			app.StudentID, app.DriveID, app.Status, app.CurrentRound,
		).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrAlreadyApplied
			}
			return fmt.Errorf("error creating application: %w", err)
		}

		notif.RelatedEntityID = &app.ID
		return insertNotification(ctx, tx, notif)
	})
}

// Exists checks whether the student already applied to the drive
func (r *ApplicationRepository) Exists(ctx context.Context, studentID, driveID int64) (bool, error) {
	var exists bool
	err := r.database.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND drive_id = $2)`,
		studentID, driveID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}

	return exists, nil
}

const applicationDetailColumns = `
	a.id, a.student_id, a.drive_id, a.status, a.current_round, a.applied_at, a.updated_at,
	s.user_id, d.total_rounds, d.job_role, c.name, d.package_ctc,
	s.first_name, s.last_name, s.enrollment_number, u.email`

func scanApplicationDetail(row pgx.Row) (*models.ApplicationDetail, error) {
	var detail models.ApplicationDetail
	err := row.Scan(
		&detail.ID,
		&detail.StudentID,
		&detail.DriveID,
		&detail.Status,
		&detail.CurrentRound,
		&detail.AppliedAt,
		&detail.UpdatedAt,
		&detail.UserID,
		&detail.TotalRounds,
		&detail.JobRole,
		&detail.CompanyName,
		&detail.PackageCTC,
		&detail.FirstName,
		&detail.LastName,
		&detail.EnrollmentNumber,
		&detail.Email,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetDetail retrieves an application joined with its student, user, drive and
// company context
func (r *ApplicationRepository) GetDetail(ctx context.Context, id int64) (*models.ApplicationDetail, error) {
	query := `
		SELECT ` + applicationDetailColumns + `
		FROM applications a
		JOIN students s ON s.id = a.student_id
		JOIN users u ON u.id = s.user_id
		JOIN placement_drives d ON d.id = a.drive_id
		JOIN companies c ON c.id = d.company_id
		WHERE a.id = $1
	`

	detail, err := scanApplicationDetail(r.database.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return detail, nil
}

// ListByStudent retrieves a student's applications newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.ApplicationDetail, error) {
	query := `
		SELECT ` + applicationDetailColumns + `
		FROM applications a
		JOIN students s ON s.id = a.student_id
		JOIN users u ON u.id = s.user_id
		JOIN placement_drives d ON d.id = a.drive_id
		JOIN companies c ON c.id = d.company_id
		WHERE a.student_id = $1
		ORDER BY a.applied_at DESC
	`

	return r.listDetails(ctx, query, studentID)
}

// ListByDrive retrieves a drive's applications. The status filter is
// optional; empty returns everything.
func (r *ApplicationRepository) ListByDrive(ctx context.Context, driveID int64, status models.ApplicationStatus) ([]*models.ApplicationDetail, error) {
	query := `
		SELECT ` + applicationDetailColumns + `
		FROM applications a
		JOIN students s ON s.id = a.student_id
		JOIN users u ON u.id = s.user_id
		JOIN placement_drives d ON d.id = a.drive_id
		JOIN companies c ON c.id = d.company_id
		WHERE a.drive_id = $1 AND ($2 = '' OR a.status = $2)
		ORDER BY a.applied_at
	`

	return r.listDetails(ctx, query, driveID, string(status))
}

func (r *ApplicationRepository) listDetails(ctx context.Context, query string, args ...any) ([]*models.ApplicationDetail, error) {
	rows, err := r.database.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*models.ApplicationDetail
	for rows.Next() {
		detail, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

// AdvanceRound moves an application to a new round and status, guarded by the
// round the caller observed. A zero-row update means another writer got there
// first (or the application vanished); the two cases map to different errors.
// The round-update notification commits with the state change.
func (r *ApplicationRepository) AdvanceRound(ctx context.Context, id int64, newRound int, newStatus models.ApplicationStatus, expectedRound int, notif *models.Notification) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE applications
			SET current_round = $1, status = $2, updated_at = NOW()
			WHERE id = $3 AND current_round = $4
		`

		cmdTag, err := tx.Exec(ctx, query, newRound, newStatus, id, expectedRound)
		if err != nil {
			return fmt.Errorf("error advancing application round: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `
				SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
				return fmt.Errorf("error checking application existence: %w", err)
			}
			if exists {
				return apperrors.ErrConcurrentUpdate
			}
			return apperrors.ErrApplicationNotFound
		}

		return insertNotification(ctx, tx, notif)
	})
}

// UpdateStatus sets an application's status. When notif is nil only the
// status row changes; some statuses carry no notification.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, notif *models.Notification) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
			status, id)
		if err != nil {
			return fmt.Errorf("error updating application status: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrApplicationNotFound
		}

		if notif == nil {
			return nil
		}
		return insertNotification(ctx, tx, notif)
	})
}

// BulkUpdateStatus sets one status on many applications in a single
// statement and reports how many rows changed. Missing IDs are skipped, not
// errors.
func (r *ApplicationRepository) BulkUpdateStatus(ctx context.Context, ids []int64, status models.ApplicationStatus) (int64, error) {
	cmdTag, err := r.database.Pool.Exec(ctx, `
		UPDATE applications SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		status, ids)
	if err != nil {
		return 0, fmt.Errorf("error bulk updating applications: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// StudentStats returns a student's application counts by status
func (r *ApplicationRepository) StudentStats(ctx context.Context, studentID int64) (total, applied, shortlisted, selected, rejected int64, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'applied'),
		       COUNT(*) FILTER (WHERE status = 'shortlisted'),
		       COUNT(*) FILTER (WHERE status = 'selected'),
		       COUNT(*) FILTER (WHERE status = 'rejected')
		FROM applications
		WHERE student_id = $1
	`

	err = r.database.Pool.QueryRow(ctx, query, studentID).Scan(&total, &applied, &shortlisted, &selected, &rejected)
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("error retrieving application stats: %w", err)
	}

	return total, applied, shortlisted, selected, rejected, nil
}

// DriveStats returns a drive's application counts by status
func (r *ApplicationRepository) DriveStats(ctx context.Context, driveID int64) (total, applied, shortlisted, selected, rejected int, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'applied'),
		       COUNT(*) FILTER (WHERE status = 'shortlisted'),
		       COUNT(*) FILTER (WHERE status = 'selected'),
		       COUNT(*) FILTER (WHERE status = 'rejected')
		FROM applications
		WHERE drive_id = $1
	`

	err = r.database.Pool.QueryRow(ctx, query, driveID).Scan(&total, &applied, &shortlisted, &selected, &rejected)
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("error retrieving drive stats: %w", err)
	}

	return total, applied, shortlisted, selected, rejected, nil
}
