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

// DriveRepository handles database operations for placement drives and their
// rounds
type DriveRepository struct {
	database *db.PostgresDB
}

// NewDriveRepository creates a new drive repository
func NewDriveRepository(database *db.PostgresDB) *DriveRepository {
	return &DriveRepository{
		database: database,
	}
}

// Create inserts a drive and its rounds atomically. The drive's TotalRounds
// must already equal len(drive.Rounds); callers normalize rounds first.
func (r *DriveRepository) Create(ctx context.Context, drive *models.Drive) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO placement_drives (
				company_id, job_role, job_description, package_ctc, package_base,
				package_stipend, location, job_type, min_cgpa, max_backlogs,
				application_deadline, status, total_rounds, created_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			drive.CompanyID, drive.JobRole, drive.JobDescription,
			drive.PackageCTC, drive.PackageBase, drive.PackageStipend,
			drive.Location, drive.JobType, drive.MinCGPA, drive.MaxBacklogs,
			drive.ApplicationDeadline, drive.Status, drive.TotalRounds, drive.CreatedBy,
		).Scan(&drive.ID, &drive.CreatedAt, &drive.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating drive: %w", err)
		}

		for i := range drive.Rounds {
			round := &drive.Rounds[i]
			round.DriveID = drive.ID

			err := tx.QueryRow(ctx, `
				INSERT INTO drive_rounds (drive_id, round_number, round_name, round_type)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				round.DriveID, round.RoundNumber, round.RoundName, round.RoundType,
			).Scan(&round.ID)
			if err != nil {
				return fmt.Errorf("error creating drive round: %w", err)
			}
		}

		return nil
	})
}

const driveColumns = `
	d.id, d.company_id, d.job_role, d.job_description, d.package_ctc, d.package_base,
	d.package_stipend, d.location, d.job_type, d.min_cgpa, d.max_backlogs,
	d.application_deadline, d.status, d.total_rounds, d.created_by, d.created_at, d.updated_at,
	c.name, c.industry, c.website, c.logo_url`

func scanDrive(row pgx.Row) (*models.Drive, error) {
	var drive models.Drive
	err := row.Scan(
		&drive.ID,
		&drive.CompanyID,
		&drive.JobRole,
		&drive.JobDescription,
		&drive.PackageCTC,
		&drive.PackageBase,
		&drive.PackageStipend,
		&drive.Location,
		&drive.JobType,
		&drive.MinCGPA,
		&drive.MaxBacklogs,
		&drive.ApplicationDeadline,
		&drive.Status,
		&drive.TotalRounds,
		&drive.CreatedBy,
		&drive.CreatedAt,
		&drive.UpdatedAt,
		&drive.CompanyName,
		&drive.CompanyIndustry,
		&drive.CompanyWebsite,
		&drive.CompanyLogoURL,
	)
	if err != nil {
		return nil, err
	}
	return &drive, nil
}

// GetByID retrieves a drive with its company and rounds
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.Drive, error) {
	query := `
		SELECT ` + driveColumns + `
		FROM placement_drives d
		JOIN companies c ON c.id = d.company_id
		WHERE d.id = $1
	`

	drive, err := scanDrive(r.database.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}

	rounds, err := r.GetRounds(ctx, id)
	if err != nil {
		return nil, err
	}
	drive.Rounds = rounds

	return drive, nil
}

// GetRounds retrieves a drive's rounds ordered by round number
func (r *DriveRepository) GetRounds(ctx context.Context, driveID int64) ([]models.Round, error) {
	query := `
		SELECT id, drive_id, round_number, round_name, round_type
		FROM drive_rounds
		WHERE drive_id = $1
		ORDER BY round_number
	`

	rows, err := r.database.Pool.Query(ctx, query, driveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []models.Round
	for rows.Next() {
		var round models.Round
		if err := rows.Scan(
			&round.ID,
			&round.DriveID,
			&round.RoundNumber,
			&round.RoundName,
			&round.RoundType,
		); err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rounds, nil
}

// GetAll retrieves drives with application aggregates. The status filter is
// optional; empty returns every drive.
func (r *DriveRepository) GetAll(ctx context.Context, status models.DriveStatus) ([]*models.Drive, error) {
	query := `
		SELECT ` + driveColumns + `,
		       COUNT(a.id) AS application_count,
		       COUNT(a.id) FILTER (WHERE a.status = 'selected') AS selected_count
		FROM placement_drives d
		JOIN companies c ON c.id = d.company_id
		LEFT JOIN applications a ON a.drive_id = d.id
		WHERE ($1 = '' OR d.status = $1)
		GROUP BY d.id, c.id
		ORDER BY d.application_deadline
	`

	rows, err := r.database.Pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drives []*models.Drive
	for rows.Next() {
		var drive models.Drive
		if err := rows.Scan(
			&drive.ID,
			&drive.CompanyID,
			&drive.JobRole,
			&drive.JobDescription,
			&drive.PackageCTC,
			&drive.PackageBase,
			&drive.PackageStipend,
			&drive.Location,
			&drive.JobType,
			&drive.MinCGPA,
			&drive.MaxBacklogs,
			&drive.ApplicationDeadline,
			&drive.Status,
			&drive.TotalRounds,
			&drive.CreatedBy,
			&drive.CreatedAt,
			&drive.UpdatedAt,
			&drive.CompanyName,
			&drive.CompanyIndustry,
			&drive.CompanyWebsite,
			&drive.CompanyLogoURL,
			&drive.ApplicationCount,
			&drive.SelectedCount,
		); err != nil {
			return nil, err
		}
		drives = append(drives, &drive)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drives, nil
}

// Update updates an existing drive's mutable fields
func (r *DriveRepository) Update(ctx context.Context, drive *models.Drive) error {
	query := `
		UPDATE placement_drives
		SET job_role = $1, job_description = $2, package_ctc = $3, package_base = $4,
		    package_stipend = $5, location = $6, job_type = $7, min_cgpa = $8,
		    max_backlogs = $9, application_deadline = $10, status = $11, updated_at = NOW()
		WHERE id = $12
	`

	cmdTag, err := r.database.Pool.Exec(ctx, query,
		drive.JobRole, drive.JobDescription, drive.PackageCTC, drive.PackageBase,
		drive.PackageStipend, drive.Location, drive.JobType, drive.MinCGPA,
		drive.MaxBacklogs, drive.ApplicationDeadline, drive.Status, drive.ID)
	if err != nil {
		return fmt.Errorf("error updating drive: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}

// Delete removes a drive and its rounds. Drives that have received
// applications cannot be deleted.
func (r *DriveRepository) Delete(ctx context.Context, id int64) error {
	var hasApplications bool
	err := r.database.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM applications WHERE drive_id = $1)`,
		id).Scan(&hasApplications)
	if err != nil {
		return fmt.Errorf("error checking drive applications: %w", err)
	}

	if hasApplications {
		return apperrors.ErrDriveHasApplications
	}

	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM drive_rounds WHERE drive_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting drive rounds: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM placement_drives WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting drive: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrDriveNotFound
		}

		return nil
	})
}
