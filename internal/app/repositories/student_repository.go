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

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `
	s.id, s.user_id, s.department_id, s.enrollment_number, s.first_name, s.last_name,
	s.phone, s.cgpa, s.backlogs, s.year_of_study, s.skills, s.bio, s.resume_url,
	s.is_approved, s.approved_by, s.approved_at, s.created_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.UserID,
		&student.DepartmentID,
		&student.EnrollmentNumber,
		&student.FirstName,
		&student.LastName,
		&student.Phone,
		&student.CGPA,
		&student.Backlogs,
		&student.YearOfStudy,
		&student.Skills,
		&student.Bio,
		&student.ResumeURL,
		&student.IsApproved,
		&student.ApprovedBy,
		&student.ApprovedAt,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByUserID retrieves a student profile by its owning user ID
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.user_id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// UpdateProfile updates the student's own editable fields. Nil values leave
// the stored value unchanged.
func (r *StudentRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, phone, skills, bio *string, cgpa *float64, backlogs, yearOfStudy *int) error {
	query := `
		UPDATE students
		SET first_name = COALESCE($1, first_name),
		    last_name = COALESCE($2, last_name),
		    phone = COALESCE($3, phone),
		    skills = COALESCE($4, skills),
		    bio = COALESCE($5, bio),
		    cgpa = COALESCE($6, cgpa),
		    backlogs = COALESCE($7, backlogs),
		    year_of_study = COALESCE($8, year_of_study)
		WHERE user_id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query, firstName, lastName, phone, skills, bio, cgpa, backlogs, yearOfStudy, userID)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdateResumeURL stores the uploaded resume location
func (r *StudentRepository) UpdateResumeURL(ctx context.Context, userID int64, resumeURL string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students SET resume_url = $1 WHERE user_id = $2`, resumeURL, userID)
	if err != nil {
		return fmt.Errorf("error updating resume: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// ListByDepartment retrieves department students with their application
// counts. The approved filter is optional; nil returns everyone. Search
// matches name and enrollment number case-insensitively.
func (r *StudentRepository) ListByDepartment(ctx context.Context, departmentID int64, approved *bool, search string) ([]*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `,
		       (SELECT COUNT(*) FROM applications a WHERE a.student_id = s.id)
		FROM students s
		WHERE s.department_id = $1
		  AND ($2::boolean IS NULL OR s.is_approved = $2)
		  AND ($3 = '' OR s.first_name ILIKE '%' || $3 || '%'
		       OR s.last_name ILIKE '%' || $3 || '%'
		       OR s.enrollment_number ILIKE '%' || $3 || '%')
		ORDER BY s.enrollment_number
	`

	rows, err := r.db.Query(ctx, query, departmentID, approved, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.DepartmentID,
			&student.EnrollmentNumber,
			&student.FirstName,
			&student.LastName,
			&student.Phone,
			&student.CGPA,
			&student.Backlogs,
			&student.YearOfStudy,
			&student.Skills,
			&student.Bio,
			&student.ResumeURL,
			&student.IsApproved,
			&student.ApprovedBy,
			&student.ApprovedAt,
			&student.CreatedAt,
			&student.ApplicationCount,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Approve marks a student profile approved by the given HOD user. Approval is
// scoped: the student must belong to the HOD's department.
func (r *StudentRepository) Approve(ctx context.Context, studentID, departmentID, approvedByUserID int64) error {
	query := `
		UPDATE students
		SET is_approved = TRUE, approved_by = $1, approved_at = NOW()
		WHERE id = $2 AND department_id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, approvedByUserID, studentID, departmentID)
	if err != nil {
		return fmt.Errorf("error approving student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.classifyScopedMiss(ctx, studentID)
	}

	return nil
}

// Revoke withdraws a student's approval within the HOD's department
func (r *StudentRepository) Revoke(ctx context.Context, studentID, departmentID int64) error {
	query := `
		UPDATE students
		SET is_approved = FALSE, approved_by = NULL, approved_at = NULL
		WHERE id = $1 AND department_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, studentID, departmentID)
	if err != nil {
		return fmt.Errorf("error revoking student approval: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.classifyScopedMiss(ctx, studentID)
	}

	return nil
}

// BulkApprove approves many students in one statement, scoped to the HOD's
// department. Returns the number of students actually approved.
func (r *StudentRepository) BulkApprove(ctx context.Context, studentIDs []int64, departmentID, approvedByUserID int64) (int64, error) {
	query := `
		UPDATE students
		SET is_approved = TRUE, approved_by = $1, approved_at = NOW()
		WHERE id = ANY($2) AND department_id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, approvedByUserID, studentIDs, departmentID)
	if err != nil {
		return 0, fmt.Errorf("error bulk approving students: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// classifyScopedMiss distinguishes "no such student" from "student exists but
// belongs to another department" after a zero-row scoped update.
func (r *StudentRepository) classifyScopedMiss(ctx context.Context, studentID int64) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking student existence: %w", err)
	}

	if exists {
		return apperrors.ErrStudentOutsideDepartment
	}
	return apperrors.ErrStudentNotFound
}

// DepartmentStats returns headline counts for a department dashboard
func (r *StudentRepository) DepartmentStats(ctx context.Context, departmentID int64) (total, approved, placed int64, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE s.is_approved),
		       COUNT(DISTINCT a.student_id)
		FROM students s
		LEFT JOIN applications a ON a.student_id = s.id AND a.status = 'selected'
		WHERE s.department_id = $1
	`

	err = r.db.QueryRow(ctx, query, departmentID).Scan(&total, &approved, &placed)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error retrieving department stats: %w", err)
	}

	return total, approved, placed, nil
}

// GetHODByUserID retrieves the HOD profile for a user
func (r *StudentRepository) GetHODByUserID(ctx context.Context, userID int64) (*models.HeadOfDepartment, error) {
	query := `
		SELECT h.id, h.user_id, h.department_id, h.first_name, h.last_name, h.phone
		FROM hods h
		WHERE h.user_id = $1
	`

	var hod models.HeadOfDepartment
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&hod.ID,
		&hod.UserID,
		&hod.DepartmentID,
		&hod.FirstName,
		&hod.LastName,
		&hod.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHODNotFound
		}
		return nil, fmt.Errorf("error retrieving HOD profile: %w", err)
	}

	return &hod, nil
}
