package models

import "time"

// Student defines the student model based on the 'students' table. CGPA and
// the resume reference stay nullable until the student fills in their profile.
type Student struct {
	ID               int64      `json:"id" db:"id"`
	UserID           int64      `json:"userId" db:"user_id"`
	DepartmentID     int64      `json:"departmentId" db:"department_id"`
	EnrollmentNumber string     `json:"enrollmentNumber" db:"enrollment_number"`
	FirstName        string     `json:"firstName" db:"first_name"`
	LastName         string     `json:"lastName" db:"last_name"`
	Phone            string     `json:"phone" db:"phone"`
	CGPA             *float64   `json:"cgpa,omitempty" db:"cgpa"`
	Backlogs         int        `json:"backlogs" db:"backlogs"`
	YearOfStudy      *int       `json:"yearOfStudy,omitempty" db:"year_of_study"`
	Skills           *string    `json:"skills,omitempty" db:"skills"`
	Bio              *string    `json:"bio,omitempty" db:"bio"`
	ResumeURL        *string    `json:"resumeUrl,omitempty" db:"resume_url"`
	IsApproved       bool       `json:"isApproved" db:"is_approved"`
	ApprovedBy       *int64     `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty" db:"approved_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`

	// Aggregates (populated by list queries)
	ApplicationCount int `json:"applicationCount,omitempty"`
}

// HeadOfDepartment defines the HOD model based on the 'hods' table. The
// department reference scopes every read and write the HOD performs.
type HeadOfDepartment struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int64  `json:"userId" db:"user_id"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	Phone        string `json:"phone" db:"phone"`

	Department *Department `json:"department,omitempty"`
}

// PlacementOfficer defines the TPO model based on the 'tpos' table
type PlacementOfficer struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"userId" db:"user_id"`
	FirstName   string `json:"firstName" db:"first_name"`
	LastName    string `json:"lastName" db:"last_name"`
	Phone       string `json:"phone" db:"phone"`
	Designation string `json:"designation" db:"designation"`
}
