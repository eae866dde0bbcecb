package models

import (
	"fmt"
	"time"
)

// ApplicationStatus is the single status type shared by every component that
// reads or writes an application's state.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusSelected    ApplicationStatus = "selected"
	StatusRejected    ApplicationStatus = "rejected"
	StatusOnHold      ApplicationStatus = "on_hold"
)

// IsValid reports whether the status is a member of the status enum.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusSelected, StatusRejected, StatusOnHold:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends active evaluation. Terminal here
// is advisory only: administrative status updates may still overwrite it.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusSelected || s == StatusRejected
}

// ParseApplicationStatus validates a raw status string against the enum.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	status := ApplicationStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid application status %q", raw)
	}
	return status, nil
}

// Application defines a student's candidacy for a drive, based on the
// 'applications' table. The (student_id, drive_id) pair is unique.
type Application struct {
	ID           int64             `json:"id" db:"id"`
	StudentID    int64             `json:"studentId" db:"student_id"`
	DriveID      int64             `json:"driveId" db:"drive_id"`
	Status       ApplicationStatus `json:"status" db:"status"`
	CurrentRound int               `json:"currentRound" db:"current_round"`
	AppliedAt    time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt    time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Drive   *Drive   `json:"drive,omitempty"`
}

// ApplicationDetail carries the joined context the lifecycle manager needs to
// act on a single application: the drive's round budget and the identifiers
// used to address the applicant's notifications.
type ApplicationDetail struct {
	Application
	UserID           int64   `json:"userId"`
	TotalRounds      int     `json:"totalRounds"`
	JobRole          string  `json:"jobRole"`
	CompanyName      string  `json:"companyName"`
	PackageCTC       float64 `json:"packageCtc"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	EnrollmentNumber string  `json:"enrollmentNumber"`
	Email            string  `json:"email"`
}
