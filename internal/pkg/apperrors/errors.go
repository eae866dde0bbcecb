package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
)

// Student errors
var (
	ErrStudentNotFound          = errors.New("student not found")
	ErrEnrollmentAlreadyExists  = errors.New("enrollment number already exists")
	ErrProfileNotApproved       = errors.New("student profile is not approved yet")
	ErrHODNotFound              = errors.New("HOD profile not found")
	ErrStudentOutsideDepartment = errors.New("student does not belong to this department")
)

// Department errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
)

// Company errors
var (
	ErrCompanyNotFound        = errors.New("company not found")
	ErrCompanyAlreadyExists   = errors.New("company already exists")
	ErrCompanyHasActiveDrives = errors.New("cannot delete company with active drives")
)

// Drive errors
var (
	ErrDriveNotFound        = errors.New("drive not found")
	ErrDriveNotActive       = errors.New("this drive is not active")
	ErrDeadlinePassed       = errors.New("application deadline has passed")
	ErrDriveHasApplications = errors.New("cannot delete drive with existing applications")
	ErrInvalidRounds        = errors.New("invalid round definition")
)

// Application lifecycle errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("student has already applied to this drive")
	ErrAlreadyFinalRound   = errors.New("already in final round")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrConcurrentUpdate    = errors.New("application was modified concurrently")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// EligibilitySeverity classifies a single eligibility issue.
type EligibilitySeverity string

const (
	SeverityCritical    EligibilitySeverity = "critical"
	SeverityProfile     EligibilitySeverity = "profile"
	SeverityEligibility EligibilitySeverity = "eligibility"
)

// EligibilityIssue is one failed eligibility check with its severity.
type EligibilityIssue struct {
	Severity EligibilitySeverity `json:"type"`
	Message  string              `json:"message"`
}

// EligibilityError carries the complete, ordered list of failed checks so the
// caller can render every corrective action at once rather than the first one.
type EligibilityError struct {
	Issues []EligibilityIssue
}

// Error implements the error interface
func (e *EligibilityError) Error() string {
	return "eligibility criteria not met"
}

// Is makes errors.Is(err, ErrValidationFailed) match eligibility failures.
func (e *EligibilityError) Is(target error) bool {
	return target == ErrValidationFailed
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
