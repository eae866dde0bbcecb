package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// ApplicationStore is the persistence surface the lifecycle manager needs.
// Mutations that produce a notification take it as an argument so the store
// can commit both in one transaction.
type ApplicationStore interface {
	Insert(ctx context.Context, app *models.Application, notif *models.Notification) error
	Exists(ctx context.Context, studentID, driveID int64) (bool, error)
	GetDetail(ctx context.Context, id int64) (*models.ApplicationDetail, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.ApplicationDetail, error)
	ListByDrive(ctx context.Context, driveID int64, status models.ApplicationStatus) ([]*models.ApplicationDetail, error)
	AdvanceRound(ctx context.Context, id int64, newRound int, newStatus models.ApplicationStatus, expectedRound int, notif *models.Notification) error
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, notif *models.Notification) error
	BulkUpdateStatus(ctx context.Context, ids []int64, status models.ApplicationStatus) (int64, error)
}

// DriveReader resolves drives for submission checks
type DriveReader interface {
	GetByID(ctx context.Context, id int64) (*models.Drive, error)
}

// StudentReader resolves the applicant's profile
type StudentReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// EmailDispatcher sends application emails. Implementations may silently
// no-op when mail is not configured.
type EmailDispatcher interface {
	SendApplicationSubmitted(to, studentName, companyName, jobRole string) error
	SendShortlistedEmail(to, studentName, companyName, jobRole string, round int) error
	SendSelectedEmail(to, studentName, companyName, jobRole string, packageCTC float64) error
	SendRejectedEmail(to, studentName, companyName, jobRole string) error
}

// ApplicationService manages the application lifecycle: submission, round
// promotion, rejection and administrative status changes. In-app
// notifications commit atomically with the state change they describe;
// emails go out after commit and never affect the outcome.
type ApplicationService struct {
	store    ApplicationStore
	drives   DriveReader
	students StudentReader
	email    EmailDispatcher
}

// NewApplicationService creates a new application service instance
func NewApplicationService(store ApplicationStore, drives DriveReader, students StudentReader, email EmailDispatcher) *ApplicationService {
	return &ApplicationService{
		store:    store,
		drives:   drives,
		students: students,
		email:    email,
	}
}

// Submit applies a student to a drive. Preconditions run in a fixed order:
// the drive must exist and be active, the deadline must not have passed, the
// student must not have applied already, and every eligibility check must
// pass. Eligibility failures return the complete issue list.
func (s *ApplicationService) Submit(ctx context.Context, userID, driveID int64) (*models.Application, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	drive, err := s.drives.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	if drive.Status != models.DriveActive {
		return nil, apperrors.ErrDriveNotActive
	}

	if time.Now().After(drive.ApplicationDeadline) {
		return nil, apperrors.ErrDeadlinePassed
	}

	exists, err := s.store.Exists(ctx, student.ID, driveID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	if issues := EvaluateEligibility(student, drive); len(issues) > 0 {
		return nil, &apperrors.EligibilityError{Issues: issues}
	}

	app := &models.Application{
		StudentID:    student.ID,
		DriveID:      driveID,
		Status:       models.StatusApplied,
		CurrentRound: 0,
	}

	notif := applicationNotification(userID,
		"Application Submitted",
		fmt.Sprintf("Your application to %s has been submitted.", drive.CompanyName),
		models.NotificationSuccess)

	if err := s.store.Insert(ctx, app, notif); err != nil {
		return nil, err
	}

	if detail, err := s.store.GetDetail(ctx, app.ID); err == nil {
		s.sendAsync("submission", func() error {
			return s.email.SendApplicationSubmitted(detail.Email, detail.FirstName+" "+detail.LastName, drive.CompanyName, drive.JobRole)
		})
	}

	return app, nil
}

// Promote advances an application one round. The last round promotes to
// selected, every earlier round to shortlisted. An application already at
// the final round cannot be promoted again.
func (s *ApplicationService) Promote(ctx context.Context, applicationID int64) (*models.ApplicationDetail, error) {
	detail, err := s.store.GetDetail(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if detail.CurrentRound >= detail.TotalRounds {
		return nil, apperrors.ErrAlreadyFinalRound
	}

	newRound := detail.CurrentRound + 1
	newStatus := models.StatusShortlisted
	if newRound == detail.TotalRounds {
		newStatus = models.StatusSelected
	}

	message := fmt.Sprintf("You have been shortlisted for Round %d.", newRound)
	notifType := models.NotificationInfo
	if newStatus == models.StatusSelected {
		message = "Congratulations! You have been SELECTED!"
		notifType = models.NotificationSuccess
	}
	notif := applicationNotification(detail.UserID, "Round Update", message, notifType)
	notif.RelatedEntityID = &detail.ID

	err = s.store.AdvanceRound(ctx, applicationID, newRound, newStatus, detail.CurrentRound, notif)
	if err != nil {
		return nil, err
	}

	studentName := detail.FirstName + " " + detail.LastName
	if newStatus == models.StatusSelected {
		s.sendAsync("selection", func() error {
			return s.email.SendSelectedEmail(detail.Email, studentName, detail.CompanyName, detail.JobRole, detail.PackageCTC)
		})
	} else {
		s.sendAsync("shortlist", func() error {
			return s.email.SendShortlistedEmail(detail.Email, studentName, detail.CompanyName, detail.JobRole, newRound)
		})
	}

	detail.CurrentRound = newRound
	detail.Status = newStatus
	return detail, nil
}

// RejectRound rejects an application out of the process, with optional
// feedback appended to the notification message.
func (s *ApplicationService) RejectRound(ctx context.Context, applicationID int64, feedback string) error {
	detail, err := s.store.GetDetail(ctx, applicationID)
	if err != nil {
		return err
	}

	message := "Unfortunately, you were not selected for the next round."
	if feedback != "" {
		message += fmt.Sprintf(" Feedback: %s", feedback)
	}
	notif := applicationNotification(detail.UserID, "Application Update", message, models.NotificationWarning)
	notif.RelatedEntityID = &detail.ID

	if err := s.store.UpdateStatus(ctx, applicationID, models.StatusRejected, notif); err != nil {
		return err
	}

	s.sendAsync("rejection", func() error {
		return s.email.SendRejectedEmail(detail.Email, detail.FirstName+" "+detail.LastName, detail.CompanyName, detail.JobRole)
	})

	return nil
}

// SetStatus overwrites an application's status. Any enum member is a valid
// target, including moves out of selected or rejected. Statuses without a
// notification template change state silently.
func (s *ApplicationService) SetStatus(ctx context.Context, applicationID int64, rawStatus string) (*models.ApplicationDetail, error) {
	status, err := models.ParseApplicationStatus(rawStatus)
	if err != nil {
		return nil, apperrors.ErrInvalidStatus
	}

	detail, err := s.store.GetDetail(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	notif := statusNotification(detail, status)

	if err := s.store.UpdateStatus(ctx, applicationID, status, notif); err != nil {
		return nil, err
	}

	studentName := detail.FirstName + " " + detail.LastName
	switch status {
	case models.StatusShortlisted:
		s.sendAsync("shortlist", func() error {
			return s.email.SendShortlistedEmail(detail.Email, studentName, detail.CompanyName, detail.JobRole, detail.CurrentRound)
		})
	case models.StatusSelected:
		s.sendAsync("selection", func() error {
			return s.email.SendSelectedEmail(detail.Email, studentName, detail.CompanyName, detail.JobRole, detail.PackageCTC)
		})
	case models.StatusRejected:
		s.sendAsync("rejection", func() error {
			return s.email.SendRejectedEmail(detail.Email, studentName, detail.CompanyName, detail.JobRole)
		})
	}

	detail.Status = status
	return detail, nil
}

// BulkSetStatus applies one status to many applications and reports how many
// rows changed. Missing IDs are skipped. Bulk changes do not produce per
// student notifications.
func (s *ApplicationService) BulkSetStatus(ctx context.Context, applicationIDs []int64, rawStatus string) (int64, error) {
	status, err := models.ParseApplicationStatus(rawStatus)
	if err != nil {
		return 0, apperrors.ErrInvalidStatus
	}

	if len(applicationIDs) == 0 {
		return 0, nil
	}

	return s.store.BulkUpdateStatus(ctx, applicationIDs, status)
}

// CheckEligibility runs the eligibility checks for a student against a drive
// without applying.
func (s *ApplicationService) CheckEligibility(ctx context.Context, userID, driveID int64) ([]apperrors.EligibilityIssue, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	drive, err := s.drives.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	return EvaluateEligibility(student, drive), nil
}

// GetByID retrieves one application with its joined context
func (s *ApplicationService) GetByID(ctx context.Context, applicationID int64) (*models.ApplicationDetail, error) {
	return s.store.GetDetail(ctx, applicationID)
}

// ListForStudent retrieves the applications of the student owning userID
func (s *ApplicationService) ListForStudent(ctx context.Context, userID int64) ([]*models.ApplicationDetail, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.store.ListByStudent(ctx, student.ID)
}

// ListForDrive retrieves a drive's applications with optional status and
// search filters. Search matches the student's name and enrollment number
// case-insensitively.
func (s *ApplicationService) ListForDrive(ctx context.Context, driveID int64, rawStatus, search string) ([]*models.ApplicationDetail, error) {
	var status models.ApplicationStatus
	if rawStatus != "" {
		parsed, err := models.ParseApplicationStatus(rawStatus)
		if err != nil {
			return nil, apperrors.ErrInvalidStatus
		}
		status = parsed
	}

	applications, err := s.store.ListByDrive(ctx, driveID, status)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return applications, nil
	}

	matched := make([]*models.ApplicationDetail, 0, len(applications))
	for _, app := range applications {
		name := strings.ToLower(app.FirstName + " " + app.LastName)
		if strings.Contains(name, search) ||
			strings.Contains(strings.ToLower(app.EnrollmentNumber), search) {
			matched = append(matched, app)
		}
	}

	return matched, nil
}

// RoundProgress reports, for each round of a drive, how many candidates are
// still in the running: applications that reached the round and were not
// rejected.
func (s *ApplicationService) RoundProgress(ctx context.Context, driveID int64) ([]dto.RoundProgress, error) {
	drive, err := s.drives.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	applications, err := s.store.ListByDrive(ctx, driveID, "")
	if err != nil {
		return nil, err
	}

	progress := make([]dto.RoundProgress, 0, len(drive.Rounds))
	for _, round := range drive.Rounds {
		candidates := 0
		for _, app := range applications {
			if app.Status != models.StatusRejected && app.CurrentRound >= round.RoundNumber {
				candidates++
			}
		}
		progress = append(progress, dto.RoundProgress{
			RoundNumber: round.RoundNumber,
			RoundName:   round.RoundName,
			RoundType:   round.RoundType,
			Candidates:  candidates,
		})
	}

	return progress, nil
}

// statusNotification builds the in-app notification for an administrative
// status change. Not every status has a template; a nil return means the
// change is silent.
func statusNotification(detail *models.ApplicationDetail, status models.ApplicationStatus) *models.Notification {
	var message string
	switch status {
	case models.StatusShortlisted:
		message = fmt.Sprintf("Congratulations! You have been shortlisted for %s at %s.", detail.JobRole, detail.CompanyName)
	case models.StatusSelected:
		message = fmt.Sprintf("Congratulations! You have been SELECTED for %s at %s!", detail.JobRole, detail.CompanyName)
	case models.StatusRejected:
		message = fmt.Sprintf("Your application for %s at %s has been rejected.", detail.JobRole, detail.CompanyName)
	case models.StatusOnHold:
		message = fmt.Sprintf("Your application for %s at %s is on hold.", detail.JobRole, detail.CompanyName)
	default:
		return nil
	}

	notifType := models.NotificationInfo
	if status == models.StatusSelected {
		notifType = models.NotificationSuccess
	}

	notif := applicationNotification(detail.UserID, "Application Status Update", message, notifType)
	notif.RelatedEntityID = &detail.ID
	return notif
}

func applicationNotification(userID int64, title, message string, notifType models.NotificationType) *models.Notification {
	entityType := "application"
	return &models.Notification{
		UserID:            userID,
		Title:             title,
		Message:           message,
		Type:              notifType,
		RelatedEntityType: &entityType,
	}
}

// sendAsync fires an email without blocking the caller. Delivery failures
// are logged and dropped; the state change already committed.
func (s *ApplicationService) sendAsync(kind string, send func() error) {
	if s.email == nil {
		return
	}
	go func() {
		if err := send(); err != nil {
			logger.Warn().Err(err).Str("email", kind).Msg("Failed to send application email")
		}
	}()
}
