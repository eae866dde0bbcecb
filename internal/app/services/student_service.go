package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/filestorage"
)

// StudentService handles student profile operations and the HOD's approval
// workflow over them
type StudentService struct {
	studentRepo      *repositories.StudentRepository
	applicationRepo  *repositories.ApplicationRepository
	notificationRepo *repositories.NotificationRepository
	storage          filestorage.FileStorage
	logger           zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	applicationRepo *repositories.ApplicationRepository,
	notificationRepo *repositories.NotificationRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:      studentRepo,
		applicationRepo:  applicationRepo,
		notificationRepo: notificationRepo,
		storage:          storage,
		logger:           logger,
	}
}

// GetProfile retrieves the student profile owned by userID
func (s *StudentService) GetProfile(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies a partial update to the student's own fields.
// Updating the profile never touches the approval flag; a changed CGPA still
// counts as approved until the HOD says otherwise.
func (s *StudentService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.Student, error) {
	err := s.studentRepo.UpdateProfile(ctx, userID,
		req.FirstName, req.LastName, req.Phone, req.Skills, req.Bio,
		req.CGPA, req.Backlogs, req.YearOfStudy)
	if err != nil {
		return nil, err
	}

	return s.studentRepo.GetByUserID(ctx, userID)
}

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// UploadResume stores the resume file and records its location on the profile
func (s *StudentService) UploadResume(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedResumeExtensions[ext] {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed, "resume must be a PDF or Word document")
	}

	filePath, err := s.storage.SaveFileWithPath(fileHeader, "resumes")
	if err != nil {
		return "", fmt.Errorf("error saving resume: %w", err)
	}

	if err := s.studentRepo.UpdateResumeURL(ctx, userID, filePath); err != nil {
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", filePath).Msg("Failed to remove orphaned resume file")
		}
		return "", err
	}

	return filePath, nil
}

// GetStats builds the student dashboard summary
func (s *StudentService) GetStats(ctx context.Context, userID int64, activeDrives int) (*dto.StudentStats, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, applied, shortlisted, selected, rejected, err := s.applicationRepo.StudentStats(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentStats{
		TotalApplications: int(total),
		Pending:           int(applied),
		Shortlisted:       int(shortlisted),
		Selected:          int(selected),
		Rejected:          int(rejected),
		ActiveDrives:      activeDrives,
	}, nil
}

// ListDepartmentStudents lists the HOD's department students with their
// application counts. The approved and search filters are optional.
func (s *StudentService) ListDepartmentStudents(ctx context.Context, hodUserID int64, approved *bool, search string) ([]*models.Student, error) {
	hod, err := s.studentRepo.GetHODByUserID(ctx, hodUserID)
	if err != nil {
		return nil, err
	}

	return s.studentRepo.ListByDepartment(ctx, hod.DepartmentID, approved, strings.TrimSpace(search))
}

// ApproveStudent marks a student approved by the HOD and notifies them. The
// student must belong to the HOD's department.
func (s *StudentService) ApproveStudent(ctx context.Context, hodUserID, studentID int64) error {
	hod, err := s.studentRepo.GetHODByUserID(ctx, hodUserID)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Approve(ctx, studentID, hod.DepartmentID, hodUserID); err != nil {
		return err
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	notif := &models.Notification{
		UserID:  student.UserID,
		Title:   "Profile Approved",
		Message: "Your profile has been approved by your HOD. You can now apply to placement drives.",
		Type:    models.NotificationSuccess,
	}
	if err := s.notificationRepo.Create(ctx, notif); err != nil {
		s.logger.Warn().Err(err).Int64("studentId", studentID).Msg("Failed to create approval notification")
	}

	return nil
}

// RejectStudent withdraws a student's approval and notifies them with the
// HOD's reason
func (s *StudentService) RejectStudent(ctx context.Context, hodUserID, studentID int64, reason string) error {
	hod, err := s.studentRepo.GetHODByUserID(ctx, hodUserID)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Revoke(ctx, studentID, hod.DepartmentID); err != nil {
		return err
	}

	message := "Your profile approval has been revoked by your HOD."
	if reason != "" {
		message += fmt.Sprintf(" Reason: %s", reason)
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	notif := &models.Notification{
		UserID:  student.UserID,
		Title:   "Profile Update",
		Message: message,
		Type:    models.NotificationWarning,
	}
	if err := s.notificationRepo.Create(ctx, notif); err != nil {
		s.logger.Warn().Err(err).Int64("studentId", studentID).Msg("Failed to create rejection notification")
	}

	return nil
}

// BulkApproveStudents approves many department students at once and reports
// how many were approved. Students outside the HOD's department are skipped.
func (s *StudentService) BulkApproveStudents(ctx context.Context, hodUserID int64, studentIDs []int64) (int64, error) {
	hod, err := s.studentRepo.GetHODByUserID(ctx, hodUserID)
	if err != nil {
		return 0, err
	}

	return s.studentRepo.BulkApprove(ctx, studentIDs, hod.DepartmentID, hodUserID)
}

// GetDepartmentStats builds the HOD dashboard summary
func (s *StudentService) GetDepartmentStats(ctx context.Context, hodUserID int64) (*dto.HODStats, error) {
	hod, err := s.studentRepo.GetHODByUserID(ctx, hodUserID)
	if err != nil {
		return nil, err
	}

	total, approved, placed, err := s.studentRepo.DepartmentStats(ctx, hod.DepartmentID)
	if err != nil {
		return nil, err
	}

	return &dto.HODStats{
		TotalStudents:    int(total),
		ApprovedStudents: int(approved),
		PendingStudents:  int(total - approved),
		PlacedStudents:   int(placed),
	}, nil
}
