package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

type fakeStore struct {
	applications map[int64]*models.ApplicationDetail
	nextID       int64
	existing     map[[2]int64]bool
	notified     []*models.Notification
	bulkUpdated  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		applications: make(map[int64]*models.ApplicationDetail),
		nextID:       1,
		existing:     make(map[[2]int64]bool),
	}
}

func (f *fakeStore) Insert(_ context.Context, app *models.Application, notif *models.Notification) error {
	key := [2]int64{app.StudentID, app.DriveID}
	if f.existing[key] {
		return apperrors.ErrAlreadyApplied
	}
	app.ID = f.nextID
	f.nextID++
	app.AppliedAt = time.Now()
	f.existing[key] = true
	f.applications[app.ID] = &models.ApplicationDetail{Application: *app}
	if notif != nil {
		f.notified = append(f.notified, notif)
	}
	return nil
}

func (f *fakeStore) Exists(_ context.Context, studentID, driveID int64) (bool, error) {
	return f.existing[[2]int64{studentID, driveID}], nil
}

func (f *fakeStore) GetDetail(_ context.Context, id int64) (*models.ApplicationDetail, error) {
	detail, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *detail
	return &copied, nil
}

func (f *fakeStore) ListByStudent(_ context.Context, studentID int64) ([]*models.ApplicationDetail, error) {
	var out []*models.ApplicationDetail
	for _, detail := range f.applications {
		if detail.StudentID == studentID {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByDrive(_ context.Context, driveID int64, status models.ApplicationStatus) ([]*models.ApplicationDetail, error) {
	var out []*models.ApplicationDetail
	for _, detail := range f.applications {
		if detail.DriveID == driveID && (status == "" || detail.Status == status) {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (f *fakeStore) AdvanceRound(_ context.Context, id int64, newRound int, newStatus models.ApplicationStatus, expectedRound int, notif *models.Notification) error {
	detail, ok := f.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	if detail.CurrentRound != expectedRound {
		return apperrors.ErrConcurrentUpdate
	}
	detail.CurrentRound = newRound
	detail.Status = newStatus
	if notif != nil {
		f.notified = append(f.notified, notif)
	}
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus, notif *models.Notification) error {
	detail, ok := f.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	detail.Status = status
	if notif != nil {
		f.notified = append(f.notified, notif)
	}
	return nil
}

func (f *fakeStore) BulkUpdateStatus(_ context.Context, ids []int64, status models.ApplicationStatus) (int64, error) {
	var updated int64
	for _, id := range ids {
		if detail, ok := f.applications[id]; ok {
			detail.Status = status
			updated++
		}
	}
	f.bulkUpdated = updated
	return updated, nil
}

type fakeDrives struct {
	drives map[int64]*models.Drive
}

func (f *fakeDrives) GetByID(_ context.Context, id int64) (*models.Drive, error) {
	drive, ok := f.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	return drive, nil
}

type fakeStudents struct {
	students map[int64]*models.Student
}

func (f *fakeStudents) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	student, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func openDrive() *models.Drive {
	return &models.Drive{
		ID:                  1,
		CompanyName:         "Acme Corp",
		JobRole:             "Backend Engineer",
		PackageCTC:          1200000,
		MinCGPA:             7.0,
		MaxBacklogs:         1,
		ApplicationDeadline: time.Now().Add(48 * time.Hour),
		Status:              models.DriveActive,
		TotalRounds:         3,
	}
}

func newLifecycleFixture(t *testing.T) (*ApplicationService, *fakeStore, *fakeDrives, *fakeStudents) {
	t.Helper()
	store := newFakeStore()
	drives := &fakeDrives{drives: map[int64]*models.Drive{1: openDrive()}}
	students := &fakeStudents{students: map[int64]*models.Student{10: eligibleStudent()}}
	svc := NewApplicationService(store, drives, students, nil)
	return svc, store, drives, students
}

func TestSubmit_HappyPath(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)

	app, err := svc.Submit(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, 0, app.CurrentRound)
	assert.NotZero(t, app.ID)

	require.Len(t, store.notified, 1)
	notif := store.notified[0]
	assert.Equal(t, int64(10), notif.UserID)
	assert.Equal(t, "Application Submitted", notif.Title)
	assert.Equal(t, "Your application to Acme Corp has been submitted.", notif.Message)
	assert.Equal(t, models.NotificationSuccess, notif.Type)
}

func TestSubmit_DriveNotActive(t *testing.T) {
	svc, store, drives, _ := newLifecycleFixture(t)
	drives.drives[1].Status = models.DriveCompleted

	_, err := svc.Submit(context.Background(), 10, 1)
	assert.ErrorIs(t, err, apperrors.ErrDriveNotActive)
	assert.Empty(t, store.notified)
}

func TestSubmit_DeadlinePassed(t *testing.T) {
	svc, _, drives, _ := newLifecycleFixture(t)
	drives.drives[1].ApplicationDeadline = time.Now().Add(-time.Hour)

	_, err := svc.Submit(context.Background(), 10, 1)
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
}

func TestSubmit_DeadlineCheckedBeforeDuplicate(t *testing.T) {
	svc, store, drives, _ := newLifecycleFixture(t)
	_, err := svc.Submit(context.Background(), 10, 1)
	require.NoError(t, err)

	drives.drives[1].ApplicationDeadline = time.Now().Add(-time.Hour)

	_, err = svc.Submit(context.Background(), 10, 1)
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
	assert.Len(t, store.notified, 1)
}

func TestSubmit_AlreadyApplied(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t)
	_, err := svc.Submit(context.Background(), 10, 1)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 10, 1)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestSubmit_IneligibleReturnsFullIssueList(t *testing.T) {
	svc, store, _, students := newLifecycleFixture(t)
	students.students[10].IsApproved = false
	students.students[10].CGPA = ptrFloat(5.0)

	_, err := svc.Submit(context.Background(), 10, 1)
	require.Error(t, err)

	var eligErr *apperrors.EligibilityError
	require.ErrorAs(t, err, &eligErr)
	require.Len(t, eligErr.Issues, 2)
	assert.Equal(t, "Profile not approved by HOD", eligErr.Issues[0].Message)
	assert.Equal(t, "CGPA too low (Required: 7, Yours: 5)", eligErr.Issues[1].Message)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, store.notified)
}

func TestSubmit_DriveNotFound(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t)
	_, err := svc.Submit(context.Background(), 10, 99)
	assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
}

func seedApplication(t *testing.T, svc *ApplicationService, store *fakeStore) *models.ApplicationDetail {
	t.Helper()
	app, err := svc.Submit(context.Background(), 10, 1)
	require.NoError(t, err)

	detail := store.applications[app.ID]
	detail.UserID = 10
	detail.TotalRounds = 3
	detail.JobRole = "Backend Engineer"
	detail.CompanyName = "Acme Corp"
	detail.PackageCTC = 1200000
	store.notified = nil
	return detail
}

func TestPromote_IntermediateRound(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)

	got, err := svc.Promote(context.Background(), detail.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentRound)
	assert.Equal(t, models.StatusShortlisted, got.Status)

	require.Len(t, store.notified, 1)
	notif := store.notified[0]
	assert.Equal(t, "Round Update", notif.Title)
	assert.Equal(t, "You have been shortlisted for Round 1.", notif.Message)
	assert.Equal(t, models.NotificationInfo, notif.Type)
}

func TestPromote_FinalRoundSelects(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)
	store.applications[detail.ID].CurrentRound = 2

	got, err := svc.Promote(context.Background(), detail.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentRound)
	assert.Equal(t, models.StatusSelected, got.Status)

	require.Len(t, store.notified, 1)
	notif := store.notified[0]
	assert.Equal(t, "Congratulations! You have been SELECTED!", notif.Message)
	assert.Equal(t, models.NotificationSuccess, notif.Type)
}

func TestPromote_AlreadyFinalRound(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)
	store.applications[detail.ID].CurrentRound = 3

	_, err := svc.Promote(context.Background(), detail.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyFinalRound)
	assert.Empty(t, store.notified)
}

func TestPromote_NotFound(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t)
	_, err := svc.Promote(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestRejectRound_WithoutFeedback(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)

	err := svc.RejectRound(context.Background(), detail.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, store.applications[detail.ID].Status)

	require.Len(t, store.notified, 1)
	notif := store.notified[0]
	assert.Equal(t, "Application Update", notif.Title)
	assert.Equal(t, "Unfortunately, you were not selected for the next round.", notif.Message)
	assert.Equal(t, models.NotificationWarning, notif.Type)
}

func TestRejectRound_FeedbackAppended(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)

	err := svc.RejectRound(context.Background(), detail.ID, "Weak system design answers")
	require.NoError(t, err)

	require.Len(t, store.notified, 1)
	assert.Equal(t,
		"Unfortunately, you were not selected for the next round. Feedback: Weak system design answers",
		store.notified[0].Message)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)

	_, err := svc.SetStatus(context.Background(), detail.ID, "accepted")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestSetStatus_SelectedNotification(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)

	got, err := svc.SetStatus(context.Background(), detail.ID, "selected")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSelected, got.Status)

	require.Len(t, store.notified, 1)
	notif := store.notified[0]
	assert.Equal(t, "Application Status Update", notif.Title)
	assert.Equal(t, "Congratulations! You have been SELECTED for Backend Engineer at Acme Corp!", notif.Message)
	assert.Equal(t, models.NotificationSuccess, notif.Type)
}

func TestSetStatus_OnHoldNotification(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)

	_, err := svc.SetStatus(context.Background(), detail.ID, "on_hold")
	require.NoError(t, err)

	require.Len(t, store.notified, 1)
	notif := store.notified[0]
	assert.Equal(t, "Your application for Backend Engineer at Acme Corp is on hold.", notif.Message)
	assert.Equal(t, models.NotificationInfo, notif.Type)
}

func TestSetStatus_AppliedIsSilent(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)
	store.applications[detail.ID].Status = models.StatusOnHold

	got, err := svc.SetStatus(context.Background(), detail.ID, "applied")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, got.Status)
	assert.Empty(t, store.notified)
}

func TestSetStatus_ReversesTerminalStatus(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)
	store.applications[detail.ID].Status = models.StatusSelected

	got, err := svc.SetStatus(context.Background(), detail.ID, "shortlisted")
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, got.Status)
}

func TestBulkSetStatus_CountsOnlyExistingRows(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)

	updated, err := svc.BulkSetStatus(context.Background(), []int64{detail.ID, 404}, "shortlisted")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	assert.Equal(t, models.StatusShortlisted, store.applications[detail.ID].Status)
	assert.Empty(t, store.notified)
}

func TestBulkSetStatus_EmptyInput(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)

	updated, err := svc.BulkSetStatus(context.Background(), nil, "rejected")
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Zero(t, store.bulkUpdated)
}

func TestBulkSetStatus_InvalidStatus(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t)

	_, err := svc.BulkSetStatus(context.Background(), []int64{1}, "bogus")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestCheckEligibility_ReportsWithoutApplying(t *testing.T) {
	svc, store, _, students := newLifecycleFixture(t)
	students.students[10].Backlogs = 5

	issues, err := svc.CheckEligibility(context.Background(), 10, 1)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "Too many backlogs (Allowed: 1, Yours: 5)", issues[0].Message)
	assert.Empty(t, store.applications)
}

func TestListForDrive_InvalidStatusFilter(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t)

	_, err := svc.ListForDrive(context.Background(), 1, "pending", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestListForDrive_StatusFilter(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)
	store.applications[detail.ID].Status = models.StatusShortlisted

	matched, err := svc.ListForDrive(context.Background(), 1, "shortlisted", "")
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	unmatched, err := svc.ListForDrive(context.Background(), 1, "selected", "")
	require.NoError(t, err)
	assert.Empty(t, unmatched)
}

func TestListForDrive_SearchFilter(t *testing.T) {
	svc, store, _, _ := newLifecycleFixture(t)
	detail := seedApplication(t, svc, store)
	store.applications[detail.ID].FirstName = "Priya"
	store.applications[detail.ID].LastName = "Sharma"
	store.applications[detail.ID].EnrollmentNumber = "CSE2021042"

	byName, err := svc.ListForDrive(context.Background(), 1, "", "priya sh")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byEnrollment, err := svc.ListForDrive(context.Background(), 1, "", "2021042")
	require.NoError(t, err)
	assert.Len(t, byEnrollment, 1)

	miss, err := svc.ListForDrive(context.Background(), 1, "", "rahul")
	require.NoError(t, err)
	assert.Empty(t, miss)
}

func TestRoundProgress_CountsSurvivorsPerRound(t *testing.T) {
	svc, store, drives, _ := newLifecycleFixture(t)
	drives.drives[1].Rounds = []models.Round{
		{RoundNumber: 1, RoundName: "Aptitude Test", RoundType: "aptitude"},
		{RoundNumber: 2, RoundName: "Technical Interview", RoundType: "technical"},
		{RoundNumber: 3, RoundName: "HR Interview", RoundType: "hr"},
	}

	detail := seedApplication(t, svc, store)
	store.applications[detail.ID].Status = models.StatusShortlisted
	store.applications[detail.ID].CurrentRound = 2

	rejected := &models.ApplicationDetail{Application: models.Application{
		ID: 50, StudentID: 2, DriveID: 1, Status: models.StatusRejected, CurrentRound: 1,
	}}
	store.applications[rejected.ID] = rejected

	firstRoundOnly := &models.ApplicationDetail{Application: models.Application{
		ID: 51, StudentID: 3, DriveID: 1, Status: models.StatusShortlisted, CurrentRound: 1,
	}}
	store.applications[firstRoundOnly.ID] = firstRoundOnly

	progress, err := svc.RoundProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, progress, 3)
	assert.Equal(t, "Aptitude Test", progress[0].RoundName)
	assert.Equal(t, 2, progress[0].Candidates)
	assert.Equal(t, 1, progress[1].Candidates)
	assert.Equal(t, 0, progress[2].Candidates)
}

func TestRoundProgress_DriveNotFound(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t)

	_, err := svc.RoundProgress(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
}
