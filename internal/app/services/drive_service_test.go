package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

type fakeDriveStore struct {
	drives map[int64]*models.Drive
	nextID int64
}

func newFakeDriveStore() *fakeDriveStore {
	return &fakeDriveStore{drives: make(map[int64]*models.Drive), nextID: 1}
}

func (f *fakeDriveStore) Create(_ context.Context, drive *models.Drive) error {
	drive.ID = f.nextID
	f.nextID++
	f.drives[drive.ID] = drive
	return nil
}

func (f *fakeDriveStore) GetByID(_ context.Context, id int64) (*models.Drive, error) {
	drive, ok := f.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	copied := *drive
	return &copied, nil
}

func (f *fakeDriveStore) GetAll(_ context.Context, status models.DriveStatus) ([]*models.Drive, error) {
	var out []*models.Drive
	for _, drive := range f.drives {
		if status == "" || drive.Status == status {
			out = append(out, drive)
		}
	}
	return out, nil
}

func (f *fakeDriveStore) Update(_ context.Context, drive *models.Drive) error {
	if _, ok := f.drives[drive.ID]; !ok {
		return apperrors.ErrDriveNotFound
	}
	f.drives[drive.ID] = drive
	return nil
}

func (f *fakeDriveStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.drives[id]; !ok {
		return apperrors.ErrDriveNotFound
	}
	delete(f.drives, id)
	return nil
}

type fakeCompanies struct {
	companies map[int64]*models.Company
}

func (f *fakeCompanies) GetByID(_ context.Context, id int64) (*models.Company, error) {
	company, ok := f.companies[id]
	if !ok {
		return nil, apperrors.ErrCompanyNotFound
	}
	return company, nil
}

func newDriveFixture() (*DriveService, *fakeDriveStore) {
	store := newFakeDriveStore()
	companies := &fakeCompanies{companies: map[int64]*models.Company{5: {ID: 5, Name: "Acme Corp"}}}
	return NewDriveService(store, companies, nil, time.Minute), store
}

func createDriveRequest() *dto.CreateDriveRequest {
	return &dto.CreateDriveRequest{
		CompanyID:           5,
		JobRole:             "Backend Engineer",
		PackageCTC:          1200000,
		MinCGPA:             7.0,
		MaxBacklogs:         1,
		ApplicationDeadline: time.Now().Add(72 * time.Hour),
	}
}

func TestNormalizeRounds_DefaultSingleRound(t *testing.T) {
	rounds, err := normalizeRounds(nil, 0)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, 1, rounds[0].RoundNumber)
	assert.Equal(t, "Round 1", rounds[0].RoundName)
	assert.Equal(t, "technical", rounds[0].RoundType)
}

func TestNormalizeRounds_CountOnly(t *testing.T) {
	rounds, err := normalizeRounds(nil, 3)
	require.NoError(t, err)
	require.Len(t, rounds, 3)
	for i, round := range rounds {
		assert.Equal(t, i+1, round.RoundNumber)
	}
	assert.Equal(t, "Round 2", rounds[1].RoundName)
}

func TestNormalizeRounds_ExplicitDefinitionsWinOverCount(t *testing.T) {
	defs := []dto.RoundDefinition{
		{Name: "Aptitude Test", Type: "aptitude"},
		{Name: "System Design", Type: "technical"},
	}

	rounds, err := normalizeRounds(defs, 5)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "Aptitude Test", rounds[0].RoundName)
	assert.Equal(t, "aptitude", rounds[0].RoundType)
	assert.Equal(t, 2, rounds[1].RoundNumber)
}

func TestNormalizeRounds_PartialDefinitionsGetDefaults(t *testing.T) {
	defs := []dto.RoundDefinition{
		{Name: "HR Interview"},
		{Type: "coding"},
	}

	rounds, err := normalizeRounds(defs, 0)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "HR Interview", rounds[0].RoundName)
	assert.Equal(t, "technical", rounds[0].RoundType)
	assert.Equal(t, "Round 2", rounds[1].RoundName)
	assert.Equal(t, "coding", rounds[1].RoundType)
}

func TestCreateDrive_NormalizesAndActivates(t *testing.T) {
	svc, store := newDriveFixture()

	req := createDriveRequest()
	req.TotalRounds = 2

	drive, err := svc.CreateDrive(context.Background(), req, 7)
	require.NoError(t, err)
	assert.Equal(t, models.DriveActive, drive.Status)
	assert.Equal(t, 2, drive.TotalRounds)
	assert.Len(t, drive.Rounds, 2)
	assert.Equal(t, int64(7), drive.CreatedBy)
	assert.Contains(t, store.drives, drive.ID)
}

func TestCreateDrive_PackageBaseDefaultsToCTC(t *testing.T) {
	svc, _ := newDriveFixture()

	drive, err := svc.CreateDrive(context.Background(), createDriveRequest(), 7)
	require.NoError(t, err)
	assert.Equal(t, float64(1200000), drive.PackageBase)

	base := 900000.0
	explicit := createDriveRequest()
	explicit.PackageBase = &base
	drive, err = svc.CreateDrive(context.Background(), explicit, 7)
	require.NoError(t, err)
	assert.Equal(t, 900000.0, drive.PackageBase)
}

func TestCreateDrive_UnknownCompany(t *testing.T) {
	svc, store := newDriveFixture()

	req := createDriveRequest()
	req.CompanyID = 99

	_, err := svc.CreateDrive(context.Background(), req, 7)
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
	assert.Empty(t, store.drives)
}

func TestUpdateDrive_PartialMerge(t *testing.T) {
	svc, _ := newDriveFixture()
	drive, err := svc.CreateDrive(context.Background(), createDriveRequest(), 7)
	require.NoError(t, err)

	newRole := "Platform Engineer"
	newCGPA := 8.0
	updated, err := svc.UpdateDrive(context.Background(), drive.ID, &dto.UpdateDriveRequest{
		JobRole: &newRole,
		MinCGPA: &newCGPA,
	})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", updated.JobRole)
	assert.Equal(t, 8.0, updated.MinCGPA)
	assert.Equal(t, drive.PackageCTC, updated.PackageCTC)
}

func TestUpdateDrive_InvalidStatus(t *testing.T) {
	svc, _ := newDriveFixture()
	drive, err := svc.CreateDrive(context.Background(), createDriveRequest(), 7)
	require.NoError(t, err)

	badStatus := "paused"
	_, err = svc.UpdateDrive(context.Background(), drive.ID, &dto.UpdateDriveRequest{Status: &badStatus})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateDrive_StatusTransition(t *testing.T) {
	svc, store := newDriveFixture()
	drive, err := svc.CreateDrive(context.Background(), createDriveRequest(), 7)
	require.NoError(t, err)

	completed := "completed"
	updated, err := svc.UpdateDrive(context.Background(), drive.ID, &dto.UpdateDriveRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.DriveCompleted, updated.Status)
	assert.Equal(t, models.DriveCompleted, store.drives[drive.ID].Status)
}

func TestGetDrives_InvalidStatusFilter(t *testing.T) {
	svc, _ := newDriveFixture()

	_, err := svc.GetDrives(context.Background(), "archived")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetDrives_StatusFilter(t *testing.T) {
	svc, store := newDriveFixture()
	drive, err := svc.CreateDrive(context.Background(), createDriveRequest(), 7)
	require.NoError(t, err)
	store.drives[drive.ID].Status = models.DriveCancelled

	active, err := svc.GetDrives(context.Background(), "active")
	require.NoError(t, err)
	assert.Empty(t, active)

	cancelled, err := svc.GetDrives(context.Background(), "cancelled")
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)
}

func TestBrowseDrives_SkipsExpiredDeadlines(t *testing.T) {
	svc, store := newDriveFixture()
	open, err := svc.CreateDrive(context.Background(), createDriveRequest(), 7)
	require.NoError(t, err)
	expired, err := svc.CreateDrive(context.Background(), createDriveRequest(), 7)
	require.NoError(t, err)
	store.drives[expired.ID].ApplicationDeadline = time.Now().Add(-time.Hour)

	drives, err := svc.BrowseDrives(context.Background(), dto.DriveBrowseFilter{})
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, open.ID, drives[0].ID)
}

func TestBrowseDrives_SearchMatchesCompanyAndRole(t *testing.T) {
	svc, store := newDriveFixture()
	drive, err := svc.CreateDrive(context.Background(), createDriveRequest(), 7)
	require.NoError(t, err)
	store.drives[drive.ID].CompanyName = "Acme Corp"

	byCompany, err := svc.BrowseDrives(context.Background(), dto.DriveBrowseFilter{Search: "acme"})
	require.NoError(t, err)
	assert.Len(t, byCompany, 1)

	byRole, err := svc.BrowseDrives(context.Background(), dto.DriveBrowseFilter{Search: "backend"})
	require.NoError(t, err)
	assert.Len(t, byRole, 1)

	miss, err := svc.BrowseDrives(context.Background(), dto.DriveBrowseFilter{Search: "globex"})
	require.NoError(t, err)
	assert.Empty(t, miss)
}

func TestBrowseDrives_JobTypeAndMinPackageFilters(t *testing.T) {
	svc, _ := newDriveFixture()

	req := createDriveRequest()
	req.JobType = "full-time"
	_, err := svc.CreateDrive(context.Background(), req, 7)
	require.NoError(t, err)

	intern := createDriveRequest()
	intern.JobType = "internship"
	intern.PackageCTC = 300000
	_, err = svc.CreateDrive(context.Background(), intern, 7)
	require.NoError(t, err)

	fullTime, err := svc.BrowseDrives(context.Background(), dto.DriveBrowseFilter{JobType: "full-time"})
	require.NoError(t, err)
	assert.Len(t, fullTime, 1)

	wellPaid, err := svc.BrowseDrives(context.Background(), dto.DriveBrowseFilter{MinPackage: 1000000})
	require.NoError(t, err)
	require.Len(t, wellPaid, 1)
	assert.Equal(t, float64(1200000), wellPaid[0].PackageCTC)
}

func TestDeleteDrive_NotFound(t *testing.T) {
	svc, _ := newDriveFixture()

	err := svc.DeleteDrive(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
}
