package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// DriveStore is the persistence surface of the drive registry
type DriveStore interface {
	Create(ctx context.Context, drive *models.Drive) error
	GetByID(ctx context.Context, id int64) (*models.Drive, error)
	GetAll(ctx context.Context, status models.DriveStatus) ([]*models.Drive, error)
	Update(ctx context.Context, drive *models.Drive) error
	Delete(ctx context.Context, id int64) error
}

// CompanyReader resolves companies for drive creation
type CompanyReader interface {
	GetByID(ctx context.Context, id int64) (*models.Company, error)
}

// DriveService manages the drive registry. Drive listings are optionally
// cached in redis; the cache is dropped on every write so readers never see
// a stale drive for longer than the TTL.
type DriveService struct {
	store     DriveStore
	companies CompanyReader
	cache     *redis.Client
	cacheTTL  time.Duration
}

// NewDriveService creates a new drive service instance. A nil cache disables
// caching.
func NewDriveService(store DriveStore, companies CompanyReader, cache *redis.Client, cacheTTL time.Duration) *DriveService {
	return &DriveService{
		store:     store,
		companies: companies,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

const driveListCacheKey = "drives:list:"

// CreateDrive registers a new drive with its rounds. Rounds come out
// normalized whatever the input shape: explicit definitions win over a bare
// count, numbers are contiguous from 1, unnamed rounds become "Round N" and
// untyped rounds default to technical. TotalRounds always equals the number
// of rounds stored.
func (s *DriveService) CreateDrive(ctx context.Context, req *dto.CreateDriveRequest, createdBy int64) (*models.Drive, error) {
	if _, err := s.companies.GetByID(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	rounds, err := normalizeRounds(req.Rounds, req.TotalRounds)
	if err != nil {
		return nil, err
	}

	drive := &models.Drive{
		CompanyID:           req.CompanyID,
		JobRole:             req.JobRole,
		JobDescription:      req.JobDescription,
		PackageCTC:          req.PackageCTC,
		Location:            req.Location,
		JobType:             req.JobType,
		MinCGPA:             req.MinCGPA,
		MaxBacklogs:         req.MaxBacklogs,
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              models.DriveActive,
		TotalRounds:         len(rounds),
		CreatedBy:           createdBy,
		Rounds:              rounds,
	}
	// The base package defaults to the CTC when not broken out separately.
	drive.PackageBase = req.PackageCTC
	if req.PackageBase != nil {
		drive.PackageBase = *req.PackageBase
	}
	if req.PackageStipend != nil {
		drive.PackageStipend = *req.PackageStipend
	}

	if err := s.store.Create(ctx, drive); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return drive, nil
}

// normalizeRounds turns the request's round shape into a contiguous,
// fully-named list. Explicit definitions take precedence over the count; a
// request with neither gets a single technical round.
func normalizeRounds(defs []dto.RoundDefinition, totalRounds int) ([]models.Round, error) {
	count := len(defs)
	if count == 0 {
		count = totalRounds
		if count == 0 {
			count = 1
		}
	}
	if count < 1 {
		return nil, apperrors.ErrInvalidRounds
	}

	rounds := make([]models.Round, count)
	for i := 0; i < count; i++ {
		round := models.Round{
			RoundNumber: i + 1,
			RoundName:   fmt.Sprintf("Round %d", i+1),
			RoundType:   "technical",
		}
		if i < len(defs) {
			if defs[i].Name != "" {
				round.RoundName = defs[i].Name
			}
			if defs[i].Type != "" {
				round.RoundType = defs[i].Type
			}
		}
		rounds[i] = round
	}

	return rounds, nil
}

// GetDriveByID retrieves a drive with its rounds and company
func (s *DriveService) GetDriveByID(ctx context.Context, id int64) (*models.Drive, error) {
	return s.store.GetByID(ctx, id)
}

// GetDrives lists drives, optionally filtered by status. List reads go
// through the redis cache when one is configured.
func (s *DriveService) GetDrives(ctx context.Context, rawStatus string) ([]*models.Drive, error) {
	var status models.DriveStatus
	if rawStatus != "" {
		status = models.DriveStatus(rawStatus)
		if !status.IsValid() {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid drive status filter")
		}
	}

	cacheKey := driveListCacheKey + string(status)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var drives []*models.Drive
			if err := json.Unmarshal([]byte(cached), &drives); err == nil {
				return drives, nil
			}
		}
	}

	drives, err := s.store.GetAll(ctx, status)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(drives); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				logger.Warn().Err(err).Msg("Failed to cache drive list")
			}
		}
	}

	return drives, nil
}

// BrowseDrives lists the drives a student can still apply to: active drives
// whose deadline has not passed, narrowed by the optional filters. Search
// matches company name and job role case-insensitively.
func (s *DriveService) BrowseDrives(ctx context.Context, filter dto.DriveBrowseFilter) ([]*models.Drive, error) {
	drives, err := s.GetDrives(ctx, string(models.DriveActive))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	open := make([]*models.Drive, 0, len(drives))
	for _, drive := range drives {
		if !drive.ApplicationDeadline.After(now) {
			continue
		}
		if filter.JobType != "" && !strings.EqualFold(drive.JobType, filter.JobType) {
			continue
		}
		if filter.MinPackage > 0 && drive.PackageCTC < filter.MinPackage {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(drive.CompanyName), search) &&
			!strings.Contains(strings.ToLower(drive.JobRole), search) {
			continue
		}
		open = append(open, drive)
	}

	return open, nil
}

// UpdateDrive applies a partial update to a drive's mutable fields. Rounds
// are fixed after creation.
func (s *DriveService) UpdateDrive(ctx context.Context, id int64, req *dto.UpdateDriveRequest) (*models.Drive, error) {
	drive, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.JobRole != nil {
		drive.JobRole = *req.JobRole
	}
	if req.JobDescription != nil {
		drive.JobDescription = *req.JobDescription
	}
	if req.PackageCTC != nil {
		drive.PackageCTC = *req.PackageCTC
	}
	if req.PackageBase != nil {
		drive.PackageBase = *req.PackageBase
	}
	if req.PackageStipend != nil {
		drive.PackageStipend = *req.PackageStipend
	}
	if req.Location != nil {
		drive.Location = *req.Location
	}
	if req.JobType != nil {
		drive.JobType = *req.JobType
	}
	if req.MinCGPA != nil {
		drive.MinCGPA = *req.MinCGPA
	}
	if req.MaxBacklogs != nil {
		drive.MaxBacklogs = *req.MaxBacklogs
	}
	if req.ApplicationDeadline != nil {
		drive.ApplicationDeadline = *req.ApplicationDeadline
	}
	if req.Status != nil {
		status := models.DriveStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid drive status")
		}
		drive.Status = status
	}

	if err := s.store.Update(ctx, drive); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return drive, nil
}

// DeleteDrive removes a drive. Drives with applications cannot be deleted;
// close them by setting the status instead.
func (s *DriveService) DeleteDrive(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *DriveService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	keys := []string{
		driveListCacheKey,
		driveListCacheKey + string(models.DriveActive),
		driveListCacheKey + string(models.DriveCompleted),
		driveListCacheKey + string(models.DriveCancelled),
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate drive cache")
	}
}
