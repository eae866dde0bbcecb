package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
)

// StudentController handles the student-facing endpoints: profile, drives,
// applications and eligibility checks
type StudentController struct {
	studentService     *services.StudentService
	driveService       *services.DriveService
	applicationService *services.ApplicationService
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService *services.StudentService,
	driveService *services.DriveService,
	applicationService *services.ApplicationService,
) *StudentController {
	return &StudentController{
		studentService:     studentService,
		driveService:       driveService,
		applicationService: applicationService,
	}
}

func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return userID, ok
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// GetProfile returns the student's own profile
// @Summary Get my profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Student} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// UpdateProfile applies a partial update to the student's profile
// @Summary Update my profile
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// UploadResume stores the student's resume
// @Summary Upload my resume
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "Resume file (PDF or Word)"
// @Success 200 {object} dto.APIResponse "Resume uploaded"
// @Failure 400 {object} dto.ErrorResponse "Invalid file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/resume [post]
func (c *StudentController) UploadResume(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("resume")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Resume file is required")
		errorDetail = errorDetail.WithField("resume")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	path, err := c.studentService.UploadResume(ctx, userID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"resumeUrl": path}))
}

// ListDrives lists the open drives a student can apply to
// @Summary Browse open drives
// @Description Active drives with a future deadline, optionally filtered
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match against company name or job role"
// @Param job_type query string false "Job type filter"
// @Param min_package query number false "Minimum CTC"
// @Success 200 {object} dto.APIResponse{data=[]models.Drive} "Drives"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/drives [get]
func (c *StudentController) ListDrives(ctx *gin.Context) {
	var filter dto.DriveBrowseFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	drives, err := c.driveService.BrowseDrives(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drives))
}

// GetDrive returns one drive with its rounds
// @Summary Get drive details
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=models.Drive} "Drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /student/drives/{id} [get]
func (c *StudentController) GetDrive(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	drive, err := c.driveService.GetDriveByID(ctx, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drive))
}

// CheckEligibility previews the eligibility checks for a drive
// @Summary Check my eligibility for a drive
// @Description Runs the eligibility checks without applying and returns every failed check
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityResponse} "Eligibility result"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /student/drives/{id}/eligibility [get]
func (c *StudentController) CheckEligibility(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	issues, err := c.applicationService.CheckEligibility(ctx, userID, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.EligibilityResponse{
		Eligible: len(issues) == 0,
		Issues:   make([]dto.EligibilityIssueResponse, 0, len(issues)),
	}
	for _, issue := range issues {
		resp.Issues = append(resp.Issues, dto.EligibilityIssueResponse{
			Type:    string(issue.Severity),
			Message: issue.Message,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Apply submits an application to a drive
// @Summary Apply to a drive
// @Description Submits an application; the drive must be active, before its deadline, not yet applied to, and every eligibility check must pass
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Not eligible"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 409 {object} dto.ErrorResponse "Drive closed, deadline passed or already applied"
// @Router /student/drives/{id}/apply [post]
func (c *StudentController) Apply(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.Submit(ctx, userID, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(app))
}

// MyApplications lists the student's applications
// @Summary List my applications
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ApplicationDetail} "Applications"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/applications [get]
func (c *StudentController) MyApplications(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	applications, err := c.applicationService.ListForStudent(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications))
}

// GetStats returns the student dashboard summary
// @Summary Get my dashboard stats
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentStats} "Stats"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/stats [get]
func (c *StudentController) GetStats(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	drives, err := c.driveService.GetDrives(ctx, string(models.DriveActive))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.studentService.GetStats(ctx, userID, len(drives))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
