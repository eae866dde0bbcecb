package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
)

// TPOController handles the placement office endpoints: companies, drives
// and the application lifecycle
type TPOController struct {
	companyService     *services.CompanyService
	driveService       *services.DriveService
	applicationService *services.ApplicationService
	statsService       *services.StatsService
}

// NewTPOController creates a new TPOController
func NewTPOController(
	companyService *services.CompanyService,
	driveService *services.DriveService,
	applicationService *services.ApplicationService,
	statsService *services.StatsService,
) *TPOController {
	return &TPOController{
		companyService:     companyService,
		driveService:       driveService,
		applicationService: applicationService,
		statsService:       statsService,
	}
}

// CreateCompany registers a company
// @Summary Create a company
// @Tags tpo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCompanyRequest true "Company information"
// @Success 201 {object} dto.APIResponse{data=models.Company} "Company created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Company already exists"
// @Router /tpo/companies [post]
func (c *TPOController) CreateCompany(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	company, err := c.companyService.CreateCompany(ctx, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(company))
}

// ListCompanies lists companies with drive aggregates
// @Summary List companies
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Company} "Companies"
// @Router /tpo/companies [get]
func (c *TPOController) ListCompanies(ctx *gin.Context) {
	companies, err := c.companyService.GetAllCompanies(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(companies))
}

// GetCompany returns one company
// @Summary Get company details
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=models.Company} "Company"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /tpo/companies/{id} [get]
func (c *TPOController) GetCompany(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	company, err := c.companyService.GetCompanyByID(ctx, companyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(company))
}

// UpdateCompany applies a partial update to a company
// @Summary Update a company
// @Tags tpo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param request body dto.UpdateCompanyRequest true "Company fields"
// @Success 200 {object} dto.APIResponse{data=models.Company} "Updated company"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /tpo/companies/{id} [put]
func (c *TPOController) UpdateCompany(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	company, err := c.companyService.UpdateCompany(ctx, companyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(company))
}

// DeleteCompany removes a company without active drives
// @Summary Delete a company
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse "Company deleted"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Failure 409 {object} dto.ErrorResponse "Company has active drives"
// @Router /tpo/companies/{id} [delete]
func (c *TPOController) DeleteCompany(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.companyService.DeleteCompany(ctx, companyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Company deleted successfully"))
}

// CreateDrive opens a placement drive
// @Summary Create a drive
// @Description Registers a drive with its rounds; rounds are normalized to contiguous numbers with default names and types
// @Tags tpo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDriveRequest true "Drive information"
// @Success 201 {object} dto.APIResponse{data=models.Drive} "Drive created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /tpo/drives [post]
func (c *TPOController) CreateDrive(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	drive, err := c.driveService.CreateDrive(ctx, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(drive))
}

// ListDrives lists drives with application aggregates
// @Summary List drives
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param status query string false "Drive status filter" Enums(active,completed,cancelled)
// @Success 200 {object} dto.APIResponse{data=[]models.Drive} "Drives"
// @Router /tpo/drives [get]
func (c *TPOController) ListDrives(ctx *gin.Context) {
	drives, err := c.driveService.GetDrives(ctx, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drives))
}

// GetDrive returns one drive with rounds
// @Summary Get drive details
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=models.Drive} "Drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /tpo/drives/{id} [get]
func (c *TPOController) GetDrive(ctx *gin.Context) {
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

// UpdateDrive applies a partial update to a drive
// @Summary Update a drive
// @Tags tpo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Param request body dto.UpdateDriveRequest true "Drive fields"
// @Success 200 {object} dto.APIResponse{data=models.Drive} "Updated drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /tpo/drives/{id} [put]
func (c *TPOController) UpdateDrive(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	drive, err := c.driveService.UpdateDrive(ctx, driveID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drive))
}

// DeleteDrive removes a drive without applications
// @Summary Delete a drive
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse "Drive deleted"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 409 {object} dto.ErrorResponse "Drive has applications"
// @Router /tpo/drives/{id} [delete]
func (c *TPOController) DeleteDrive(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.driveService.DeleteDrive(ctx, driveID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Drive deleted successfully"))
}

// ListDriveApplications lists a drive's applications
// @Summary List drive applications
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Param status query string false "Status filter" Enums(applied,shortlisted,selected,rejected,on_hold)
// @Param search query string false "Match against student name or enrollment number"
// @Success 200 {object} dto.APIResponse{data=[]models.ApplicationDetail} "Applications"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Router /tpo/drives/{id}/applications [get]
func (c *TPOController) ListDriveApplications(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	applications, err := c.applicationService.ListForDrive(ctx, driveID, ctx.Query("status"), ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications))
}

// GetDriveRounds shows the candidate funnel across a drive's rounds
// @Summary Get round-by-round candidate counts
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RoundProgress} "Round progress"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /tpo/drives/{id}/rounds [get]
func (c *TPOController) GetDriveRounds(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.applicationService.RoundProgress(ctx, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(progress))
}

// GetApplication returns one application with its student and drive context
// @Summary Get application details
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.ApplicationDetail} "Application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /tpo/applications/{id} [get]
func (c *TPOController) GetApplication(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.applicationService.GetByID(ctx, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// UpdateApplicationStatus sets an application's status directly
// @Summary Set application status
// @Description Overwrites an application's status; any enum member is a valid target
// @Tags tpo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.ApplicationDetail} "Updated application"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /tpo/applications/{id}/status [put]
func (c *TPOController) UpdateApplicationStatus(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	detail, err := c.applicationService.SetStatus(ctx, applicationID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// PromoteApplication advances an application one round
// @Summary Promote an application
// @Description Moves an application to the next round; the final round promotes to selected
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.PromoteResponse} "Promoted"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Already in final round or concurrent update"
// @Router /tpo/applications/{id}/promote [put]
func (c *TPOController) PromoteApplication(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.applicationService.Promote(ctx, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PromoteResponse{
		ApplicationID: detail.ID,
		NewRound:      detail.CurrentRound,
		NewStatus:     string(detail.Status),
	}))
}

// RejectApplication rejects an application out of the process
// @Summary Reject an application
// @Description Rejects an application with optional feedback shown to the student
// @Tags tpo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.RejectRoundRequest false "Feedback"
// @Success 200 {object} dto.APIResponse "Rejected"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /tpo/applications/{id}/reject [put]
func (c *TPOController) RejectApplication(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectRoundRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
	}

	if err := c.applicationService.RejectRound(ctx, applicationID, req.Feedback); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Application rejected"))
}

// BulkUpdateApplications sets one status on many applications
// @Summary Bulk update application statuses
// @Description Applies one status to the listed applications and reports how many rows changed; missing IDs are skipped
// @Tags tpo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkUpdateStatusRequest true "Application IDs and status"
// @Success 200 {object} dto.APIResponse{data=dto.BulkUpdateStatusResponse} "Update count"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Router /tpo/applications/bulk-status [put]
func (c *TPOController) BulkUpdateApplications(ctx *gin.Context) {
	var req dto.BulkUpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	updated, err := c.applicationService.BulkSetStatus(ctx, req.ApplicationIDs, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.BulkUpdateStatusResponse{
		Updated: updated,
		Status:  req.Status,
	}))
}

// GetStats returns the placement office dashboard
// @Summary Get placement office stats
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TPOStats} "Stats"
// @Router /tpo/stats [get]
func (c *TPOController) GetStats(ctx *gin.Context) {
	stats, err := c.statsService.GetTPOStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// GetAnalytics returns the placement analytics view
// @Summary Get placement analytics
// @Description Top companies by applications, status distribution and per-department placements
// @Tags tpo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PlacementAnalytics} "Analytics"
// @Router /tpo/analytics [get]
func (c *TPOController) GetAnalytics(ctx *gin.Context) {
	analytics, err := c.statsService.GetAnalytics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(analytics))
}
