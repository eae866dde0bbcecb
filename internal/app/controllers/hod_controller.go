package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
)

// HODController handles the department head endpoints: student approval and
// department dashboards
type HODController struct {
	studentService *services.StudentService
}

// NewHODController creates a new HODController
func NewHODController(studentService *services.StudentService) *HODController {
	return &HODController{
		studentService: studentService,
	}
}

// ListStudents lists the department's students
// @Summary List department students
// @Tags hod
// @Produce json
// @Security BearerAuth
// @Param approved query bool false "Filter by approval state"
// @Param search query string false "Match against name or enrollment number"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "HOD profile not found"
// @Router /hod/students [get]
func (c *HODController) ListStudents(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var approved *bool
	if raw := ctx.Query("approved"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid approved filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		approved = &value
	}

	students, err := c.studentService.ListDepartmentStudents(ctx, userID, approved, ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// ApproveStudent approves one student profile
// @Summary Approve a student
// @Description Marks a department student approved so they can apply to drives
// @Tags hod
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student approved"
// @Failure 403 {object} dto.ErrorResponse "Student belongs to another department"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /hod/students/{id}/approve [put]
func (c *HODController) ApproveStudent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.ApproveStudent(ctx, userID, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student approved successfully"))
}

// RejectStudent withdraws a student's approval
// @Summary Reject a student
// @Description Revokes a department student's approval with an optional reason
// @Tags hod
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.RejectStudentRequest false "Rejection reason"
// @Success 200 {object} dto.APIResponse "Approval revoked"
// @Failure 403 {object} dto.ErrorResponse "Student belongs to another department"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /hod/students/{id}/reject [put]
func (c *HODController) RejectStudent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectStudentRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
	}

	if err := c.studentService.RejectStudent(ctx, userID, studentID, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student approval revoked"))
}

// BulkApproveStudents approves many students at once
// @Summary Bulk approve students
// @Description Approves the listed department students and reports how many changed
// @Tags hod
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkApproveRequest true "Student IDs"
// @Success 200 {object} dto.APIResponse "Approval count"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "HOD profile not found"
// @Router /hod/students/bulk-approve [put]
func (c *HODController) BulkApproveStudents(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.BulkApproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	approved, err := c.studentService.BulkApproveStudents(ctx, userID, req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"approved": approved}))
}

// GetStats returns the department dashboard summary
// @Summary Get department stats
// @Tags hod
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.HODStats} "Stats"
// @Failure 404 {object} dto.ErrorResponse "HOD profile not found"
// @Router /hod/stats [get]
func (c *HODController) GetStats(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	stats, err := c.studentService.GetDepartmentStats(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
