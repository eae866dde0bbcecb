package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Every controller
// funnels its errors through here so one sentinel always produces one status
// and code.
func HandleAPIError(c *gin.Context, err error) {
	// Eligibility failures carry their full issue list into the response
	var eligErr *apperrors.EligibilityError
	if errors.As(err, &eligErr) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeNotEligible, "You do not meet the eligibility criteria")
		errorDetail = errorDetail.WithDetails(eligErr.Issues)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrStudentOutsideDepartment):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrHODNotFound),
		errors.Is(err, apperrors.ErrDepartmentNotFound),
		errors.Is(err, apperrors.ErrCompanyNotFound),
		errors.Is(err, apperrors.ErrDriveNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrEnrollmentAlreadyExists),
		errors.Is(err, apperrors.ErrDepartmentAlreadyExists),
		errors.Is(err, apperrors.ErrCompanyAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	case errors.Is(err, apperrors.ErrDriveNotActive):
		respond(c, http.StatusConflict, dto.ErrorCodeDriveNotActive, "This drive is not accepting applications")
	case errors.Is(err, apperrors.ErrDeadlinePassed):
		respond(c, http.StatusConflict, dto.ErrorCodeDeadlinePassed, "The application deadline has passed")
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyApplied, "You have already applied to this drive")
	case errors.Is(err, apperrors.ErrAlreadyFinalRound):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyFinalRound, "Application is already in the final round")
	case errors.Is(err, apperrors.ErrConcurrentUpdate):
		respond(c, http.StatusConflict, dto.ErrorCodeConcurrentUpdate, "Application was modified by another request, retry")
	case errors.Is(err, apperrors.ErrCompanyHasActiveDrives),
		errors.Is(err, apperrors.ErrDriveHasApplications):
		respond(c, http.StatusConflict, dto.ErrorCodeHasRelations, err.Error())

	case errors.Is(err, apperrors.ErrInvalidStatus):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidStatus, "Invalid application status")
	case errors.Is(err, apperrors.ErrInvalidRole):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid role")
	case errors.Is(err, apperrors.ErrInvalidRounds):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid round definition")
	case errors.Is(err, apperrors.ErrProfileNotApproved):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Your profile is not approved yet")
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleBindingError maps request binding failures to a validation response
func HandleBindingError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
	errorDetail = errorDetail.WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
