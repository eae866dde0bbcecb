package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return recorder.Code, &resp
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"outside department", apperrors.ErrStudentOutsideDepartment, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"drive not found", apperrors.ErrDriveNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"application not found", apperrors.ErrApplicationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"drive not active", apperrors.ErrDriveNotActive, http.StatusConflict, dto.ErrorCodeDriveNotActive},
		{"deadline passed", apperrors.ErrDeadlinePassed, http.StatusConflict, dto.ErrorCodeDeadlinePassed},
		{"already applied", apperrors.ErrAlreadyApplied, http.StatusConflict, dto.ErrorCodeAlreadyApplied},
		{"already final round", apperrors.ErrAlreadyFinalRound, http.StatusConflict, dto.ErrorCodeAlreadyFinalRound},
		{"concurrent update", apperrors.ErrConcurrentUpdate, http.StatusConflict, dto.ErrorCodeConcurrentUpdate},
		{"has applications", apperrors.ErrDriveHasApplications, http.StatusConflict, dto.ErrorCodeHasRelations},
		{"invalid status", apperrors.ErrInvalidStatus, http.StatusBadRequest, dto.ErrorCodeInvalidStatus},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown error", assert.AnError, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := handleError(t, tc.err)
			assert.Equal(t, tc.status, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestHandleAPIError_EligibilityCarriesIssues(t *testing.T) {
	err := &apperrors.EligibilityError{Issues: []apperrors.EligibilityIssue{
		{Severity: apperrors.SeverityCritical, Message: "Profile not approved by HOD"},
		{Severity: apperrors.SeverityEligibility, Message: "Too many backlogs (Allowed: 0, Yours: 2)"},
	}}

	status, resp := handleError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeNotEligible, resp.Error.Code)

	issues, ok := resp.Error.Details.([]interface{})
	require.True(t, ok)
	assert.Len(t, issues, 2)
}

func TestHandleAPIError_WrappedSentinel(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid drive status filter")

	status, resp := handleError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
}
