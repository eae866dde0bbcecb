package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

func ptrFloat(f float64) *float64 { return &f }
func ptrString(s string) *string  { return &s }

func eligibleStudent() *models.Student {
	return &models.Student{
		ID:         1,
		UserID:     10,
		IsApproved: true,
		CGPA:       ptrFloat(8.5),
		Backlogs:   0,
		ResumeURL:  ptrString("/uploads/resumes/abc.pdf"),
	}
}

func standardDrive() *models.Drive {
	return &models.Drive{
		ID:          1,
		MinCGPA:     7.0,
		MaxBacklogs: 2,
	}
}

func TestEvaluateEligibility_AllChecksPass(t *testing.T) {
	issues := EvaluateEligibility(eligibleStudent(), standardDrive())
	assert.Empty(t, issues)
}

func TestEvaluateEligibility_NotApproved(t *testing.T) {
	student := eligibleStudent()
	student.IsApproved = false

	issues := EvaluateEligibility(student, standardDrive())
	require.Len(t, issues, 1)
	assert.Equal(t, apperrors.SeverityCritical, issues[0].Severity)
	assert.Equal(t, "Profile not approved by HOD", issues[0].Message)
}

func TestEvaluateEligibility_NoResume(t *testing.T) {
	student := eligibleStudent()
	student.ResumeURL = nil

	issues := EvaluateEligibility(student, standardDrive())
	require.Len(t, issues, 1)
	assert.Equal(t, apperrors.SeverityCritical, issues[0].Severity)
	assert.Equal(t, "Resume not uploaded", issues[0].Message)
}

func TestEvaluateEligibility_EmptyResumeURL(t *testing.T) {
	student := eligibleStudent()
	student.ResumeURL = ptrString("")

	issues := EvaluateEligibility(student, standardDrive())
	require.Len(t, issues, 1)
	assert.Equal(t, "Resume not uploaded", issues[0].Message)
}

func TestEvaluateEligibility_MissingCGPAIsProfileIssue(t *testing.T) {
	student := eligibleStudent()
	student.CGPA = nil

	issues := EvaluateEligibility(student, standardDrive())
	require.Len(t, issues, 1)
	assert.Equal(t, apperrors.SeverityProfile, issues[0].Severity)
	assert.Equal(t, "CGPA not updated in profile", issues[0].Message)
}

func TestEvaluateEligibility_LowCGPA(t *testing.T) {
	student := eligibleStudent()
	student.CGPA = ptrFloat(6.5)

	issues := EvaluateEligibility(student, standardDrive())
	require.Len(t, issues, 1)
	assert.Equal(t, apperrors.SeverityEligibility, issues[0].Severity)
	assert.Equal(t, "CGPA too low (Required: 7, Yours: 6.5)", issues[0].Message)
}

func TestEvaluateEligibility_CGPAExactlyAtThreshold(t *testing.T) {
	student := eligibleStudent()
	student.CGPA = ptrFloat(7.0)

	issues := EvaluateEligibility(student, standardDrive())
	assert.Empty(t, issues)
}

func TestEvaluateEligibility_TooManyBacklogs(t *testing.T) {
	student := eligibleStudent()
	student.Backlogs = 3

	issues := EvaluateEligibility(student, standardDrive())
	require.Len(t, issues, 1)
	assert.Equal(t, apperrors.SeverityEligibility, issues[0].Severity)
	assert.Equal(t, "Too many backlogs (Allowed: 2, Yours: 3)", issues[0].Message)
}

func TestEvaluateEligibility_BacklogsExactlyAtLimit(t *testing.T) {
	student := eligibleStudent()
	student.Backlogs = 2

	issues := EvaluateEligibility(student, standardDrive())
	assert.Empty(t, issues)
}

func TestEvaluateEligibility_AllChecksFailInOrder(t *testing.T) {
	student := &models.Student{
		IsApproved: false,
		ResumeURL:  nil,
		CGPA:       ptrFloat(5.0),
		Backlogs:   4,
	}

	issues := EvaluateEligibility(student, standardDrive())
	require.Len(t, issues, 4)
	assert.Equal(t, "Profile not approved by HOD", issues[0].Message)
	assert.Equal(t, "Resume not uploaded", issues[1].Message)
	assert.Equal(t, "CGPA too low (Required: 7, Yours: 5)", issues[2].Message)
	assert.Equal(t, "Too many backlogs (Allowed: 2, Yours: 4)", issues[3].Message)
}

func TestEvaluateEligibility_MissingCGPASkipsThresholdCheck(t *testing.T) {
	student := eligibleStudent()
	student.CGPA = nil

	drive := standardDrive()
	drive.MinCGPA = 9.5

	issues := EvaluateEligibility(student, drive)
	require.Len(t, issues, 1)
	assert.Equal(t, "CGPA not updated in profile", issues[0].Message)
}

func TestEvaluateEligibility_Deterministic(t *testing.T) {
	student := &models.Student{
		IsApproved: false,
		CGPA:       ptrFloat(6.0),
		Backlogs:   5,
	}
	drive := standardDrive()

	first := EvaluateEligibility(student, drive)
	second := EvaluateEligibility(student, drive)
	assert.Equal(t, first, second)
}
