package services

import (
	"fmt"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// EvaluateEligibility runs every eligibility check for a student against a
// drive and returns the full list of failed checks in a fixed order:
// approval, resume, CGPA, backlogs. An empty result means eligible. The
// function reads nothing but its arguments, so the same inputs always
// produce the same issues.
//
// A missing CGPA is a profile issue, not an eligibility comparison: the
// threshold check only runs once the student has recorded a CGPA.
func EvaluateEligibility(student *models.Student, drive *models.Drive) []apperrors.EligibilityIssue {
	var issues []apperrors.EligibilityIssue

	if !student.IsApproved {
		issues = append(issues, apperrors.EligibilityIssue{
			Severity: apperrors.SeverityCritical,
			Message:  "Profile not approved by HOD",
		})
	}

	if student.ResumeURL == nil || *student.ResumeURL == "" {
		issues = append(issues, apperrors.EligibilityIssue{
			Severity: apperrors.SeverityCritical,
			Message:  "Resume not uploaded",
		})
	}

	if student.CGPA == nil {
		issues = append(issues, apperrors.EligibilityIssue{
			Severity: apperrors.SeverityProfile,
			Message:  "CGPA not updated in profile",
		})
	} else if *student.CGPA < drive.MinCGPA {
		issues = append(issues, apperrors.EligibilityIssue{
			Severity: apperrors.SeverityEligibility,
			Message:  fmt.Sprintf("CGPA too low (Required: %g, Yours: %g)", drive.MinCGPA, *student.CGPA),
		})
	}

	if student.Backlogs > drive.MaxBacklogs {
		issues = append(issues, apperrors.EligibilityIssue{
			Severity: apperrors.SeverityEligibility,
			Message:  fmt.Sprintf("Too many backlogs (Allowed: %d, Yours: %d)", drive.MaxBacklogs, student.Backlogs),
		})
	}

	return issues
}
