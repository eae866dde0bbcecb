package dto

// UpdateApplicationStatusRequest sets the status of a single application
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required" enums:"applied,shortlisted,selected,rejected,on_hold"`
}

// BulkUpdateStatusRequest applies one status to many applications at once
type BulkUpdateStatusRequest struct {
	ApplicationIDs []int64 `json:"applicationIds" binding:"required,min=1"`
	Status         string  `json:"status" binding:"required" enums:"applied,shortlisted,selected,rejected,on_hold"`
}

// BulkUpdateStatusResponse reports how many rows the bulk change touched
type BulkUpdateStatusResponse struct {
	Updated int64  `json:"updated"`
	Status  string `json:"status"`
}

// RejectRoundRequest carries optional interviewer feedback for a rejection
type RejectRoundRequest struct {
	Feedback string `json:"feedback"`
}

// PromoteResponse describes the application state after a round promotion
type PromoteResponse struct {
	ApplicationID int64  `json:"applicationId"`
	NewRound      int    `json:"newRound"`
	NewStatus     string `json:"newStatus"`
}

// EligibilityIssueResponse is one failed eligibility check
type EligibilityIssueResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// EligibilityResponse is the result of an eligibility pre-check for a drive
type EligibilityResponse struct {
	Eligible bool                       `json:"eligible"`
	Issues   []EligibilityIssueResponse `json:"issues"`
}
