package dto

// UpdateProfileRequest carries the student-mutable profile fields. Pointers
// distinguish "not sent" from zero values.
type UpdateProfileRequest struct {
	FirstName   *string  `json:"firstName,omitempty"`
	LastName    *string  `json:"lastName,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	CGPA        *float64 `json:"cgpa,omitempty" binding:"omitempty,gte=0,lte=10"`
	Backlogs    *int     `json:"backlogs,omitempty" binding:"omitempty,gte=0"`
	YearOfStudy *int     `json:"yearOfStudy,omitempty" binding:"omitempty,gte=1,lte=6"`
	Skills      *string  `json:"skills,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
}

// StudentStats is the student dashboard summary
type StudentStats struct {
	TotalApplications int `json:"totalApplications"`
	Pending           int `json:"pending"`
	Shortlisted       int `json:"shortlisted"`
	Selected          int `json:"selected"`
	Rejected          int `json:"rejected"`
	ActiveDrives      int `json:"activeDrives"`
}

// RejectStudentRequest carries the reason shown to a rejected student profile
type RejectStudentRequest struct {
	Reason string `json:"reason"`
}

// BulkApproveRequest identifies the students to approve in one batch
type BulkApproveRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1"`
}

// HODStats is the department head dashboard summary
type HODStats struct {
	TotalStudents    int `json:"totalStudents"`
	ApprovedStudents int `json:"approvedStudents"`
	PendingStudents  int `json:"pendingStudents"`
	PlacedStudents   int `json:"placedStudents"`
}
