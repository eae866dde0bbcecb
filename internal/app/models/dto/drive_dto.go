package dto

import "time"

// RoundDefinition is one round in a drive creation request. Name and type are
// optional; unnamed rounds become "Round N" and the type defaults to technical.
type RoundDefinition struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateDriveRequest is the placement-office payload for opening a drive
type CreateDriveRequest struct {
	CompanyID           int64             `json:"companyId" binding:"required"`
	JobRole             string            `json:"jobRole" binding:"required"`
	JobDescription      string            `json:"jobDescription" binding:"required"`
	PackageCTC          float64           `json:"packageCtc" binding:"required,gt=0"`
	PackageBase         *float64          `json:"packageBase,omitempty"`
	PackageStipend      *float64          `json:"packageStipend,omitempty"`
	Location            string            `json:"location" binding:"required"`
	JobType             string            `json:"jobType" binding:"required"`
	MinCGPA             float64           `json:"minCgpa" binding:"gte=0,lte=10"`
	MaxBacklogs         int               `json:"maxBacklogs" binding:"gte=0"`
	ApplicationDeadline time.Time         `json:"applicationDeadline" binding:"required"`
	TotalRounds         int               `json:"totalRounds" binding:"omitempty,gte=1"`
	Rounds              []RoundDefinition `json:"rounds,omitempty"`
}

// UpdateDriveRequest carries the mutable drive fields; rounds are fixed after
// creation. Pointers distinguish "not sent" from zero values.
type UpdateDriveRequest struct {
	JobRole             *string    `json:"jobRole,omitempty"`
	JobDescription      *string    `json:"jobDescription,omitempty"`
	PackageCTC          *float64   `json:"packageCtc,omitempty"`
	PackageBase         *float64   `json:"packageBase,omitempty"`
	PackageStipend      *float64   `json:"packageStipend,omitempty"`
	Location            *string    `json:"location,omitempty"`
	JobType             *string    `json:"jobType,omitempty"`
	MinCGPA             *float64   `json:"minCgpa,omitempty" binding:"omitempty,gte=0,lte=10"`
	MaxBacklogs         *int       `json:"maxBacklogs,omitempty" binding:"omitempty,gte=0"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	Status              *string    `json:"status,omitempty" enums:"active,completed,cancelled"`
}

// DriveBrowseFilter narrows the student-facing drive listing
type DriveBrowseFilter struct {
	Search     string  `form:"search"`
	JobType    string  `form:"job_type"`
	MinPackage float64 `form:"min_package"`
}

// RoundProgress reports how many candidates survived to a given round
type RoundProgress struct {
	RoundNumber int    `json:"roundNumber"`
	RoundName   string `json:"roundName"`
	RoundType   string `json:"roundType"`
	Candidates  int    `json:"candidates"`
}

// DriveApplicationStats is the per-drive application breakdown
type DriveApplicationStats struct {
	Total       int `json:"total"`
	Applied     int `json:"applied"`
	Shortlisted int `json:"shortlisted"`
	Selected    int `json:"selected"`
	Rejected    int `json:"rejected"`
}
