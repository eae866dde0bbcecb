package models

import "time"

// Drive defines a placement drive based on the 'placement_drives' table.
// Round numbers are contiguous starting at 1 and TotalRounds always matches
// the number of defined rounds.
type Drive struct {
	ID                  int64       `json:"id" db:"id"`
	CompanyID           int64       `json:"companyId" db:"company_id"`
	JobRole             string      `json:"jobRole" db:"job_role"`
	JobDescription      string      `json:"jobDescription" db:"job_description"`
	PackageCTC          float64     `json:"packageCtc" db:"package_ctc"`
	PackageBase         float64     `json:"packageBase" db:"package_base"`
	PackageStipend      float64     `json:"packageStipend" db:"package_stipend"`
	Location            string      `json:"location" db:"location"`
	JobType             string      `json:"jobType" db:"job_type"`
	MinCGPA             float64     `json:"minCgpa" db:"min_cgpa"`
	MaxBacklogs         int         `json:"maxBacklogs" db:"max_backlogs"`
	ApplicationDeadline time.Time   `json:"applicationDeadline" db:"application_deadline"`
	Status              DriveStatus `json:"status" db:"status"`
	TotalRounds         int         `json:"totalRounds" db:"total_rounds"`
	CreatedBy           int64       `json:"createdBy" db:"created_by"`
	CreatedAt           time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time   `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	CompanyName     string  `json:"companyName,omitempty"`
	CompanyIndustry string  `json:"companyIndustry,omitempty"`
	CompanyWebsite  string  `json:"companyWebsite,omitempty"`
	CompanyLogoURL  *string `json:"companyLogoUrl,omitempty"`
	Rounds          []Round `json:"rounds,omitempty"`

	// Aggregates (populated by list queries)
	ApplicationCount int `json:"applicationCount,omitempty"`
	SelectedCount    int `json:"selectedCount,omitempty"`
}

// Round is one stage of a drive's evaluation process
type Round struct {
	ID          int64  `json:"id" db:"id"`
	DriveID     int64  `json:"driveId" db:"drive_id"`
	RoundNumber int    `json:"roundNumber" db:"round_number"`
	RoundName   string `json:"roundName" db:"round_name"`
	RoundType   string `json:"roundType" db:"round_type"`
}
