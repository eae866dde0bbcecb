package models

import "time"

// Company represents a recruiting company managed by the placement office
type Company struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Website     string    `json:"website" db:"website"`
	Industry    string    `json:"industry" db:"industry"`
	Location    string    `json:"location" db:"location"`
	LogoURL     *string   `json:"logoUrl,omitempty" db:"logo_url"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Aggregates (populated by list queries)
	TotalDrives       int `json:"totalDrives,omitempty"`
	TotalApplications int `json:"totalApplications,omitempty"`
}
