package dto

// UnreadCountResponse reports the caller's unread notification count
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// TPOStats is the placement-office dashboard summary
type TPOStats struct {
	TotalStudents     int64   `json:"totalStudents"`
	ApprovedStudents  int64   `json:"approvedStudents"`
	TotalCompanies    int64   `json:"totalCompanies"`
	ActiveDrives      int64   `json:"activeDrives"`
	TotalApplications int64   `json:"totalApplications"`
	TotalSelected     int64   `json:"totalSelected"`
	PlacementRate     float64 `json:"placementRate"`
}

// CompanyRanking is one entry of the top-companies analytics list
type CompanyRanking struct {
	CompanyName  string `json:"companyName"`
	Applications int64  `json:"applications"`
	Selected     int64  `json:"selected"`
}

// DepartmentPlacementStats is one department's placement outcome
type DepartmentPlacementStats struct {
	DepartmentName string `json:"departmentName"`
	TotalStudents  int64  `json:"totalStudents"`
	PlacedStudents int64  `json:"placedStudents"`
}

// PlacementAnalytics is the placement-office analytics view
type PlacementAnalytics struct {
	TopCompanies       []CompanyRanking           `json:"topCompanies"`
	StatusDistribution map[string]int64           `json:"statusDistribution"`
	Departments        []DepartmentPlacementStats `json:"departments"`
}
