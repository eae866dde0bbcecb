package dto

// CreateCompanyRequest registers a recruiting company
type CreateCompanyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty" binding:"omitempty,url"`
	Industry    *string `json:"industry,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
}

// UpdateCompanyRequest carries the mutable company fields
type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty" binding:"omitempty,url"`
	Industry    *string `json:"industry,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
}
