package dto

// RegisterRequest is the registration payload for all three roles
type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email" example:"student@college.edu"`
	Password         string `json:"password" binding:"required,min=6" example:"secret123"`
	Role             string `json:"role" binding:"required" example:"STUDENT" enums:"STUDENT,HOD,TPO"`
	FirstName        string `json:"firstName" binding:"required" example:"Asha"`
	LastName         string `json:"lastName" binding:"required" example:"Nair"`
	Phone            string `json:"phone" example:"+911234567890"`
	DepartmentID     int64  `json:"departmentId" example:"1"`
	EnrollmentNumber string `json:"enrollmentNumber" example:"ENR2021001"`
	Designation      string `json:"designation" example:"Training & Placement Officer"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the authenticated identity
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
	UserID      int64  `json:"userId"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}
