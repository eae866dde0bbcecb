package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"student@college.edu"`
	Password    string     `json:"-" db:"password_hash"`
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
