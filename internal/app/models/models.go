package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleHOD     RoleType = "HOD"
	RoleTPO     RoleType = "TPO"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleHOD, RoleTPO:
		return true
	}
	return false
}

// DriveStatus defines the lifecycle status of a placement drive
type DriveStatus string

const (
	DriveActive    DriveStatus = "active"
	DriveCompleted DriveStatus = "completed"
	DriveCancelled DriveStatus = "cancelled"
)

// IsValid reports whether the drive status is one of the known statuses.
func (s DriveStatus) IsValid() bool {
	switch s {
	case DriveActive, DriveCompleted, DriveCancelled:
		return true
	}
	return false
}

// NotificationType classifies in-app notifications for rendering
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
)
