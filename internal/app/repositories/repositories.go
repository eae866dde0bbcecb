package repositories

import (
	"github.com/yigit/placementhub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	DepartmentRepository   *DepartmentRepository
	CompanyRepository      *CompanyRepository
	DriveRepository        *DriveRepository
	ApplicationRepository  *ApplicationRepository
	NotificationRepository *NotificationRepository
	StatsRepository        *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database),
		StudentRepository:      NewStudentRepository(database.Pool),
		DepartmentRepository:   NewDepartmentRepository(database.Pool),
		CompanyRepository:      NewCompanyRepository(database.Pool),
		DriveRepository:        NewDriveRepository(database),
		ApplicationRepository:  NewApplicationRepository(database),
		NotificationRepository: NewNotificationRepository(database.Pool),
		StatsRepository:        NewStatsRepository(database.Pool),
	}
}
