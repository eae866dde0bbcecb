package services

// Services defined in this package:
// - AuthService: registration, login and token issuance
// - StudentService: student profiles and the HOD approval workflow
// - ApplicationService: the application lifecycle and its notifications
// - DriveService: the placement drive registry
// - CompanyService: the company registry
// - NotificationService: the in-app notification inbox
// - StatsService: placement office dashboard counters
