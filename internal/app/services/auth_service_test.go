package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/auth"
)

type fakeUserStore struct {
	users         map[string]*models.User
	nextID        int64
	lastLoginFor  int64
	createdRole   models.RoleType
	createFailure error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserStore) addUser(email, password string, role models.RoleType, active bool) *models.User {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	user := &models.User{
		ID:       f.nextID,
		Email:    email,
		Password: hashed,
		RoleType: role,
		IsActive: active,
	}
	f.nextID++
	f.users[email] = user
	return user
}

func (f *fakeUserStore) create(user *models.User, role models.RoleType) error {
	if f.createFailure != nil {
		return f.createFailure
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user
	f.createdRole = role
	return nil
}

func (f *fakeUserStore) CreateStudentAccount(_ context.Context, user *models.User, _ *models.Student) error {
	return f.create(user, models.RoleStudent)
}

func (f *fakeUserStore) CreateHODAccount(_ context.Context, user *models.User, _ *models.HeadOfDepartment) error {
	return f.create(user, models.RoleHOD)
}

func (f *fakeUserStore) CreateTPOAccount(_ context.Context, user *models.User, _ *models.PlacementOfficer) error {
	return f.create(user, models.RoleTPO)
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	f.lastLoginFor = userID
	return nil
}

type fakeProfiles struct {
	student *models.Student
	hod     *models.HeadOfDepartment
}

func (f *fakeProfiles) GetByUserID(_ context.Context, _ int64) (*models.Student, error) {
	if f.student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return f.student, nil
}

func (f *fakeProfiles) GetHODByUserID(_ context.Context, _ int64) (*models.HeadOfDepartment, error) {
	if f.hod == nil {
		return nil, apperrors.ErrHODNotFound
	}
	return f.hod, nil
}

type fakeDepartments struct {
	departments map[int64]*models.Department
}

func (f *fakeDepartments) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return department, nil
}

func newAuthFixture() (*AuthService, *fakeUserStore, *fakeProfiles) {
	users := newFakeUserStore()
	profiles := &fakeProfiles{}
	departments := &fakeDepartments{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CSE"},
	}}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "placementhub.test",
	})
	svc := NewAuthService(users, profiles, departments, jwtService, zerolog.Nop())
	return svc, users, profiles
}

func TestLogin_HappyPath(t *testing.T) {
	svc, users, profiles := newAuthFixture()
	user := users.addUser("asha@college.edu", "secret123", models.RoleStudent, true)
	profiles.student = &models.Student{UserID: user.ID, FirstName: "Asha", LastName: "Nair"}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, string(models.RoleStudent), resp.Role)
	assert.Equal(t, "Asha", resp.FirstName)
	assert.Equal(t, user.ID, users.lastLoginFor)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _ := newAuthFixture()
	users.addUser("asha@college.edu", "secret123", models.RoleStudent, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Zero(t, users.lastLoginFor)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, users, _ := newAuthFixture()
	users.addUser("asha@college.edu", "secret123", models.RoleStudent, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	svc, users, _ := newAuthFixture()
	users.addUser("asha@college.edu", "secret123", models.RoleStudent, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Asha@College.EDU",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@college.edu", resp.Email)
}

func registerRequest(role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:            "asha@college.edu",
		Password:         "secret123",
		Role:             role,
		FirstName:        "Asha",
		LastName:         "Nair",
		DepartmentID:     1,
		EnrollmentNumber: "ENR2021001",
	}
}

func TestRegister_StudentStartsUnapproved(t *testing.T) {
	svc, users, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, users.createdRole)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, string(models.RoleStudent), resp.Role)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := registerRequest("ADMIN")
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestRegister_StudentRequiresEnrollmentNumber(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := registerRequest("STUDENT")
	req.EnrollmentNumber = "  "
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegister_UnknownDepartment(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := registerRequest("HOD")
	req.DepartmentID = 99
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}
