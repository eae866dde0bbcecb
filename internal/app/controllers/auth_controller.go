package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
)

// AuthController handles registration and login
type AuthController struct {
	authService       *services.AuthService
	departmentService *services.DepartmentService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, departmentService *services.DepartmentService) *AuthController {
	return &AuthController{
		authService:       authService,
		departmentService: departmentService,
	}
}

// Register handles account registration for all three roles
// @Summary Register a new account
// @Description Creates a student, HOD or TPO account and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Email or enrollment number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.authService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// Login handles authentication
// @Summary Log in
// @Description Authenticates a user and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Me returns the authenticated identity
// @Summary Get current user
// @Description Returns the authenticated user's account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "Current user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// GetDepartments lists departments for registration forms
// @Summary List departments
// @Description Retrieves all departments; used by the registration form
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/departments [get]
func (c *AuthController) GetDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.GetAllDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(departments))
}
