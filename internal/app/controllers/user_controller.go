// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/app/services"
	"github.com/estatecore/backend/internal/middleware"
)

// UserController handles the authentication lifecycle endpoints
type UserController struct {
	authService services.IAuthService
	frontendURL string
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(authService services.IAuthService, frontendURL string, logger zerolog.Logger) *UserController {
	return &UserController{
		authService: authService,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Register handles POST /api/user/add-user
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("All required fields must be provided"))
		return
	}

	// Optional profile picture part
	profilePic, err := ctx.FormFile("profilePic")
	if err != nil {
		profilePic = nil
	}

	user, err := c.authService.Register(ctx.Request.Context(), req, profilePic)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Registration successful. Please check your email to verify your account.",
		User:    user,
	})
}

// VerifyEmail handles GET /api/user/verify-email/:token. The browser follows
// the emailed link directly, so the outcome is delivered as a redirect to
// the frontend login page.
func (c *UserController) VerifyEmail(ctx *gin.Context) {
	token := ctx.Param("token")

	status := "success"
	message := "Email verified successfully. You can now log in."
	if err := c.authService.VerifyEmail(ctx.Request.Context(), token); err != nil {
		c.logger.Warn().Err(err).Msg("Email verification failed")
		status = "error"
		message = "Invalid or expired verification link."
	}

	redirect := c.frontendURL + "/login?" + url.Values{
		"status":  {status},
		"message": {message},
	}.Encode()
	ctx.Redirect(http.StatusFound, redirect)
}

// Login handles POST /api/user/login
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email and password are required"))
		return
	}

	token, user, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Status:  "success",
		Token:   token,
		User:    user,
	})
}

// Profile handles GET /api/user/profile. The auth middleware already
// resolved the account, so this just returns it with secrets stripped by
// the model's JSON tags.
func (c *UserController) Profile(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// ForgotPassword handles POST /api/user/forgot-password
func (c *UserController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email is required"))
		return
	}

	if err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password reset link sent to your email"))
}

// ResetPassword handles POST /api/user/reset-password/:token
func (c *UserController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("New password is required"))
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), ctx.Param("token"), req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password has been reset successfully"))
}
