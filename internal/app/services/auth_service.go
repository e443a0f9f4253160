package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/app/repositories"
	"github.com/estatecore/backend/internal/metrics"
	"github.com/estatecore/backend/internal/pkg/apperrors"
	"github.com/estatecore/backend/internal/pkg/auth"
	"github.com/estatecore/backend/internal/pkg/email"
	"github.com/estatecore/backend/internal/pkg/filestorage"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IAuthService defines the authentication lifecycle operations
type IAuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest, profilePic *multipart.FileHeader) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// AuthService handles registration, verification, login and password reset
type AuthService struct {
	userRepo    repositories.IUserRepository
	jwtService  *auth.JWTService
	storage     filestorage.FileStorage
	notifier    email.Notifier
	baseURL     string
	frontendURL string
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	notifier email.Notifier,
	baseURL string,
	frontendURL string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		storage:     storage,
		notifier:    notifier,
		baseURL:     baseURL,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Register creates a new Inactive account and sends the verification email.
// The account stays unable to log in until the emailed link is followed.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, profilePic *multipart.FileHeader) (*models.User, error) {
	normalizedEmail := strings.TrimSpace(req.Email)
	if !emailRegex.MatchString(normalizedEmail) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.NewValidationError("Password must be at least 6 characters")
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) || role == models.RoleAdmin {
		return nil, apperrors.NewValidationError("Invalid role")
	}

	exists, err := s.userRepo.EmailExists(ctx, normalizedEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := s.jwtService.GenerateEmailToken(normalizedEmail, auth.PurposeVerifyEmail)
	if err != nil {
		return nil, err
	}

	var profilePicPath *string
	if profilePic != nil {
		savedPath, err := s.storage.SaveFile(profilePic, "images/profile_pictures", "profile")
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Failed to store profile picture")
		}
		profilePicPath = &savedPath
	}

	user := &models.User{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		Email:             normalizedEmail,
		Mobile:            req.Mobile,
		Password:          passwordHash,
		ProfilePic:        profilePicPath,
		Role:              role,
		Status:            models.StatusInactive,
		VerificationToken: &verificationToken,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if profilePicPath != nil {
			if delErr := s.storage.DeleteFile(*profilePicPath); delErr != nil {
				s.logger.Warn().Err(delErr).Str("path", *profilePicPath).Msg("Failed to remove orphaned profile picture")
			}
		}
		return nil, err
	}

	verificationLink := fmt.Sprintf("%s/api/user/verify-email/%s", s.baseURL, verificationToken)
	s.notifier.Enqueue(email.VerificationMessage(user.Email, user.FirstName, verificationLink))
	metrics.RecordEmailEnqueued("verification")

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")
	return user, nil
}

// VerifyEmail activates the account the token was minted for. A token is
// single-use: activation discards the stored copy, so replaying the link
// fails.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateEmailToken(token, auth.PurposeVerifyEmail)
	if err != nil {
		return apperrors.ErrInvalidVerificationToken
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return apperrors.ErrInvalidVerificationToken
	}

	if user.VerificationToken == nil || *user.VerificationToken != token {
		return apperrors.ErrInvalidVerificationToken
	}

	if err := s.userRepo.Activate(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Email verified")
	return nil
}

// Login authenticates the credentials and issues a session token. Accounts
// that never verified their email are rejected before the token is minted.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	switch user.Status {
	case models.StatusActive:
	case models.StatusInactive:
		return "", nil, apperrors.NewCustomError(apperrors.ErrAccountNotVerified, "Please verify your email before logging in")
	default:
		return "", nil, apperrors.NewForbiddenError("Account is suspended")
	}

	token, err := s.jwtService.GenerateSessionToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return token, user, nil
}

// ForgotPassword mints a reset token, stores it with its expiry and mails
// the reset link
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	resetToken, err := s.jwtService.GenerateEmailToken(user.Email, auth.PurposeResetPassword)
	if err != nil {
		return err
	}

	expires := time.Now().Add(s.jwtService.ResetTokenTTL())
	if err := s.userRepo.SetResetToken(ctx, user.ID, resetToken, expires); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, resetToken)
	s.notifier.Enqueue(email.PasswordResetMessage(user.Email, resetLink))
	metrics.RecordEmailEnqueued("password_reset")

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset requested")
	return nil
}

// ResetPassword validates a reset token against the stored copy and replaces
// the password. The stored token is cleared, so a token resets at most once.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.NewValidationError("Password must be at least 6 characters")
	}

	claims, err := s.jwtService.ValidateEmailToken(token, auth.PurposeResetPassword)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	if user.ResetPasswordToken == nil || *user.ResetPasswordToken != token {
		return apperrors.ErrInvalidResetToken
	}
	if user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(time.Now()) {
		return apperrors.ErrInvalidResetToken
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset completed")
	return nil
}
