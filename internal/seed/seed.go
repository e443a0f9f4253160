package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/app/repositories"
	"github.com/estatecore/backend/internal/pkg/apperrors"
	"github.com/estatecore/backend/internal/pkg/auth"
)

// EnsureAdmin creates the configured admin account on first start. An
// existing account with the same email is left untouched.
func EnsureAdmin(ctx context.Context, userRepo repositories.IUserRepository, adminEmail, adminPassword string, logger zerolog.Logger) error {
	if adminEmail == "" || adminPassword == "" {
		logger.Debug().Msg("Admin seed not configured, skipping")
		return nil
	}

	_, err := userRepo.FindByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName: "Admin",
		LastName:  "User",
		Email:     adminEmail,
		Password:  passwordHash,
		Role:      models.RoleAdmin,
		Status:    models.StatusActive,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info().Str("email", adminEmail).Msg("Admin account seeded")
	return nil
}
