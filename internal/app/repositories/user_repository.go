package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/pkg/apperrors"
	"github.com/estatecore/backend/internal/pkg/dberrors"
)

// IUserRepository defines the interface for user database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Activate(ctx context.Context, id int64) error
	SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

const userColumns = `id, first_name, last_name, address, city, state, email, mobile,
	password, profile_pic, role, status, verification_token,
	reset_password_token, reset_password_expires, created_at, updated_at`

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in its generated ID. Email uniqueness
// is enforced case-insensitively by the database.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, address, city, state, email, mobile,
			password, profile_pic, role, status, verification_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		user.FirstName, user.LastName, user.Address, user.City, user.State,
		user.Email, user.Mobile, user.Password, user.ProfilePic,
		user.Role, user.Status, user.VerificationToken).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail retrieves a user by email, matched case-insensitively
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Address, &user.City,
		&user.State, &user.Email, &user.Mobile, &user.Password, &user.ProfilePic,
		&user.Role, &user.Status, &user.VerificationToken,
		&user.ResetPasswordToken, &user.ResetPasswordExpires,
		&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email is already registered, case-insensitively
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// Activate marks a user Active and discards its verification token
func (r *UserRepository) Activate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET status = $1, verification_token = NULL, updated_at = NOW()
		WHERE id = $2`,
		models.StatusActive, id)

	if err != nil {
		return fmt.Errorf("error activating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetResetToken stores a password reset token and its expiry
func (r *UserRepository) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = $1, reset_password_expires = $2, updated_at = NOW()
		WHERE id = $3`,
		token, expires, id)

	if err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the password hash and clears any reset token
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		WHERE id = $2`,
		passwordHash, id)

	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// PurgeExpiredResetTokens clears reset tokens whose expiry is in the past
// and returns how many rows were touched
func (r *UserRepository) PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		WHERE reset_password_expires IS NOT NULL AND reset_password_expires < $1`,
		now)

	if err != nil {
		return 0, fmt.Errorf("error purging expired reset tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
