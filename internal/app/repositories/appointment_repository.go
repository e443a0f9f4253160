package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/pkg/apperrors"
)

// IAppointmentRepository defines the interface for appointment database operations
type IAppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	FindAllDetails(ctx context.Context) ([]*models.AppointmentDetails, error)
	FindForUser(ctx context.Context, userID int64, email string) ([]*models.AppointmentDetails, error)
	UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
}

const appointmentColumns = `a.id, a.name, a.email, a.date, a.time, a.message, a.status,
	a.property_id, a.user_id, a.created_at, a.updated_at`

// AppointmentRepository handles appointment database operations
type AppointmentRepository struct {
	db *pgxpool.Pool
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts a new appointment and fills in its generated ID
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO appointments (name, email, date, time, message, status, property_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		appointment.Name, appointment.Email, appointment.Date, appointment.Time,
		appointment.Message, appointment.Status, appointment.PropertyID, appointment.UserID).
		Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}

	return nil
}

// FindByID retrieves an appointment by ID
func (r *AppointmentRepository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	err := r.db.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		WHERE a.id = $1`, id).
		Scan(&appointment.ID, &appointment.Name, &appointment.Email,
			&appointment.Date, &appointment.Time, &appointment.Message,
			&appointment.Status, &appointment.PropertyID, &appointment.UserID,
			&appointment.CreatedAt, &appointment.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrAppointmentNotFound, "Appointment not found")
		}
		return nil, fmt.Errorf("error retrieving appointment: %w", err)
	}

	return appointment, nil
}

// FindAllDetails retrieves every appointment with its optional property and
// user relations resolved, newest first
func (r *AppointmentRepository) FindAllDetails(ctx context.Context) ([]*models.AppointmentDetails, error) {
	return r.queryDetails(ctx, detailsQuery+` ORDER BY a.created_at DESC`)
}

// FindForUser retrieves the appointments belonging to a user, either linked
// by user ID or created anonymously with the same email
func (r *AppointmentRepository) FindForUser(ctx context.Context, userID int64, email string) ([]*models.AppointmentDetails, error) {
	return r.queryDetails(ctx,
		detailsQuery+` WHERE a.user_id = $1 OR LOWER(a.email) = LOWER($2) ORDER BY a.created_at DESC`,
		userID, email)
}

const detailsQuery = `
	SELECT ` + appointmentColumns + `,
		p.title, p.location,
		CASE WHEN u.id IS NULL THEN NULL ELSE u.first_name || ' ' || u.last_name END,
		u.email
	FROM appointments a
	LEFT JOIN properties p ON p.id = a.property_id
	LEFT JOIN users u ON u.id = a.user_id`

func (r *AppointmentRepository) queryDetails(ctx context.Context, query string, args ...any) ([]*models.AppointmentDetails, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]*models.AppointmentDetails, 0)
	for rows.Next() {
		details := &models.AppointmentDetails{}
		if err := rows.Scan(&details.ID, &details.Name, &details.Email,
			&details.Date, &details.Time, &details.Message, &details.Status,
			&details.PropertyID, &details.UserID,
			&details.CreatedAt, &details.UpdatedAt,
			&details.PropertyTitle, &details.PropertyLocation,
			&details.UserName, &details.UserEmail); err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		appointments = append(appointments, details)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}

	return appointments, nil
}

// UpdateStatus changes the workflow status of an appointment
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET status = $1, updated_at = NOW()
		WHERE id = $2`,
		status, id)

	if err != nil {
		return fmt.Errorf("error updating appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.ErrAppointmentNotFound, "Appointment not found")
	}

	return nil
}

// Delete removes an appointment by ID
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.ErrAppointmentNotFound, "Appointment not found")
	}

	return nil
}
