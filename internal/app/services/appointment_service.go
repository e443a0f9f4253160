package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/app/repositories"
	"github.com/estatecore/backend/internal/metrics"
	"github.com/estatecore/backend/internal/pkg/apperrors"
	"github.com/estatecore/backend/internal/pkg/email"
)

const appointmentDateLayout = "2006-01-02"

// IAppointmentService defines the appointment workflow operations
type IAppointmentService interface {
	CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest) (*models.Appointment, error)
	GetAppointment(ctx context.Context, caller *models.User, id int64) (*models.Appointment, error)
	ListAppointments(ctx context.Context) ([]*models.AppointmentDetails, error)
	ListUserAppointments(ctx context.Context, caller *models.User) ([]*models.AppointmentDetails, error)
	UpdateAppointmentStatus(ctx context.Context, caller *models.User, id int64, status models.AppointmentStatus) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, caller *models.User, id int64) error
}

// AppointmentService handles scheduling, the status workflow and the
// ownership checks guarding reads and deletes
type AppointmentService struct {
	appointmentRepo repositories.IAppointmentRepository
	propertyRepo    repositories.IPropertyRepository
	userRepo        repositories.IUserRepository
	notifier        email.Notifier
	logger          zerolog.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(
	appointmentRepo repositories.IAppointmentRepository,
	propertyRepo repositories.IPropertyRepository,
	userRepo repositories.IUserRepository,
	notifier email.Notifier,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// CanAccess is the single ownership predicate for appointments: admins see
// everything, otherwise the caller must match the appointment's user link
// or its contact email.
func CanAccess(caller *models.User, appointment *models.Appointment) bool {
	if caller == nil {
		return false
	}
	if caller.IsAdmin() {
		return true
	}
	if appointment.UserID != nil && *appointment.UserID == caller.ID {
		return true
	}
	return strings.EqualFold(appointment.Email, caller.Email)
}

// CreateAppointment records a pending appointment and queues the
// confirmation email. Referenced property and user records must exist.
func (s *AppointmentService) CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest) (*models.Appointment, error) {
	if !emailRegex.MatchString(req.Email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}

	date, err := time.Parse(appointmentDateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("Date must use the YYYY-MM-DD format")
	}

	if req.Property != nil {
		if _, err := s.propertyRepo.FindByID(ctx, *req.Property); err != nil {
			return nil, err
		}
	}
	if req.User != nil {
		if _, err := s.userRepo.FindByID(ctx, *req.User); err != nil {
			return nil, err
		}
	}

	appointment := &models.Appointment{
		Name:       req.Name,
		Email:      strings.TrimSpace(req.Email),
		Date:       date,
		Time:       req.Time,
		Message:    req.Message,
		Status:     models.AppointmentPending,
		PropertyID: req.Property,
		UserID:     req.User,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.notifier.Enqueue(email.AppointmentConfirmationMessage(
		appointment.Email, appointment.Name, req.Date, appointment.Time, appointment.Message))
	metrics.RecordEmailEnqueued("appointment_confirmation")

	s.logger.Info().Int64("appointmentID", appointment.ID).Msg("Appointment created")
	return appointment, nil
}

// GetAppointment retrieves one appointment, enforcing ownership
func (s *AppointmentService) GetAppointment(ctx context.Context, caller *models.User, id int64) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(caller, appointment) {
		return nil, apperrors.NewForbiddenError("You don't have access to this appointment")
	}
	return appointment, nil
}

// ListAppointments retrieves every appointment with resolved relations
func (s *AppointmentService) ListAppointments(ctx context.Context) ([]*models.AppointmentDetails, error) {
	return s.appointmentRepo.FindAllDetails(ctx)
}

// ListUserAppointments retrieves the caller's appointments, matched by user
// link or contact email
func (s *AppointmentService) ListUserAppointments(ctx context.Context, caller *models.User) ([]*models.AppointmentDetails, error) {
	return s.appointmentRepo.FindForUser(ctx, caller.ID, caller.Email)
}

// UpdateAppointmentStatus moves an appointment through the workflow and
// queues the status email. Only pending->confirmed, confirmed->completed
// and cancellation from any state are allowed, and only for the admin or
// the appointment's owner.
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, caller *models.User, id int64, status models.AppointmentStatus) (*models.Appointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, apperrors.NewValidationError("Unknown appointment status")
	}

	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(caller, appointment) {
		return nil, apperrors.NewForbiddenError("You don't have access to this appointment")
	}

	if !models.CanTransition(appointment.Status, status) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			"Cannot move appointment from "+string(appointment.Status)+" to "+string(status))
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	appointment.Status = status

	s.notifier.Enqueue(email.AppointmentStatusMessage(
		appointment.Email, appointment.Name,
		appointment.Date.Format(appointmentDateLayout), appointment.Time, string(status)))
	metrics.RecordEmailEnqueued("appointment_status")

	s.logger.Info().Int64("appointmentID", id).Str("status", string(status)).Msg("Appointment status updated")
	return appointment, nil
}

// DeleteAppointment removes an appointment, enforcing ownership
func (s *AppointmentService) DeleteAppointment(ctx context.Context, caller *models.User, id int64) error {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanAccess(caller, appointment) {
		return apperrors.NewForbiddenError("You don't have access to this appointment")
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("appointmentID", id).Msg("Appointment deleted")
	return nil
}
