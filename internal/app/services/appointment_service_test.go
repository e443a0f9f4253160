package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/pkg/apperrors"
)

func newAppointmentFixture() (*AppointmentService, *fakeAppointmentRepo, *fakePropertyRepo, *fakeUserRepo, *fakeNotifier) {
	appointmentRepo := newFakeAppointmentRepo()
	propertyRepo := newFakePropertyRepo()
	userRepo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	svc := NewAppointmentService(appointmentRepo, propertyRepo, userRepo, notifier, zerolog.Nop())
	return svc, appointmentRepo, propertyRepo, userRepo, notifier
}

func appointmentRequest() dto.CreateAppointmentRequest {
	return dto.CreateAppointmentRequest{
		Name:  "Visitor",
		Email: "visitor@example.com",
		Date:  "2026-09-15",
		Time:  "14:30",
	}
}

func TestCanAccess(t *testing.T) {
	ownerID := int64(7)
	appointment := &models.Appointment{Email: "owner@example.com", UserID: &ownerID}

	tests := []struct {
		name    string
		caller  *models.User
		allowed bool
	}{
		{"nil caller", nil, false},
		{"admin", &models.User{ID: 1, Role: models.RoleAdmin, Email: "admin@x.co"}, true},
		{"linked user", &models.User{ID: 7, Role: models.RoleUser, Email: "other@x.co"}, true},
		{"matching email", &models.User{ID: 9, Role: models.RoleUser, Email: "OWNER@example.com"}, true},
		{"stranger", &models.User{ID: 9, Role: models.RoleUser, Email: "other@x.co"}, false},
		{"agent without link", &models.User{ID: 9, Role: models.RoleAgent, Email: "other@x.co"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanAccess(tt.caller, appointment))
		})
	}
}

func TestCreateAppointmentQueuesConfirmation(t *testing.T) {
	svc, _, _, _, notifier := newAppointmentFixture()

	appointment, err := svc.CreateAppointment(context.Background(), appointmentRequest())
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentPending, appointment.Status)
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "visitor@example.com", notifier.last().To)
}

func TestCreateAppointmentRejectsBadDate(t *testing.T) {
	svc, _, _, _, _ := newAppointmentFixture()

	req := appointmentRequest()
	req.Date = "15/09/2026"
	_, err := svc.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateAppointmentChecksReferences(t *testing.T) {
	svc, _, propertyRepo, userRepo, _ := newAppointmentFixture()

	missing := int64(99)
	req := appointmentRequest()
	req.Property = &missing
	_, err := svc.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)

	req = appointmentRequest()
	req.User = &missing
	_, err = svc.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// With real references both pass
	property := &models.Property{Title: "Flat", Type: models.TypeApartment, Location: "Town", Price: 1, Picture: "x.jpg"}
	require.NoError(t, propertyRepo.Create(context.Background(), property))
	user := &models.User{Email: "visitor@example.com"}
	require.NoError(t, userRepo.Create(context.Background(), user))

	req = appointmentRequest()
	req.Property = &property.ID
	req.User = &user.ID
	_, err = svc.CreateAppointment(context.Background(), req)
	assert.NoError(t, err)
}

func TestUpdateAppointmentStatusWorkflow(t *testing.T) {
	svc, _, _, _, notifier := newAppointmentFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin, Email: "admin@example.com"}

	appointment, err := svc.CreateAppointment(context.Background(), appointmentRequest())
	require.NoError(t, err)

	// pending -> completed is not a legal jump
	_, err = svc.UpdateAppointmentStatus(context.Background(), admin, appointment.ID, models.AppointmentCompleted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	confirmed, err := svc.UpdateAppointmentStatus(context.Background(), admin, appointment.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, confirmed.Status)
	assert.Contains(t, notifier.last().Subject, "Confirmed")

	completed, err := svc.UpdateAppointmentStatus(context.Background(), admin, appointment.ID, models.AppointmentCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, completed.Status)

	// Cancellation is allowed from any state
	cancelled, err := svc.UpdateAppointmentStatus(context.Background(), admin, appointment.ID, models.AppointmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)
}

func TestUpdateAppointmentStatusUnknownState(t *testing.T) {
	svc, _, _, _, _ := newAppointmentFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin, Email: "admin@example.com"}

	appointment, err := svc.CreateAppointment(context.Background(), appointmentRequest())
	require.NoError(t, err)

	_, err = svc.UpdateAppointmentStatus(context.Background(), admin, appointment.ID, models.AppointmentStatus("archived"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateAppointmentStatusEnforcesOwnership(t *testing.T) {
	svc, _, _, _, _ := newAppointmentFixture()

	appointment, err := svc.CreateAppointment(context.Background(), appointmentRequest())
	require.NoError(t, err)

	stranger := &models.User{ID: 5, Role: models.RoleUser, Email: "stranger@example.com"}
	_, err = svc.UpdateAppointmentStatus(context.Background(), stranger, appointment.ID, models.AppointmentConfirmed)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The requester can cancel their own appointment
	owner := &models.User{ID: 6, Role: models.RoleUser, Email: "visitor@example.com"}
	cancelled, err := svc.UpdateAppointmentStatus(context.Background(), owner, appointment.ID, models.AppointmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)
}

func TestGetAppointmentEnforcesOwnership(t *testing.T) {
	svc, _, _, _, _ := newAppointmentFixture()

	appointment, err := svc.CreateAppointment(context.Background(), appointmentRequest())
	require.NoError(t, err)

	stranger := &models.User{ID: 5, Role: models.RoleUser, Email: "stranger@example.com"}
	_, err = svc.GetAppointment(context.Background(), stranger, appointment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	owner := &models.User{ID: 6, Role: models.RoleUser, Email: "visitor@example.com"}
	got, err := svc.GetAppointment(context.Background(), owner, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.ID, got.ID)
}

func TestDeleteAppointmentEnforcesOwnership(t *testing.T) {
	svc, appointmentRepo, _, _, _ := newAppointmentFixture()

	appointment, err := svc.CreateAppointment(context.Background(), appointmentRequest())
	require.NoError(t, err)

	stranger := &models.User{ID: 5, Role: models.RoleUser, Email: "stranger@example.com"}
	err = svc.DeleteAppointment(context.Background(), stranger, appointment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	admin := &models.User{ID: 1, Role: models.RoleAdmin, Email: "admin@example.com"}
	require.NoError(t, svc.DeleteAppointment(context.Background(), admin, appointment.ID))
	assert.Empty(t, appointmentRepo.appointments)
}

func TestListUserAppointmentsMatchesLinkOrEmail(t *testing.T) {
	svc, _, _, userRepo, _ := newAppointmentFixture()

	user := &models.User{Email: "visitor@example.com"}
	require.NoError(t, userRepo.Create(context.Background(), user))

	// One linked by ID, one anonymous with the same email, one unrelated
	linked := appointmentRequest()
	linked.Email = "elsewhere@example.com"
	linked.User = &user.ID
	_, err := svc.CreateAppointment(context.Background(), linked)
	require.NoError(t, err)

	_, err = svc.CreateAppointment(context.Background(), appointmentRequest())
	require.NoError(t, err)

	other := appointmentRequest()
	other.Email = "unrelated@example.com"
	_, err = svc.CreateAppointment(context.Background(), other)
	require.NoError(t, err)

	mine, err := svc.ListUserAppointments(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
