package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/middleware"
	"github.com/estatecore/backend/internal/pkg/apperrors"
)

type stubAppointmentService struct {
	created     *models.Appointment
	createErr   error
	got         *models.Appointment
	getErr      error
	updated     *models.Appointment
	updateErr   error
	deleteErr   error
	gotCaller   *models.User
	gotStatus   models.AppointmentStatus
	listDetails []*models.AppointmentDetails
}

func (s *stubAppointmentService) CreateAppointment(_ context.Context, _ dto.CreateAppointmentRequest) (*models.Appointment, error) {
	return s.created, s.createErr
}

func (s *stubAppointmentService) GetAppointment(_ context.Context, caller *models.User, _ int64) (*models.Appointment, error) {
	s.gotCaller = caller
	return s.got, s.getErr
}

func (s *stubAppointmentService) ListAppointments(_ context.Context) ([]*models.AppointmentDetails, error) {
	return s.listDetails, nil
}

func (s *stubAppointmentService) ListUserAppointments(_ context.Context, caller *models.User) ([]*models.AppointmentDetails, error) {
	s.gotCaller = caller
	return s.listDetails, nil
}

func (s *stubAppointmentService) UpdateAppointmentStatus(_ context.Context, caller *models.User, _ int64, status models.AppointmentStatus) (*models.Appointment, error) {
	s.gotCaller = caller
	s.gotStatus = status
	return s.updated, s.updateErr
}

func (s *stubAppointmentService) DeleteAppointment(_ context.Context, caller *models.User, _ int64) error {
	s.gotCaller = caller
	return s.deleteErr
}

func setupAppointmentRouter(svc *stubAppointmentService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if user != nil {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserKey, user)
			c.Next()
		})
	}

	controller := NewAppointmentController(svc, zerolog.Nop())
	router.POST("/api/appointments", controller.Create)
	router.GET("/api/appointments/:id", controller.Get)
	router.PATCH("/api/appointments/:id", controller.UpdateStatus)
	router.DELETE("/api/appointments/:id", controller.Delete)
	return router
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	svc := &stubAppointmentService{created: &models.Appointment{ID: 1, Status: models.AppointmentPending}}
	router := setupAppointmentRouter(svc, nil)

	body, _ := json.Marshal(dto.CreateAppointmentRequest{
		Name: "Visitor", Email: "v@example.com", Date: "2026-09-15", Time: "14:30",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, models.AppointmentPending, got.Status)
}

func TestCreateAppointmentRejectsMissingFields(t *testing.T) {
	router := setupAppointmentRouter(&stubAppointmentService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte(`{"name":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAppointmentForbidden(t *testing.T) {
	svc := &stubAppointmentService{getErr: apperrors.NewForbiddenError("You don't have access to this appointment")}
	user := &models.User{ID: 3, Role: models.RoleUser, Email: "u@example.com"}
	router := setupAppointmentRouter(svc, user)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/appointments/9", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, user, svc.gotCaller)
}

func TestGetAppointmentRequiresAuthenticatedUser(t *testing.T) {
	router := setupAppointmentRouter(&stubAppointmentService{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/appointments/9", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateAppointmentStatusEndpoint(t *testing.T) {
	svc := &stubAppointmentService{updated: &models.Appointment{ID: 9, Status: models.AppointmentConfirmed}}
	admin := &models.User{ID: 1, Role: models.RoleAdmin, Email: "admin@example.com"}
	router := setupAppointmentRouter(svc, admin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/9", bytes.NewReader([]byte(`{"status":"confirmed"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AppointmentConfirmed, svc.gotStatus)
	assert.Equal(t, admin, svc.gotCaller)
}

func TestUpdateAppointmentStatusInvalidTransition(t *testing.T) {
	svc := &stubAppointmentService{
		updateErr: apperrors.NewCustomError(apperrors.ErrInvalidTransition, "Cannot move appointment from pending to completed"),
	}
	admin := &models.User{ID: 1, Role: models.RoleAdmin, Email: "admin@example.com"}
	router := setupAppointmentRouter(svc, admin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/9", bytes.NewReader([]byte(`{"status":"completed"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Cannot move appointment from pending to completed", body["message"])
}

func TestDeleteAppointmentEndpoint(t *testing.T) {
	svc := &stubAppointmentService{}
	user := &models.User{ID: 3, Role: models.RoleUser, Email: "u@example.com"}
	router := setupAppointmentRouter(svc, user)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/appointments/4", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user, svc.gotCaller)
}

func TestInvalidIDParam(t *testing.T) {
	user := &models.User{ID: 3, Role: models.RoleUser, Email: "u@example.com"}
	router := setupAppointmentRouter(&stubAppointmentService{}, user)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/appointments/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
