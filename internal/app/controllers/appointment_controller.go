package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/app/services"
	"github.com/estatecore/backend/internal/middleware"
)

// AppointmentController handles the appointment workflow endpoints
type AppointmentController struct {
	appointmentService services.IAppointmentService
	logger             zerolog.Logger
}

// NewAppointmentController creates a new AppointmentController
func NewAppointmentController(appointmentService services.IAppointmentService, logger zerolog.Logger) *AppointmentController {
	return &AppointmentController{
		appointmentService: appointmentService,
		logger:             logger,
	}
}

// Create handles POST /api/appointments. The endpoint is public so visitors
// can request a viewing without an account.
func (c *AppointmentController) Create(ctx *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Name, email, date and time are required"))
		return
	}

	appointment, err := c.appointmentService.CreateAppointment(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, appointment)
}

// List handles GET /api/appointments (admin only)
func (c *AppointmentController) List(ctx *gin.Context) {
	appointments, err := c.appointmentService.ListAppointments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointments)
}

// ListMine handles GET /api/appointments/my-appointments
func (c *AppointmentController) ListMine(ctx *gin.Context) {
	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	appointments, err := c.appointmentService.ListUserAppointments(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointments)
}

// Get handles GET /api/appointments/:id
func (c *AppointmentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	appointment, err := c.appointmentService.GetAppointment(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

// UpdateStatus handles PATCH /api/appointments/:id
func (c *AppointmentController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Status is required"))
		return
	}

	appointment, err := c.appointmentService.UpdateAppointmentStatus(ctx.Request.Context(), caller, id, models.AppointmentStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

// Delete handles DELETE /api/appointments/:id
func (c *AppointmentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	if err := c.appointmentService.DeleteAppointment(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Appointment deleted successfully"))
}
