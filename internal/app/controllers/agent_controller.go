package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/app/services"
	"github.com/estatecore/backend/internal/middleware"
)

// AgentController handles the agent directory endpoints
type AgentController struct {
	agentService services.IAgentService
	logger       zerolog.Logger
}

// NewAgentController creates a new AgentController
func NewAgentController(agentService services.IAgentService, logger zerolog.Logger) *AgentController {
	return &AgentController{
		agentService: agentService,
		logger:       logger,
	}
}

// Create handles POST /api/agents
func (c *AgentController) Create(ctx *gin.Context) {
	var req dto.AgentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid agent payload"))
		return
	}

	picture, err := ctx.FormFile("picture")
	if err != nil {
		picture = nil
	}

	agent, err := c.agentService.CreateAgent(ctx.Request.Context(), req, picture)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, agent)
}

// List handles GET /api/agents
func (c *AgentController) List(ctx *gin.Context) {
	agents, err := c.agentService.ListAgents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, agents)
}

// Get handles GET /api/agents/:id
func (c *AgentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	agent, err := c.agentService.GetAgent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, agent)
}

// Update handles PUT /api/agents/:id
func (c *AgentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.AgentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid agent payload"))
		return
	}

	picture, err := ctx.FormFile("picture")
	if err != nil {
		picture = nil
	}

	agent, err := c.agentService.UpdateAgent(ctx.Request.Context(), id, req, picture)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, agent)
}

// Delete handles DELETE /api/agents/:id
func (c *AgentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.agentService.DeleteAgent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Agent deleted successfully"))
}

// parseIDParam reads the :id path parameter shared by the resource routes
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid ID"))
		return 0, false
	}
	return id, true
}
