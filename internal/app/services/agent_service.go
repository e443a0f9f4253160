package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/app/repositories"
	"github.com/estatecore/backend/internal/pkg/apperrors"
	"github.com/estatecore/backend/internal/pkg/filestorage"
)

// IAgentService defines the agent directory operations
type IAgentService interface {
	CreateAgent(ctx context.Context, req dto.AgentRequest, picture *multipart.FileHeader) (*models.Agent, error)
	GetAgent(ctx context.Context, id int64) (*models.Agent, error)
	ListAgents(ctx context.Context) ([]*models.Agent, error)
	UpdateAgent(ctx context.Context, id int64, req dto.AgentRequest, picture *multipart.FileHeader) (*models.Agent, error)
	DeleteAgent(ctx context.Context, id int64) error
}

// AgentService handles the agent directory and its picture lifecycle
type AgentService struct {
	agentRepo repositories.IAgentRepository
	storage   filestorage.FileStorage
	logger    zerolog.Logger
}

// NewAgentService creates a new AgentService
func NewAgentService(agentRepo repositories.IAgentRepository, storage filestorage.FileStorage, logger zerolog.Logger) *AgentService {
	return &AgentService{
		agentRepo: agentRepo,
		storage:   storage,
		logger:    logger,
	}
}

// CreateAgent adds an agent to the directory. The picture is optional; the
// shared placeholder is used when none is uploaded.
func (s *AgentService) CreateAgent(ctx context.Context, req dto.AgentRequest, picture *multipart.FileHeader) (*models.Agent, error) {
	if req.Name == "" || req.Phone == "" || req.Email == "" {
		return nil, apperrors.NewValidationError("Name, phone and email are required")
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return nil, apperrors.NewValidationError("Rating must be between 0 and 5")
	}

	agent := &models.Agent{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Picture: models.DefaultAgentPicture,
		Active:  true,
	}
	applyAgentFields(agent, req)

	if picture != nil {
		savedPath, err := s.storage.SaveFile(picture, "images/agents", "agent")
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Failed to store agent picture")
		}
		agent.Picture = savedPath
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		s.removePicture(agent.Picture)
		return nil, err
	}

	s.logger.Info().Int64("agentID", agent.ID).Msg("Agent created")
	return agent, nil
}

// GetAgent retrieves a single agent
func (s *AgentService) GetAgent(ctx context.Context, id int64) (*models.Agent, error) {
	return s.agentRepo.FindByID(ctx, id)
}

// ListAgents retrieves every agent
func (s *AgentService) ListAgents(ctx context.Context) ([]*models.Agent, error) {
	return s.agentRepo.FindAll(ctx)
}

// UpdateAgent applies the provided fields to an agent. When a new picture is
// uploaded the previous one is deleted after the update persists, unless it
// is the shared placeholder.
func (s *AgentService) UpdateAgent(ctx context.Context, id int64, req dto.AgentRequest, picture *multipart.FileHeader) (*models.Agent, error) {
	agent, err := s.agentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		agent.Name = req.Name
	}
	if req.Phone != "" {
		agent.Phone = req.Phone
	}
	if req.Email != "" {
		if !emailRegex.MatchString(req.Email) {
			return nil, apperrors.NewValidationError("Invalid email format")
		}
		agent.Email = req.Email
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return nil, apperrors.NewValidationError("Rating must be between 0 and 5")
	}
	applyAgentFields(agent, req)

	oldPicture := agent.Picture
	if picture != nil {
		savedPath, err := s.storage.SaveFile(picture, "images/agents", "agent")
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Failed to store agent picture")
		}
		agent.Picture = savedPath
	}

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		if picture != nil {
			s.removePicture(agent.Picture)
		}
		return nil, err
	}

	if picture != nil && oldPicture != agent.Picture {
		s.removePicture(oldPicture)
	}

	s.logger.Info().Int64("agentID", agent.ID).Msg("Agent updated")
	return agent, nil
}

// DeleteAgent removes an agent and its stored picture
func (s *AgentService) DeleteAgent(ctx context.Context, id int64) error {
	agent, err := s.agentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.agentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.removePicture(agent.Picture)

	s.logger.Info().Int64("agentID", id).Msg("Agent deleted")
	return nil
}

// removePicture deletes a stored agent picture, never touching the placeholder
func (s *AgentService) removePicture(path string) {
	if path == "" || path == models.DefaultAgentPicture {
		return
	}
	if err := s.storage.DeleteFile(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete agent picture")
	}
}

func applyAgentFields(agent *models.Agent, req dto.AgentRequest) {
	if req.PropertiesSold != nil {
		agent.PropertiesSold = *req.PropertiesSold
	}
	if req.PropertiesUnder != nil {
		agent.PropertiesUnder = *req.PropertiesUnder
	}
	if req.Rating != nil {
		agent.Rating = *req.Rating
	}
	if req.OfficeAddress != nil {
		agent.OfficeAddress = *req.OfficeAddress
	}
	if req.Description != nil {
		agent.Description = *req.Description
	}
	if req.Active != nil {
		agent.Active = *req.Active
	}
}
