package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/pkg/apperrors"
	"github.com/estatecore/backend/internal/pkg/dberrors"
)

// IAgentRepository defines the interface for agent database operations
type IAgentRepository interface {
	Create(ctx context.Context, agent *models.Agent) error
	FindByID(ctx context.Context, id int64) (*models.Agent, error)
	FindAll(ctx context.Context) ([]*models.Agent, error)
	Update(ctx context.Context, agent *models.Agent) error
	Delete(ctx context.Context, id int64) error
}

const agentColumns = `id, name, phone, email, properties_sold, properties_under,
	rating, office_address, description, picture, active, created_at, updated_at`

// AgentRepository handles agent database operations
type AgentRepository struct {
	db *pgxpool.Pool
}

// NewAgentRepository creates a new AgentRepository
func NewAgentRepository(db *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create inserts a new agent and fills in its generated ID
func (r *AgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO agents (name, phone, email, properties_sold, properties_under,
			rating, office_address, description, picture, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		agent.Name, agent.Phone, agent.Email, agent.PropertiesSold, agent.PropertiesUnder,
		agent.Rating, agent.OfficeAddress, agent.Description, agent.Picture, agent.Active).
		Scan(&agent.ID, &agent.CreatedAt, &agent.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "idx_agents_email_lower") {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An agent with this email already exists")
		}
		return fmt.Errorf("error creating agent: %w", err)
	}

	return nil
}

// FindByID retrieves an agent by ID
func (r *AgentRepository) FindByID(ctx context.Context, id int64) (*models.Agent, error) {
	agent := &models.Agent{}
	err := r.db.QueryRow(ctx, `SELECT `+agentColumns+` FROM agents WHERE id = $1`, id).
		Scan(&agent.ID, &agent.Name, &agent.Phone, &agent.Email,
			&agent.PropertiesSold, &agent.PropertiesUnder, &agent.Rating,
			&agent.OfficeAddress, &agent.Description, &agent.Picture,
			&agent.Active, &agent.CreatedAt, &agent.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrAgentNotFound, "Agent not found")
		}
		return nil, fmt.Errorf("error retrieving agent: %w", err)
	}

	return agent, nil
}

// FindAll retrieves every agent, newest first
func (r *AgentRepository) FindAll(ctx context.Context) ([]*models.Agent, error) {
	rows, err := r.db.Query(ctx, `SELECT `+agentColumns+` FROM agents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing agents: %w", err)
	}
	defer rows.Close()

	agents := make([]*models.Agent, 0)
	for rows.Next() {
		agent := &models.Agent{}
		if err := rows.Scan(&agent.ID, &agent.Name, &agent.Phone, &agent.Email,
			&agent.PropertiesSold, &agent.PropertiesUnder, &agent.Rating,
			&agent.OfficeAddress, &agent.Description, &agent.Picture,
			&agent.Active, &agent.CreatedAt, &agent.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning agent: %w", err)
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing agents: %w", err)
	}

	return agents, nil
}

// Update replaces every mutable column of an agent
func (r *AgentRepository) Update(ctx context.Context, agent *models.Agent) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE agents
		SET name = $1, phone = $2, email = $3, properties_sold = $4,
			properties_under = $5, rating = $6, office_address = $7,
			description = $8, picture = $9, active = $10, updated_at = NOW()
		WHERE id = $11`,
		agent.Name, agent.Phone, agent.Email, agent.PropertiesSold,
		agent.PropertiesUnder, agent.Rating, agent.OfficeAddress,
		agent.Description, agent.Picture, agent.Active, agent.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "idx_agents_email_lower") {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An agent with this email already exists")
		}
		return fmt.Errorf("error updating agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.ErrAgentNotFound, "Agent not found")
	}

	return nil
}

// Delete removes an agent by ID
func (r *AgentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.ErrAgentNotFound, "Agent not found")
	}

	return nil
}
