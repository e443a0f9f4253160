package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/pkg/apperrors"
)

// IPropertyRepository defines the interface for property database operations
type IPropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id int64) (*models.Property, error)
	FindAll(ctx context.Context) ([]*models.Property, error)
	Search(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id int64) error
}

const propertyColumns = `id, title, type, location, price, area, bedrooms, bathrooms,
	status, description, picture, created_at, updated_at`

// PropertyRepository handles property database operations
type PropertyRepository struct {
	db *pgxpool.Pool
}

// NewPropertyRepository creates a new PropertyRepository
func NewPropertyRepository(db *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Create inserts a new property and fills in its generated ID
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO properties (title, type, location, price, area, bedrooms,
			bathrooms, status, description, picture)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		property.Title, property.Type, property.Location, property.Price,
		property.Area, property.Bedrooms, property.Bathrooms, property.Status,
		property.Description, property.Picture).
		Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating property: %w", err)
	}

	return nil
}

// FindByID retrieves a property by ID
func (r *PropertyRepository) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	property := &models.Property{}
	err := r.db.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id).
		Scan(&property.ID, &property.Title, &property.Type, &property.Location,
			&property.Price, &property.Area, &property.Bedrooms, &property.Bathrooms,
			&property.Status, &property.Description, &property.Picture,
			&property.CreatedAt, &property.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrPropertyNotFound, "Property not found")
		}
		return nil, fmt.Errorf("error retrieving property: %w", err)
	}

	return property, nil
}

// FindAll retrieves every property, newest first
func (r *PropertyRepository) FindAll(ctx context.Context) ([]*models.Property, error) {
	return r.query(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY created_at DESC`)
}

// Search retrieves the properties matching every set filter criterion.
// Type and status match exactly; bedrooms and bathrooms are minimums;
// price bounds are inclusive.
func (r *PropertyRepository) Search(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error) {
	query, args := buildSearchQuery(filter)
	return r.query(ctx, query, args...)
}

func buildSearchQuery(filter models.PropertyFilter) (string, []any) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Type != nil {
		addCondition("type = $%d", *filter.Type)
	}
	if filter.Status != nil {
		addCondition("status = $%d", *filter.Status)
	}
	if filter.Bedrooms != nil {
		addCondition("bedrooms >= $%d", *filter.Bedrooms)
	}
	if filter.Bathrooms != nil {
		addCondition("bathrooms >= $%d", *filter.Bathrooms)
	}
	if filter.MinPrice != nil {
		addCondition("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCondition("price <= $%d", *filter.MaxPrice)
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return query, args
}

func (r *PropertyRepository) query(ctx context.Context, query string, args ...any) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	defer rows.Close()

	properties := make([]*models.Property, 0)
	for rows.Next() {
		property := &models.Property{}
		if err := rows.Scan(&property.ID, &property.Title, &property.Type,
			&property.Location, &property.Price, &property.Area,
			&property.Bedrooms, &property.Bathrooms, &property.Status,
			&property.Description, &property.Picture,
			&property.CreatedAt, &property.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning property: %w", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}

	return properties, nil
}

// Update replaces every mutable column of a property
func (r *PropertyRepository) Update(ctx context.Context, property *models.Property) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE properties
		SET title = $1, type = $2, location = $3, price = $4, area = $5,
			bedrooms = $6, bathrooms = $7, status = $8, description = $9,
			picture = $10, updated_at = NOW()
		WHERE id = $11`,
		property.Title, property.Type, property.Location, property.Price,
		property.Area, property.Bedrooms, property.Bathrooms, property.Status,
		property.Description, property.Picture, property.ID)

	if err != nil {
		return fmt.Errorf("error updating property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.ErrPropertyNotFound, "Property not found")
	}

	return nil
}

// Delete removes a property by ID
func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.ErrPropertyNotFound, "Property not found")
	}

	return nil
}
