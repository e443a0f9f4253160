package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estatecore/backend/internal/app/models"
)

func TestBuildSearchQueryNoFilters(t *testing.T) {
	query, args := buildSearchQuery(models.PropertyFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.Empty(t, args)
}

func TestBuildSearchQueryComposesWithAnd(t *testing.T) {
	propertyType := models.TypeHouse
	bedrooms := 3
	minPrice, maxPrice := 100000.0, 500000.0

	query, args := buildSearchQuery(models.PropertyFilter{
		Type:     &propertyType,
		Bedrooms: &bedrooms,
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})

	assert.Contains(t, query, "type = $1")
	assert.Contains(t, query, "bedrooms >= $2")
	assert.Contains(t, query, "price >= $3")
	assert.Contains(t, query, "price <= $4")
	assert.Contains(t, query, " AND ")
	assert.Equal(t, []any{propertyType, bedrooms, minPrice, maxPrice}, args)
}

func TestBuildSearchQueryMinimumSemantics(t *testing.T) {
	bathrooms := 2
	status := models.PropertyAvailable

	query, args := buildSearchQuery(models.PropertyFilter{
		Status:    &status,
		Bathrooms: &bathrooms,
	})

	// Status matches exactly, bathrooms is a lower bound
	assert.Contains(t, query, "status = $1")
	assert.Contains(t, query, "bathrooms >= $2")
	assert.Equal(t, []any{status, bathrooms}, args)
}
