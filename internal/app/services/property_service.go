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

// IPropertyService defines the property listing operations
type IPropertyService interface {
	CreateProperty(ctx context.Context, req dto.PropertyRequest, image *multipart.FileHeader) (*models.Property, error)
	GetProperty(ctx context.Context, id int64) (*models.Property, error)
	ListProperties(ctx context.Context) ([]*models.Property, error)
	SearchProperties(ctx context.Context, query dto.PropertySearchQuery) ([]*models.Property, error)
	UpdateProperty(ctx context.Context, id int64, req dto.PropertyRequest, image *multipart.FileHeader) (*models.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
}

// PropertyService handles listings and their image lifecycle
type PropertyService struct {
	propertyRepo repositories.IPropertyRepository
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo repositories.IPropertyRepository, storage filestorage.FileStorage, logger zerolog.Logger) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		storage:      storage,
		logger:       logger,
	}
}

// CreateProperty adds a listing. An image upload is mandatory; nothing is
// persisted without one, and a stored image is removed again if the insert
// fails.
func (s *PropertyService) CreateProperty(ctx context.Context, req dto.PropertyRequest, image *multipart.FileHeader) (*models.Property, error) {
	if image == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrPictureRequired, "Property image is required")
	}
	if req.Title == "" || req.Location == "" || req.Description == "" {
		return nil, apperrors.NewValidationError("Title, location and description are required")
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, apperrors.NewValidationError("A non-negative price is required")
	}
	if err := validatePropertyNumerics(req); err != nil {
		return nil, err
	}

	propertyType := models.PropertyType(req.Type)
	if !models.ValidPropertyType(propertyType) {
		return nil, apperrors.NewValidationError("Invalid property type")
	}

	status := models.PropertyStatus(req.Status)
	if req.Status == "" {
		status = models.PropertyAvailable
	}
	if !models.ValidPropertyStatus(status) {
		return nil, apperrors.NewValidationError("Invalid property status")
	}

	property := &models.Property{
		Title:       req.Title,
		Type:        propertyType,
		Location:    req.Location,
		Price:       *req.Price,
		Status:      status,
		Description: req.Description,
	}
	applyPropertyFields(property, req)

	savedPath, err := s.storage.SaveFile(image, "uploads/properties", "property")
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Failed to store property image")
	}
	property.Picture = savedPath

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		s.removeImage(savedPath)
		return nil, err
	}

	s.logger.Info().Int64("propertyID", property.ID).Msg("Property created")
	return property, nil
}

// GetProperty retrieves a single listing
func (s *PropertyService) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	return s.propertyRepo.FindByID(ctx, id)
}

// ListProperties retrieves every listing
func (s *PropertyService) ListProperties(ctx context.Context) ([]*models.Property, error) {
	return s.propertyRepo.FindAll(ctx)
}

// SearchProperties retrieves the listings matching the set filters
func (s *PropertyService) SearchProperties(ctx context.Context, query dto.PropertySearchQuery) ([]*models.Property, error) {
	filter := models.PropertyFilter{
		Bedrooms:  query.Bedrooms,
		Bathrooms: query.Bathrooms,
		MinPrice:  query.MinPrice,
		MaxPrice:  query.MaxPrice,
	}

	if query.Type != "" {
		propertyType := models.PropertyType(query.Type)
		if !models.ValidPropertyType(propertyType) {
			return nil, apperrors.NewValidationError("Invalid property type")
		}
		filter.Type = &propertyType
	}
	if query.Status != "" {
		status := models.PropertyStatus(query.Status)
		if !models.ValidPropertyStatus(status) {
			return nil, apperrors.NewValidationError("Invalid property status")
		}
		filter.Status = &status
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, apperrors.NewValidationError("minPrice cannot exceed maxPrice")
	}

	return s.propertyRepo.Search(ctx, filter)
}

// UpdateProperty applies the provided fields to a listing. A replacement
// image deletes the previous one only after the update persists.
func (s *PropertyService) UpdateProperty(ctx context.Context, id int64, req dto.PropertyRequest, image *multipart.FileHeader) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		property.Title = req.Title
	}
	if req.Type != "" {
		propertyType := models.PropertyType(req.Type)
		if !models.ValidPropertyType(propertyType) {
			return nil, apperrors.NewValidationError("Invalid property type")
		}
		property.Type = propertyType
	}
	if req.Location != "" {
		property.Location = req.Location
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperrors.NewValidationError("A non-negative price is required")
		}
		property.Price = *req.Price
	}
	if req.Status != "" {
		status := models.PropertyStatus(req.Status)
		if !models.ValidPropertyStatus(status) {
			return nil, apperrors.NewValidationError("Invalid property status")
		}
		property.Status = status
	}
	if req.Description != "" {
		property.Description = req.Description
	}
	if err := validatePropertyNumerics(req); err != nil {
		return nil, err
	}
	applyPropertyFields(property, req)

	oldPicture := property.Picture
	if image != nil {
		savedPath, err := s.storage.SaveFile(image, "uploads/properties", "property")
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Failed to store property image")
		}
		property.Picture = savedPath
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		if image != nil {
			s.removeImage(property.Picture)
		}
		return nil, err
	}

	if image != nil && oldPicture != property.Picture {
		s.removeImage(oldPicture)
	}

	s.logger.Info().Int64("propertyID", property.ID).Msg("Property updated")
	return property, nil
}

// DeleteProperty removes a listing and its stored image
func (s *PropertyService) DeleteProperty(ctx context.Context, id int64) error {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeImage(property.Picture)

	s.logger.Info().Int64("propertyID", id).Msg("Property deleted")
	return nil
}

func (s *PropertyService) removeImage(path string) {
	if path == "" {
		return
	}
	if err := s.storage.DeleteFile(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete property image")
	}
}

func validatePropertyNumerics(req dto.PropertyRequest) error {
	if req.Area != nil && *req.Area < 0 {
		return apperrors.NewValidationError("Area cannot be negative")
	}
	if req.Bedrooms != nil && *req.Bedrooms < 0 {
		return apperrors.NewValidationError("Bedrooms cannot be negative")
	}
	if req.Bathrooms != nil && *req.Bathrooms < 0 {
		return apperrors.NewValidationError("Bathrooms cannot be negative")
	}
	return nil
}

func applyPropertyFields(property *models.Property, req dto.PropertyRequest) {
	if req.Area != nil {
		property.Area = *req.Area
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
}
