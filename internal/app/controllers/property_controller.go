package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/app/services"
	"github.com/estatecore/backend/internal/middleware"
	"github.com/estatecore/backend/internal/pkg/cache"
)

// PropertyController handles the property listing endpoints. List and
// search responses are served from Redis when available; any mutation
// invalidates the whole listing cache.
type PropertyController struct {
	propertyService services.IPropertyService
	listingCache    *cache.ListingCache
	logger          zerolog.Logger
}

// NewPropertyController creates a new PropertyController
func NewPropertyController(propertyService services.IPropertyService, listingCache *cache.ListingCache, logger zerolog.Logger) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
		listingCache:    listingCache,
		logger:          logger,
	}
}

// Create handles POST /api/properties
func (c *PropertyController) Create(ctx *gin.Context) {
	var req dto.PropertyRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid property payload"))
		return
	}

	image, err := ctx.FormFile("propertyImage")
	if err != nil {
		image = nil
	}

	property, err := c.propertyService.CreateProperty(ctx.Request.Context(), req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.listingCache.Invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, property)
}

// List handles GET /api/properties
func (c *PropertyController) List(ctx *gin.Context) {
	key := cache.Key(ctx.Request.URL.Query())
	if payload, ok := c.listingCache.Get(ctx.Request.Context(), key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	properties, err := c.propertyService.ListProperties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.respondCached(ctx, key, properties)
}

// Search handles GET /api/properties/search
func (c *PropertyController) Search(ctx *gin.Context) {
	var query dto.PropertySearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid search filters"))
		return
	}

	key := cache.Key(ctx.Request.URL.Query())
	if payload, ok := c.listingCache.Get(ctx.Request.Context(), key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	properties, err := c.propertyService.SearchProperties(ctx.Request.Context(), query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.respondCached(ctx, key, properties)
}

// Get handles GET /api/properties/:id
func (c *PropertyController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	property, err := c.propertyService.GetProperty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, property)
}

// Update handles PUT /api/properties/:id
func (c *PropertyController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.PropertyRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid property payload"))
		return
	}

	image, err := ctx.FormFile("propertyImage")
	if err != nil {
		image = nil
	}

	property, err := c.propertyService.UpdateProperty(ctx.Request.Context(), id, req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.listingCache.Invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusOK, property)
}

// Delete handles DELETE /api/properties/:id
func (c *PropertyController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.propertyService.DeleteProperty(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.listingCache.Invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Property deleted successfully"))
}

// respondCached writes the listing response and stores it for later hits
func (c *PropertyController) respondCached(ctx *gin.Context, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.listingCache.Set(ctx.Request.Context(), key, body)
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
