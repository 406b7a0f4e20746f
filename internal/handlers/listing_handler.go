package handlers

import (
	"net/http"
	"strconv"

	"zipbang_backend/internal/models"
	"zipbang_backend/internal/services"
	"zipbang_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

func (h *ListingHandler) RegisterRoutes(r *gin.RouterGroup) {
	listings := r.Group("/listings")
	{
		listings.GET("", h.Search)
		listings.GET("/map", h.SearchMap)
		listings.GET("/options", h.SearchOptions)
		listings.GET("/:id", h.GetByID)
	}
}

// Search godoc
// @Summary      Search listings
// @Description  Filtered, sorted, paginated listing search
// @Tags         listings
// @Produce      json
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        limit        query  int     false  "Page size (default 12, max 100)"
// @Param        keyword      query  string  false  "Listing id (digits) or address substring"
// @Param        theme        query  string  false  "Theme tag"
// @Param        propertyType query  string  false  "Property type name"
// @Param        buyType      query  string  false  "Transaction type name"
// @Param        rooms        query  string  false  "Room-count bucket"
// @Param        bathrooms    query  string  false  "Bathroom-count bucket"
// @Param        floor        query  string  false  "Floor range expression"
// @Param        priceRange   query  string  false  "Price range, Korean shorthand allowed"
// @Param        areaRange    query  string  false  "Area range in pyeong"
// @Param        popularity   query  string  false  "Popularity tag"
// @Param        sortBy       query  string  false  "latest|popular|price-desc|price-asc|area-desc|area-asc"
// @Success      200  {object}  models.ListingListResponse
// @Failure      400  {object}  apperrors.ErrorResponse
// @Router       /listings [get]
func (h *ListingHandler) Search(c *gin.Context) {
	var req models.ListingSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	response, err := h.listingService.Search(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchMap godoc
// @Summary      Search listings for the map view
// @Description  Same criteria as /listings but drops listings whose address must not be disclosed
// @Tags         listings
// @Produce      json
// @Success      200  {object}  models.ListingListResponse
// @Failure      400  {object}  apperrors.ErrorResponse
// @Router       /listings/map [get]
func (h *ListingHandler) SearchMap(c *gin.Context) {
	var req models.ListingSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	response, err := h.listingService.SearchMap(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary      Listing detail
// @Description  One visible listing; address is redacted when disclosure is restricted
// @Tags         listings
// @Produce      json
// @Param        id  path  int  true  "Listing id"
// @Success      200  {object}  models.ListingResponse
// @Failure      404  {object}  apperrors.ErrorResponse
// @Router       /listings/{id} [get]
func (h *ListingHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid listing id"))
		return
	}

	response, svcErr := h.listingService.GetByID(c.Request.Context(), h.GetDB(c), uint(id))
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchOptions godoc
// @Summary      Search form options
// @Description  Reference tables feeding the search-form dropdowns
// @Tags         listings
// @Produce      json
// @Success      200  {object}  models.SearchOptions
// @Router       /listings/options [get]
func (h *ListingHandler) SearchOptions(c *gin.Context) {
	response, err := h.listingService.SearchOptions(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
