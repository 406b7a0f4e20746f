package handlers

import (
	"net/http"

	"zipbang_backend/internal/auth"
	"zipbang_backend/internal/middleware"
	"zipbang_backend/internal/models"
	"zipbang_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewAdminListingHandler(base *BaseHandler, listingService services.ListingService) *AdminListingHandler {
	return &AdminListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

func (h *AdminListingHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(auth.RoleAdmin))
	{
		admin.GET("/listings", h.Search)
		admin.GET("/listings/trash", h.SearchTrash)
	}
}

// Search godoc
// @Summary      Search listings (back office)
// @Description  Full catalogue including hidden listings, admin envelope
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.AdminListingListResponse
// @Failure      400  {object}  apperrors.ErrorResponse
// @Failure      401  {object}  apperrors.ErrorResponse
// @Router       /admin/listings [get]
func (h *AdminListingHandler) Search(c *gin.Context) {
	h.search(c, false)
}

// SearchTrash godoc
// @Summary      Search soft-deleted listings
// @Description  Trash bin view; only rows with a deletion timestamp
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.AdminListingListResponse
// @Failure      400  {object}  apperrors.ErrorResponse
// @Failure      401  {object}  apperrors.ErrorResponse
// @Router       /admin/listings/trash [get]
func (h *AdminListingHandler) SearchTrash(c *gin.Context) {
	h.search(c, true)
}

func (h *AdminListingHandler) search(c *gin.Context, trash bool) {
	var req models.ListingSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	response, err := h.listingService.SearchAdmin(c.Request.Context(), h.GetDB(c), &req, trash)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
