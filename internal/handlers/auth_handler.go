package handlers

import (
	"net/http"

	"zipbang_backend/internal/models"
	"zipbang_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/admin/login", h.Login)
}

// Login godoc
// @Summary      Back-office login
// @Description  Exchanges admin credentials for a bearer token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  models.AdminLoginRequest  true  "Credentials"
// @Success      200  {object}  models.AdminLoginResponse
// @Failure      401  {object}  apperrors.ErrorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
