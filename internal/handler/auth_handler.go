package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/service"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

// AuthHandler exposes the session lifecycle endpoints.
type AuthHandler struct {
	auth          *service.AuthService
	impersonation bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(auth *service.AuthService, impersonation bool) *AuthHandler {
	return &AuthHandler{auth: auth, impersonation: impersonation}
}

// Login godoc
// @Summary Sign in against the academy API
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Register godoc
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "New account"
// @Success 201 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Logout godoc
// @Summary Clear the gateway session
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), sess.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.auth.Current(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Impersonate godoc
// @Summary Act as another user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Param id path string true "Target user ID"
// @Success 200 {object} response.Envelope
// @Router /auth/impersonate/{id} [post]
func (h *AuthHandler) Impersonate(c *gin.Context) {
	if !h.impersonation {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "impersonation is disabled"))
		return
	}
	resp, err := h.auth.Impersonate(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// StopImpersonating godoc
// @Summary Return to the original user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/impersonate [delete]
func (h *AuthHandler) StopImpersonating(c *gin.Context) {
	resp, err := h.auth.StopImpersonating(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
