package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/services"
	"github.com/SAP-F-2025/philosophy-quiz/internal/utils"
	"github.com/gin-gonic/gin"
)

type ThemeHandler struct {
	BaseHandler
	themeService services.ThemeService
	cookies      *ClientCookies
}

func NewThemeHandler(themeService services.ThemeService, cookies *ClientCookies, logger utils.Logger) *ThemeHandler {
	return &ThemeHandler{
		BaseHandler:  NewBaseHandler(logger),
		themeService: themeService,
		cookies:      cookies,
	}
}

func (h *ThemeHandler) clientID(c *gin.Context) (string, bool) {
	clientID, err := h.cookies.ClientID(c)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to identify client", err)
		return "", false
	}
	return clientID, true
}

// GetTheme returns the client's theme, or the default when none is stored
func (h *ThemeHandler) GetTheme(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	settings, err := h.themeService.Load(c.Request.Context(), clientID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *ThemeHandler) UpdateTheme(c *gin.Context) {
	var req models.ThemeSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	clientID, ok := h.clientID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Updating theme", "client_id", clientID)

	settings, err := h.themeService.Save(c.Request.Context(), clientID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
