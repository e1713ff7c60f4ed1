package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
	"github.com/ntvhs/portal-backend/internal/services"
)

type AuthHandler struct {
	log  *logger.Logger
	auth services.AuthService
}

func NewAuthHandler(baseLog *logger.Logger, auth services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:  baseLog.With("handler", "AuthHandler"),
		auth: auth,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return
	}
	token, expiresAt, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt.Format(domain.TimestampFormat),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("access_token")
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "logged out"})
}
