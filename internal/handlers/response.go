package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntvhs/portal-backend/internal/platform/apierr"
)

// RespondError maps a service error to its stable code. Causes stay in the
// logs; clients only ever see the code.
func RespondError(c *gin.Context, err error) {
	status, code := apierr.CodeOf(err)
	c.JSON(status, gin.H{"error": code})
}

func RespondOK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

func RespondCreated(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}
