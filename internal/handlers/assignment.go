package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
	"github.com/ntvhs/portal-backend/internal/services"
)

// AssignmentHandler serves one assignment collection. The router mounts one
// instance per kind under its own path prefix.
type AssignmentHandler struct {
	log *logger.Logger
	svc services.AssignmentService
}

func NewAssignmentHandler(baseLog *logger.Logger, svc services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		log: baseLog.With("handler", "AssignmentHandler", "kind", svc.Kind().String()),
		svc: svc,
	}
}

func assignmentView(a *domain.Assignment) gin.H {
	return gin.H{
		"id":          a.ID,
		"name":        a.Name,
		"grade":       a.Grade,
		"end_date":    a.FormatEndDate(),
		"upload_link": a.UploadLink,
		"professor":   a.Professor,
		"created_at":  a.FormatCreatedAt(),
		"updated_at":  a.FormatUpdatedAt(),
	}
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return 0, false
	}
	return id, true
}

func (h *AssignmentHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("grade"), c.Query("search"))
	if err != nil {
		RespondError(c, err)
		return
	}
	views := make([]gin.H, 0, len(items))
	for _, a := range items {
		views = append(views, assignmentView(a))
	}
	RespondOK(c, gin.H{"items": views, "count": len(views)})
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, assignmentView(a))
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	var req services.AssignmentInput
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return
	}
	a, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, assignmentView(a))
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.AssignmentInput
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "updated"})
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "deleted"})
}
