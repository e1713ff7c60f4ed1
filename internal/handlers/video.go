package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
	"github.com/ntvhs/portal-backend/internal/services"
)

type VideoHandler struct {
	log *logger.Logger
	svc services.VideoService
}

func NewVideoHandler(baseLog *logger.Logger, svc services.VideoService) *VideoHandler {
	return &VideoHandler{
		log: baseLog.With("handler", "VideoHandler"),
		svc: svc,
	}
}

func videoView(v *domain.Video) gin.H {
	return gin.H{
		"id":          v.ID,
		"title":       v.Title,
		"description": v.Description,
		"grade":       v.Grade,
		"filename":    v.Filename,
		"file_size":   v.FileSize,
		"created_at":  v.FormatCreatedAt(),
		"updated_at":  v.FormatUpdatedAt(),
	}
}

func (h *VideoHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("grade"), c.Query("search"))
	if err != nil {
		RespondError(c, err)
		return
	}
	views := make([]gin.H, 0, len(items))
	for _, v := range items {
		views = append(views, videoView(v))
	}
	RespondOK(c, gin.H{"items": views, "count": len(views)})
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, videoView(v))
}

func (h *VideoHandler) Upload(c *gin.Context) {
	var req services.MediaInput
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return
	}
	fileHeader, err := c.FormFile("video_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidFile})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("failed to open uploaded file", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return
	}
	defer file.Close()

	v, err := h.svc.Upload(c.Request.Context(), req, fileHeader.Filename, file)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, videoView(v))
}

func (h *VideoHandler) UpdateInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.MediaInput
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return
	}
	if err := h.svc.UpdateInfo(c.Request.Context(), id, req); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "updated"})
}

func (h *VideoHandler) Delete(c *gin.Context) {
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

func (h *VideoHandler) Download(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dl, err := h.svc.ResolveDownload(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.FileAttachment(dl.Path, dl.AttachmentName)
}
