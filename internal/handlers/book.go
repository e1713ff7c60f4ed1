package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
	"github.com/ntvhs/portal-backend/internal/services"
)

type BookHandler struct {
	log *logger.Logger
	svc services.BookService
}

func NewBookHandler(baseLog *logger.Logger, svc services.BookService) *BookHandler {
	return &BookHandler{
		log: baseLog.With("handler", "BookHandler"),
		svc: svc,
	}
}

func bookView(b *domain.Book) gin.H {
	return gin.H{
		"id":               b.ID,
		"title":            b.Title,
		"description":      b.Description,
		"grade":            b.Grade,
		"pdf_filename":     b.PDFFilename,
		"picture_filename": b.PictureFilename,
		"file_size":        b.FileSize,
		"created_at":       b.FormatCreatedAt(),
		"updated_at":       b.FormatUpdatedAt(),
	}
}

func (h *BookHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("grade"), c.Query("search"))
	if err != nil {
		RespondError(c, err)
		return
	}
	views := make([]gin.H, 0, len(items))
	for _, b := range items {
		views = append(views, bookView(b))
	}
	RespondOK(c, gin.H{"items": views, "count": len(views)})
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, bookView(b))
}

func (h *BookHandler) Upload(c *gin.Context) {
	var req services.MediaInput
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return
	}
	pdfHeader, err := c.FormFile("pdf_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidFile})
		return
	}
	pdf, err := pdfHeader.Open()
	if err != nil {
		h.log.Error("failed to open uploaded pdf", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
		return
	}
	defer pdf.Close()

	// The cover picture is optional.
	var (
		pictureName string
		picture     io.Reader
	)
	if picHeader, err := c.FormFile("picture_file"); err == nil {
		var pic multipart.File
		pic, err = picHeader.Open()
		if err != nil {
			h.log.Error("failed to open uploaded picture", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": apierr.CodeInvalidRequest})
			return
		}
		defer pic.Close()
		pictureName = picHeader.Filename
		picture = pic
	}

	b, err := h.svc.Upload(c.Request.Context(), req, pdfHeader.Filename, pdf, pictureName, picture)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, bookView(b))
}

func (h *BookHandler) UpdateInfo(c *gin.Context) {
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

func (h *BookHandler) Delete(c *gin.Context) {
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

func (h *BookHandler) Download(c *gin.Context) {
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
