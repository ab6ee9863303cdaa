package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/westosha-tf/team-portal/internal/dto"
	apierrors "github.com/westosha-tf/team-portal/internal/errors"
	"github.com/westosha-tf/team-portal/internal/middleware"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/services"
	"github.com/westosha-tf/team-portal/internal/storage"
	"go.uber.org/zap"
)

const (
	publicDocsPrefix = "/docs"
	coachDocsPrefix  = "/coach/docs"
)

// DocumentHandler serves document lists, uploads and signed downloads.
type DocumentHandler struct {
	documentService *services.DocumentService
	log             *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *services.DocumentService, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		log:             log,
	}
}

// PublicList handles GET /docs?category=
func (h *DocumentHandler) PublicList(c *gin.Context) {
	h.respondList(c, http.StatusOK, c.Query("category"), publicDocsPrefix)
}

// CoachList handles GET /coach/docs?category=
func (h *DocumentHandler) CoachList(c *gin.Context) {
	h.respondList(c, http.StatusOK, c.Query("category"), coachDocsPrefix)
}

// Upload handles POST /coach/docs as multipart/form-data.
func (h *DocumentHandler) Upload(c *gin.Context) {
	input := services.UploadInput{
		Title:      c.PostForm("title"),
		Category:   c.PostForm("category"),
		IsRequired: isChecked(c.PostForm("is_required")),
	}
	if description, ok := c.GetPostForm("description"); ok {
		input.Description = &description
	}
	input.CreatedBy, _ = middleware.GetUserID(c)

	if header, err := c.FormFile("file"); err == nil && header.Size > 0 {
		var file multipart.File
		file, err = header.Open()
		if err != nil {
			apierrors.InternalError(c, err.Error())
			return
		}
		defer file.Close()

		input.File = file
		input.FileName = header.Filename
		input.MimeType = header.Header.Get("Content-Type")
		input.Size = header.Size
	}

	if _, err := h.documentService.Upload(c.Request.Context(), input); err != nil {
		respondDocumentError(c, err)
		return
	}

	h.respondList(c, http.StatusCreated, "", coachDocsPrefix)
}

// Delete handles DELETE /coach/docs/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDocumentError(c, err)
		return
	}

	h.respondList(c, http.StatusOK, "", coachDocsPrefix)
}

// Download handles GET /docs/:id/download and /coach/docs/:id/download by
// redirecting to a short-lived signed link.
func (h *DocumentHandler) Download(c *gin.Context) {
	signedURL, err := h.documentService.SignedURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, signedURL)
}

// ServeFile handles GET /files/:token by streaming the object it grants.
func (h *DocumentHandler) ServeFile(c *gin.Context) {
	doc, rc, err := h.documentService.Open(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondDocumentError(c, err)
		return
	}
	defer rc.Close()

	contentType := "application/octet-stream"
	if doc.MimeType != nil && *doc.MimeType != "" {
		contentType = *doc.MimeType
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(doc.FileName))
	c.Header("Cache-Control", "private, no-store")
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.log.Warn("file stream interrupted", zap.String("document_id", doc.ID), zap.Error(err))
	}
}

func (h *DocumentHandler) respondList(c *gin.Context, status int, category, prefix string) {
	docs, err := h.documentService.List(c.Request.Context(), category)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	page := dto.DocumentsPage{
		Categories: append([]string{"All"}, models.DocumentCategories...),
		Selected:   "All",
		Required:   []dto.DocumentDTO{},
		Other:      []dto.DocumentDTO{},
	}
	if category != "" {
		page.Selected = category
	}
	for _, d := range docs {
		item := dto.ToDocumentDTO(d, prefix)
		if d.IsRequired {
			page.Required = append(page.Required, item)
		} else {
			page.Other = append(page.Other, item)
		}
	}

	c.JSON(status, page)
}

func respondDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrFileRequired),
		errors.Is(err, services.ErrInvalidCategory):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFileTooLarge):
		apierrors.PayloadTooLarge(c, err.Error())
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, storage.ErrInvalidSignedURL):
		apierrors.Gone(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
