package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/middleware"
	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/internal/service"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/response"
)

const (
	// multipart overhead allowed on top of the image limit
	formOverheadBytes    = 1 << 20
	multipartMemoryBytes = 8 << 20
)

type eventService interface {
	Create(ctx context.Context, auth *models.AuthContext, in service.CreateEventInput) (int64, error)
	List(ctx context.Context, filter models.EventFilter) (*dto.EventListResponse, error)
	Delete(ctx context.Context, req dto.DeleteEventRequest) (string, error)
	OpenImage(ctx context.Context, token string) (io.ReadCloser, string, error)
}

// EventHandler serves event creation, listing, deletion and images.
type EventHandler struct {
	service        eventService
	maxUploadBytes int64
}

// NewEventHandler constructs the handler.
func NewEventHandler(service eventService, maxUploadBytes int64) *EventHandler {
	return &EventHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Create godoc
// @Summary Create an event
// @Tags Events
// @Accept multipart/form-data
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param start_date formData string true "YYYY-MM-DD or YYYY-MM-DDTHH:MM"
// @Param end_date formData string true "YYYY-MM-DD or YYYY-MM-DDTHH:MM"
// @Param location formData string true "Location"
// @Param municipality formData string true "Municipality"
// @Param category formData string true "Category"
// @Param cultural_groups[] formData []string false "Participating groups"
// @Param image formData file false "Poster image"
// @Success 200 {object} dto.CreateEventResponse
// @Failure 400 {object} response.Failure
// @Failure 401 {object} response.Failure
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+formOverheadBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemoryBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Image exceeds the maximum upload size"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid form submission"))
		return
	}

	in := service.CreateEventInput{
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		StartDate:      c.PostForm("start_date"),
		EndDate:        c.PostForm("end_date"),
		Location:       c.PostForm("location"),
		Municipality:   c.PostForm("municipality"),
		Category:       c.PostForm("category"),
		CulturalGroups: append(c.PostFormArray("cultural_groups[]"), c.PostFormArray("cultural_groups")...),
	}

	header, err := c.FormFile("image")
	switch {
	case err == nil:
		file, openErr := header.Open()
		if openErr != nil {
			response.Error(c, appErrors.Wrap(openErr, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid image upload"))
			return
		}
		defer file.Close() //nolint:errcheck
		in.Image = &service.ImageUpload{Filename: header.Filename, Size: header.Size, Reader: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid form submission"))
		return
	}

	id, err := h.service.Create(c.Request.Context(), middleware.CurrentAuth(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResource(c, strconv.FormatInt(id, 10))
	response.JSON(c, http.StatusOK, dto.CreateEventResponse{Success: true, Message: "Event created successfully", EventID: id})
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param search query string false "Matches title, description or location"
// @Success 200 {object} dto.EventListResponse
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), models.EventFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     pageFromQuery(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete an event and its announcements
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body dto.DeleteEventRequest true "Event"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Failure
// @Router /events/delete [post]
func (h *EventHandler) Delete(c *gin.Context) {
	var req dto.DeleteEventRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	message, err := h.service.Delete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResource(c, strconv.FormatInt(req.EventID, 10))
	response.OK(c, message)
}

// Image godoc
// @Summary Event image by signed token
// @Tags Events
// @Produce image/png
// @Produce image/jpeg
// @Param token path string true "Signed image token"
// @Success 200 {file} file
// @Failure 404 {object} response.Failure
// @Router /events/image/{token} [get]
func (h *EventHandler) Image(c *gin.Context) {
	rc, contentType, err := h.service.OpenImage(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close() //nolint:errcheck

	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{"Cache-Control": "private, max-age=300"})
}
