package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/middleware"
	"github.com/noah-isme/arts-admin-api/pkg/response"
)

type studentService interface {
	Profile(ctx context.Context, req dto.StudentProfileRequest) (*dto.StudentProfileView, error)
	UpdateCulturalGroup(ctx context.Context, req dto.UpdateCulturalGroupRequest) (string, error)
}

// StudentHandler serves student profiles and cultural group assignment.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service studentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// Profile godoc
// @Summary Student profile
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.StudentProfileRequest true "Student"
// @Success 200 {object} dto.StudentProfileResponse
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /students/profile [post]
func (h *StudentHandler) Profile(c *gin.Context) {
	var req dto.StudentProfileRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.Profile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.StudentProfileResponse{Success: true, Student: *view})
}

// UpdateCulturalGroup godoc
// @Summary Assign or clear a student's cultural group
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.UpdateCulturalGroupRequest true "Assignment; empty group unassigns"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Failure 409 {object} response.Failure
// @Router /students/cultural-group [post]
func (h *StudentHandler) UpdateCulturalGroup(c *gin.Context) {
	var req dto.UpdateCulturalGroupRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	message, err := h.service.UpdateCulturalGroup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResource(c, strconv.FormatInt(req.StudentID, 10))
	response.OK(c, message)
}
