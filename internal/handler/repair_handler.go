package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/pkg/response"
)

type repairService interface {
	List(ctx context.Context, filter models.RepairFilter) (*dto.RepairListResponse, error)
}

// RepairHandler serves the repair item listing.
type RepairHandler struct {
	service repairService
}

// NewRepairHandler constructs the handler.
func NewRepairHandler(service repairService) *RepairHandler {
	return &RepairHandler{service: service}
}

// List godoc
// @Summary List items under repair
// @Tags Inventory
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param repair_status query string false "Repair status filter"
// @Param search query string false "Matches item name, category or notes"
// @Success 200 {object} dto.RepairListResponse
// @Failure 401 {object} response.Failure
// @Router /repair-items [get]
func (h *RepairHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), models.RepairFilter{
		RepairStatus: strings.TrimSpace(c.Query("repair_status")),
		Search:       strings.TrimSpace(c.Query("search")),
		Page:         pageFromQuery(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
