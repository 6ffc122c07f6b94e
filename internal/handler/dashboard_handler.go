package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/middleware"
	"github.com/noah-isme/arts-admin-api/pkg/response"
)

type distributionService interface {
	Campus(ctx context.Context, search string) (*dto.CampusDistributionResponse, bool, error)
	College(ctx context.Context, search, campus string) (*dto.CollegeDistributionResponse, bool, error)
	CulturalGroups(ctx context.Context) (*dto.GroupDistributionResponse, bool, error)
}

// DashboardHandler serves the student distribution charts.
type DashboardHandler struct {
	service distributionService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service distributionService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// CampusDistribution godoc
// @Summary Active students per campus
// @Tags Dashboard
// @Produce json
// @Param search query string false "Matches name, email, SR code, campus or college"
// @Success 200 {object} dto.CampusDistributionResponse
// @Router /dashboard/campus-distribution [get]
func (h *DashboardHandler) CampusDistribution(c *gin.Context) {
	resp, hit, err := h.service.Campus(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, resp)
}

// CollegeDistribution godoc
// @Summary Active students per college
// @Tags Dashboard
// @Produce json
// @Param search query string false "Search term"
// @Param campus query string false "Restrict to one campus"
// @Success 200 {object} dto.CollegeDistributionResponse
// @Router /dashboard/college-distribution [get]
func (h *DashboardHandler) CollegeDistribution(c *gin.Context) {
	resp, hit, err := h.service.College(c.Request.Context(), c.Query("search"), c.Query("campus"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, resp)
}

// CulturalGroupDistribution godoc
// @Summary Active students per cultural group
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.GroupDistributionResponse
// @Router /dashboard/cultural-group-distribution [get]
func (h *DashboardHandler) CulturalGroupDistribution(c *gin.Context) {
	resp, hit, err := h.service.CulturalGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, resp)
}
