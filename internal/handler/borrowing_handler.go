package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/models"
	"github.com/noah-isme/arts-admin-api/internal/service"
	"github.com/noah-isme/arts-admin-api/pkg/response"
)

type borrowingService interface {
	List(ctx context.Context, filter models.BorrowingFilter) (*dto.BorrowingListResponse, error)
	Export(ctx context.Context, filter models.BorrowingFilter, format string) (*service.ExportFile, error)
}

// BorrowingHandler serves borrowing request listings and exports.
type BorrowingHandler struct {
	service borrowingService
}

// NewBorrowingHandler constructs the handler.
func NewBorrowingHandler(service borrowingService) *BorrowingHandler {
	return &BorrowingHandler{service: service}
}

func borrowingFilter(c *gin.Context) models.BorrowingFilter {
	return models.BorrowingFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
		Page:   pageFromQuery(c),
	}
}

// List godoc
// @Summary List borrowing requests
// @Tags Borrowing
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param status query string false "Status filter"
// @Param search query string false "Matches student name, email or item"
// @Success 200 {object} dto.BorrowingListResponse
// @Failure 401 {object} response.Failure
// @Router /borrowing-requests [get]
func (h *BorrowingHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), borrowingFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Export godoc
// @Summary Export borrowing requests
// @Tags Borrowing
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Param status query string false "Status filter"
// @Param search query string false "Search term"
// @Success 200 {file} file
// @Failure 400 {object} response.Failure
// @Router /borrowing-requests/export [get]
func (h *BorrowingHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), borrowingFilter(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
