package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/arts-admin-api/internal/dto"
	"github.com/noah-isme/arts-admin-api/internal/middleware"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
)

type recordingDistributionSrv struct {
	search string
	campus string
	hit    bool
	err    error
}

func (f *recordingDistributionSrv) Campus(_ context.Context, search string) (*dto.CampusDistributionResponse, bool, error) {
	f.search = search
	return &dto.CampusDistributionResponse{Success: true}, f.hit, f.err
}

func (f *recordingDistributionSrv) College(_ context.Context, search, campus string) (*dto.CollegeDistributionResponse, bool, error) {
	f.search, f.campus = search, campus
	if f.err != nil {
		return nil, false, f.err
	}
	return &dto.CollegeDistributionResponse{Success: true, Campus: campus}, f.hit, nil
}

func (f *recordingDistributionSrv) CulturalGroups(context.Context) (*dto.GroupDistributionResponse, bool, error) {
	return &dto.GroupDistributionResponse{Success: true}, f.hit, f.err
}

func TestDashboardHandlerCollegePassesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &recordingDistributionSrv{}
	handler := NewDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/college-distribution?search=ana&campus=Lipa", nil)

	handler.CollegeDistribution(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana", srv.search)
	assert.Equal(t, "Lipa", srv.campus)
	assert.Equal(t, "MISS", rec.Header().Get(middleware.CacheHeader))
}

func TestDashboardHandlerCulturalGroupsHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&recordingDistributionSrv{hit: true})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/cultural-group-distribution", nil)

	handler.CulturalGroupDistribution(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get(middleware.CacheHeader))
}

func TestDashboardHandlerServiceFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&recordingDistributionSrv{err: appErrors.Internal(errors.New("db down"), "")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/college-distribution", nil)

	handler.CollegeDistribution(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get(middleware.CacheHeader))
	assert.NotContains(t, rec.Body.String(), "db down")
}
