package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/arts-admin-api/internal/models"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

type fakeRepairRepo struct {
	rows  []models.RepairItem
	total int
	err   error
}

func (f *fakeRepairRepo) List(ctx context.Context, filter models.RepairFilter) ([]models.RepairItem, int, error) {
	return f.rows, f.total, f.err
}

func TestRepairServiceList(t *testing.T) {
	category := "COSTUME"
	reporter := "Ana Reyes"
	repo := &fakeRepairRepo{total: 11, rows: []models.RepairItem{
		{ItemID: 4, ItemName: "Barong", Category: &category, Quantity: 2, RepairStatus: "pending", ReporterName: &reporter},
		{ItemID: 5, ItemName: "Drum", Quantity: 1, RepairStatus: "in_repair"},
	}}
	svc := NewRepairService(repo, nil)

	resp, err := svc.List(context.Background(), models.RepairFilter{Page: querybuilder.NewPage(2, 5)})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 5, resp.Pagination.PerPage)
	assert.Equal(t, 11, resp.Pagination.TotalItems)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Costume", resp.Items[0].Category)
	assert.Equal(t, "Ana Reyes", resp.Items[0].ReportedBy)
	assert.Equal(t, "System", resp.Items[1].ReportedBy)
}

func TestRepairServiceListFailure(t *testing.T) {
	svc := NewRepairService(&fakeRepairRepo{err: errors.New("timeout")}, nil)
	_, err := svc.List(context.Background(), models.RepairFilter{Page: querybuilder.NewPage(1, 10)})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
