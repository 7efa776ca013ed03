package backoffice

import (
	"context"
	"time"

	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/backofficeclient"
	backofficedomain "github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/domain"
	"github.com/vfg2006/branch-insights-api/internal/config"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

// Integrator é a fachada sobre os endpoints do backoffice consumidos pela
// aplicação: leitura de registros, foto de estoque e mutação de devoluções
type Integrator interface {
	GetRecords(ctx context.Context, filters domain.RecordFilters) ([]backofficedomain.WireRecord, error)
	GetInventory(ctx context.Context, branchID string) ([]backofficedomain.WireInventoryItem, error)
	SubmitReturn(ctx context.Context, params backofficedomain.SubmitReturnParams) (*backofficedomain.SubmitReturnResponse, error)
}

type BackofficeService struct {
	cfg    *config.Config
	Client backofficeclient.Client
}

func New(cfg *config.Config, client backofficeclient.Client) Integrator {
	return &BackofficeService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *BackofficeService) GetRecords(ctx context.Context, filters domain.RecordFilters) ([]backofficedomain.WireRecord, error) {
	params := backofficedomain.GetRecordsParams{
		BranchID:     filters.BranchID,
		DepartmentID: filters.DepartmentID,
		StartDate:    filters.StartDate.Format(time.DateOnly),
		EndDate:      filters.EndDate.Format(time.DateOnly),
	}

	return s.Client.GetRecords(ctx, params)
}

func (s *BackofficeService) GetInventory(ctx context.Context, branchID string) ([]backofficedomain.WireInventoryItem, error) {
	return s.Client.GetInventory(ctx, branchID)
}

func (s *BackofficeService) SubmitReturn(ctx context.Context, params backofficedomain.SubmitReturnParams) (*backofficedomain.SubmitReturnResponse, error) {
	return s.Client.SubmitReturn(ctx, params)
}
