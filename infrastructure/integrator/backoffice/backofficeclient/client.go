package backofficeclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/domain"
	"github.com/vfg2006/branch-insights-api/internal/config"
)

type Client interface {
	GetRecords(ctx context.Context, params domain.GetRecordsParams) ([]domain.WireRecord, error)
	GetInventory(ctx context.Context, branchID string) ([]domain.WireInventoryItem, error)
	SubmitReturn(ctx context.Context, params domain.SubmitReturnParams) (*domain.SubmitReturnResponse, error)
}

type BackofficeClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &BackofficeClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Backoffice.TimeoutSeconds) * time.Second,
		},
		config: cfg,
	}
}
