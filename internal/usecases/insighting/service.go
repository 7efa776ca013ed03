package insighting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice"
	"github.com/vfg2006/branch-insights-api/infrastructure/repository"
	"github.com/vfg2006/branch-insights-api/internal/analytics"
	"github.com/vfg2006/branch-insights-api/internal/cache"
	"github.com/vfg2006/branch-insights-api/internal/config"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

// Service implementa Insighter sobre o integrador do backoffice, o
// repositório de rollups e o sincronizador de cache
type Service struct {
	cfg        *config.Config
	backoffice backoffice.Integrator
	rollupRepo repository.RollupRepository
	cache      *cache.Synchronizer
}

func NewService(
	cfg *config.Config,
	integrator backoffice.Integrator,
	rollupRepo repository.RollupRepository,
	synchronizer *cache.Synchronizer,
) Insighter {
	return &Service{
		cfg:        cfg,
		backoffice: integrator,
		rollupRepo: rollupRepo,
		cache:      synchronizer,
	}
}

func (s *Service) GetAggregates(ctx context.Context, filters domain.RecordFilters, dimension domain.DimensionKey) ([]domain.AggregateBucket, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	records, err := s.records(ctx, filters)
	if err != nil && records == nil {
		return nil, err
	}
	if err != nil {
		// Dados antigos servidos durante a revalidação; o chamador já foi
		// avisado pelo log e o TTL cuida do refetch
		logrus.WithError(err).Warn("Agregação servida com dados de cache desatualizados")
	}

	filtered := analytics.FilterRecords(records, filters)
	return analytics.Aggregate(filtered, dimension), nil
}

func (s *Service) GetRanking(ctx context.Context, filters domain.RecordFilters, dimension domain.DimensionKey, n int, field domain.SortField) (*domain.RankingResponse, error) {
	if n <= 0 {
		return nil, fmt.Errorf("a quantidade do ranking deve ser positiva")
	}

	buckets, err := s.GetAggregates(ctx, filters, dimension)
	if err != nil {
		return nil, err
	}

	// Top e least saem do MESMO conjunto ordenado em direções opostas,
	// nunca de consultas independentes
	return &domain.RankingResponse{
		Top:         analytics.Top(buckets, n, field),
		Least:       analytics.Least(buckets, n, field),
		GeneratedAt: time.Now(),
	}, nil
}

func (s *Service) GetTrend(ctx context.Context, filters domain.RecordFilters) ([]domain.TrendPoint, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	records, err := s.records(ctx, filters)
	if err != nil && records == nil {
		return nil, err
	}
	if err != nil {
		logrus.WithError(err).Warn("Tendência servida com dados de cache desatualizados")
	}

	filtered := analytics.FilterRecords(records, filters)
	return analytics.BucketByDay(filtered, filters.StartDate, filters.EndDate)
}

func (s *Service) GetRollupAggregates(ctx context.Context, filters domain.RecordFilters, dimension domain.DimensionKey) ([]domain.AggregateBucket, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	resource := "rollups:" + filters.BranchID
	fingerprint := cache.Fingerprint(resource, rollupKey{
		Dimension: string(dimension),
		StartDate: filters.StartDate.Format(time.DateOnly),
		EndDate:   filters.EndDate.Format(time.DateOnly),
	})

	partials, err := cache.ReadAs(ctx, s.cache, fingerprint, s.rollupTTL(), func(ctx context.Context) ([]domain.AggregateBucket, error) {
		return s.rollupRepo.GetDailyRollups(filters.BranchID, dimension, filters.StartDate, filters.EndDate)
	})
	if err != nil && partials == nil {
		return nil, err
	}

	return analytics.MergePartials(partials), nil
}

func (s *Service) GetInventorySnapshot(ctx context.Context, branchID string) (*domain.InventorySnapshot, error) {
	if branchID == "" {
		return nil, fmt.Errorf("é necessário informar a filial")
	}

	fingerprint := cache.Fingerprint("inventory:"+branchID, nil)

	return cache.ReadAs(ctx, s.cache, fingerprint, s.inventoryTTL(), func(ctx context.Context) (*domain.InventorySnapshot, error) {
		items, err := s.backoffice.GetInventory(ctx, branchID)
		if err != nil {
			return nil, err
		}

		snapshot := &domain.InventorySnapshot{
			BranchID:  branchID,
			Items:     make([]domain.InventoryItem, 0, len(items)),
			FetchedAt: time.Now(),
		}
		for _, item := range items {
			snapshot.Items = append(snapshot.Items, domain.InventoryItem{
				ProductID:         item.ProductID,
				AvailableQuantity: item.AvailableQuantity,
			})
		}
		return snapshot, nil
	})
}

func (s *Service) ExportAggregates(ctx context.Context, filters domain.RecordFilters, dimension domain.DimensionKey) (*domain.ExportTable, error) {
	buckets, err := s.GetAggregates(ctx, filters, dimension)
	if err != nil {
		return nil, err
	}

	// A tabela sai ordenada pela métrica principal; Aggregate já garante um
	// bucket único por chave
	ordered := analytics.Top(buckets, len(buckets), domain.SortByTotalAmount)

	table := &domain.ExportTable{
		Columns: []domain.ExportColumn{
			{Key: "key", Title: string(dimension)},
			{Key: "count", Title: "count"},
			{Key: "total_amount", Title: "total_amount"},
			{Key: "total_quantity", Title: "total_quantity"},
			{Key: "average", Title: "average"},
		},
		Rows: make([][]any, 0, len(ordered)),
	}

	for _, bucket := range ordered {
		table.Rows = append(table.Rows, []any{
			bucket.Key,
			bucket.Count,
			bucket.TotalAmount,
			bucket.TotalQuantity,
			bucket.Average,
		})
	}

	return table, nil
}

// rollupKey serializa de forma estável os parâmetros da consulta de rollups
type rollupKey struct {
	Dimension string `json:"dimension"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// recordsKey não inclui ProductSearch de propósito: a busca textual filtra
// registros localmente antes da agregação, então consultas que diferem só
// pelo termo compartilham a mesma entrada de cache
type recordsKey struct {
	BranchID     string `json:"branch_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// records busca e normaliza os registros brutos do período, com cache por
// fingerprint. Leitores concorrentes do mesmo período compartilham uma única
// requisição ao backoffice.
func (s *Service) records(ctx context.Context, filters domain.RecordFilters) ([]domain.TransactionRecord, error) {
	fetchFilters := filters
	fetchFilters.ProductSearch = ""

	resource := "records:" + filters.BranchID
	fingerprint := cache.Fingerprint(resource, recordsKey{
		BranchID:     fetchFilters.BranchID,
		DepartmentID: fetchFilters.DepartmentID,
		StartDate:    fetchFilters.StartDate.Format(time.DateOnly),
		EndDate:      fetchFilters.EndDate.Format(time.DateOnly),
	})

	return cache.ReadAs(ctx, s.cache, fingerprint, s.recordsTTL(), func(ctx context.Context) ([]domain.TransactionRecord, error) {
		wire, err := s.backoffice.GetRecords(ctx, fetchFilters)
		if err != nil {
			return nil, err
		}
		return analytics.NormalizeRecords(wire), nil
	})
}

func validateFilters(filters domain.RecordFilters) error {
	if filters.StartDate.IsZero() || filters.EndDate.IsZero() {
		return fmt.Errorf("é necessário informar as datas de início e fim")
	}
	if filters.StartDate.After(filters.EndDate) {
		return fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}
	return nil
}

func (s *Service) recordsTTL() time.Duration {
	return time.Duration(s.cfg.Cache.RecordsTTLSeconds) * time.Second
}

func (s *Service) inventoryTTL() time.Duration {
	return time.Duration(s.cfg.Cache.InventoryTTLSeconds) * time.Second
}

func (s *Service) rollupTTL() time.Duration {
	return time.Duration(s.cfg.Cache.RollupTTLSeconds) * time.Second
}
