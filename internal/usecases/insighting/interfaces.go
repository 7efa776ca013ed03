package insighting

import (
	"context"

	"github.com/vfg2006/branch-insights-api/internal/domain"
)

// Insighter define os caminhos de leitura analítica do dashboard. Todas as
// leituras passam pelo sincronizador de cache; os agregados são sempre
// re-derivados dos registros brutos depois de qualquer mudança de filtro.
type Insighter interface {
	// GetAggregates agrupa os registros do período pela dimensão pedida
	GetAggregates(ctx context.Context, filters domain.RecordFilters, dimension domain.DimensionKey) ([]domain.AggregateBucket, error)

	// GetRanking calcula top-N e least-N sobre o mesmo conjunto de buckets
	GetRanking(ctx context.Context, filters domain.RecordFilters, dimension domain.DimensionKey, n int, field domain.SortField) (*domain.RankingResponse, error)

	// GetTrend produz a série diária do intervalo inclusivo dos filtros
	GetTrend(ctx context.Context, filters domain.RecordFilters) ([]domain.TrendPoint, error)

	// GetRollupAggregates combina as somas parciais pré-agregadas do
	// backoffice para a mesma visão dimensional
	GetRollupAggregates(ctx context.Context, filters domain.RecordFilters, dimension domain.DimensionKey) ([]domain.AggregateBucket, error)

	// GetInventorySnapshot devolve a foto de estoque de uma filial
	GetInventorySnapshot(ctx context.Context, branchID string) (*domain.InventorySnapshot, error)

	// ExportAggregates monta a tabela ordenada e deduplicada entregue ao
	// escritor externo de CSV/Excel
	ExportAggregates(ctx context.Context, filters domain.RecordFilters, dimension domain.DimensionKey) (*domain.ExportTable, error)
}
