package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/branch-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

const dailyRollupsTable = "daily_rollups dr"

// RollupRepository lê as somas parciais diárias pré-agregadas que o
// backoffice replica para consulta rápida. Cada linha é um parcial por
// (filial, dimensão, chave, dia); o motor de agregação combina os parciais
// com MergePartials; a tabela nunca recebe dados derivados localmente.
type RollupRepository interface {
	GetDailyRollups(branchID string, dimension domain.DimensionKey, startDate, endDate time.Time) ([]domain.AggregateBucket, error)
}

type rollupRepository struct {
	conn *postgres.Connection
}

func NewRollupRepository(conn *postgres.Connection) RollupRepository {
	return &rollupRepository{
		conn: conn,
	}
}

func (r *rollupRepository) GetDailyRollups(branchID string, dimension domain.DimensionKey, startDate, endDate time.Time) ([]domain.AggregateBucket, error) {
	builder := squirrel.
		Select("dr.dimension_key", "dr.record_count", "dr.total_amount", "dr.total_quantity").
		From(dailyRollupsTable).
		Where(squirrel.Eq{"dr.dimension": string(dimension)}).
		Where(squirrel.GtOrEq{"dr.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"dr.date": endDate.Format(time.DateOnly)}).
		OrderBy("dr.dimension_key ASC, dr.date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if branchID != "" {
		builder = builder.Where(squirrel.Eq{"dr.branch_id": branchID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de rollups")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []domain.AggregateBucket{}, nil
		}
		return nil, errors.Wrap(err, "erro ao executar a query de rollups")
	}
	defer rows.Close()

	partials := make([]domain.AggregateBucket, 0)
	for rows.Next() {
		var partial domain.AggregateBucket
		if err := rows.Scan(&partial.Key, &partial.Count, &partial.TotalAmount, &partial.TotalQuantity); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear rollup diário")
		}
		partials = append(partials, partial)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de rollups")
	}

	return partials, nil
}
