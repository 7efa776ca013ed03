package analytics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

// ErrInvalidDateRange indica intervalo degenerado (início depois do fim).
// Erro de entrada, nunca corrigido silenciosamente com troca de datas.
var ErrInvalidDateRange = errors.New("intervalo de datas inválido: data inicial posterior à data final")

// BucketByDay distribui os registros em baldes diários contíguos cobrindo o
// intervalo inclusivo [start, end]. A lista de dias é construída primeiro e
// define a quantidade e os rótulos dos pontos; dias sem movimento aparecem
// zerados. Registros fora do intervalo são descartados, não grampeados na
// borda, para não contar duas vezes os dias limítrofes.
func BucketByDay(records []domain.TransactionRecord, start, end time.Time) ([]domain.TrendPoint, error) {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	if startDay.After(endDay) {
		return nil, ErrInvalidDateRange
	}

	days := int(endDay.Sub(startDay).Hours()/24) + 1
	points := make([]domain.TrendPoint, 0, days)
	indexByLabel := make(map[string]int, days)

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		label := day.Format(time.DateOnly)
		indexByLabel[label] = len(points)
		points = append(points, domain.TrendPoint{PeriodLabel: label})
	}

	for _, record := range records {
		label := record.OccurredAt.Format(time.DateOnly)
		index, ok := indexByLabel[label]
		if !ok {
			continue
		}
		points[index].TotalAmount += record.Amount
		points[index].Count++
	}

	return points, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
