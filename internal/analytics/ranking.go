package analytics

import (
	"sort"

	"github.com/vfg2006/branch-insights-api/internal/domain"
)

// Top devolve os N maiores buckets pela métrica pedida. Top e Least ordenam
// o MESMO conjunto em direções opostas, nunca consultas independentes, então
// os dois recortes são consistentes entre si por construção.
func Top(buckets []domain.AggregateBucket, n int, field domain.SortField) []domain.AggregateBucket {
	return rank(buckets, n, field, true)
}

// Least devolve os N menores buckets pela métrica pedida
func Least(buckets []domain.AggregateBucket, n int, field domain.SortField) []domain.AggregateBucket {
	return rank(buckets, n, field, false)
}

func rank(buckets []domain.AggregateBucket, n int, field domain.SortField, descending bool) []domain.AggregateBucket {
	if n <= 0 {
		return []domain.AggregateBucket{}
	}

	ordered := make([]domain.AggregateBucket, len(buckets))
	copy(ordered, buckets)

	// O desempate pela chave segue a direção do recorte: os dois recortes são
	// fatias opostas da mesma ordenação total, então top-N e least-N nunca
	// compartilham um bucket enquanto N+N não excede o conjunto, mesmo com
	// métricas empatadas na fronteira
	sort.Slice(ordered, func(i, j int) bool {
		vi, vj := metricValue(ordered[i], field), metricValue(ordered[j], field)
		if vi != vj {
			if descending {
				return vi > vj
			}
			return vi < vj
		}
		if descending {
			return ordered[i].Key < ordered[j].Key
		}
		return ordered[i].Key > ordered[j].Key
	})

	if n > len(ordered) {
		n = len(ordered)
	}

	return ordered[:n]
}

func metricValue(bucket domain.AggregateBucket, field domain.SortField) float64 {
	switch field {
	case domain.SortByCount:
		return float64(bucket.Count)
	case domain.SortByTotalQuantity:
		return float64(bucket.TotalQuantity)
	case domain.SortByAverage:
		return bucket.Average
	default:
		return bucket.TotalAmount
	}
}
