package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/vfg2006/branch-insights-api/internal/domain"
	"github.com/vfg2006/branch-insights-api/pkg/utils"
)

// Tolerância para diferenças de ponto flutuante entre o valor do registro e a
// soma das linhas
const amountEpsilon = 1e-9

// portion é a fatia de um registro atribuída a um valor de dimensão
type portion struct {
	key      string
	amount   float64
	quantity int
	records  int
}

// Aggregate agrupa os registros pela dimensão e produz um bucket por valor
// distinto observado. A invariante de conservação vale sempre: a soma de
// TotalAmount dos buckets é igual à soma de Amount dos registros, porque
// fatias sem valor de dimensão (ou diferenças de desconto não atribuíveis a
// uma linha) vão para o bucket sentinela "unknown" em vez de sumir.
func Aggregate(records []domain.TransactionRecord, dimension domain.DimensionKey) []domain.AggregateBucket {
	accumulator := make(map[string]*domain.AggregateBucket)

	for _, record := range records {
		seen := make(map[string]bool)
		for _, p := range splitRecord(record, dimension) {
			bucket, ok := accumulator[p.key]
			if !ok {
				bucket = &domain.AggregateBucket{Key: p.key}
				accumulator[p.key] = bucket
			}

			bucket.TotalAmount += p.amount
			bucket.TotalQuantity += p.quantity

			// Count soma registros, não linhas: um registro com duas linhas
			// do mesmo produto conta uma única vez no bucket
			if p.records > 0 && !seen[p.key] {
				bucket.Count++
				seen[p.key] = true
			}
		}
	}

	buckets := make([]domain.AggregateBucket, 0, len(accumulator))
	for _, bucket := range accumulator {
		if bucket.Count > 0 {
			bucket.Average = utils.RoundWithTwoDecimalPlace(bucket.TotalAmount / float64(bucket.Count))
		}
		buckets = append(buckets, *bucket)
	}

	// Ordem estável por chave para resultados reprodutíveis entre execuções
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})

	return buckets
}

// splitRecord fatia um registro nas porções atribuídas a cada valor da
// dimensão. Para filial e cliente o registro inteiro vira uma porção única;
// para produto e departamento o valor é rateado linha a linha e o resíduo
// (descontos ou arredondamentos aplicados no registro, não nas linhas) vai
// para o bucket sentinela com contagem zero.
func splitRecord(record domain.TransactionRecord, dimension domain.DimensionKey) []portion {
	switch dimension {
	case domain.DimensionBranch:
		return []portion{{
			key:      keyOrUnknown(record.BranchID),
			amount:   record.Amount,
			quantity: record.TotalQuantity(),
			records:  1,
		}}

	case domain.DimensionCustomer:
		key := domain.UnknownDimensionValue
		if record.Customer != nil && record.Customer.Name != "" {
			key = record.Customer.Name
		}
		return []portion{{
			key:      key,
			amount:   record.Amount,
			quantity: record.TotalQuantity(),
			records:  1,
		}}

	case domain.DimensionProduct, domain.DimensionDepartment:
		return splitByLine(record, dimension)

	default:
		return []portion{{
			key:      domain.UnknownDimensionValue,
			amount:   record.Amount,
			quantity: record.TotalQuantity(),
			records:  1,
		}}
	}
}

func splitByLine(record domain.TransactionRecord, dimension domain.DimensionKey) []portion {
	portions := make([]portion, 0, len(record.LineItems)+1)

	linesTotal := 0.0
	for _, item := range record.LineItems {
		key := item.ProductID
		if dimension == domain.DimensionDepartment {
			key = item.DepartmentID
		}

		portions = append(portions, portion{
			key:      keyOrUnknown(key),
			amount:   item.LineAmount(),
			quantity: item.Quantity,
			records:  1,
		})
		linesTotal += item.LineAmount()
	}

	// O resíduo preserva a conservação quando o valor do registro difere da
	// soma das linhas
	if residual := record.Amount - linesTotal; math.Abs(residual) > amountEpsilon {
		portions = append(portions, portion{
			key:    domain.UnknownDimensionValue,
			amount: residual,
		})
	}

	return portions
}

func keyOrUnknown(key string) string {
	if key == "" {
		return domain.UnknownDimensionValue
	}
	return key
}

// MergePartials combina somas parciais pré-agregadas (por exemplo os rollups
// diários do backoffice) em um conjunto único de buckets, recalculando a
// média derivada
func MergePartials(partials []domain.AggregateBucket) []domain.AggregateBucket {
	accumulator := make(map[string]*domain.AggregateBucket)

	for _, p := range partials {
		bucket, ok := accumulator[p.Key]
		if !ok {
			bucket = &domain.AggregateBucket{Key: p.Key}
			accumulator[p.Key] = bucket
		}
		bucket.Count += p.Count
		bucket.TotalAmount += p.TotalAmount
		bucket.TotalQuantity += p.TotalQuantity
	}

	buckets := make([]domain.AggregateBucket, 0, len(accumulator))
	for _, bucket := range accumulator {
		if bucket.Count > 0 {
			bucket.Average = utils.RoundWithTwoDecimalPlace(bucket.TotalAmount / float64(bucket.Count))
		}
		buckets = append(buckets, *bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})

	return buckets
}

// FilterRecords aplica os filtros locais sobre os registros canônicos. A
// busca por nome de produto filtra registros ANTES da agregação: os buckets
// são sempre re-derivados depois de qualquer mudança de filtro, preservando a
// invariante de conservação sobre o conjunto filtrado.
func FilterRecords(records []domain.TransactionRecord, filters domain.RecordFilters) []domain.TransactionRecord {
	if filters.ProductSearch == "" && filters.DepartmentID == "" && filters.BranchID == "" {
		return records
	}

	search := strings.ToLower(filters.ProductSearch)

	filtered := make([]domain.TransactionRecord, 0, len(records))
	for _, record := range records {
		if filters.BranchID != "" && record.BranchID != filters.BranchID {
			continue
		}
		if filters.DepartmentID != "" && !hasDepartment(record, filters.DepartmentID) {
			continue
		}
		if search != "" && !matchesProductName(record, search) {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered
}

func hasDepartment(record domain.TransactionRecord, departmentID string) bool {
	for _, item := range record.LineItems {
		if item.DepartmentID == departmentID {
			return true
		}
	}
	return false
}

func matchesProductName(record domain.TransactionRecord, search string) bool {
	for _, item := range record.LineItems {
		if strings.Contains(strings.ToLower(item.ProductName.AR), search) ||
			strings.Contains(strings.ToLower(item.ProductName.EN), search) {
			return true
		}
	}
	return false
}
