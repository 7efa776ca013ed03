package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

func record(id, branch string, amount float64, items ...domain.LineItem) domain.TransactionRecord {
	return domain.TransactionRecord{
		ID:         id,
		Kind:       domain.RecordKindSale,
		BranchID:   branch,
		OccurredAt: time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC),
		Amount:     amount,
		LineItems:  items,
	}
}

func line(productID, departmentID string, quantity int, unitPrice float64) domain.LineItem {
	return domain.LineItem{
		ProductID:    productID,
		DepartmentID: departmentID,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
	}
}

func sumAmounts(buckets []domain.AggregateBucket) float64 {
	total := 0.0
	for _, bucket := range buckets {
		total += bucket.TotalAmount
	}
	return total
}

func findBucket(t *testing.T, buckets []domain.AggregateBucket, key string) domain.AggregateBucket {
	t.Helper()
	for _, bucket := range buckets {
		if bucket.Key == key {
			return bucket
		}
	}
	t.Fatalf("bucket %q não encontrado", key)
	return domain.AggregateBucket{}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		records   []domain.TransactionRecord
		dimension domain.DimensionKey
		validate  func(t *testing.T, buckets []domain.AggregateBucket)
	}{
		{
			name: "Dimensão de produto - rateio por linha com resíduo no bucket sentinela",
			records: []domain.TransactionRecord{
				// 2x25 + 1x30 = 80, mas o registro vale 100: resíduo de 20
				record("R1", "B1", 100,
					line("P-A", "D1", 2, 25),
					line("P-B", "D2", 1, 30),
				),
				record("R2", "B1", 80, line("P-A", "D1", 2, 40)),
			},
			dimension: domain.DimensionProduct,
			validate: func(t *testing.T, buckets []domain.AggregateBucket) {
				productA := findBucket(t, buckets, "P-A")
				assert.Equal(t, 2, productA.Count)
				assert.InDelta(t, 130.0, productA.TotalAmount, 1e-9)
				assert.Equal(t, 4, productA.TotalQuantity)
				assert.InDelta(t, 65.0, productA.Average, 1e-9)

				productB := findBucket(t, buckets, "P-B")
				assert.Equal(t, 1, productB.Count)
				assert.InDelta(t, 30.0, productB.TotalAmount, 1e-9)

				unknown := findBucket(t, buckets, domain.UnknownDimensionValue)
				assert.Equal(t, 0, unknown.Count)
				assert.InDelta(t, 20.0, unknown.TotalAmount, 1e-9)

				// Conservação: a soma dos buckets bate com a soma dos registros
				assert.InDelta(t, 180.0, sumAmounts(buckets), 1e-9)
			},
		},
		{
			name: "Contagem soma registros e não linhas",
			records: []domain.TransactionRecord{
				record("R1", "B1", 50,
					line("P-A", "D1", 1, 20),
					line("P-A", "D1", 1, 30),
				),
			},
			dimension: domain.DimensionProduct,
			validate: func(t *testing.T, buckets []domain.AggregateBucket) {
				productA := findBucket(t, buckets, "P-A")
				assert.Equal(t, 1, productA.Count)
				assert.InDelta(t, 50.0, productA.TotalAmount, 1e-9)
				assert.Equal(t, 2, productA.TotalQuantity)
			},
		},
		{
			name: "Dimensão de filial - registro inteiro em uma porção única",
			records: []domain.TransactionRecord{
				record("R1", "B1", 100, line("P-A", "D1", 2, 50)),
				record("R2", "B2", 40, line("P-B", "D1", 1, 40)),
				record("R3", "B1", 60, line("P-B", "D1", 2, 30)),
			},
			dimension: domain.DimensionBranch,
			validate: func(t *testing.T, buckets []domain.AggregateBucket) {
				assert.Len(t, buckets, 2)

				branch1 := findBucket(t, buckets, "B1")
				assert.Equal(t, 2, branch1.Count)
				assert.InDelta(t, 160.0, branch1.TotalAmount, 1e-9)
				assert.InDelta(t, 80.0, branch1.Average, 1e-9)

				assert.InDelta(t, 200.0, sumAmounts(buckets), 1e-9)
			},
		},
		{
			name: "Dimensão de departamento - linha sem departamento vai para o sentinela",
			records: []domain.TransactionRecord{
				record("R1", "B1", 70,
					line("P-A", "D1", 1, 40),
					line("P-B", "", 1, 30),
				),
			},
			dimension: domain.DimensionDepartment,
			validate: func(t *testing.T, buckets []domain.AggregateBucket) {
				department := findBucket(t, buckets, "D1")
				assert.InDelta(t, 40.0, department.TotalAmount, 1e-9)

				unknown := findBucket(t, buckets, domain.UnknownDimensionValue)
				assert.InDelta(t, 30.0, unknown.TotalAmount, 1e-9)
				assert.Equal(t, 1, unknown.Count)

				assert.InDelta(t, 70.0, sumAmounts(buckets), 1e-9)
			},
		},
		{
			name: "Dimensão de cliente - registro sem cliente vai para o sentinela",
			records: []domain.TransactionRecord{
				func() domain.TransactionRecord {
					r := record("R1", "B1", 100, line("P-A", "D1", 1, 100))
					r.Customer = &domain.Customer{Name: "Cliente X"}
					return r
				}(),
				record("R2", "B1", 50, line("P-B", "D1", 1, 50)),
			},
			dimension: domain.DimensionCustomer,
			validate: func(t *testing.T, buckets []domain.AggregateBucket) {
				customer := findBucket(t, buckets, "Cliente X")
				assert.InDelta(t, 100.0, customer.TotalAmount, 1e-9)

				unknown := findBucket(t, buckets, domain.UnknownDimensionValue)
				assert.InDelta(t, 50.0, unknown.TotalAmount, 1e-9)
				assert.Equal(t, 1, unknown.Count)
			},
		},
		{
			name:      "Sem registros - nenhum bucket",
			records:   nil,
			dimension: domain.DimensionProduct,
			validate: func(t *testing.T, buckets []domain.AggregateBucket) {
				assert.Empty(t, buckets)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := Aggregate(tt.records, tt.dimension)
			tt.validate(t, buckets)
		})
	}
}

func TestAggregateDeterministicOrder(t *testing.T) {
	records := []domain.TransactionRecord{
		record("R1", "B3", 10, line("P-A", "D1", 1, 10)),
		record("R2", "B1", 20, line("P-B", "D1", 1, 20)),
		record("R3", "B2", 30, line("P-C", "D1", 1, 30)),
	}

	first := Aggregate(records, domain.DimensionBranch)
	second := Aggregate(records, domain.DimensionBranch)

	assert.Equal(t, first, second)
	assert.Equal(t, "B1", first[0].Key)
	assert.Equal(t, "B2", first[1].Key)
	assert.Equal(t, "B3", first[2].Key)
}

func TestMergePartials(t *testing.T) {
	partials := []domain.AggregateBucket{
		{Key: "P-A", Count: 2, TotalAmount: 100, TotalQuantity: 4},
		{Key: "P-B", Count: 1, TotalAmount: 30, TotalQuantity: 1},
		{Key: "P-A", Count: 1, TotalAmount: 50, TotalQuantity: 2},
	}

	merged := MergePartials(partials)

	assert.Len(t, merged, 2)

	productA := findBucket(t, merged, "P-A")
	assert.Equal(t, 3, productA.Count)
	assert.InDelta(t, 150.0, productA.TotalAmount, 1e-9)
	assert.Equal(t, 6, productA.TotalQuantity)
	assert.InDelta(t, 50.0, productA.Average, 1e-9)
}

func TestFilterRecords(t *testing.T) {
	records := []domain.TransactionRecord{
		record("R1", "B1", 100, domain.LineItem{
			ProductID:   "P-A",
			ProductName: domain.LocalizedName{AR: "شاورما", EN: "Shawarma"},
			Quantity:    1,
			UnitPrice:   100,
		}),
		record("R2", "B2", 50, domain.LineItem{
			ProductID:    "P-B",
			ProductName:  domain.LocalizedName{EN: "Falafel"},
			DepartmentID: "D2",
			Quantity:     1,
			UnitPrice:    50,
		}),
	}

	tests := []struct {
		name     string
		filters  domain.RecordFilters
		expected []string
	}{
		{
			name:     "Sem filtros devolve tudo",
			filters:  domain.RecordFilters{},
			expected: []string{"R1", "R2"},
		},
		{
			name:     "Filtro por filial",
			filters:  domain.RecordFilters{BranchID: "B2"},
			expected: []string{"R2"},
		},
		{
			name:     "Filtro por departamento",
			filters:  domain.RecordFilters{DepartmentID: "D2"},
			expected: []string{"R2"},
		},
		{
			name:     "Busca textual sem diferenciar maiúsculas",
			filters:  domain.RecordFilters{ProductSearch: "shaw"},
			expected: []string{"R1"},
		},
		{
			name:     "Busca textual pelo nome em árabe",
			filters:  domain.RecordFilters{ProductSearch: "شاورما"},
			expected: []string{"R1"},
		},
		{
			name:     "Busca sem correspondência",
			filters:  domain.RecordFilters{ProductSearch: "pizza"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterRecords(records, tt.filters)

			ids := make([]string, 0, len(filtered))
			for _, r := range filtered {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}
