package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	backofficedomain "github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/domain"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }

func TestNormalizeRecords(t *testing.T) {
	tests := []struct {
		name     string
		wire     []backofficedomain.WireRecord
		validate func(t *testing.T, records []domain.TransactionRecord)
	}{
		{
			name: "Variantes de tipo são toleradas",
			wire: []backofficedomain.WireRecord{
				{ID: "R1", Type: "sale", BranchID: "B1", Date: "2026-08-10", Total: floatPtr(10)},
				{ID: "R2", Type: "sales", BranchID: "B1", Date: "2026-08-10", Total: floatPtr(10)},
				{ID: "R3", Type: "orders", BranchID: "B1", Date: "2026-08-10", Total: floatPtr(10)},
				{ID: "R4", Type: "return", BranchID: "B1", Date: "2026-08-10", Total: floatPtr(10)},
			},
			validate: func(t *testing.T, records []domain.TransactionRecord) {
				assert.Len(t, records, 4)
				assert.Equal(t, domain.RecordKindSale, records[0].Kind)
				assert.Equal(t, domain.RecordKindSale, records[1].Kind)
				assert.Equal(t, domain.RecordKindOrder, records[2].Kind)
				assert.Equal(t, domain.RecordKindReturn, records[3].Kind)
			},
		},
		{
			name: "Registros malformados são descartados sem derrubar o lote",
			wire: []backofficedomain.WireRecord{
				{ID: "R1", Type: "sale", BranchID: "B1", Date: "2026-08-10", Total: floatPtr(10)},
				{ID: "R2", Type: "voucher", BranchID: "B1", Date: "2026-08-10"},
				{ID: "R3", Type: "sale", BranchID: "B1", Date: ""},
				{ID: "R4", Type: "sale", BranchID: "B1", Date: "10/08/2026"},
			},
			validate: func(t *testing.T, records []domain.TransactionRecord) {
				assert.Len(t, records, 1)
				assert.Equal(t, "R1", records[0].ID)
			},
		},
		{
			name: "net_amount tem precedência sobre total e soma das linhas",
			wire: []backofficedomain.WireRecord{
				{
					ID: "R1", Type: "sale", BranchID: "B1", Date: "2026-08-10",
					NetAmount: floatPtr(90), Total: floatPtr(100),
					Items: []backofficedomain.WireLineItem{
						{ProductID: "P-A", Quantity: 1, UnitPrice: 80},
					},
				},
			},
			validate: func(t *testing.T, records []domain.TransactionRecord) {
				assert.InDelta(t, 90.0, records[0].Amount, 1e-9)
			},
		},
		{
			name: "Sem net_amount nem total o valor vem da soma das linhas",
			wire: []backofficedomain.WireRecord{
				{
					ID: "R1", Type: "sale", BranchID: "B1", Date: "2026-08-10",
					Items: []backofficedomain.WireLineItem{
						{ProductID: "P-A", Quantity: 2, UnitPrice: 25},
						{ProductID: "P-B", Quantity: 1, UnitPrice: 30},
					},
				},
			},
			validate: func(t *testing.T, records []domain.TransactionRecord) {
				assert.InDelta(t, 80.0, records[0].Amount, 1e-9)
			},
		},
		{
			name: "Preço unitário derivado do total da linha no formato antigo",
			wire: []backofficedomain.WireRecord{
				{
					ID: "R1", Type: "sale", BranchID: "B1", Date: "2026-08-10",
					Items: []backofficedomain.WireLineItem{
						{ProductID: "P-A", Quantity: 4, Price: 100},
					},
				},
			},
			validate: func(t *testing.T, records []domain.TransactionRecord) {
				item := records[0].LineItems[0]
				assert.InDelta(t, 25.0, item.UnitPrice, 1e-9)
				assert.InDelta(t, 100.0, item.LineAmount(), 1e-9)
			},
		},
		{
			name: "Data em RFC3339 e em yyyy-mm-dd são aceitas",
			wire: []backofficedomain.WireRecord{
				{ID: "R1", Type: "sale", BranchID: "B1", Date: "2026-08-10T14:30:00Z", Total: floatPtr(10)},
				{ID: "R2", Type: "sale", BranchID: "B1", Date: "2026-08-10", Total: floatPtr(10)},
			},
			validate: func(t *testing.T, records []domain.TransactionRecord) {
				assert.Len(t, records, 2)
				assert.Equal(t, 14, records[0].OccurredAt.Hour())
				assert.Equal(t, "2026-08-10", records[1].OccurredAt.Format("2006-01-02"))
			},
		},
		{
			name: "Cliente presente é propagado, nomes localizados preservados",
			wire: []backofficedomain.WireRecord{
				{
					ID: "R1", Type: "sale", BranchID: "B1", Date: "2026-08-10", Total: floatPtr(50),
					Customer: &backofficedomain.WireCustomer{Name: "Cliente X", Phone: "555-0000"},
					Items: []backofficedomain.WireLineItem{
						{ProductID: "P-A", NameAR: "شاورما", NameEN: "Shawarma", Quantity: 1, UnitPrice: 50},
					},
				},
			},
			validate: func(t *testing.T, records []domain.TransactionRecord) {
				assert.Equal(t, "Cliente X", records[0].Customer.Name)
				assert.Equal(t, "شاورما", records[0].LineItems[0].ProductName.AR)
				assert.Equal(t, "Shawarma", records[0].LineItems[0].ProductName.EN)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := NormalizeRecords(tt.wire)
			tt.validate(t, records)
		})
	}
}

func TestLocalizedNameDisplay(t *testing.T) {
	name := domain.LocalizedName{AR: "شاورما", EN: "Shawarma"}

	assert.Equal(t, "شاورما", name.Display("ar"))
	assert.Equal(t, "Shawarma", name.Display("en"))

	onlyAR := domain.LocalizedName{AR: "فلافل"}
	assert.Equal(t, "فلافل", onlyAR.Display("en"))
}
