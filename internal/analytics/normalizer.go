// Package analytics concentra o núcleo de agregação do dashboard:
// normalização de registros, agregação dimensional, ranking e série diária.
package analytics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	backofficedomain "github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/domain"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

var recordKinds = map[string]domain.RecordKind{
	"sale":    domain.RecordKindSale,
	"sales":   domain.RecordKindSale,
	"order":   domain.RecordKindOrder,
	"orders":  domain.RecordKindOrder,
	"return":  domain.RecordKindReturn,
	"returns": domain.RecordKindReturn,
}

// NormalizeRecords converte os registros heterogêneos do backoffice para o
// formato canônico. Registros malformados são descartados com log de aviso,
// nunca silenciosamente.
func NormalizeRecords(wire []backofficedomain.WireRecord) []domain.TransactionRecord {
	records := make([]domain.TransactionRecord, 0, len(wire))
	for _, w := range wire {
		record, err := normalizeRecord(w)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"record_id": w.ID,
				"type":      w.Type,
			}).Warn("Registro descartado na normalização")
			continue
		}
		records = append(records, record)
	}
	return records
}

func normalizeRecord(w backofficedomain.WireRecord) (domain.TransactionRecord, error) {
	kind, ok := recordKinds[w.Type]
	if !ok {
		return domain.TransactionRecord{}, errors.Errorf("tipo de registro desconhecido: %q", w.Type)
	}

	occurredAt, err := parseWireDate(w.Date)
	if err != nil {
		return domain.TransactionRecord{}, err
	}

	items := make([]domain.LineItem, 0, len(w.Items))
	for _, wi := range w.Items {
		items = append(items, normalizeLineItem(wi))
	}

	record := domain.TransactionRecord{
		ID:         w.ID,
		Kind:       kind,
		BranchID:   w.BranchID,
		OccurredAt: occurredAt,
		Amount:     resolveAmount(w, items),
		LineItems:  items,
	}

	if w.Customer != nil && w.Customer.Name != "" {
		record.Customer = &domain.Customer{
			Name:  w.Customer.Name,
			Phone: w.Customer.Phone,
		}
	}

	return record, nil
}

func normalizeLineItem(wi backofficedomain.WireLineItem) domain.LineItem {
	item := domain.LineItem{
		ProductID: wi.ProductID,
		ProductName: domain.LocalizedName{
			AR: wi.NameAR,
			EN: wi.NameEN,
		},
		DepartmentID: wi.DepartmentID,
		Quantity:     wi.Quantity,
		UnitPrice:    wi.UnitPrice,
	}

	// Endpoints antigos mandam só o total da linha; derivar o preço unitário
	// mantém as duas formas equivalentes depois da normalização
	if item.UnitPrice == 0 && wi.Price != 0 && wi.Quantity > 0 {
		item.UnitPrice = wi.Price / float64(wi.Quantity)
	}

	return item
}

// resolveAmount escolhe o valor do registro entre as variantes do fio:
// net_amount tem precedência, depois total, por fim a soma das linhas
func resolveAmount(w backofficedomain.WireRecord, items []domain.LineItem) float64 {
	if w.NetAmount != nil {
		return *w.NetAmount
	}
	if w.Total != nil {
		return *w.Total
	}

	sum := 0.0
	for _, item := range items {
		sum += item.LineAmount()
	}
	return sum
}

func parseWireDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("registro sem data")
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "data em formato inesperado: %q", value)
	}

	return t, nil
}
