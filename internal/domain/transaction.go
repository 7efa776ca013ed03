// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// RecordKind identifica o tipo de registro transacional vindo do backoffice
type RecordKind string

const (
	RecordKindSale   RecordKind = "sale"
	RecordKindOrder  RecordKind = "order"
	RecordKindReturn RecordKind = "return"
)

// LocalizedName guarda o par de nomes localizados de um produto.
// A resolução do nome de exibição acontece na camada de apresentação,
// nunca dentro dos buckets de agregação.
type LocalizedName struct {
	AR string `json:"name_ar"`
	EN string `json:"name_en"`
}

// Display resolve o nome de exibição para o idioma solicitado
func (n LocalizedName) Display(lang string) string {
	if lang == "ar" && n.AR != "" {
		return n.AR
	}
	if n.EN != "" {
		return n.EN
	}
	return n.AR
}

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type LineItem struct {
	ProductID    string        `json:"product_id"`
	ProductName  LocalizedName `json:"product_name"`
	DepartmentID string        `json:"department_id,omitempty"`
	Quantity     int           `json:"quantity"`
	UnitPrice    float64       `json:"unit_price"`
}

// LineAmount é o valor monetário atribuído à linha
func (l LineItem) LineAmount() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// TransactionRecord é o registro canônico produzido pelo normalizador.
// Imutável depois de normalizado: as agregações sempre produzem
// estruturas derivadas novas, nunca alteram o registro.
type TransactionRecord struct {
	ID         string     `json:"id"`
	Kind       RecordKind `json:"kind"`
	BranchID   string     `json:"branch_id"`
	OccurredAt time.Time  `json:"occurred_at"`
	Amount     float64    `json:"amount"`
	LineItems  []LineItem `json:"line_items"`
	Customer   *Customer  `json:"customer,omitempty"`
}

// TotalQuantity soma as quantidades de todas as linhas do registro
func (r TransactionRecord) TotalQuantity() int {
	total := 0
	for _, item := range r.LineItems {
		total += item.Quantity
	}
	return total
}
