// Package domain contém as estruturas de fio trocadas com o backoffice
package domain

// WireLineItem é a linha de item como chega do backoffice. Endpoints antigos
// mandam apenas o total da linha em Price; os novos mandam quantity e
// unit_price separados.
type WireLineItem struct {
	ProductID    string  `json:"product_id"`
	NameAR       string  `json:"name_ar,omitempty"`
	NameEN       string  `json:"name_en,omitempty"`
	DepartmentID string  `json:"department_id,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price,omitempty"`
	Price        float64 `json:"price,omitempty"`
}

type WireCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// WireRecord é o registro transacional heterogêneo (venda, pedido ou
// devolução) antes da normalização. O valor total pode vir em net_amount,
// em total ou apenas somado nas linhas, dependendo do endpoint.
type WireRecord struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	BranchID  string         `json:"branch_id"`
	Date      string         `json:"date"`
	Total     *float64       `json:"total,omitempty"`
	NetAmount *float64       `json:"net_amount,omitempty"`
	Items     []WireLineItem `json:"items"`
	Customer  *WireCustomer  `json:"customer,omitempty"`
}

// GetRecordsParams são os parâmetros aceitos pelo endpoint de leitura de
// registros do backoffice
type GetRecordsParams struct {
	BranchID     string
	DepartmentID string
	StartDate    string // Formato yyyy-mm-dd
	EndDate      string // Formato yyyy-mm-dd
}
