package domain

import "time"

// DimensionKey identifica o eixo de agrupamento de uma agregação
type DimensionKey string

const (
	DimensionBranch     DimensionKey = "branch"
	DimensionProduct    DimensionKey = "product"
	DimensionDepartment DimensionKey = "department"
	DimensionCustomer   DimensionKey = "customer"
)

// UnknownDimensionValue é a chave sentinela para registros sem o valor da
// dimensão (referência órfã de produto, cliente sem cadastro). Agrupar em vez
// de descartar mantém a invariante de conservação: a soma dos buckets sempre
// bate com a soma dos registros.
const UnknownDimensionValue = "unknown"

// AggregateBucket é uma linha agregada para um único valor de dimensão.
// Derivado e recalculado a cada chamada de agregação; nunca mutado no lugar.
type AggregateBucket struct {
	Key           string  `json:"key"`
	Count         int     `json:"count"`
	TotalAmount   float64 `json:"total_amount"`
	TotalQuantity int     `json:"total_quantity"`
	Average       float64 `json:"average"`
}

// SortField é a métrica usada para ordenar buckets no ranking
type SortField string

const (
	SortByTotalAmount   SortField = "total_amount"
	SortByCount         SortField = "count"
	SortByTotalQuantity SortField = "total_quantity"
	SortByAverage       SortField = "average"
)

// RecordFilters são os parâmetros de consulta dos endpoints de leitura
type RecordFilters struct {
	BranchID      string    `json:"branch_id,omitempty"`
	DepartmentID  string    `json:"department_id,omitempty"`
	ProductSearch string    `json:"product_search,omitempty"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
}

// RankingResponse carrega os dois recortes calculados sobre o mesmo conjunto
// de buckets, garantindo consistência entre top e least
type RankingResponse struct {
	Top         []AggregateBucket `json:"top"`
	Least       []AggregateBucket `json:"least"`
	GeneratedAt time.Time         `json:"generated_at"`
}
