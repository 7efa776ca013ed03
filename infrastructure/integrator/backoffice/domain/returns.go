package domain

type SubmitReturnItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// SubmitReturnParams é o corpo aceito pelo endpoint de mutação de devoluções.
// O ClientEventID é a chave de idempotência: o backoffice trata submissões
// repetidas com o mesmo id como no-op e devolve o resultado original.
type SubmitReturnParams struct {
	BranchID      string             `json:"branch_id"`
	Items         []SubmitReturnItem `json:"items"`
	Notes         string             `json:"notes,omitempty"`
	ClientEventID string             `json:"client_event_id"`
}

type SubmitReturnResponse struct {
	ID           string `json:"id"`
	ReturnNumber string `json:"return_number"`
	Status       string `json:"status"`
}
