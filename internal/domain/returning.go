package domain

// ReturnState é o estado do fluxo de criação de uma solicitação de devolução
type ReturnState string

const (
	ReturnStateDraft      ReturnState = "draft"
	ReturnStateValidating ReturnState = "validating"
	ReturnStateSubmitting ReturnState = "submitting"
	ReturnStateConfirmed  ReturnState = "confirmed"
	ReturnStateRejected   ReturnState = "rejected"
)

type ReturnItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// ReturnDraft é o rascunho de uma solicitação de devolução. O ClientEventID
// é gerado uma única vez na primeira submissão e reutilizado em todas as
// tentativas seguintes: o mesmo rascunho nunca pode produzir duas devoluções
// aceitas pelo servidor.
type ReturnDraft struct {
	ID            string       `json:"id"`
	BranchID      string       `json:"branch_id"`
	Items         []ReturnItem `json:"items"`
	Notes         string       `json:"notes,omitempty"`
	ClientEventID string       `json:"client_event_id,omitempty"`
	State         ReturnState  `json:"state"`
}

type ReturnResult struct {
	ID           string `json:"id"`
	ReturnNumber string `json:"return_number"`
	Status       string `json:"status"`
}

// ReturnFieldError aponta um problema de validação em uma linha do rascunho
type ReturnFieldError struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
