package returning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/branch-insights-api/internal/domain"
)

// Erros do fluxo de devolução
var (
	ErrDraftNotFound    = errors.New("rascunho de devolução não encontrado")
	ErrEmptyDraft       = errors.New("rascunho sem itens")
	ErrBranchRequired   = errors.New("é necessário informar a filial")
	ErrAlreadyConfirmed = errors.New("rascunho já confirmado")

	// Erros de validação por linha
	ErrProductNotFound    = errors.New("produto não encontrado na foto de estoque")
	ErrQuantityOutOfRange = errors.New("quantidade fora do intervalo permitido")
	ErrMissingReason      = errors.New("motivo da devolução é obrigatório")

	// Erros de infraestrutura
	ErrInventoryUnavailable = errors.New("não foi possível obter a foto de estoque")
	ErrSubmissionFailed     = errors.New("erro ao submeter a devolução ao backoffice")
)

// Códigos por campo expostos na resposta da API
const (
	CodeProductNotFound    = "PRODUCT_NOT_FOUND"
	CodeQuantityOutOfRange = "QUANTITY_OUT_OF_RANGE"
	CodeMissingReason      = "MISSING_REASON"
)

// ValidationError agrega os problemas de TODAS as linhas do rascunho: a
// validação coleta tudo antes de reportar, nunca para no primeiro erro, para
// a interface mostrar todos os problemas de uma vez
type ValidationError struct {
	Fields []domain.ReturnFieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, fmt.Sprintf("linha %d (%s): %s", f.Line, f.Field, f.Message))
	}
	return "validação do rascunho falhou: " + strings.Join(messages, "; ")
}

// IsValidationError verifica se o erro é de validação de rascunho
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
