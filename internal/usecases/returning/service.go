package returning

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice"
	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/backofficeclient"
	backofficedomain "github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/domain"
	"github.com/vfg2006/branch-insights-api/internal/cache"
	"github.com/vfg2006/branch-insights-api/internal/domain"
	"github.com/vfg2006/branch-insights-api/pkg/utils"
)

// InventoryReader é a fatia do serviço de insights que o fluxo de devolução
// usa para validar contra a MESMA foto de estoque cacheada que ele invalida
// depois de confirmar
type InventoryReader interface {
	GetInventorySnapshot(ctx context.Context, branchID string) (*domain.InventorySnapshot, error)
}

// Notifier é o observador do resultado: o workflow emite o valor, quem
// apresenta decide o efeito (toast, badge, nada)
type Notifier interface {
	ReturnConfirmed(result domain.ReturnResult)
	ReturnRejected(draftID string, reason error)
}

// NopNotifier ignora os resultados
type NopNotifier struct{}

func (NopNotifier) ReturnConfirmed(domain.ReturnResult) {}
func (NopNotifier) ReturnRejected(string, error)        {}

// Workflow gerencia o ciclo de vida de criação de solicitações de devolução:
// Draft → Validating → Submitting → Confirmed | Rejected
type Workflow interface {
	SaveDraft(draft *domain.ReturnDraft) (*domain.ReturnDraft, error)
	Submit(ctx context.Context, draftID string) (*domain.ReturnResult, error)
	GetDraft(draftID string) (*domain.ReturnDraft, error)
}

type Service struct {
	backoffice backoffice.Integrator
	inventory  InventoryReader
	cache      *cache.Synchronizer
	notifier   Notifier

	mu     sync.Mutex
	drafts map[string]*domain.ReturnDraft
}

func NewService(
	integrator backoffice.Integrator,
	inventory InventoryReader,
	synchronizer *cache.Synchronizer,
	notifier Notifier,
) Workflow {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Service{
		backoffice: integrator,
		inventory:  inventory,
		cache:      synchronizer,
		notifier:   notifier,
		drafts:     make(map[string]*domain.ReturnDraft),
	}
}

// SaveDraft registra (ou substitui) um rascunho e o coloca no estado Draft
func (s *Service) SaveDraft(draft *domain.ReturnDraft) (*domain.ReturnDraft, error) {
	if draft.BranchID == "" {
		return nil, ErrBranchRequired
	}
	if len(draft.Items) == 0 {
		return nil, ErrEmptyDraft
	}

	if draft.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		draft.ID = id
	}

	draft.State = domain.ReturnStateDraft

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	return draft, nil
}

func (s *Service) GetDraft(draftID string) (*domain.ReturnDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// Submit conduz o rascunho pelo fluxo completo. Em qualquer falha o rascunho
// é preservado, nunca limpo, para o usuário corrigir e reenviar. O reenvio
// reutiliza o MESMO clientEventId, garantindo no máximo uma criação efetiva
// mesmo com retry depois de timeout.
func (s *Service) Submit(ctx context.Context, draftID string) (*domain.ReturnResult, error) {
	s.mu.Lock()
	draft, ok := s.drafts[draftID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrDraftNotFound
	}
	if draft.State == domain.ReturnStateConfirmed {
		s.mu.Unlock()
		return nil, ErrAlreadyConfirmed
	}
	draft.State = domain.ReturnStateValidating
	s.mu.Unlock()

	snapshot, err := s.inventory.GetInventorySnapshot(ctx, draft.BranchID)
	if err != nil && snapshot == nil {
		s.setState(draft, domain.ReturnStateDraft)
		logrus.WithError(err).WithField("branch_id", draft.BranchID).Error("Foto de estoque indisponível para validação")
		return nil, ErrInventoryUnavailable
	}

	if validationErr := validateDraft(draft, snapshot); validationErr != nil {
		s.setState(draft, domain.ReturnStateRejected)
		s.notifier.ReturnRejected(draft.ID, validationErr)
		return nil, validationErr
	}

	// O clientEventId é gerado UMA única vez por rascunho; tentativas
	// seguintes reaproveitam o mesmo valor
	s.mu.Lock()
	if draft.ClientEventID == "" {
		draft.ClientEventID = uuid.New().String()
	}
	draft.State = domain.ReturnStateSubmitting
	clientEventID := draft.ClientEventID
	s.mu.Unlock()

	params := backofficedomain.SubmitReturnParams{
		BranchID:      draft.BranchID,
		Notes:         draft.Notes,
		ClientEventID: clientEventID,
		Items:         make([]backofficedomain.SubmitReturnItem, 0, len(draft.Items)),
	}
	for _, item := range draft.Items {
		params.Items = append(params.Items, backofficedomain.SubmitReturnItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Reason:    item.Reason,
		})
	}

	response, err := s.backoffice.SubmitReturn(ctx, params)

	// Conflito de idempotência é sucesso: o backoffice devolveu o resultado
	// da primeira submissão
	if errors.Is(err, backofficeclient.ErrDuplicateClientEvent) {
		logrus.WithFields(logrus.Fields{
			"draft_id":        draft.ID,
			"client_event_id": clientEventID,
		}).Info("Submissão duplicada tratada como sucesso")
		err = nil
	}

	if err != nil {
		s.setState(draft, domain.ReturnStateRejected)
		s.notifier.ReturnRejected(draft.ID, err)
		logrus.WithError(err).WithField("draft_id", draft.ID).Error("Submissão de devolução falhou")
		return nil, ErrSubmissionFailed
	}

	result := domain.ReturnResult{
		ID:           response.ID,
		ReturnNumber: response.ReturnNumber,
		Status:       response.Status,
	}

	s.confirm(draft)

	// Invalidação imediata: as próximas leituras refletem o novo estado sem
	// esperar o push do canal realtime
	s.cache.Invalidate(cache.PrefixMatcher("returns:" + draft.BranchID))
	s.cache.Invalidate(cache.PrefixMatcher("inventory:" + draft.BranchID))

	s.notifier.ReturnConfirmed(result)

	return &result, nil
}

// validateDraft valida todas as linhas antes de reportar, coletando todos os
// problemas em vez de parar no primeiro
func validateDraft(draft *domain.ReturnDraft, snapshot *domain.InventorySnapshot) error {
	fields := make([]domain.ReturnFieldError, 0)

	for i, item := range draft.Items {
		line := i + 1

		available, found := snapshot.Find(item.ProductID)
		if !found {
			fields = append(fields, domain.ReturnFieldError{
				Line:    line,
				Field:   "product_id",
				Code:    CodeProductNotFound,
				Message: ErrProductNotFound.Error(),
			})
		} else if item.Quantity <= 0 || item.Quantity > available.AvailableQuantity {
			fields = append(fields, domain.ReturnFieldError{
				Line:    line,
				Field:   "quantity",
				Code:    CodeQuantityOutOfRange,
				Message: ErrQuantityOutOfRange.Error(),
			})
		}

		if item.Reason == "" {
			fields = append(fields, domain.ReturnFieldError{
				Line:    line,
				Field:   "reason",
				Code:    CodeMissingReason,
				Message: ErrMissingReason.Error(),
			})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) setState(draft *domain.ReturnDraft, state domain.ReturnState) {
	s.mu.Lock()
	draft.State = state
	s.mu.Unlock()
}

func (s *Service) confirm(draft *domain.ReturnDraft) {
	s.mu.Lock()
	draft.State = domain.ReturnStateConfirmed
	delete(s.drafts, draft.ID)
	s.mu.Unlock()
}
