package returning

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/backofficeclient"
	backofficedomain "github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/domain"
	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/mocks"
	"github.com/vfg2006/branch-insights-api/internal/cache"
	"github.com/vfg2006/branch-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type stubInventory struct {
	snapshot *domain.InventorySnapshot
	err      error
}

func (s stubInventory) GetInventorySnapshot(_ context.Context, _ string) (*domain.InventorySnapshot, error) {
	return s.snapshot, s.err
}

type recordingNotifier struct {
	confirmed []domain.ReturnResult
	rejected  []string
}

func (n *recordingNotifier) ReturnConfirmed(result domain.ReturnResult) {
	n.confirmed = append(n.confirmed, result)
}

func (n *recordingNotifier) ReturnRejected(draftID string, _ error) {
	n.rejected = append(n.rejected, draftID)
}

func snapshotWithStock() *domain.InventorySnapshot {
	return &domain.InventorySnapshot{
		BranchID: "B1",
		Items: []domain.InventoryItem{
			{ProductID: "P-A", AvailableQuantity: 5},
			{ProductID: "P-B", AvailableQuantity: 2},
		},
	}
}

func validDraft() *domain.ReturnDraft {
	return &domain.ReturnDraft{
		BranchID: "B1",
		Items: []domain.ReturnItem{
			{ProductID: "P-A", Quantity: 2, Reason: "damaged"},
		},
	}
}

func TestSaveDraft(t *testing.T) {
	tests := []struct {
		name     string
		draft    *domain.ReturnDraft
		validate func(t *testing.T, saved *domain.ReturnDraft, err error)
	}{
		{
			name:  "Sem filial o rascunho é recusado",
			draft: &domain.ReturnDraft{Items: []domain.ReturnItem{{ProductID: "P-A", Quantity: 1, Reason: "damaged"}}},
			validate: func(t *testing.T, saved *domain.ReturnDraft, err error) {
				assert.ErrorIs(t, err, ErrBranchRequired)
			},
		},
		{
			name:  "Sem itens o rascunho é recusado",
			draft: &domain.ReturnDraft{BranchID: "B1"},
			validate: func(t *testing.T, saved *domain.ReturnDraft, err error) {
				assert.ErrorIs(t, err, ErrEmptyDraft)
			},
		},
		{
			name:  "Rascunho válido recebe id e entra no estado draft",
			draft: validDraft(),
			validate: func(t *testing.T, saved *domain.ReturnDraft, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, saved.ID)
				assert.Equal(t, domain.ReturnStateDraft, saved.State)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(nil, stubInventory{}, cache.NewSynchronizer(), nil)

			saved, err := service.SaveDraft(tt.draft)
			tt.validate(t, saved, err)
		})
	}
}

func TestSubmitConfirmsAndInvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	integrator := mocks.NewMockIntegrator(ctrl)
	integrator.EXPECT().SubmitReturn(ctx, gomock.Any()).Return(&backofficedomain.SubmitReturnResponse{
		ID:           "RET-1",
		ReturnNumber: "0042",
		Status:       "accepted",
	}, nil)

	synchronizer := cache.NewSynchronizer()
	notifier := &recordingNotifier{}
	service := NewService(integrator, stubInventory{snapshot: snapshotWithStock()}, synchronizer, notifier)

	// Entradas pré-existentes da filial que precisam ficar obsoletas após a
	// confirmação
	_, _ = synchronizer.Read(ctx, "returns:B1?{}", time.Minute, func(ctx context.Context) (any, error) { return "x", nil })
	_, _ = synchronizer.Read(ctx, "inventory:B1", time.Minute, func(ctx context.Context) (any, error) { return "x", nil })

	draft, err := service.SaveDraft(validDraft())
	require.NoError(t, err)

	result, err := service.Submit(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "RET-1", result.ID)
	assert.Equal(t, "0042", result.ReturnNumber)

	// O rascunho confirmado sai do armazenamento
	_, err = service.GetDraft(draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	returnsStatus, _ := synchronizer.EntryStatus("returns:B1?{}")
	inventoryStatus, _ := synchronizer.EntryStatus("inventory:B1")
	assert.Equal(t, cache.StatusStale, returnsStatus)
	assert.Equal(t, cache.StatusStale, inventoryStatus)

	require.Len(t, notifier.confirmed, 1)
	assert.Equal(t, "RET-1", notifier.confirmed[0].ID)
}

func TestSubmitValidationCollectsAllProblems(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	// Nenhuma expectativa: a submissão não pode chegar no backoffice
	integrator := mocks.NewMockIntegrator(ctrl)

	notifier := &recordingNotifier{}
	service := NewService(integrator, stubInventory{snapshot: snapshotWithStock()}, cache.NewSynchronizer(), notifier)

	draft, err := service.SaveDraft(&domain.ReturnDraft{
		BranchID: "B1",
		Items: []domain.ReturnItem{
			{ProductID: "P-X", Quantity: 1, Reason: "damaged"},
			{ProductID: "P-B", Quantity: 3},
		},
	})
	require.NoError(t, err)

	_, err = service.Submit(ctx, draft.ID)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 3)

	assert.Equal(t, CodeProductNotFound, validationErr.Fields[0].Code)
	assert.Equal(t, 1, validationErr.Fields[0].Line)
	assert.Equal(t, CodeQuantityOutOfRange, validationErr.Fields[1].Code)
	assert.Equal(t, CodeMissingReason, validationErr.Fields[2].Code)
	assert.Equal(t, 2, validationErr.Fields[1].Line)

	stored, err := service.GetDraft(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStateRejected, stored.State)
	assert.Equal(t, []string{draft.ID}, notifier.rejected)
}

func TestSubmitQuantityAtStockLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	integrator := mocks.NewMockIntegrator(ctrl)
	integrator.EXPECT().SubmitReturn(ctx, gomock.Any()).Return(&backofficedomain.SubmitReturnResponse{ID: "RET-1"}, nil)

	service := NewService(integrator, stubInventory{snapshot: snapshotWithStock()}, cache.NewSynchronizer(), nil)

	// Devolver exatamente o disponível é permitido
	draft, err := service.SaveDraft(&domain.ReturnDraft{
		BranchID: "B1",
		Items:    []domain.ReturnItem{{ProductID: "P-A", Quantity: 5, Reason: "expired"}},
	})
	require.NoError(t, err)

	_, err = service.Submit(ctx, draft.ID)
	assert.NoError(t, err)

	// Uma unidade acima do disponível é recusado
	over, err := service.SaveDraft(&domain.ReturnDraft{
		BranchID: "B1",
		Items:    []domain.ReturnItem{{ProductID: "P-A", Quantity: 6, Reason: "expired"}},
	})
	require.NoError(t, err)

	_, err = service.Submit(ctx, over.ID)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, CodeQuantityOutOfRange, validationErr.Fields[0].Code)
}

func TestSubmitReusesClientEventIDOnRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	var submitted []string
	integrator := mocks.NewMockIntegrator(ctrl)
	integrator.EXPECT().SubmitReturn(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params backofficedomain.SubmitReturnParams) (*backofficedomain.SubmitReturnResponse, error) {
			submitted = append(submitted, params.ClientEventID)
			return nil, errors.New("timeout")
		},
	)
	integrator.EXPECT().SubmitReturn(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params backofficedomain.SubmitReturnParams) (*backofficedomain.SubmitReturnResponse, error) {
			submitted = append(submitted, params.ClientEventID)
			return &backofficedomain.SubmitReturnResponse{ID: "RET-1"}, nil
		},
	)

	service := NewService(integrator, stubInventory{snapshot: snapshotWithStock()}, cache.NewSynchronizer(), nil)

	draft, err := service.SaveDraft(validDraft())
	require.NoError(t, err)

	// Primeira tentativa falha: o rascunho sobrevive para correção e reenvio
	_, err = service.Submit(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrSubmissionFailed)

	stored, err := service.GetDraft(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStateRejected, stored.State)

	result, err := service.Submit(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "RET-1", result.ID)

	// O reenvio reutiliza o MESMO client_event_id da primeira tentativa
	require.Len(t, submitted, 2)
	assert.NotEmpty(t, submitted[0])
	assert.Equal(t, submitted[0], submitted[1])
}

func TestSubmitDuplicateClientEventIsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	integrator := mocks.NewMockIntegrator(ctrl)
	integrator.EXPECT().SubmitReturn(ctx, gomock.Any()).Return(&backofficedomain.SubmitReturnResponse{
		ID:     "RET-1",
		Status: "accepted",
	}, backofficeclient.ErrDuplicateClientEvent)

	notifier := &recordingNotifier{}
	service := NewService(integrator, stubInventory{snapshot: snapshotWithStock()}, cache.NewSynchronizer(), notifier)

	draft, err := service.SaveDraft(validDraft())
	require.NoError(t, err)

	// O conflito de idempotência devolve o resultado da primeira submissão e
	// conta como sucesso
	result, err := service.Submit(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "RET-1", result.ID)
	assert.Len(t, notifier.confirmed, 1)
	assert.Empty(t, notifier.rejected)
}

func TestSubmitInventoryUnavailable(t *testing.T) {
	ctx := context.Background()

	service := NewService(nil, stubInventory{err: errors.New("backoffice fora do ar")}, cache.NewSynchronizer(), nil)

	draft, err := service.SaveDraft(validDraft())
	require.NoError(t, err)

	_, err = service.Submit(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrInventoryUnavailable)

	// Sem foto de estoque o rascunho volta para draft, pronto para nova
	// tentativa
	stored, err := service.GetDraft(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStateDraft, stored.State)
}

func TestSubmitUnknownDraft(t *testing.T) {
	service := NewService(nil, stubInventory{}, cache.NewSynchronizer(), nil)

	_, err := service.Submit(context.Background(), "nao-existe")

	assert.ErrorIs(t, err, ErrDraftNotFound)
}
