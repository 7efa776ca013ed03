package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/branch-insights-api/internal/domain"
	"github.com/vfg2006/branch-insights-api/internal/usecases/returning"
	"github.com/vfg2006/branch-insights-api/pkg/apiErrors"
	"github.com/vfg2006/branch-insights-api/pkg/log"
	"github.com/vfg2006/branch-insights-api/pkg/middleware"
)

type ReturnRequest struct {
	BranchID string              `json:"branch_id"`
	Notes    string              `json:"notes,omitempty"`
	Items    []domain.ReturnItem `json:"items"`
}

// CreateReturn registra o rascunho e já o submete na mesma requisição. O
// caminho em dois passos (salvar e submeter depois) usa as rotas de rascunho.
func CreateReturn(service returning.Workflow) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		draft, ok := decodeReturnDraft(w, r)
		if !ok {
			return
		}

		saved, err := service.SaveDraft(draft)
		if err != nil {
			writeReturnError(w, logger, err)
			return
		}

		result, err := service.Submit(r.Context(), saved.ID)
		if err != nil {
			writeReturnError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"branch_id":     saved.BranchID,
			"return_number": result.ReturnNumber,
		}).Info("devolução confirmada")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(result)
	})
}

func SaveReturnDraft(service returning.Workflow) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		draft, ok := decodeReturnDraft(w, r)
		if !ok {
			return
		}

		saved, err := service.SaveDraft(draft)
		if err != nil {
			writeReturnError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(saved)
	})
}

func GetReturnDraft(service returning.Workflow) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		draftID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		draft, err := service.GetDraft(draftID)
		if err != nil {
			writeReturnError(w, logger, err)
			return
		}

		if !branchAllowed(r, draft.BranchID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Acesso restrito à própria filial", nil)
			return
		}

		writeJSON(w, logger, draft)
	})
}

func SubmitReturnDraft(service returning.Workflow) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		draftID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := service.Submit(r.Context(), draftID)
		if err != nil {
			writeReturnError(w, logger, err)
			return
		}

		writeJSON(w, logger, result)
	})
}

func decodeReturnDraft(w http.ResponseWriter, r *http.Request) (*domain.ReturnDraft, bool) {
	var req ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return nil, false
	}

	// Fora do perfil admin a filial vem sempre da sessão
	if claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
		session := claims.Session()
		if session.Role != domain.RoleAdmin {
			req.BranchID = session.BranchID
		}
	}

	return &domain.ReturnDraft{
		BranchID: req.BranchID,
		Notes:    req.Notes,
		Items:    req.Items,
	}, true
}

func writeReturnError(w http.ResponseWriter, logger log.Logger, err error) {
	var validationErr *returning.ValidationError
	if errors.As(err, &validationErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Rascunho com itens inválidos", validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, returning.ErrDraftNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, err.Error(), nil)

	case errors.Is(err, returning.ErrEmptyDraft),
		errors.Is(err, returning.ErrBranchRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, returning.ErrAlreadyConfirmed):
		apiErrors.WriteError(w, apiErrors.ErrAlreadyExists, err.Error(), nil)

	case errors.Is(err, returning.ErrInventoryUnavailable),
		errors.Is(err, returning.ErrSubmissionFailed):
		logger.WithError(err).Error("devolução: falha de comunicação com o backoffice")
		apiErrors.WriteError(w, apiErrors.ErrCommunication, err.Error(), nil)

	default:
		logger.WithError(err).Error("devolução: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
