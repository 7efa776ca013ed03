package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/branch-insights-api/internal/analytics"
	"github.com/vfg2006/branch-insights-api/internal/domain"
	"github.com/vfg2006/branch-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/branch-insights-api/pkg/apiErrors"
	"github.com/vfg2006/branch-insights-api/pkg/log"
	"github.com/vfg2006/branch-insights-api/pkg/middleware"
	"github.com/vfg2006/branch-insights-api/pkg/utils"
)

func GetAggregates(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := parseFilters(w, r)
		if !ok {
			return
		}

		dimension, ok := parseDimension(w, r)
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"branch_id": filters.BranchID,
			"dimension": string(dimension),
		}).Debug("insights: buscando agregados")

		buckets, err := service.GetAggregates(r.Context(), filters, dimension)
		if err != nil {
			writeInsightError(w, logger, err)
			return
		}

		writeJSON(w, logger, buckets)
	})
}

func GetRanking(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := parseFilters(w, r)
		if !ok {
			return
		}

		dimension, ok := parseDimension(w, r)
		if !ok {
			return
		}

		n := 5
		if rawN := r.URL.Query().Get("n"); rawN != "" {
			parsed, err := strconv.Atoi(rawN)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro n inválido", nil)
				return
			}
			n = parsed
		}

		field := domain.SortByTotalAmount
		if rawField := r.URL.Query().Get("sort_by"); rawField != "" {
			switch domain.SortField(rawField) {
			case domain.SortByTotalAmount, domain.SortByCount, domain.SortByTotalQuantity, domain.SortByAverage:
				field = domain.SortField(rawField)
			default:
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Métrica de ordenação desconhecida", nil)
				return
			}
		}

		ranking, err := service.GetRanking(r.Context(), filters, dimension, n, field)
		if err != nil {
			writeInsightError(w, logger, err)
			return
		}

		writeJSON(w, logger, ranking)
	})
}

func GetTrend(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := parseFilters(w, r)
		if !ok {
			return
		}

		trend, err := service.GetTrend(r.Context(), filters)
		if err != nil {
			writeInsightError(w, logger, err)
			return
		}

		writeJSON(w, logger, trend)
	})
}

func GetRollupAggregates(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := parseFilters(w, r)
		if !ok {
			return
		}

		dimension, ok := parseDimension(w, r)
		if !ok {
			return
		}

		buckets, err := service.GetRollupAggregates(r.Context(), filters, dimension)
		if err != nil {
			writeInsightError(w, logger, err)
			return
		}

		writeJSON(w, logger, buckets)
	})
}

func ExportAggregates(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := parseFilters(w, r)
		if !ok {
			return
		}

		dimension, ok := parseDimension(w, r)
		if !ok {
			return
		}

		table, err := service.ExportAggregates(r.Context(), filters, dimension)
		if err != nil {
			writeInsightError(w, logger, err)
			return
		}

		writeJSON(w, logger, table)
	})
}

func GetBranchInventory(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		branchID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if branchID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da filial não fornecido", nil)
			return
		}

		if !branchAllowed(r, branchID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Acesso restrito à própria filial", nil)
			return
		}

		snapshot, err := service.GetInventorySnapshot(r.Context(), branchID)
		if err != nil {
			writeInsightError(w, logger, err)
			return
		}

		writeJSON(w, logger, snapshot)
	})
}

// parseFilters monta os filtros da consulta e aplica o escopo de filial da
// sessão: gerente e chef só enxergam a própria filial
func parseFilters(w http.ResponseWriter, r *http.Request) (domain.RecordFilters, bool) {
	var filters domain.RecordFilters

	startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro start_date inválido", nil)
		return filters, false
	}

	endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro end_date inválido", nil)
		return filters, false
	}

	if startDate.IsZero() || endDate.IsZero() {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros start_date e end_date são obrigatórios", nil)
		return filters, false
	}

	filters.StartDate = *startDate
	filters.EndDate = *endDate
	filters.BranchID = r.URL.Query().Get("branch_id")
	filters.DepartmentID = r.URL.Query().Get("department_id")
	filters.ProductSearch = r.URL.Query().Get("q")

	if claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
		session := claims.Session()
		if session.Role != domain.RoleAdmin {
			filters.BranchID = session.BranchID
		}
	}

	return filters, true
}

func parseDimension(w http.ResponseWriter, r *http.Request) (domain.DimensionKey, bool) {
	raw := r.URL.Query().Get("dimension")
	if raw == "" {
		return domain.DimensionBranch, true
	}

	switch domain.DimensionKey(raw) {
	case domain.DimensionBranch, domain.DimensionProduct, domain.DimensionDepartment, domain.DimensionCustomer:
		return domain.DimensionKey(raw), true
	default:
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Dimensão desconhecida", nil)
		return "", false
	}
}

func branchAllowed(r *http.Request, branchID string) bool {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		return false
	}

	session := claims.Session()
	return session.Role == domain.RoleAdmin || session.BranchID == branchID
}

func writeInsightError(w http.ResponseWriter, logger log.Logger, err error) {
	logger.WithError(err).Error("insights: erro ao processar a consulta")

	if errors.Is(err, analytics.ErrInvalidDateRange) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
}

func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("erro ao codificar a resposta")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
