package backofficeclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/domain"
)

// GetRecords busca os registros transacionais brutos do período no backoffice
func (c *BackofficeClient) GetRecords(ctx context.Context, params domain.GetRecordsParams) ([]domain.WireRecord, error) {
	endpoint, err := url.Parse(c.config.Backoffice.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base do backoffice")
	}
	endpoint.Path = path.Join(endpoint.Path, "/records")

	query := endpoint.Query()
	query.Set("start_date", params.StartDate)
	query.Set("end_date", params.EndDate)
	if params.BranchID != "" {
		query.Set("branch_id", params.BranchID)
	}
	if params.DepartmentID != "" {
		query.Set("department_id", params.DepartmentID)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição de registros")
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Backoffice.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição de registros")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("requisição de registros falhou com status: %s", resp.Status)
	}

	var records []domain.WireRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta de registros")
	}

	return records, nil
}

// GetInventory busca a foto de estoque atual de uma filial
func (c *BackofficeClient) GetInventory(ctx context.Context, branchID string) ([]domain.WireInventoryItem, error) {
	endpoint, err := url.Parse(c.config.Backoffice.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base do backoffice")
	}
	endpoint.Path = path.Join(endpoint.Path, "/branches", branchID, "inventory")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição de estoque")
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Backoffice.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição de estoque")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("requisição de estoque falhou com status: %s", resp.Status)
	}

	var items []domain.WireInventoryItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta de estoque")
	}

	return items, nil
}
