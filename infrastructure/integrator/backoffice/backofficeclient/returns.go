package backofficeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
	backofficedomain "github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/domain"
)

// ErrDuplicateClientEvent indica que o backoffice já aceitou uma submissão
// com o mesmo client_event_id. Para o fluxo de devolução isso é sucesso, não
// erro: o corpo da resposta traz o resultado original.
var ErrDuplicateClientEvent = errors.New("client_event_id já processado pelo backoffice")

// SubmitReturn envia a solicitação de devolução. Em caso de conflito de
// idempotência (HTTP 409) devolve o resultado original junto com
// ErrDuplicateClientEvent para o chamador decidir.
func (c *BackofficeClient) SubmitReturn(ctx context.Context, params backofficedomain.SubmitReturnParams) (*backofficedomain.SubmitReturnResponse, error) {
	endpoint, err := url.Parse(c.config.Backoffice.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base do backoffice")
	}
	endpoint.Path = path.Join(endpoint.Path, "/returns")

	body, err := json.Marshal(params)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar a solicitação de devolução")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição de devolução")
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Backoffice.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição de devolução")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var result backofficedomain.SubmitReturnResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar a resposta de devolução")
		}
		return &result, nil

	case http.StatusConflict:
		var result backofficedomain.SubmitReturnResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar a resposta de conflito")
		}
		return &result, ErrDuplicateClientEvent

	default:
		return nil, errors.Errorf("submissão de devolução falhou com status: %s", resp.Status)
	}
}
