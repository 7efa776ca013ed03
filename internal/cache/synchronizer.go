package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Status é o estado de uma entrada de cache
type Status string

const (
	StatusFresh    Status = "fresh"
	StatusStale    Status = "stale"
	StatusFetching Status = "fetching"
	StatusError    Status = "error"
)

// Fetcher busca o dado de uma entrada quando o cache não pode servir sozinho
type Fetcher func(ctx context.Context) (any, error)

// call é uma busca em andamento compartilhada entre leitores concorrentes
type call struct {
	done       chan struct{}
	data       any
	err        error
	generation uint64
}

type entry struct {
	data       any
	hasData    bool
	fetchedAt  time.Time
	ttl        time.Duration
	status     Status
	generation uint64
	inflight   *call
}

// Synchronizer mantém os resultados de consulta chaveados por fingerprint.
// Propriedade central: no máximo UMA busca em voo por fingerprint, leituras
// concorrentes da mesma chave compartilham a requisição em andamento. A
// invalidação é uma transição monotônica Fresh→Stale, nunca revertida sem uma
// revalidação bem sucedida, então aplicá-la duas vezes é inofensivo.
type Synchronizer struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewSynchronizer() *Synchronizer {
	return &Synchronizer{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Read devolve o dado da entrada. Se a entrada está Fresh dentro do TTL o
// retorno é imediato, sem rede. Caso contrário dispara (ou adere a) uma
// busca. Em falha de busca os dados anteriores continuam sendo servidos
// junto com o erro, para a apresentação decidir entre exibir e sinalizar.
func (s *Synchronizer) Read(ctx context.Context, fingerprint string, ttl time.Duration, fetch Fetcher) (any, error) {
	s.mu.Lock()

	e, ok := s.entries[fingerprint]
	if !ok {
		e = &entry{status: StatusStale}
		s.entries[fingerprint] = e
	}

	if e.status == StatusFresh && e.hasData && s.now().Sub(e.fetchedAt) < e.ttl {
		data := e.data
		s.mu.Unlock()
		return data, nil
	}

	if e.inflight != nil {
		c := e.inflight
		s.mu.Unlock()
		return s.await(ctx, e, c)
	}

	// Inicia uma nova busca etiquetada com a geração da entrada; um resultado
	// de geração superada é descartado na chegada, impedindo que dados
	// atrasados sobrescrevam estado mais novo
	e.generation++
	c := &call{done: make(chan struct{}), generation: e.generation}
	e.inflight = c
	e.status = StatusFetching
	e.ttl = ttl
	s.mu.Unlock()

	c.data, c.err = fetch(ctx)
	close(c.done)

	s.mu.Lock()
	if e.inflight == c {
		e.inflight = nil
	}

	if c.err != nil {
		e.status = StatusError
		if e.hasData {
			data := e.data
			s.mu.Unlock()
			return data, c.err
		}
		s.mu.Unlock()
		return nil, c.err
	}

	if c.generation == e.generation {
		e.data = c.data
		e.hasData = true
		e.fetchedAt = s.now()
		e.status = StatusFresh
	} else {
		logrus.WithField("fingerprint", fingerprint).Debug("Resultado de geração superada descartado")
	}
	s.mu.Unlock()

	return c.data, nil
}

// await adere a uma busca em andamento disparada por outro leitor
func (s *Synchronizer) await(ctx context.Context, e *entry, c *call) (any, error) {
	select {
	case <-c.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if c.err != nil {
		s.mu.Lock()
		if e.hasData {
			data := e.data
			s.mu.Unlock()
			return data, c.err
		}
		s.mu.Unlock()
		return nil, c.err
	}

	return c.data, nil
}

// Invalidate marca como Stale todas as entradas cujo fingerprint casa com o
// predicado e devolve quantas foram atingidas. Nunca apaga dados: o dado
// antigo continua visível até a revalidação resolver, evitando a tela piscar
// para o estado vazio.
func (s *Synchronizer) Invalidate(matcher func(fingerprint string) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	invalidated := 0
	for fingerprint, e := range s.entries {
		if !matcher(fingerprint) {
			continue
		}
		// A geração avança também para buscas em voo: o resultado delas
		// chegará superado e será descartado
		e.generation++
		e.status = StatusStale
		invalidated++
	}

	return invalidated
}

// ExpireFresh marca como Stale as entradas Fresh com TTL vencido; usada pelo
// janitor como retaguarda do modelo de entrega best-effort do canal realtime
func (s *Synchronizer) ExpireFresh() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	now := s.now()
	for _, e := range s.entries {
		if e.status == StatusFresh && now.Sub(e.fetchedAt) >= e.ttl {
			e.status = StatusStale
			expired++
		}
	}

	return expired
}

// EntryStatus devolve o estado atual de uma entrada, para observabilidade e
// testes
func (s *Synchronizer) EntryStatus(fingerprint string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[fingerprint]
	if !ok {
		return "", false
	}
	return e.status, true
}

// Len devolve a quantidade de entradas mantidas
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// ReadAs tipa o resultado de Read para o chamador
func ReadAs[T any](ctx context.Context, s *Synchronizer, fingerprint string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	data, err := s.Read(ctx, fingerprint, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})

	var zero T
	if data == nil {
		return zero, err
	}

	typed, ok := data.(T)
	if !ok {
		return zero, err
	}

	return typed, err
}
