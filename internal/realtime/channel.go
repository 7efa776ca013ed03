// Package realtime mantém a assinatura do canal de push do backoffice e
// traduz eventos recebidos em invalidações de cache.
package realtime

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

// Event é um evento tipado entregue pelo canal
type Event struct {
	Name    string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

// frame é o quadro JSON trocado com o servidor de push
type frame struct {
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	joinEvent   = "join"
	joinedEvent = "joined"
)

// Invalidator é o pedaço do sincronizador de cache que o canal usa
type Invalidator interface {
	Invalidate(matcher func(fingerprint string) bool) int
}

// Notifier é o observador de apresentação: o canal emite o fato, quem exibe
// decide como. Implementações não devem bloquear.
type Notifier interface {
	Notify(event string, payload map[string]any)
}

// NopNotifier descarta notificações
type NopNotifier struct{}

func (NopNotifier) Notify(string, map[string]any) {}

type subscription struct {
	id      int
	handler func(Event)
}

// Channel é a assinatura de escopo único no canal de push. Conecta, entra no
// escopo (role + filial + usuário) e repassa eventos para a tabela de
// invalidação e para os assinantes. Eventos recebidos antes da confirmação do
// join são descartados: entrega at-most-once, com o TTL do cache como
// retaguarda de consistência.
type Channel struct {
	url      string
	scope    domain.SessionContext
	cache    Invalidator
	notifier Notifier

	mu            sync.Mutex
	conn          *websocket.Conn
	joined        bool
	nextID        int
	subscriptions map[string][]subscription
	matchers      map[string]func(Event) func(string) bool
}

func NewChannel(url string, scope domain.SessionContext, cache Invalidator, notifier Notifier) *Channel {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	c := &Channel{
		url:           url,
		scope:         scope,
		cache:         cache,
		notifier:      notifier,
		subscriptions: make(map[string][]subscription),
	}
	c.matchers = defaultMatchers()

	return c
}

// Connect abre a conexão, envia o join do escopo e processa eventos até o
// contexto ser cancelado ou a conexão cair. O chamador decide a política de
// reconexão (ver Run).
func (c *Channel) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.joined = false
	c.mu.Unlock()

	join := frame{
		Event: joinEvent,
		Payload: map[string]any{
			"role":     c.scope.Role,
			"branchId": c.scope.BranchID,
			"userId":   strconv.Itoa(c.scope.UserID),
		},
	}
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return err
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	return c.readLoop(conn)
}

// Run mantém a assinatura viva: reconecta com backoff exponencial e sempre
// refaz o join do MESMO escopo depois de cada queda
func (c *Channel) Run(ctx context.Context) {
	backoff := time.Second

	for {
		err := c.Connect(ctx)

		if ctx.Err() != nil {
			logrus.Info("Canal realtime encerrado")
			return
		}

		logrus.WithError(err).WithField("backoff", backoff.String()).Warn("Conexão realtime caiu, reconectando")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}

		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (c *Channel) readLoop(conn *websocket.Conn) error {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
				c.joined = false
			}
			c.mu.Unlock()
			return err
		}

		if f.Event == joinedEvent {
			c.mu.Lock()
			c.joined = true
			c.mu.Unlock()

			logrus.WithFields(logrus.Fields{
				"role":      c.scope.Role,
				"branch_id": c.scope.BranchID,
			}).Info("Escopo do canal realtime confirmado")
			continue
		}

		c.mu.Lock()
		joined := c.joined
		c.mu.Unlock()

		// Sem buffer antes do join: melhor descartar do que aplicar um
		// evento de um escopo ainda não confirmado
		if !joined {
			logrus.WithField("event", f.Event).Debug("Evento descartado antes da confirmação do escopo")
			continue
		}

		c.dispatch(Event{Name: f.Event, Payload: f.Payload})
	}
}

func (c *Channel) dispatch(event Event) {
	if buildMatcher, ok := c.matchers[event.Name]; ok {
		matcher := buildMatcher(event)
		if matcher != nil {
			invalidated := c.cache.Invalidate(matcher)
			logrus.WithFields(logrus.Fields{
				"event":       event.Name,
				"invalidated": invalidated,
			}).Debug("Cache invalidado por evento realtime")
		}
	}

	c.notifier.Notify(event.Name, event.Payload)

	c.mu.Lock()
	subscribers := make([]subscription, len(c.subscriptions[event.Name]))
	copy(subscribers, c.subscriptions[event.Name])
	c.mu.Unlock()

	for _, s := range subscribers {
		s.handler(event)
	}
}

// Subscribe registra um handler para um evento e devolve a função de
// cancelamento correspondente; o par registro/cancelamento substitui o ciclo
// de vida de componente da interface
func (c *Channel) Subscribe(eventName string, handler func(Event)) func() {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subscriptions[eventName] = append(c.subscriptions[eventName], subscription{id: id, handler: handler})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		subscribers := c.subscriptions[eventName]
		for i, s := range subscribers {
			if s.id == id {
				c.subscriptions[eventName] = append(subscribers[:i], subscribers[i+1:]...)
				return
			}
		}
	}
}

// Joined informa se o escopo já foi confirmado pelo servidor
func (c *Channel) Joined() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.joined
}

// Close encerra a conexão atual, se houver
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
