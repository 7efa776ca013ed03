package realtime

import (
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/branch-insights-api/internal/cache"
	"github.com/vfg2006/branch-insights-api/internal/domain"
)

// defaultMatchers é a tabela eventName → construtor de matcher de
// invalidação. Invalidar é idempotente (Fresh→Stale monotônico), então um
// evento repetido ou concorrente com a expiração de TTL não precisa de
// coordenação.
func defaultMatchers() map[string]func(Event) func(string) bool {
	return map[string]func(Event) func(string) bool{
		domain.EventReturnCreated: func(e Event) func(string) bool {
			var ev domain.ReturnCreatedEvent
			if err := decodePayload(e, &ev); err != nil || ev.BranchID == "" {
				return nil
			}
			// Uma devolução nova mexe nas listas de devoluções e no estoque
			// da filial
			return anyOf(
				cache.PrefixMatcher("returns:"+ev.BranchID),
				cache.PrefixMatcher("inventory:"+ev.BranchID),
			)
		},

		domain.EventReturnStatusUpdated: func(e Event) func(string) bool {
			var ev domain.ReturnStatusUpdatedEvent
			if err := decodePayload(e, &ev); err != nil || ev.BranchID == "" {
				return nil
			}
			return cache.PrefixMatcher("returns:" + ev.BranchID)
		},

		domain.EventInventoryChanged: func(e Event) func(string) bool {
			var ev domain.InventoryChangedEvent
			if err := decodePayload(e, &ev); err != nil || ev.BranchID == "" {
				return nil
			}
			return cache.PrefixMatcher("inventory:" + ev.BranchID)
		},
	}
}

func decodePayload(e Event, target any) error {
	err := mapstructure.Decode(e.Payload, target)
	if err != nil {
		logrus.WithError(err).WithField("event", e.Name).Warn("Payload de evento realtime inválido")
	}
	return err
}

func anyOf(matchers ...func(string) bool) func(string) bool {
	return func(fingerprint string) bool {
		for _, matcher := range matchers {
			if matcher(fingerprint) {
				return true
			}
		}
		return false
	}
}
