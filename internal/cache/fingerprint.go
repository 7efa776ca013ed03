// Package cache implementa o sincronizador de consultas do dashboard:
// resultados chaveados por fingerprint, com TTL, revalidação e proteção
// contra corridas de requisição.
package cache

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Fingerprint deriva a chave determinística de uma entrada de cache a partir
// do nome do recurso e dos filtros serializados. Mapas saem com chaves
// ordenadas e structs em ordem de declaração, então filtros iguais produzem
// sempre a mesma chave.
func Fingerprint(resource string, filters any) string {
	if filters == nil {
		return resource
	}

	raw, err := json.Marshal(filters)
	if err != nil {
		logrus.WithError(err).WithField("resource", resource).Warn("Erro ao serializar filtros do fingerprint")
		return resource
	}

	return resource + "?" + string(raw)
}

// PrefixMatcher casa entradas cujo recurso começa com o prefixo dado, por
// exemplo "returns:B01" para todas as consultas de devoluções da filial
func PrefixMatcher(prefix string) func(fingerprint string) bool {
	return func(fingerprint string) bool {
		return strings.HasPrefix(fingerprint, prefix)
	}
}
