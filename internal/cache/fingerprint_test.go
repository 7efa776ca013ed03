package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	type filters struct {
		BranchID  string `json:"branch_id"`
		StartDate string `json:"start_date"`
	}

	t.Run("Filtros iguais produzem a mesma chave", func(t *testing.T) {
		a := Fingerprint("records:B1", filters{BranchID: "B1", StartDate: "2026-08-01"})
		b := Fingerprint("records:B1", filters{BranchID: "B1", StartDate: "2026-08-01"})

		assert.Equal(t, a, b)
	})

	t.Run("Filtros diferentes produzem chaves diferentes", func(t *testing.T) {
		a := Fingerprint("records:B1", filters{StartDate: "2026-08-01"})
		b := Fingerprint("records:B1", filters{StartDate: "2026-08-02"})

		assert.NotEqual(t, a, b)
	})

	t.Run("Sem filtros a chave é o próprio recurso", func(t *testing.T) {
		assert.Equal(t, "inventory:B1", Fingerprint("inventory:B1", nil))
	})
}

func TestPrefixMatcher(t *testing.T) {
	matcher := PrefixMatcher("returns:B1")

	assert.True(t, matcher(`returns:B1?{"start_date":"2026-08-01"}`))
	assert.True(t, matcher("returns:B1"))
	assert.False(t, matcher("returns:B2?{}"))
	assert.False(t, matcher("inventory:B1"))
}
