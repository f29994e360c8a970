package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
)

func TestParseBloodType(t *testing.T) {
	t.Run("acepta los 8 tipos", func(t *testing.T) {
		for _, want := range entity.BloodTypes {
			got, err := entity.ParseBloodType(want.String())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("normaliza mayúsculas y espacios", func(t *testing.T) {
		got, err := entity.ParseBloodType("  ab+ ")
		require.NoError(t, err)
		assert.Equal(t, entity.BloodTypeABPositive, got)
	})

	t.Run("rechaza valores fuera de la enumeración", func(t *testing.T) {
		for _, s := range []string{"", "C+", "O", "AB", "O++", "a b+"} {
			_, err := entity.ParseBloodType(s)
			assert.Error(t, err, "debe rechazar %q", s)
		}
	})
}
