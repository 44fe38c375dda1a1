package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPatch(t *testing.T) {
	t.Run("single column", func(t *testing.T) {
		query, args := buildPatch("patients", "id", int64(7), map[string]interface{}{
			"phone": "555-0100",
		})

		assert.Equal(t, "UPDATE patients SET phone = $1, updated_at = NOW() WHERE id = $2", query)
		assert.Equal(t, []interface{}{"555-0100", int64(7)}, args)
	})

	t.Run("columns are sorted", func(t *testing.T) {
		query, args := buildPatch("staff", "id", int64(3), map[string]interface{}{
			"role":       "Doctor",
			"first_name": "Ana",
			"last_name":  "Silva",
		})

		assert.Equal(t,
			"UPDATE staff SET first_name = $1, last_name = $2, role = $3, updated_at = NOW() WHERE id = $4",
			query,
		)
		assert.Equal(t, []interface{}{"Ana", "Silva", "Doctor", int64(3)}, args)
	})

	t.Run("nil value clears a column", func(t *testing.T) {
		query, args := buildPatch("patients", "id", int64(1), map[string]interface{}{
			"allergies": nil,
		})

		assert.Equal(t, "UPDATE patients SET allergies = $1, updated_at = NOW() WHERE id = $2", query)
		assert.Nil(t, args[0])
	})
}
