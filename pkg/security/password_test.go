package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	t.Run("hash and compare round trip", func(t *testing.T) {
		hash, err := hasher.Hash("Sup3r$ecret")
		require.NoError(t, err)
		assert.NotEqual(t, "Sup3r$ecret", hash)
		assert.NoError(t, hasher.Compare(hash, "Sup3r$ecret"))
		assert.Error(t, hasher.Compare(hash, "Sup3r$ecreT"))
	})

	t.Run("short password is rejected before hashing", func(t *testing.T) {
		_, err := hasher.Hash("short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"meets all rules", "Sup3r$ecret", true},
		{"too short", "Ab1$xyz", false},
		{"missing uppercase", "sup3r$ecret", false},
		{"missing digit", "Super$ecret", false},
		{"missing special", "Sup3rSecret", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tc.password)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}
