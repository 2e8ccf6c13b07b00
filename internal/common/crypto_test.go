package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		secret, err := GenerateSecret(32)
		require.NoError(t, err)
		assert.Len(t, secret, 32)
		assert.False(t, seen[secret])
		seen[secret] = true
	}
}
