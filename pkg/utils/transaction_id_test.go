package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTransactionUUID_Format(t *testing.T) {
	id, err := GenerateTransactionUUID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}-\d{6}-[0-9a-f]{6}$`), id)
}

func TestGenerateTransactionUUID_UniqueWithinSecond(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := GenerateTransactionUUID()
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate transaction id %s", id)
		seen[id] = true
	}
}
