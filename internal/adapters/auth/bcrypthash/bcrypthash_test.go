package bcrypthash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := New(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)
	assert.Error(t, h.Compare("not-a-hash", "s3cret"))
}

func TestNew_DefaultCost(t *testing.T) {
	assert.Equal(t, DefaultCost, New(0).cost)
	assert.Equal(t, DefaultCost, New(99).cost)

	hash, err := New(0).Hash("x")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}
