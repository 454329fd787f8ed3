package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marishandmade/storefront/internal/cart"
)

func TestRegistry_SessionLifecycle(t *testing.T) {
	r := cart.NewRegistry()

	id, basket, err := r.NewSession()
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.NotNil(t, basket)

	assert.Same(t, basket, r.Get(id), "the same session id must resolve to the same basket")
	assert.Nil(t, r.Get("unknown-session"))

	r.Drop(id)
	assert.Nil(t, r.Get(id))

	// Dropping again is a no-op.
	r.Drop(id)
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	r := cart.NewRegistry()

	idA, basketA, err := r.NewSession()
	require.NoError(t, err)
	idB, basketB, err := r.NewSession()
	require.NoError(t, err)

	require.NotEqual(t, idA, idB)

	basketA.AddItem(newTestProduct("1", "Blossom Box", "48.00"))

	assert.Len(t, basketA.Items(), 1)
	assert.Empty(t, basketB.Items(), "one shopper's basket must not leak into another's")
}
