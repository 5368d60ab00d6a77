package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comparo/internal/domain"
)

func TestMemoryStoreFindBySlug(t *testing.T) {
	store := NewMemoryStore()
	store.Seed(domain.Product{
		ID:           "prd_1001",
		Slug:         "fridge-5star",
		Name:         "5-Star Fridge",
		AffiliateURL: "https://aff.example/x",
	})

	got, err := store.FindBySlug(context.Background(), "fridge-5star")
	require.NoError(t, err)
	assert.Equal(t, "prd_1001", got.ID)
	assert.Equal(t, "https://aff.example/x", got.AffiliateURL)
}

func TestMemoryStoreUnknownSlug(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.FindBySlug(context.Background(), "no-such-product")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSeedReplacesExisting(t *testing.T) {
	store := NewMemoryStore()
	store.Seed(domain.Product{ID: "prd_1", Slug: "fridge-5star", Name: "Old Name"})
	store.Seed(domain.Product{ID: "prd_1", Slug: "fridge-5star", Name: "New Name"})

	got, err := store.FindBySlug(context.Background(), "fridge-5star")
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
}
