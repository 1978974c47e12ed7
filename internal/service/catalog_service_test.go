package service_test

import (
	"context"
	"testing"

	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListShowsApprovedOnly(t *testing.T) {
	env := newTestEnv(t, "", 0)
	addItem(t, env, "a1", "https://x.example/a1", models.StatusApproved)
	addItem(t, env, "a2", "https://x.example/a2", models.StatusNew)

	items, err := env.services.Catalog.List(context.Background(), models.CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "a1", items[0].ID)

	// even an explicit filter cannot widen the public surface
	items, err = env.services.Catalog.List(context.Background(),
		models.CatalogFilter{Status: models.StatusNew})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "a1", items[0].ID)
}

func TestCatalogService_ListForAdmin(t *testing.T) {
	env := newTestEnv(t, "", 0)
	addItem(t, env, "a1", "https://x.example/a1", models.StatusApproved)
	addItem(t, env, "a2", "https://x.example/a2", models.StatusNew)

	items, err := env.services.Catalog.ListForAdmin(context.Background(),
		models.CatalogFilter{Status: models.StatusNew})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "a2", items[0].ID)
}

func TestCatalogService_GetCountsView(t *testing.T) {
	env := newTestEnv(t, "", 0)
	addItem(t, env, "a1", "https://x.example/a1", models.StatusApproved)
	ctx := context.Background()

	item, err := env.services.Catalog.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "a1", item.ID)
	require.Equal(t, 1, env.catalog.Items["a1"].Views)

	_, err = env.services.Catalog.Get(ctx, "missing")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCatalogService_Click(t *testing.T) {
	env := newTestEnv(t, "", 0)
	addItem(t, env, "a1", "https://x.example/a1", models.StatusApproved)
	ctx := context.Background()

	url, err := env.services.Catalog.Click(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "https://aff.example/a1", url)
	require.Equal(t, 1, env.catalog.Items["a1"].Clicks)

	_, err = env.services.Catalog.Click(ctx, "missing")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSeedCategories(t *testing.T) {
	env := newTestEnv(t, "", 0)
	ctx := context.Background()

	require.NoError(t, service.SeedCategories(ctx, env.category, zerolog.Nop()))

	nodes, err := env.services.Catalog.Categories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	// two roots, parents listed before children
	require.Equal(t, 0, nodes[0].Level)
	require.Equal(t, 0, nodes[1].Level)

	id, err := env.category.IDByPath(ctx, []string{"garden", "irrigation", "hoses"})
	require.NoError(t, err)
	require.NotNil(t, id)

	// a second pass leaves the tree alone
	before, _ := env.category.Count(ctx)
	require.NoError(t, service.SeedCategories(ctx, env.category, zerolog.Nop()))
	after, _ := env.category.Count(ctx)
	require.Equal(t, before, after)
}
