package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/catalog-ingest-api/internal/config"
	"github.com/catalog-ingest-api/internal/mocks"
	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/repository"
	"github.com/catalog-ingest-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	services *service.Services
	catalog  *mocks.MockCatalogRepository
	category *mocks.MockCategoryRepository
	runs     *mocks.MockRunRepository
}

func newTestEnv(t *testing.T, feedURL string, maxRows int) *testEnv {
	t.Helper()

	env := &testEnv{
		catalog:  mocks.NewMockCatalogRepository(),
		category: mocks.NewMockCategoryRepository(),
		runs:     mocks.NewMockRunRepository(),
	}
	repos := &repository.Repositories{
		Catalog:  env.catalog,
		Category: env.category,
		Run:      env.runs,
	}
	cfg := &config.Config{
		Feed: config.FeedConfig{
			URL:               feedURL,
			RequestTimeout:    5 * time.Second,
			MaxRows:           maxRows,
			DefaultCurrency:   "EUR",
			AffirmativeTokens: []string{"да", "yes", "1", "true"},
		},
	}
	env.services = service.NewServices(repos, cfg, zerolog.Nop())
	return env
}

func seedCategory(t *testing.T, env *testEnv, name, slug string, path []string) {
	t.Helper()
	err := env.category.Upsert(context.Background(), &models.CategoryNode{
		Name: name, Slug: slug, Path: path, Level: len(path) - 1, IsActive: true,
	})
	require.NoError(t, err)
}

const feedPage1 = "Product name;Affiliate URL;Image;Price;Category;Free shipping\n" +
	"Garden hose 20m;https://aff.example/1;https://img.example/1.jpg;25,50;Garden;да\n" +
	"Ceramic pan 24cm;https://aff.example/2;https://img.example/2.jpg;89.90;Kitchen;no\n" +
	"Mystery gadget;https://aff.example/3;;19.99;;\n" +
	"No price item;https://aff.example/4;;;;\n"

func feedServer(t *testing.T, body *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(*body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIngestService_Run_FirstCycle(t *testing.T) {
	body := feedPage1
	srv := feedServer(t, &body)
	env := newTestEnv(t, srv.URL, 2000)
	seedCategory(t, env, "Hoses", "hoses", []string{"garden", "irrigation", "hoses"})
	seedCategory(t, env, "Cookware", "cookware", []string{"home", "kitchen", "cookware"})

	run, err := env.services.Ingest.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, models.RunStatusCompleted, run.Status)
	require.Equal(t, 4, run.Summary.Fetched)
	require.Equal(t, 4, run.Summary.Parsed)
	require.Equal(t, 3, run.Summary.Upserted)
	require.Equal(t, 0, run.Summary.Updated)
	require.Equal(t, 1, run.Summary.Skipped)
	require.Equal(t, 0, run.Summary.Errors)
	require.NotNil(t, run.CompletedAt)

	require.Len(t, env.catalog.Items, 3)

	hose := env.catalog.BySourceURL["https://aff.example/1"]
	require.NotNil(t, hose)
	require.Equal(t, models.StatusNew, hose.Status)
	require.Equal(t, []string{"garden", "irrigation", "hoses"}, hose.CategoryPath)
	require.NotNil(t, hose.CategoryID)
	require.Equal(t, models.LegacyGarden, hose.LegacyCategory)
	require.True(t, hose.Price.Decimal.Equal(decimal.RequireFromString("25.50")))
	require.True(t, hose.FreeShipping)
	// categorized +2, cheap +2, image +1, free shipping +1
	require.Equal(t, 6, hose.Score)

	pan := env.catalog.BySourceURL["https://aff.example/2"]
	require.NotNil(t, pan)
	require.Equal(t, []string{"home", "kitchen", "cookware"}, pan.CategoryPath)
	require.Equal(t, models.LegacyHome, pan.LegacyCategory)
	require.Equal(t, 4, pan.Score)

	gadget := env.catalog.BySourceURL["https://aff.example/3"]
	require.NotNil(t, gadget)
	require.Empty(t, gadget.CategoryPath)
	require.Nil(t, gadget.CategoryID)
	require.Equal(t, models.LegacyOther, gadget.LegacyCategory)
	require.Equal(t, 2, gadget.Score)

	// the cycle record was persisted
	require.Len(t, env.runs.Runs, 1)
}

func TestIngestService_Run_ReIngestPreservesApproval(t *testing.T) {
	body := feedPage1
	srv := feedServer(t, &body)
	env := newTestEnv(t, srv.URL, 2000)
	seedCategory(t, env, "Hoses", "hoses", []string{"garden", "irrigation", "hoses"})

	ctx := context.Background()
	_, err := env.services.Ingest.Run(ctx)
	require.NoError(t, err)

	hose := env.catalog.BySourceURL["https://aff.example/1"]
	gadget := env.catalog.BySourceURL["https://aff.example/3"]
	require.NoError(t, env.services.Moderation.SetStatus(ctx, hose.ID, models.StatusApproved))
	require.NoError(t, env.services.Moderation.SetStatus(ctx, gadget.ID, models.StatusRejected))

	// same feed, hose price changed
	body = "Product name;Affiliate URL;Image;Price;Category;Free shipping\n" +
		"Garden hose 20m;https://aff.example/1;https://img.example/1.jpg;30,00;Garden;да\n" +
		"Ceramic pan 24cm;https://aff.example/2;https://img.example/2.jpg;89.90;Kitchen;no\n" +
		"Mystery gadget;https://aff.example/3;;19.99;;\n"

	run, err := env.services.Ingest.Run(ctx)
	require.NoError(t, err)

	require.Equal(t, 0, run.Summary.Upserted)
	require.Equal(t, 3, run.Summary.Updated)
	require.Len(t, env.catalog.Items, 3)

	// approval survives the update, the fresh price does not
	hose = env.catalog.BySourceURL["https://aff.example/1"]
	require.Equal(t, models.StatusApproved, hose.Status)
	require.True(t, hose.Price.Decimal.Equal(decimal.RequireFromString("30")))

	// a rejected item goes back into the review queue
	gadget = env.catalog.BySourceURL["https://aff.example/3"]
	require.Equal(t, models.StatusNew, gadget.Status)
}

func TestIngestService_Run_Idempotent(t *testing.T) {
	body := feedPage1
	srv := feedServer(t, &body)
	env := newTestEnv(t, srv.URL, 2000)

	ctx := context.Background()
	first, err := env.services.Ingest.Run(ctx)
	require.NoError(t, err)
	second, err := env.services.Ingest.Run(ctx)
	require.NoError(t, err)

	require.Equal(t, 3, first.Summary.Upserted)
	require.Equal(t, 0, second.Summary.Upserted)
	require.Equal(t, 3, second.Summary.Updated)
	require.Len(t, env.catalog.Items, 3)
}

func TestIngestService_Run_MaxRowsCap(t *testing.T) {
	body := feedPage1
	srv := feedServer(t, &body)
	env := newTestEnv(t, srv.URL, 2)

	run, err := env.services.Ingest.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 4, run.Summary.Fetched)
	require.Equal(t, 2, run.Summary.Parsed)
	require.Equal(t, 2, run.Summary.Upserted)
}

func TestIngestService_Run_NoFeedURL(t *testing.T) {
	env := newTestEnv(t, "", 2000)

	run, err := env.services.Ingest.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.RunStatusSkipped, run.Status)
	require.Empty(t, env.catalog.Items)
	// skipped cycles still leave a record
	require.Len(t, env.runs.Runs, 1)
}

func TestIngestService_Run_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	env := newTestEnv(t, srv.URL, 2000)

	run, err := env.services.Ingest.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, models.RunStatusFailed, run.Status)
	require.NotEmpty(t, run.Error)
	require.Empty(t, env.catalog.Items)
}

func TestIngestService_Run_RejectsOverlap(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Write([]byte(feedPage1))
	}))
	t.Cleanup(srv.Close)
	env := newTestEnv(t, srv.URL, 2000)

	done := make(chan error, 1)
	go func() {
		_, err := env.services.Ingest.Run(context.Background())
		done <- err
	}()

	<-started
	require.True(t, env.services.Ingest.Running())
	_, err := env.services.Ingest.Run(context.Background())
	require.ErrorIs(t, err, service.ErrRunInProgress)

	close(release)
	require.NoError(t, <-done)
	require.False(t, env.services.Ingest.Running())
}

func TestIngestService_RecentRuns(t *testing.T) {
	body := feedPage1
	srv := feedServer(t, &body)
	env := newTestEnv(t, srv.URL, 2000)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := env.services.Ingest.Run(ctx)
		require.NoError(t, err)
	}

	runs, err := env.services.Ingest.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
}
