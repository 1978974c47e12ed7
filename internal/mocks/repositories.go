package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/catalog-ingest-api/internal/models"
	"github.com/google/uuid"
)

// MockCatalogRepository is a mock implementation of CatalogRepository. It
// mirrors the store's merge contract (sticky statuses, locked categories,
// insert-only fields) so pipeline tests exercise the real decision rules.
type MockCatalogRepository struct {
	Items       map[string]*models.CatalogItem
	BySourceURL map[string]*models.CatalogItem
	UpsertError error
	UpsertCalls int
	Sticky      map[models.Status]bool
}

func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		Items:       make(map[string]*models.CatalogItem),
		BySourceURL: make(map[string]*models.CatalogItem),
		Sticky:      map[models.Status]bool{models.StatusApproved: true},
	}
}

func (m *MockCatalogRepository) Upsert(ctx context.Context, item *models.CatalogItem) (bool, error) {
	m.UpsertCalls++
	if m.UpsertError != nil {
		return false, m.UpsertError
	}

	existing, ok := m.BySourceURL[item.SourceURL]
	if !ok {
		stored := *item
		if stored.ID == "" {
			stored.ID = uuid.New().String()
		}
		stored.Status = models.StatusNew
		stored.CreatedAt = time.Now()
		stored.UpdatedAt = stored.CreatedAt
		m.Items[stored.ID] = &stored
		m.BySourceURL[stored.SourceURL] = &stored
		return true, nil
	}

	existing.Title = item.Title
	existing.Description = item.Description
	if !existing.CategoryLocked {
		existing.LegacyCategory = item.LegacyCategory
		existing.CategoryID = item.CategoryID
		existing.CategoryPath = item.CategoryPath
	}
	existing.Source = item.Source
	existing.Brand = item.Brand
	existing.AffiliateURL = item.AffiliateURL
	existing.ImageURL = item.ImageURL
	existing.Price = item.Price
	existing.SalePrice = item.SalePrice
	existing.Currency = item.Currency
	existing.FreeShipping = item.FreeShipping
	existing.HasGift = item.HasGift
	existing.Score = item.Score
	existing.ProfitScore = item.ProfitScore
	if !m.Sticky[existing.Status] {
		existing.Status = models.StatusNew
	}
	existing.UpdatedAt = time.Now()
	return false, nil
}

func (m *MockCatalogRepository) GetByID(ctx context.Context, id string) (*models.CatalogItem, error) {
	return m.Items[id], nil
}

func (m *MockCatalogRepository) GetBySourceURL(ctx context.Context, sourceURL string) (*models.CatalogItem, error) {
	return m.BySourceURL[sourceURL], nil
}

func (m *MockCatalogRepository) List(ctx context.Context, filter models.CatalogFilter) ([]*models.CatalogItem, error) {
	var items []*models.CatalogItem
	for _, item := range m.Items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if len(filter.PathPrefix) > 0 && !hasPrefix(item.CategoryPath, filter.PathPrefix) {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	return items, nil
}

func (m *MockCatalogRepository) Count(ctx context.Context, status models.Status) (int, error) {
	if status == "" {
		return len(m.Items), nil
	}
	count := 0
	for _, item := range m.Items {
		if item.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MockCatalogRepository) SetStatus(ctx context.Context, id string, status models.Status) (bool, error) {
	item, ok := m.Items[id]
	if !ok {
		return false, nil
	}
	item.Status = status
	item.UpdatedAt = time.Now()
	return true, nil
}

func (m *MockCatalogRepository) SetStatusBulk(ctx context.Context, ids []string, status models.Status) (int64, error) {
	var n int64
	for _, id := range ids {
		if item, ok := m.Items[id]; ok {
			item.Status = status
			n++
		}
	}
	return n, nil
}

func (m *MockCatalogRepository) LockCategory(ctx context.Context, id string, categoryID *string, path []string) (bool, error) {
	item, ok := m.Items[id]
	if !ok {
		return false, nil
	}
	item.CategoryID = categoryID
	item.CategoryPath = path
	item.CategoryLocked = categoryID != nil || len(path) > 0
	return true, nil
}

func (m *MockCatalogRepository) Delete(ctx context.Context, id string) (bool, error) {
	item, ok := m.Items[id]
	if !ok {
		return false, nil
	}
	delete(m.BySourceURL, item.SourceURL)
	delete(m.Items, id)
	return true, nil
}

func (m *MockCatalogRepository) IncrementViews(ctx context.Context, id string) error {
	if item, ok := m.Items[id]; ok {
		item.Views++
	}
	return nil
}

func (m *MockCatalogRepository) IncrementClicks(ctx context.Context, id string) (string, error) {
	item, ok := m.Items[id]
	if !ok {
		return "", nil
	}
	item.Clicks++
	return item.AffiliateURL, nil
}

func (m *MockCatalogRepository) BulkSetLocalCheck(ctx context.Context, from, to models.LocalCheck) (int64, error) {
	var n int64
	for _, item := range m.Items {
		if item.LocalCheck == from {
			item.LocalCheck = to
			n++
		}
	}
	return n, nil
}

func hasPrefix(path, prefix []string) bool {
	if len(path) < len(prefix) {
		return false
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}
	return true
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Nodes       map[string]*models.CategoryNode
	IDsByPath   map[string]string
	UpsertError error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Nodes:     make(map[string]*models.CategoryNode),
		IDsByPath: make(map[string]string),
	}
}

func pathKey(path []string) string {
	key := ""
	for _, p := range path {
		key += "/" + p
	}
	return key
}

func (m *MockCategoryRepository) IDByPath(ctx context.Context, path []string) (*string, error) {
	id, ok := m.IDsByPath[pathKey(path)]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.CategoryNode, error) {
	nodes := make([]*models.CategoryNode, 0, len(m.Nodes))
	for _, node := range m.Nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Level != nodes[j].Level {
			return nodes[i].Level < nodes[j].Level
		}
		return nodes[i].SortOrder < nodes[j].SortOrder
	})
	return nodes, nil
}

func (m *MockCategoryRepository) Upsert(ctx context.Context, node *models.CategoryNode) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	if existing, ok := m.IDsByPath[pathKey(node.Path)]; ok {
		node.ID = existing
	} else if node.ID == "" {
		node.ID = uuid.New().String()
	}
	m.Nodes[node.ID] = node
	m.IDsByPath[pathKey(node.Path)] = node.ID
	return nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.Nodes), nil
}

// MockRunRepository is a mock implementation of RunRepository
type MockRunRepository struct {
	Runs        map[string]*models.IngestRun
	Order       []string
	CreateError error
	FinishError error
}

func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{Runs: make(map[string]*models.IngestRun)}
}

func (m *MockRunRepository) Create(ctx context.Context, run *models.IngestRun) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	stored := *run
	m.Runs[run.ID] = &stored
	m.Order = append(m.Order, run.ID)
	return nil
}

func (m *MockRunRepository) Finish(ctx context.Context, run *models.IngestRun) error {
	if m.FinishError != nil {
		return m.FinishError
	}
	stored := *run
	m.Runs[run.ID] = &stored
	return nil
}

func (m *MockRunRepository) ListRecent(ctx context.Context, limit int) ([]*models.IngestRun, error) {
	var runs []*models.IngestRun
	for i := len(m.Order) - 1; i >= 0 && (limit <= 0 || len(runs) < limit); i-- {
		runs = append(runs, m.Runs[m.Order[i]])
	}
	return runs, nil
}
