package services_test

import (
	"context"
	"errors"
	"testing"

	"lablink/internal/models"
	"lablink/internal/seed"
	"lablink/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCatalogSource is a mock implementation of services.CatalogSource.
type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) items(ctx context.Context, method string) ([]models.CatalogItem, error) {
	args := m.MethodCalled(method, ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CatalogItem), args.Error(1)
}

func (m *MockCatalogSource) FetchTests(ctx context.Context) ([]models.CatalogItem, error) {
	return m.items(ctx, "FetchTests")
}

func (m *MockCatalogSource) FetchScans(ctx context.Context) ([]models.CatalogItem, error) {
	return m.items(ctx, "FetchScans")
}

func (m *MockCatalogSource) FetchPackages(ctx context.Context) ([]models.CatalogItem, error) {
	return m.items(ctx, "FetchPackages")
}

func (m *MockCatalogSource) FetchDoctors(ctx context.Context) ([]models.CatalogItem, error) {
	return m.items(ctx, "FetchDoctors")
}

func remoteItem(id string, kind models.Kind) models.CatalogItem {
	return models.CatalogItem{
		ID: id, Kind: kind, Name: "Remote " + id,
		CenterOffers: []models.CenterOffer{{CenterName: "Main Lab", Price: 1000, MRP: 1200}},
	}
}

func TestCatalogRefreshMergesSources(t *testing.T) {
	store, _, _ := newTestStore(t)
	src := new(MockCatalogSource)
	src.On("FetchTests", mock.Anything).Return([]models.CatalogItem{remoteItem("101", models.KindTest)}, nil)
	src.On("FetchScans", mock.Anything).Return([]models.CatalogItem{remoteItem("201", models.KindScan)}, nil)
	src.On("FetchPackages", mock.Anything).Return([]models.CatalogItem{remoteItem("301", models.KindPackage)}, nil)

	items := services.NewCatalogService(src, store, zap.NewNop()).Refresh(context.Background())
	require.Len(t, items, 3)
	assert.Equal(t, []string{"101", "201", "301"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Len(t, store.Tests(), 3)
	src.AssertExpectations(t)
}

func TestCatalogRefreshFallsBackWhenEmpty(t *testing.T) {
	store, _, _ := newTestStore(t)
	src := new(MockCatalogSource)
	src.On("FetchTests", mock.Anything).Return([]models.CatalogItem{}, nil)
	src.On("FetchScans", mock.Anything).Return([]models.CatalogItem{}, nil)
	src.On("FetchPackages", mock.Anything).Return([]models.CatalogItem{remoteItem("301", models.KindPackage)}, nil)

	items := services.NewCatalogService(src, store, zap.NewNop()).Refresh(context.Background())
	assert.Len(t, items, len(seed.Tests()))
	assert.Equal(t, "t1", items[0].ID)
}

func TestCatalogRefreshFallsBackWhenTestsAndScansFail(t *testing.T) {
	store, _, _ := newTestStore(t)
	src := new(MockCatalogSource)
	src.On("FetchTests", mock.Anything).Return(nil, errors.New("HTTP error! status: 500"))
	src.On("FetchScans", mock.Anything).Return(nil, errors.New("HTTP error! status: 500"))
	src.On("FetchPackages", mock.Anything).Return([]models.CatalogItem{remoteItem("301", models.KindPackage)}, nil)

	items := services.NewCatalogService(src, store, zap.NewNop()).Refresh(context.Background())
	assert.Len(t, items, len(seed.Tests()))
}

func TestCatalogRefreshKeepsListingsWhenOneFails(t *testing.T) {
	store, _, _ := newTestStore(t)
	src := new(MockCatalogSource)
	src.On("FetchTests", mock.Anything).Return([]models.CatalogItem{remoteItem("101", models.KindTest)}, nil)
	src.On("FetchScans", mock.Anything).Return([]models.CatalogItem{remoteItem("201", models.KindScan)}, nil)
	src.On("FetchPackages", mock.Anything).Return(nil, errors.New("HTTP error! status: 404"))

	items := services.NewCatalogService(src, store, zap.NewNop()).Refresh(context.Background())
	require.Len(t, items, 2)
	assert.Equal(t, []string{"101", "201"}, []string{items[0].ID, items[1].ID})
	assert.Len(t, store.Tests(), 2)
	src.AssertExpectations(t)
}

func TestCatalogRefreshWithOnlyScans(t *testing.T) {
	store, _, _ := newTestStore(t)
	src := new(MockCatalogSource)
	src.On("FetchTests", mock.Anything).Return(nil, errors.New("HTTP error! status: 500"))
	src.On("FetchScans", mock.Anything).Return([]models.CatalogItem{remoteItem("201", models.KindScan)}, nil)
	src.On("FetchPackages", mock.Anything).Return([]models.CatalogItem{}, nil)

	items := services.NewCatalogService(src, store, zap.NewNop()).Refresh(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "201", items[0].ID)
}

func TestCatalogOffline(t *testing.T) {
	store, _, _ := newTestStore(t)
	catalog := services.NewCatalogService(nil, store, zap.NewNop())

	assert.Len(t, catalog.Tests(context.Background()), len(seed.Tests()))
	assert.Len(t, catalog.Doctors(context.Background()), len(seed.Doctors()))

	item, ok := catalog.GetByID(context.Background(), "d2")
	require.True(t, ok)
	assert.Equal(t, "Dr. K Ramya", item.Name)
}

func TestCatalogDoctorsCachedAndFallback(t *testing.T) {
	store, _, _ := newTestStore(t)
	src := new(MockCatalogSource)
	src.On("FetchDoctors", mock.Anything).Return([]models.CatalogItem{}, nil).Once()

	catalog := services.NewCatalogService(src, store, zap.NewNop())
	doctors := catalog.Doctors(context.Background())
	assert.Len(t, doctors, len(seed.Doctors()))

	// Second call is served from the store.
	catalog.Doctors(context.Background())
	src.AssertNumberOfCalls(t, "FetchDoctors", 1)
}

func TestCatalogTestsUsesCache(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	store.SetTests(ctx, []models.CatalogItem{remoteItem("101", models.KindTest)})

	src := new(MockCatalogSource)
	items := services.NewCatalogService(src, store, zap.NewNop()).Tests(ctx)
	require.Len(t, items, 1)
	src.AssertNotCalled(t, "FetchTests", mock.Anything)
}

func TestFilter(t *testing.T) {
	items := seed.Tests()
	ids := func(items []models.CatalogItem) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.ID)
		}
		return out
	}

	assert.Len(t, services.Filter(items, "All Tests", ""), len(items))
	assert.Len(t, services.Filter(items, "", ""), len(items))
	assert.Equal(t, []string{"p1"}, ids(services.Filter(items, "Packages", "")))
	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s5"}, ids(services.Filter(items, "Scans", "")))
	assert.Equal(t, []string{"p1"}, ids(services.Filter(items, "Full Body", "")))
	assert.Equal(t, []string{"t2"}, ids(services.Filter(items, "Diabetes", "")))
	assert.Equal(t, []string{"t1"}, ids(services.Filter(items, "All Tests", "hemogram")))
	assert.Equal(t, []string{"s4"}, ids(services.Filter(items, "Scans", "MRI")))
	assert.Empty(t, services.Filter(items, "Packages", "mri"))

	doctors := seed.Doctors()
	assert.Equal(t, []string{"d2"}, ids(services.Filter(doctors, "", "dermat")))
	assert.Equal(t, []string{"d3"}, ids(services.Filter(doctors, "", "reddy")))
}
