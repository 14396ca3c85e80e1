package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pizzeria-manager/models"
	"pizzeria-manager/repository"
)

type fakeCatalogRepo struct {
	catalog *models.CatalogResponse
	err     error
}

func (f *fakeCatalogRepo) GetCatalog(ctx context.Context, organizationID uuid.UUID) (*models.CatalogResponse, error) {
	return f.catalog, f.err
}

type fakeSettingsRepo struct {
	delivery *models.DeliveryFeeConfig
	rules    *models.BusinessRules
	err      error
}

func (f *fakeSettingsRepo) GetDeliveryConfig(ctx context.Context, organizationID uuid.UUID) (*models.DeliveryFeeConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.delivery == nil {
		return &models.DeliveryFeeConfig{CalculationMode: models.CalculationModeFlat}, nil
	}
	return f.delivery, nil
}

func (f *fakeSettingsRepo) GetBusinessRules(ctx context.Context, organizationID uuid.UUID) (*models.BusinessRules, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.rules == nil {
		return &models.BusinessRules{Hours: models.BusinessHours{}}, nil
	}
	return f.rules, nil
}

type listActiveCall struct {
	from, to time.Time
}

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*models.Order
	active  []models.ActiveOrder
	counter int
	calls   []listActiveCall
	err     error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.counter++
	order.OrderNumber = f.counter
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, organizationID, orderID uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok || order.OrganizationID != organizationID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) ListActive(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]models.ActiveOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, listActiveCall{from: from, to: to})
	if f.err != nil {
		return nil, f.err
	}
	return f.active, nil
}

type fakeDrive struct {
	files    map[string][]byte
	uploaded map[string][]byte
	err      error
}

func (f *fakeDrive) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.files[fileID], nil
}

func (f *fakeDrive) UploadFile(ctx context.Context, folderID, name, mimeType string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[folderID+"/"+name] = data
	return "file-" + name, nil
}

// testCatalog is a small menu: Margherita 8, Diavola 11, Maxi x1.5, mozzarella 1
type testCatalog struct {
	margherita, diavola uuid.UUID
	maxi                uuid.UUID
	mozzarella          uuid.UUID
	response            *models.CatalogResponse
}

func newTestCatalog() testCatalog {
	c := testCatalog{
		margherita: uuid.New(),
		diavola:    uuid.New(),
		maxi:       uuid.New(),
		mozzarella: uuid.New(),
	}
	c.response = &models.CatalogResponse{
		MenuItems: []models.MenuItem{
			{ID: c.margherita, Name: "Margherita", BasePrice: 8, IsActive: true},
			{ID: c.diavola, Name: "Diavola", BasePrice: 11, IsActive: true},
		},
		Sizes: []models.Size{
			{ID: c.maxi, Name: "Maxi", PriceMultiplier: 1.5},
		},
		SizeAssignments: []models.SizeAssignment{
			{MenuItemID: c.margherita, SizeID: c.maxi, Enabled: true},
		},
		Ingredients: []models.Ingredient{
			{ID: c.mozzarella, Name: "Mozzarella", UnitPrice: 1},
		},
	}
	return c
}

func ptr[T any](v T) *T {
	return &v
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, organizationID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok || order.OrganizationID != organizationID {
		return nil, repository.ErrOrderNotFound
	}
	if !order.Status.CanTransition(status, order.OrderType) {
		return nil, repository.ErrInvalidStatusTransition
	}
	order.Status = status
	return order, nil
}
