package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/domain/repository"
	"procurement-service/notification"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/postgres"
	"procurement-service/pkg/redis"
	pgrepo "procurement-service/repository/postgres"
)

type sentNotification struct {
	recipients []string
	payload    notification.Payload
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Send(_ context.Context, recipients []string, payload notification.Payload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{recipients: recipients, payload: payload})
}

func (n *recordingNotifier) all() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordOperation(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[operation+"/"+outcome]++
}

func (r *countingRecorder) count(operation, outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[operation+"/"+outcome]
}

// busyLocker refuses every lock
type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string, time.Duration) (redis.ReleaseFunc, error) {
	return nil, redis.ErrLockNotAcquired
}

// staleOrders answers GetByID with a copy read before another request
// changed the order
type staleOrders struct {
	repository.Order
	snapshot model.Order
}

func (s staleOrders) GetByID(context.Context, uint) (*model.Order, error) {
	order := s.snapshot
	return &order, nil
}

// staleInquiries answers GetByID with a copy read before another request
// changed the inquiry
type staleInquiries struct {
	repository.Inquiry
	snapshot model.Inquiry
}

func (s staleInquiries) GetByID(context.Context, uint) (*model.Inquiry, error) {
	inquiry := s.snapshot
	return &inquiry, nil
}

// fixture wires every usecase against an in-memory sqlite database that
// enforces the same unique indexes as production
type fixture struct {
	db       *gorm.DB
	repos    Repositories
	notifier *recordingNotifier
	recorder *countingRecorder
	clock    time.Time

	ingredients IngredientUseCase
	catalog     CatalogUseCase
	inquiries   InquiryUseCase
	quotes      QuoteUseCase
	profiles    SupplierProfileUseCase
	orders      OrderUseCase

	admin model.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", ulid.Make().String())
	client, err := postgres.NewWithDialector(sqlite.Open(dsn), postgres.Config{MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Migrate(model.AllModels()...))

	db := client.GetDB()
	log := logger.NoOpLogger()
	repos := Repositories{
		Transactor:  pgrepo.NewTransactor(db, log),
		Users:       pgrepo.NewUserRepository(db, log),
		Ingredients: pgrepo.NewIngredientRepository(db, log),
		Catalog:     pgrepo.NewCatalogRepository(db, log),
		Inquiries:   pgrepo.NewInquiryRepository(db, log),
		Quotes:      pgrepo.NewQuoteRepository(db, log),
		Orders:      pgrepo.NewOrderRepository(db, log),
		Profiles:    pgrepo.NewSupplierProfileRepository(db, log),
	}

	f := &fixture{
		db:       db,
		repos:    repos,
		notifier: &recordingNotifier{},
		recorder: &countingRecorder{},
		clock:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	authz := policy.New()
	f.ingredients = NewIngredientUseCase(repos, authz, log)
	f.catalog = NewCatalogUseCase(repos, authz, log)
	f.inquiries = NewInquiryUseCase(repos, authz, f.notifier, f.recorder, log)
	f.profiles = NewSupplierProfileUseCase(repos, authz, f.recorder, log)

	quotes := NewQuoteUseCase(repos, authz, redis.NoopLocker{}, time.Second, f.recorder, log).(*quoteUseCase)
	quotes.now = f.now
	f.quotes = quotes
	orders := NewOrderUseCase(repos, authz, f.profiles, f.notifier, redis.NoopLocker{}, time.Second, f.recorder, log).(*orderUseCase)
	orders.now = f.now
	f.orders = orders

	adminUser := f.user(t, "Buyer", "buyer@example.com", model.RoleAdmin)
	f.admin = model.Actor{ID: adminUser.ID, Role: model.RoleAdmin}
	return f
}

func (f *fixture) now() time.Time {
	return f.clock
}

func (f *fixture) user(t *testing.T, name, email string, role model.Role, additional ...string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, Role: role, AdditionalEmails: additional}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixture) supplier(t *testing.T, name string, additional ...string) (*model.User, model.Actor) {
	t.Helper()
	user := f.user(t, name, fmt.Sprintf("%s@supplier.test", name), model.RoleSupplier, additional...)
	return user, model.Actor{ID: user.ID, Role: model.RoleSupplier}
}

func (f *fixture) ingredient(t *testing.T, name string, unit model.Unit, brands ...string) *model.Ingredient {
	t.Helper()
	ingredient, err := f.ingredients.CreateIngredient(context.Background(), f.admin, &procurement_service.CreateIngredientRequest{
		Name:   name,
		Brands: brands,
		Unit:   string(unit),
	})
	require.NoError(t, err)
	return ingredient
}

func (f *fixture) offer(t *testing.T, ingredientID, supplierID uint) {
	t.Helper()
	result, err := f.catalog.AddEntries(context.Background(), f.admin, &procurement_service.AddCatalogEntriesRequest{
		IngredientIDs: []uint{ingredientID},
		SupplierIDs:   []uint{supplierID},
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
}

// inquire creates a single-supplier inquiry and returns it
func (f *fixture) inquire(t *testing.T, supplierID uint, items ...procurement_service.InquiryItemRequest) *model.Inquiry {
	t.Helper()
	result, err := f.inquiries.CreateInquiry(context.Background(), f.admin, &procurement_service.CreateInquiryRequest{
		Items:       items,
		SupplierIDs: []uint{supplierID},
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Created, 1)
	return result.Created[0]
}

// quoteAll answers every requested brand of every item at the given price
func (f *fixture) quoteAll(t *testing.T, actor model.Actor, inquiry *model.Inquiry, price float64) *model.Quote {
	t.Helper()
	var rows []procurement_service.QuoteItemRequest
	for _, item := range inquiry.Items {
		for _, brand := range item.Brands {
			p := price
			rows = append(rows, procurement_service.QuoteItemRequest{InquiryItemID: item.ID, BrandName: brand, Price: &p})
		}
	}
	quote, err := f.quotes.SubmitQuote(context.Background(), actor, inquiry.ID, &procurement_service.SubmitQuoteRequest{Items: rows})
	require.NoError(t, err)
	return quote
}

func price(v float64) *float64 {
	return &v
}

func quoteItemIDs(quote *model.Quote) []uint {
	ids := make([]uint, len(quote.Items))
	for i, item := range quote.Items {
		ids[i] = item.ID
	}
	return ids
}
