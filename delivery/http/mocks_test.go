package http

import (
	"bytes"
	"context"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain/model"
	"procurement-service/usecase"

	"github.com/stretchr/testify/mock"
)

type mockIngredientUseCase struct{ mock.Mock }

func (m *mockIngredientUseCase) CreateIngredient(ctx context.Context, actor model.Actor, req *procurement_service.CreateIngredientRequest) (*model.Ingredient, error) {
	args := m.Called(ctx, actor, req)
	ingredient, _ := args.Get(0).(*model.Ingredient)
	return ingredient, args.Error(1)
}

func (m *mockIngredientUseCase) GetIngredient(ctx context.Context, actor model.Actor, id uint) (*model.Ingredient, error) {
	args := m.Called(ctx, actor, id)
	ingredient, _ := args.Get(0).(*model.Ingredient)
	return ingredient, args.Error(1)
}

func (m *mockIngredientUseCase) ListIngredients(ctx context.Context, actor model.Actor, offset, limit int) ([]*model.Ingredient, int, error) {
	args := m.Called(ctx, actor, offset, limit)
	ingredients, _ := args.Get(0).([]*model.Ingredient)
	return ingredients, args.Int(1), args.Error(2)
}

func (m *mockIngredientUseCase) UpdateIngredient(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateIngredientRequest) (*model.Ingredient, error) {
	args := m.Called(ctx, actor, id, req)
	ingredient, _ := args.Get(0).(*model.Ingredient)
	return ingredient, args.Error(1)
}

func (m *mockIngredientUseCase) DeleteIngredient(ctx context.Context, actor model.Actor, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockIngredientUseCase) ListSuppliersForIngredient(ctx context.Context, actor model.Actor, id uint) ([]*model.CatalogEntry, error) {
	args := m.Called(ctx, actor, id)
	entries, _ := args.Get(0).([]*model.CatalogEntry)
	return entries, args.Error(1)
}

type mockCatalogUseCase struct{ mock.Mock }

func (m *mockCatalogUseCase) AddEntries(ctx context.Context, actor model.Actor, req *procurement_service.AddCatalogEntriesRequest) (*usecase.BatchResult[*model.CatalogEntry], error) {
	args := m.Called(ctx, actor, req)
	result, _ := args.Get(0).(*usecase.BatchResult[*model.CatalogEntry])
	return result, args.Error(1)
}

func (m *mockCatalogUseCase) UpdateEntry(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateCatalogEntryRequest) (*model.CatalogEntry, error) {
	args := m.Called(ctx, actor, id, req)
	entry, _ := args.Get(0).(*model.CatalogEntry)
	return entry, args.Error(1)
}

func (m *mockCatalogUseCase) RemoveEntry(ctx context.Context, actor model.Actor, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockCatalogUseCase) ListBySupplier(ctx context.Context, actor model.Actor, supplierID uint) ([]*model.CatalogEntry, error) {
	args := m.Called(ctx, actor, supplierID)
	entries, _ := args.Get(0).([]*model.CatalogEntry)
	return entries, args.Error(1)
}

func (m *mockCatalogUseCase) ListByIngredient(ctx context.Context, actor model.Actor, ingredientID uint) ([]*model.CatalogEntry, error) {
	args := m.Called(ctx, actor, ingredientID)
	entries, _ := args.Get(0).([]*model.CatalogEntry)
	return entries, args.Error(1)
}

type mockInquiryUseCase struct{ mock.Mock }

func (m *mockInquiryUseCase) CreateInquiry(ctx context.Context, actor model.Actor, req *procurement_service.CreateInquiryRequest) (*usecase.BatchResult[*model.Inquiry], error) {
	args := m.Called(ctx, actor, req)
	result, _ := args.Get(0).(*usecase.BatchResult[*model.Inquiry])
	return result, args.Error(1)
}

func (m *mockInquiryUseCase) UpdateStatus(ctx context.Context, actor model.Actor, id uint, status model.InquiryStatus) (*model.Inquiry, error) {
	args := m.Called(ctx, actor, id, status)
	inquiry, _ := args.Get(0).(*model.Inquiry)
	return inquiry, args.Error(1)
}

func (m *mockInquiryUseCase) GetInquiry(ctx context.Context, actor model.Actor, id uint) (*model.Inquiry, error) {
	args := m.Called(ctx, actor, id)
	inquiry, _ := args.Get(0).(*model.Inquiry)
	return inquiry, args.Error(1)
}

func (m *mockInquiryUseCase) ListInquiries(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Inquiry, int, error) {
	args := m.Called(ctx, actor, status, offset, limit)
	inquiries, _ := args.Get(0).([]*model.Inquiry)
	return inquiries, args.Int(1), args.Error(2)
}

type mockQuoteUseCase struct{ mock.Mock }

func (m *mockQuoteUseCase) SubmitQuote(ctx context.Context, actor model.Actor, inquiryID uint, req *procurement_service.SubmitQuoteRequest) (*model.Quote, error) {
	args := m.Called(ctx, actor, inquiryID, req)
	quote, _ := args.Get(0).(*model.Quote)
	return quote, args.Error(1)
}

func (m *mockQuoteUseCase) GetQuote(ctx context.Context, actor model.Actor, id uint) (*model.Quote, error) {
	args := m.Called(ctx, actor, id)
	quote, _ := args.Get(0).(*model.Quote)
	return quote, args.Error(1)
}

func (m *mockQuoteUseCase) ListQuotes(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Quote, int, error) {
	args := m.Called(ctx, actor, status, offset, limit)
	quotes, _ := args.Get(0).([]*model.Quote)
	return quotes, args.Int(1), args.Error(2)
}

func (m *mockQuoteUseCase) DeleteQuote(ctx context.Context, actor model.Actor, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockQuoteUseCase) CancelQuote(ctx context.Context, actor model.Actor, id uint) (*model.Quote, error) {
	args := m.Called(ctx, actor, id)
	quote, _ := args.Get(0).(*model.Quote)
	return quote, args.Error(1)
}

type mockOrderUseCase struct{ mock.Mock }

func (m *mockOrderUseCase) AcceptQuote(ctx context.Context, actor model.Actor, quoteID uint, req *procurement_service.AcceptQuoteRequest) (*model.Order, error) {
	args := m.Called(ctx, actor, quoteID, req)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockOrderUseCase) UpdateOrderStatus(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateOrderStatusRequest) (*model.Order, error) {
	args := m.Called(ctx, actor, id, req)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockOrderUseCase) GetOrder(ctx context.Context, actor model.Actor, id uint) (*model.Order, error) {
	args := m.Called(ctx, actor, id)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockOrderUseCase) ListOrders(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Order, int, error) {
	args := m.Called(ctx, actor, status, offset, limit)
	orders, _ := args.Get(0).([]*model.Order)
	return orders, args.Int(1), args.Error(2)
}

func (m *mockOrderUseCase) ExportOrder(ctx context.Context, actor model.Actor, id uint) (string, *bytes.Buffer, error) {
	args := m.Called(ctx, actor, id)
	buf, _ := args.Get(1).(*bytes.Buffer)
	return args.String(0), buf, args.Error(2)
}

type mockProfileUseCase struct{ mock.Mock }

func (m *mockProfileUseCase) EnsureSupplierProfile(ctx context.Context, userID uint) (*model.SupplierProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*model.SupplierProfile)
	return profile, args.Error(1)
}

func (m *mockProfileUseCase) GetMyProfile(ctx context.Context, actor model.Actor) (*model.SupplierProfile, error) {
	args := m.Called(ctx, actor)
	profile, _ := args.Get(0).(*model.SupplierProfile)
	return profile, args.Error(1)
}

func (m *mockProfileUseCase) UpdateProfile(ctx context.Context, actor model.Actor, userID uint, req *procurement_service.UpdateSupplierProfileRequest) (*model.SupplierProfile, error) {
	args := m.Called(ctx, actor, userID, req)
	profile, _ := args.Get(0).(*model.SupplierProfile)
	return profile, args.Error(1)
}

func (m *mockProfileUseCase) RepairMissingProfiles(ctx context.Context, actor model.Actor) (*usecase.BatchResult[*model.SupplierProfile], error) {
	args := m.Called(ctx, actor)
	result, _ := args.Get(0).(*usecase.BatchResult[*model.SupplierProfile])
	return result, args.Error(1)
}
