package services_test

import (
	"context"
	"fmt"
	"testing"

	"loja/internal/errs"
	"loja/internal/models"
	"loja/internal/repositories"
	"loja/internal/services"
	"loja/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// twoItemCart returns a cart holding variant A (1000 cents x2) and variant
// B (500 cents x1) with an address linked, plus the catalog behind it.
func twoItemCart() (*models.Cart, *repositories.MockCatalogRepository) {
	variantA := models.ProductVariant{
		ID:           "aaaaaaaa-0000-0000-0000-00000000000a",
		Product:      models.Product{Name: "Shirt", Description: "Cotton shirt"},
		Name:         "M",
		PriceInCents: 1000,
		ImageURL:     "https://img.example/shirt.png",
	}
	variantB := models.ProductVariant{
		ID:           "aaaaaaaa-0000-0000-0000-00000000000b",
		Product:      models.Product{Name: "Cap"},
		Name:         "One size",
		PriceInCents: 500,
	}
	catalog := repositories.NewMockCatalogRepository()
	catalog.Put(variantA)
	catalog.Put(variantB)

	addressID := "cccccccc-0000-0000-0000-000000000001"
	cart := &models.Cart{
		ID:                "cart-1",
		UserID:            "user-1",
		ShippingAddressID: &addressID,
		Items: []models.CartItem{
			{CartID: "cart-1", ProductVariantID: variantA.ID, Quantity: 2},
			{CartID: "cart-1", ProductVariantID: variantB.ID, Quantity: 1},
		},
	}
	return cart, catalog
}

func TestOrderService_CreateFromCart_SnapshotsPricesAndTotal(t *testing.T) {
	cart, catalog := twoItemCart()
	cartRepo := new(MockCartRepository)
	orderRepo := repositories.NewMockOrderRepository()
	publisher := new(MockPublisher)

	cartRepo.On("GetByUserID", "user-1").Return(cart, nil).Once()
	publisher.On("Publish", rabbitmq.RouteOrderCreated, mock.Anything).Return(nil).Once()

	service := services.NewOrderService(orderRepo, cartRepo, catalog, nil, publisher)
	order, err := service.CreateFromCart(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2500), order.TotalInCents)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Shirt - M", order.Items[0].ProductName)
	assert.Equal(t, int64(1000), order.Items[0].PriceInCents)
	assert.Equal(t, 2, order.Items[0].Quantity)
	publisher.AssertExpectations(t)

	// A later catalog price change must not touch the placed order.
	catalog.Put(models.ProductVariant{
		ID:           "aaaaaaaa-0000-0000-0000-00000000000a",
		Product:      models.Product{Name: "Shirt"},
		Name:         "M",
		PriceInCents: 1200,
	})
	stored, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2500), stored.TotalInCents)
	assert.Equal(t, int64(1000), stored.Items[0].PriceInCents)
}

func TestOrderService_CreateFromCart_InvalidatesCartCache(t *testing.T) {
	cart, catalog := twoItemCart()
	cartRepo := new(MockCartRepository)
	orderRepo := repositories.NewMockOrderRepository()
	cartCache := new(MockCartCache)
	service := services.NewOrderService(orderRepo, cartRepo, catalog, cartCache, nil)

	cartRepo.On("GetByUserID", "user-1").Return(cart, nil).Once()
	cartCache.On("Invalidate", mock.Anything, "user-1").Return(nil).Once()

	_, err := service.CreateFromCart(context.Background(), "user-1")
	assert.NoError(t, err)
	cartCache.AssertExpectations(t)
}

func TestOrderService_CreateFromCart_EmptyCart(t *testing.T) {
	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepo)
	service := services.NewOrderService(orderRepo, cartRepo, repositories.NewMockCatalogRepository(), nil, nil)

	cartRepo.On("GetByUserID", "user-1").Return(&models.Cart{ID: "cart-1", UserID: "user-1"}, nil).Once()

	_, err := service.CreateFromCart(context.Background(), "user-1")
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything)
}

func TestOrderService_CreateFromCart_NoShippingAddress(t *testing.T) {
	cart, catalog := twoItemCart()
	cart.ShippingAddressID = nil
	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepo)
	service := services.NewOrderService(orderRepo, cartRepo, catalog, nil, nil)

	cartRepo.On("GetByUserID", "user-1").Return(cart, nil).Once()

	_, err := service.CreateFromCart(context.Background(), "user-1")
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything)
}

func TestOrderService_CreateFromCart_RepoFailurePublishesNothing(t *testing.T) {
	cart, catalog := twoItemCart()
	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepo)
	publisher := new(MockPublisher)
	service := services.NewOrderService(orderRepo, cartRepo, catalog, nil, publisher)

	cartRepo.On("GetByUserID", "user-1").Return(cart, nil).Once()
	orderRepo.On("CreateWithItems", mock.AnythingOfType("*models.Order")).
		Return(fmt.Errorf("database error")).Once()

	_, err := service.CreateFromCart(context.Background(), "user-1")
	assert.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOrderService_GetOrder_Forbidden(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orderRepo, new(MockCartRepository), repositories.NewMockCatalogRepository(), nil, nil)

	order := &models.Order{ID: "order-1", UserID: "user-1", Status: models.OrderStatusPending}
	assert.NoError(t, orderRepo.CreateWithItems(order))

	_, err := service.GetOrder(context.Background(), "user-2", "order-1")
	assert.ErrorIs(t, err, errs.ErrForbidden)

	got, err := service.GetOrder(context.Background(), "user-1", "order-1")
	assert.NoError(t, err)
	assert.Equal(t, "order-1", got.ID)
}

func TestOrderService_ListOrders_NewestFirst(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	service := services.NewOrderService(orderRepo, new(MockCartRepository), repositories.NewMockCatalogRepository(), nil, nil)

	expected := []models.Order{{ID: "order-2"}, {ID: "order-1"}}
	orderRepo.On("ListByUser", "user-1").Return(expected, nil).Once()

	orders, err := service.ListOrders(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	orderRepo.AssertExpectations(t)
}
