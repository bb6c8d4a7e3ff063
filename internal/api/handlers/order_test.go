package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupOrderTest(t *testing.T) (*mocks.OrderService, *handlers.OrderHandler) {
	mockOrderService := new(mocks.OrderService)
	t.Cleanup(func() { mockOrderService.AssertExpectations(t) })
	return mockOrderService, handlers.NewOrderHandler(mockOrderService)
}

func TestCheckout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest(t)
		mockOrderService.On("Checkout", mock.Anything, &models.CheckoutRequest{
			Address: models.Address{Name: "Rua Direita, Luanda", Lat: -8.83, Long: 13.23},
		}).Return(&models.CheckoutResult{Message: "Order placed", Subtotal: 3000, ShippingFee: 2000, Total: 5000}, nil).Once()

		body := strings.NewReader(`{"address":{"name":"Rua Direita, Luanda","lat":-8.83,"long":13.23}}`)
		recorder := httptest.NewRecorder()
		orderHandler.Checkout()(recorder, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", body, testUser, nil))

		assert.Equal(t, http.StatusCreated, recorder.Code)
		var result models.CheckoutResult
		testutils.DecodeResponse(t, recorder, &result)
		assert.InDelta(t, 5000, result.Total, 0.001)
	})

	t.Run("Failure - Missing Address", func(t *testing.T) {
		_, orderHandler := setupOrderTest(t)

		recorder := httptest.NewRecorder()
		orderHandler.Checkout()(recorder, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"address":{}}`), testUser, nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest(t)
		mockOrderService.On("Checkout", mock.Anything, mock.Anything).Return(nil, appErrors.ValidationError("Your cart is empty")).Once()

		body := strings.NewReader(`{"address":{"name":"Talatona","lat":-8.9,"long":13.1}}`)
		recorder := httptest.NewRecorder()
		orderHandler.Checkout()(recorder, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", body, testUser, nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := testutils.DecodeResponse(t, recorder, nil)
		assert.Equal(t, "Your cart is empty", resp.Error.Message)
	})
}

func TestCheckoutContext(t *testing.T) {
	mockOrderService, orderHandler := setupOrderTest(t)
	mockOrderService.On("CheckoutContext", mock.Anything).Return(&models.CheckoutContext{
		Cart: boundSnapshot(), Addresses: []models.Address{{ID: 1, Name: "Casa"}}, ShippingFee: 2000, Total: 5000,
	}, nil).Once()

	recorder := httptest.NewRecorder()
	orderHandler.CheckoutContext()(recorder, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/checkout", nil, testUser, nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	var checkout models.CheckoutContext
	testutils.DecodeResponse(t, recorder, &checkout)
	assert.Len(t, checkout.Addresses, 1)
}

func TestListOrders(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest(t)
		mockOrderService.On("ListOrders", mock.Anything, 2).Return(&models.OrderHistoryResponse{Orders: []models.Order{{ID: 1, PublicID: "o-1"}}}, nil).Once()

		recorder := httptest.NewRecorder()
		orderHandler.ListOrders()(recorder, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders?page=2", nil, testUser, nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Invalid Page", func(t *testing.T) {
		_, orderHandler := setupOrderTest(t)

		recorder := httptest.NewRecorder()
		orderHandler.ListOrders()(recorder, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders?page=-1", nil, testUser, nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
