package repository_test

import (
	"encoding/json"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepositoryCreateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := setupClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)

			var payload models.CreateOrderPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "923000000", payload.Phone)
			assert.InDelta(t, 5000.0, payload.TotalPrice, 0.001)

			writeJSON(t, w, http.StatusOK, models.Envelope{Message: "Pedido criado"})
		}))

		msg, err := repository.NewOrderRepo(client).CreateOrder(t.Context(), &models.CreateOrderPayload{
			Phone:       "923000000",
			TotalPrice:  5000,
			ShippingFee: 2000,
			Address:     models.Address{Name: "Casa", Lat: -8.8, Long: 13.2},
		})

		require.NoError(t, err)
		assert.Equal(t, "Pedido criado", msg)
	})

	t.Run("Rejected", func(t *testing.T) {
		client := setupClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, models.Envelope{Error: true, Message: "Endereço inválido"})
		}))

		_, err := repository.NewOrderRepo(client).CreateOrder(t.Context(), &models.CreateOrderPayload{})
		assertCode(t, err, appErrors.ErrCodeValidation)
	})
}

func TestOrderRepositoryListOrders(t *testing.T) {
	testCases := []struct {
		name           string
		body           any
		wantOrders     int
		wantPagination bool
	}{
		{
			name:           "Orders Key",
			body:           map[string]any{"orders": []map[string]any{{"id": 1}, {"id": 2}}, "pagination": map[string]any{"total_pages": 3}},
			wantOrders:     2,
			wantPagination: true,
		},
		{
			name:       "Bare Array",
			body:       []map[string]any{{"id": 1}},
			wantOrders: 1,
		},
		{
			name:           "Data Key",
			body:           map[string]any{"data": []map[string]any{{"id": 1}}, "pagination": map[string]any{"total_pages": 1}},
			wantOrders:     1,
			wantPagination: true,
		},
		{
			name:       "Empty Object",
			body:       map[string]any{},
			wantOrders: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := setupClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "3", r.URL.Query().Get("page"))
				writeJSON(t, w, http.StatusOK, tc.body)
			}))

			resp, err := repository.NewOrderRepo(client).ListOrders(t.Context(), 3)
			require.NoError(t, err)
			assert.Len(t, resp.Orders, tc.wantOrders)
			assert.Equal(t, tc.wantPagination, resp.Pagination != nil)
		})
	}
}
