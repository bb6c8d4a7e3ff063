package models

import "time"

type Address struct {
	ID   int64   `json:"id,omitempty"`
	Name string  `json:"name" validate:"required"`
	Long float64 `json:"long" validate:"longitude"`
	Lat  float64 `json:"lat" validate:"latitude"`
}

type OrderItem struct {
	ID              int64   `json:"id"`
	OrderID         string  `json:"order_id"`
	ProductPublicID string  `json:"product_public_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Image           string  `json:"image"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
}

type Order struct {
	ID          int64       `json:"id"`
	PublicID    string      `json:"public_id"`
	UserID      string      `json:"user_id"`
	AddressID   int64       `json:"address_id"`
	PhoneNumber string      `json:"phone_number"`
	TotalPrice  float64     `json:"total_price"`
	ShippingFee float64     `json:"shipping_fee,omitempty"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"createdAt"`
	Status      OrderStatus `json:"status"`
}

// CreateOrderPayload is the body POSTed to the backend's /orders.
type CreateOrderPayload struct {
	Items       []CartLine `json:"items"`
	Address     Address    `json:"address"`
	Phone       string     `json:"phone"`
	TotalPrice  float64    `json:"total_price"`
	ShippingFee float64    `json:"shipping_fee"`
}

type CheckoutRequest struct {
	Address Address `json:"address" validate:"required"`
}

type CheckoutResult struct {
	Message     string  `json:"message"`
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shipping_fee"`
	Total       float64 `json:"total"`
}

// CheckoutContext is everything the checkout page needs at once.
type CheckoutContext struct {
	Cart        CartSnapshot `json:"cart"`
	Addresses   []Address    `json:"addresses"`
	ShippingFee float64      `json:"shipping_fee"`
	Total       float64      `json:"total"`
}

type OrderHistoryResponse struct {
	Orders     []Order     `json:"orders"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type AddressListResponse struct {
	Addresses []Address `json:"addresses"`
}
