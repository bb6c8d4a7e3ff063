package models

// CartLine is one product entry in a cart. Product is the denormalized copy
// the server returned with the line, not a live catalog reference.
type CartLine struct {
	ID       int64   `json:"id"`
	CartID   int64   `json:"cart_id,omitempty"`
	Quantity int     `json:"quantity"`
	Product  Product `json:"product"`
}

func (l CartLine) LineTotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart is the server-owned cart. An empty PublicID is the null cart.
type Cart struct {
	PublicID string     `json:"public_id"`
	Lines    []CartLine `json:"items"`
}

func (c *Cart) IsNull() bool {
	return c == nil || c.PublicID == ""
}

func (c *Cart) TotalItems() int {
	if c == nil {
		return 0
	}

	var total int
	for _, line := range c.Lines {
		total += line.Quantity
	}

	return total
}

func (c *Cart) Subtotal() float64 {
	if c == nil {
		return 0
	}

	var subtotal float64
	for _, line := range c.Lines {
		subtotal += line.LineTotal()
	}

	return subtotal
}

// CartResponse is the GET cart payload. Cart is nil when the user has none.
type CartResponse struct {
	Cart *Cart `json:"cart"`
}

type AddCartItemPayload struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemPayload struct {
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity"`
}

type CartOwnerPayload struct {
	UserID string `json:"user_id"`
}

// CartMutationResponse is returned by every cart mutation endpoint.
type CartMutationResponse struct {
	Envelope
	CartItem *CartLine `json:"cart_item,omitempty"`
}

type AddItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity  int     `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateQuantityRequest needs an explicit quantity; a value below 1 removes
// the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartLineView is a line as exposed to consumers.
type CartLineView struct {
	CartLine
	LineTotal float64 `json:"line_total"`
	Pending   bool    `json:"pending"`
}

// CartSnapshot is a read-only view of the cart mirror. Totals are computed
// from Lines at snapshot time.
type CartSnapshot struct {
	CartID     string         `json:"cart_id,omitempty"`
	State      CartState      `json:"state"`
	Lines      []CartLineView `json:"lines"`
	TotalItems int            `json:"total_items"`
	Subtotal   float64        `json:"subtotal"`
}
