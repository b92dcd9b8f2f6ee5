package transport

import "github.com/avoronin/shop_api/internal/models"

// CartLine is a cart line item joined with its current product record.
type CartLine struct {
	Product   models.Product `json:"product"`
	Quantity  uint           `json:"quantity"`
	LineTotal float64        `json:"line_total"`
}

// Cart is the per-user aggregate: product id -> line item plus the computed
// total. An empty cart is Items with no keys and Total 0, never null.
type Cart struct {
	Items map[uint]CartLine `json:"items"`
	Total float64           `json:"total"`
}

func NewCart() *Cart {
	return &Cart{Items: make(map[uint]CartLine)}
}

type AddToCartRequest struct {
	Quantity *int `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"category_id"`
	Count       uint    `json:"count"`
}

type PatchProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	Count       *uint    `json:"count"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
