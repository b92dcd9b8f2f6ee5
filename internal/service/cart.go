package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avoronin/shop_api/internal/models"
	"github.com/avoronin/shop_api/internal/repo"
	"github.com/avoronin/shop_api/internal/transport"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetCart never fails for a valid user id: a user without rows gets an empty
// cart with total 0.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*transport.Cart, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	cart := transport.NewCart()
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			// a line whose product no longer exists is not rendered
			continue
		}
		line := transport.CartLine{
			Product:   p,
			Quantity:  it.Quantity,
			LineTotal: float64(it.Quantity) * p.Price,
		}
		cart.Items[it.ProductID] = line
		cart.Total += line.LineTotal
	}
	return cart, nil
}

// AddToCart adds quantity units of a product, incrementing an existing line.
// Each call adds; additions are never treated as idempotent.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*transport.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  uint(quantity),
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// UpdateQuantity sets an absolute quantity. Zero removes the line; updating a
// line that does not exist is ErrNotFound, never a create.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %w", ErrValidation)
	}

	var err error
	if quantity == 0 {
		err = s.Repo.RemoveFromCart(ctx, userID, productID)
	} else {
		err = s.Repo.SetQuantity(ctx, userID, productID, uint(quantity))
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart item for product %d: %w", productID, ErrNotFound)
	}
	return err
}

// EmptyCart removes every line for the user. Safe to call on an already
// empty cart.
func (s *CartService) EmptyCart(ctx context.Context, userID uint) (*transport.Cart, error) {
	if err := s.Repo.DeleteAllFromCart(ctx, userID); err != nil {
		return nil, err
	}
	return transport.NewCart(), nil
}
