package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/database"
)

// CartLine is one visible cart row with its live product.
type CartLine struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   models.Product  `json:"product"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Cart is the {items, subtotal, itemCount} view of a user's cart.
type Cart struct {
	Items     []CartLine      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
}

type CartService struct {
	db       *database.Database
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService(db *database.Database, carts *repositories.CartRepository, products *repositories.ProductRepository) *CartService {
	return &CartService{db: db, carts: carts, products: products}
}

// GetCart returns the user's cart. Lines whose product is inactive or gone
// are left out of items, subtotal and itemCount.
func (s *CartService) GetCart(ctx context.Context, userID uint) (Cart, error) {
	rows, err := s.carts.ListWithProducts(s.db.Conn(ctx), userID)
	if err != nil {
		return Cart{}, err
	}

	cart := Cart{Items: make([]CartLine, 0, len(rows)), Subtotal: decimal.Zero}
	for _, row := range rows {
		if row.Product == nil || !row.Product.Active {
			continue
		}
		line := CartLine{
			ID:        row.ID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Product:   *row.Product,
			LineTotal: LineTotal(row.Product.Price, row.Quantity),
		}
		cart.Items = append(cart.Items, line)
		cart.Subtotal = cart.Subtotal.Add(line.LineTotal)
		cart.ItemCount += row.Quantity
	}
	cart.Subtotal = cart.Subtotal.Round(2)
	return cart, nil
}

// AddItem puts quantity units of a product in the cart, merging into an
// existing line for the same product. The merged quantity may not exceed stock.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, validationError("quantity must be at least 1")
	}

	var item models.CartItem
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		product, err := s.products.FindActiveByID(tx, productID)
		if err != nil {
			return notFound("product", err)
		}

		existing, err := s.carts.FindByProduct(tx, userID, productID)
		switch {
		case err == nil:
			total := existing.Quantity + quantity
			if total > product.Stock {
				return insufficient(product)
			}
			if err := s.carts.SetQuantity(tx, existing.ID, total); err != nil {
				return err
			}
			existing.Quantity = total
			item = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > product.Stock {
				return insufficient(product)
			}
			item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
			if err := s.carts.Create(tx, &item); err != nil {
				return err
			}
		default:
			return err
		}

		item.Product = &product
		return nil
	})
	return item, err
}

// UpdateItem sets the quantity of one of the user's lines.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, validationError("quantity must be at least 1")
	}

	var item models.CartItem
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		item, err = s.carts.Find(tx, userID, itemID)
		if err != nil {
			return notFound("cart item", err)
		}
		if item.Product == nil || !item.Product.Active {
			return fmt.Errorf("product %w", ErrNotFound)
		}
		if quantity > item.Product.Stock {
			return insufficient(*item.Product)
		}

		item.Quantity = quantity
		return s.carts.SetQuantity(tx, item.ID, quantity)
	})
	return item, err
}

// RemoveItem deletes one of the user's lines. Removing a missing line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return s.carts.Delete(s.db.Conn(ctx), userID, itemID)
}

// ClearCart empties the user's cart. Clearing an empty cart is a no-op.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.carts.Clear(s.db.Conn(ctx), userID)
}

func insufficient(p models.Product) error {
	return fmt.Errorf("%w for %s (available: %d)", ErrInsufficientStock, p.Name, p.Stock)
}
