package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

const productCacheTTL = 10 * time.Minute

// ProductCacheKey is the cache key of a product looked up by slug.
func ProductCacheKey(slug string) string { return "product:slug:" + slug }

// CreateProductInput is the admin create body.
type CreateProductInput struct {
	Name        string           `json:"name"        validate:"required,max=255"`
	Slug        string           `json:"slug"        validate:"required,max=255,slug"`
	Description string           `json:"description"`
	Image       string           `json:"image"       validate:"omitempty,max=512"`
	Price       *decimal.Decimal `json:"price"       validate:"required"`
	Stock       int              `json:"stock"       validate:"gte=0"`
	Active      *bool            `json:"active"`
}

// UpdateProductInput is the admin edit body; nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string          `json:"name"        validate:"omitempty,max=255"`
	Slug        *string          `json:"slug"        validate:"omitempty,max=255,slug"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"       validate:"omitempty,max=512"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"       validate:"omitempty,gte=0"`
	Active      *bool            `json:"active"`
}

type CatalogService struct {
	db       *database.Database
	products *repositories.ProductRepository
	cache    cache.Store
}

func NewCatalogService(db *database.Database, products *repositories.ProductRepository, store cache.Store) *CatalogService {
	return &CatalogService{db: db, products: products, cache: store}
}

// ListProducts pages through active products.
func (s *CatalogService) ListProducts(ctx context.Context, page, limit int) (orm.Page[models.Product], error) {
	p := orm.NewPagination(page, limit)
	ps, total, err := s.products.ListActive(s.db.Conn(ctx), p)
	if err != nil {
		return orm.Page[models.Product]{}, err
	}
	return orm.NewPage(ps, p.WithTotal(total)), nil
}

// GetProductBySlug returns an active product, read through the cache.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (models.Product, error) {
	key := ProductCacheKey(slug)

	var p models.Product
	if s.cache.Get(ctx, key, &p) {
		return p, nil
	}

	p, err := s.products.FindActiveBySlug(s.db.Conn(ctx), slug)
	if err != nil {
		return models.Product{}, notFound("product", err)
	}

	if err := s.cache.Set(ctx, key, p, productCacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("catalog: cache set failed", "key", key, "error", err)
	}
	return p, nil
}

// CreateProduct adds a product. Active defaults to true.
func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (models.Product, error) {
	if err := validateInput(in); err != nil {
		return models.Product{}, err
	}
	if in.Price.IsNegative() {
		return models.Product{}, validationError("price must be greater than or equal to 0")
	}

	p := models.Product{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Image:       in.Image,
		Price:       in.Price.Round(2),
		Stock:       in.Stock,
		Active:      in.Active == nil || *in.Active,
	}
	if err := s.products.Create(s.db.Conn(ctx), &p); err != nil {
		return models.Product{}, slugConflict(err)
	}

	s.evict(ctx, p.Slug)
	return p, nil
}

// UpdateProduct applies an admin edit and evicts the old and new slug keys.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in UpdateProductInput) (models.Product, error) {
	if err := validateInput(in); err != nil {
		return models.Product{}, err
	}
	if in.Price != nil && in.Price.IsNegative() {
		return models.Product{}, validationError("price must be greater than or equal to 0")
	}

	var (
		p       models.Product
		oldSlug string
	)
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		p, err = s.products.FindByID(tx, id)
		if err != nil {
			return notFound("product", err)
		}
		oldSlug = p.Slug

		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Slug != nil {
			p.Slug = *in.Slug
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Image != nil {
			p.Image = *in.Image
		}
		if in.Price != nil {
			p.Price = in.Price.Round(2)
		}
		if in.Stock != nil {
			p.Stock = *in.Stock
		}
		if in.Active != nil {
			p.Active = *in.Active
		}

		return slugConflict(s.products.Save(tx, &p))
	})
	if err != nil {
		return models.Product{}, err
	}

	s.evict(ctx, oldSlug, p.Slug)
	return p, nil
}

// InvalidateProducts evicts the cached entries of the given products,
// soft-deleted ones included.
func (s *CatalogService) InvalidateProducts(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	var slugs []string
	err := s.db.Conn(ctx).Unscoped().Model(&models.Product{}).Where("id IN ?", ids).Pluck("slug", &slugs).Error
	if err != nil {
		return err
	}

	s.evict(ctx, slugs...)
	return nil
}

func (s *CatalogService) evict(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, ProductCacheKey(slug))
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		logger.WithCtx(ctx).Warn("catalog: cache eviction failed", "keys", keys, "error", err)
	}
}

func slugConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return validationError("slug already exists")
	}
	return err
}
