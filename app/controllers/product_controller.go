package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

func (pc *ProductController) Index(c *ctx.Context) {
	page, err := pc.catalog.ListProducts(c.Context(),
		c.QueryInt("page", orm.DefaultPage), c.QueryInt("limit", orm.DefaultLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(page)
}

func (pc *ProductController) Show(c *ctx.Context) {
	p, err := pc.catalog.GetProductBySlug(c.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(p)
}

func (pc *ProductController) Store(c *ctx.Context) {
	var in services.CreateProductInput
	if !c.BindJSON(&in) {
		return
	}

	p, err := pc.catalog.CreateProduct(c.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(p)
}

func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}

	var in services.UpdateProductInput
	if !c.BindJSON(&in) {
		return
	}

	p, err := pc.catalog.UpdateProduct(c.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(p)
}
