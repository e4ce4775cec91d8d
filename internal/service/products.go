package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// productFormMessages maps a failed field and tag to the message
// shown to the user.
var productFormMessages = map[string]string{
	"Name/required":        "Product name is required",
	"Description/required": "Product description is required",
	"Category/required":    "Product category is required",
	"Status/required":      "Product status is required",
	"Status/oneof":         "Product status must be active or inactive",
	"BusinessID/required":  "Owning business is required",
	"Link/weburl":          "Invalid product link",
}

// Products manages a member's product listings.
type Products struct {
	state
	api      *upstream.Client
	notify   notify.Notifier
	validate *validator.Validate

	products   []model.Product
	pagination model.Pagination
}

func NewProducts(api *upstream.Client, n notify.Notifier) *Products {
	return &Products{
		api:        api,
		notify:     n,
		validate:   newFormValidator(),
		pagination: model.DefaultPagination(),
	}
}

// List returns the cached products.
func (p *Products) List() ([]model.Product, model.Pagination) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.products, p.pagination
}

func (p *Products) checkForm(form model.ProductForm) *ValidationError {
	err := p.validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &ValidationError{Field: "form", Message: "Invalid form submission"}
	}
	first := verrs[0]
	msg, ok := productFormMessages[first.StructField()+"/"+first.Tag()]
	if !ok {
		msg = "Invalid value for " + first.StructField()
	}
	return &ValidationError{Field: first.StructField(), Message: msg}
}

// Fetch loads a product page, discarding superseded responses.
func (p *Products) Fetch(ctx context.Context, s *model.Session, page, limit int) ([]model.Product, error) {
	seq := p.beginLoad()
	defer p.endLoad()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Data model.ProductList `json:"data"`
	}
	if err := p.api.Get(ctx, s.ID, "/products?"+q.Encode(), &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch products")
		p.setErr(msg)
		p.notify.Error(ctx, s, "products", msg)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.latest(seq) {
		return resp.Data.Products, nil
	}
	p.products = resp.Data.Products
	p.pagination = resp.Data.Pagination
	return p.products, nil
}

// Create validates and submits a new product, appending the created
// record to the cache on success.
func (p *Products) Create(ctx context.Context, s *model.Session, form model.ProductForm) (*model.Product, error) {
	if verr := p.checkForm(form); verr != nil {
		p.setErr(verr.Message)
		p.notify.Error(ctx, s, "products", verr.Message)
		return nil, verr
	}

	p.beginSubmit()
	defer p.endSubmit()

	var resp struct {
		Data struct {
			Product model.Product `json:"product"`
		} `json:"data"`
	}
	if err := p.api.Post(ctx, s.ID, "/products", form, &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to create product")
		p.setErr(msg)
		p.notify.Error(ctx, s, "products", msg)
		return nil, err
	}

	p.mu.Lock()
	p.products = append(p.products, resp.Data.Product)
	p.pagination.Total++
	p.mu.Unlock()

	p.notify.Success(ctx, s, "products", "Product created successfully")
	return &resp.Data.Product, nil
}

// Update validates and saves a product, patching the cached slot.
func (p *Products) Update(ctx context.Context, s *model.Session, id int, form model.ProductForm) (*model.Product, error) {
	if verr := p.checkForm(form); verr != nil {
		p.setErr(verr.Message)
		p.notify.Error(ctx, s, "products", verr.Message)
		return nil, verr
	}

	p.beginSubmit()
	defer p.endSubmit()

	var resp struct {
		Data struct {
			Product model.Product `json:"product"`
		} `json:"data"`
	}
	if err := p.api.Put(ctx, s.ID, "/products/"+strconv.Itoa(id), form, &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to update product")
		p.setErr(msg)
		p.notify.Error(ctx, s, "products", msg)
		return nil, err
	}

	p.mu.Lock()
	for i := range p.products {
		if p.products[i].ID == id {
			p.products[i] = resp.Data.Product
			break
		}
	}
	p.mu.Unlock()

	p.notify.Success(ctx, s, "products", "Product updated successfully")
	return &resp.Data.Product, nil
}

// Delete removes a product and drops it from the cache.
func (p *Products) Delete(ctx context.Context, s *model.Session, id int) error {
	p.beginSubmit()
	defer p.endSubmit()

	if err := p.api.Delete(ctx, s.ID, "/products/"+strconv.Itoa(id), nil); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to delete product")
		p.setErr(msg)
		p.notify.Error(ctx, s, "products", msg)
		return err
	}

	p.mu.Lock()
	for i := range p.products {
		if p.products[i].ID == id {
			p.products = append(p.products[:i], p.products[i+1:]...)
			if p.pagination.Total > 0 {
				p.pagination.Total--
			}
			break
		}
	}
	p.mu.Unlock()

	p.notify.Success(ctx, s, "products", "Product deleted successfully")
	return nil
}

// Reset drops the cache and flags.
func (p *Products) Reset() {
	p.reset()
	p.mu.Lock()
	p.products = nil
	p.pagination = model.DefaultPagination()
	p.mu.Unlock()
}
