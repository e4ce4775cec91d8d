package model

// Tag labels a product for matching and search.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a member-owned product listing.
//
// Fields:
//  ID           - stable identifier.
//  Name         - product name.
//  Description  - free-text description.
//  Category     - product category slug.
//  Images       - uploaded image URLs.
//  Status       - active or inactive.
//  Featured     - highlighted in listings.
//  Slug         - URL slug.
//  BusinessID   - owning business.
//  BusinessName - denormalized owner name for list rows.
//  Tags         - matching tags.
//  Link         - optional external product link.
type Product struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Images       []string `json:"images,omitempty"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
	Slug         string   `json:"slug"`
	BusinessID   int      `json:"businessId"`
	BusinessName string   `json:"businessName,omitempty"`
	Tags         []Tag    `json:"tags,omitempty"`
	Link         string   `json:"link,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	ModifiedAt   string   `json:"modifiedAt,omitempty"`
}

// ProductForm carries the create/update fields for a product.
type ProductForm struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=active inactive"`
	Featured    bool     `json:"featured"`
	Tags        []string `json:"tags,omitempty"`
	BusinessID  int      `json:"businessId" validate:"required"`
	Link        string   `json:"link,omitempty" validate:"omitempty,weburl"`
}

// ProductList is the upstream response body for a product listing.
type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
