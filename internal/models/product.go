package models

// Product represents a product in the catalog.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Status      bool     `json:"status"`
	Thumbnails  []string `json:"thumbnails"`
}

// ProductInput is the body of a create request. Pointer fields tell a
// missing field apart from a zero value. Stock is decoded as a number so that
// integral spellings such as 2.0 or 1e2 are accepted.
type ProductInput struct {
	Title       *string  `json:"title" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Code        *string  `json:"code" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *float64 `json:"stock" validate:"required,gte=0,integral"`
	Category    *string  `json:"category" validate:"required"`
	Status      *bool    `json:"status"`
	Thumbnails  []string `json:"thumbnails"`
}

// Product builds the record to store, applying the create defaults:
// status is true and thumbnails is empty unless supplied.
// It must only be called on validated input.
func (in ProductInput) Product() Product {
	p := Product{
		Title:       *in.Title,
		Description: *in.Description,
		Code:        *in.Code,
		Price:       *in.Price,
		Stock:       int(*in.Stock),
		Category:    *in.Category,
		Status:      true,
		Thumbnails:  []string{},
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Thumbnails != nil {
		p.Thumbnails = append([]string{}, in.Thumbnails...)
	}
	return p
}

// ProductPatch is a partial update. Absent fields are nil and left untouched;
// there is no id field, so an id in the request body is dropped.
type ProductPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Code        *string  `json:"code"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *float64 `json:"stock" validate:"omitempty,gte=0,integral"`
	Category    *string  `json:"category"`
	Status      *bool    `json:"status"`
	Thumbnails  []string `json:"thumbnails"`
}

// Apply overlays the patch on p. Thumbnails are replaced wholesale.
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Code != nil {
		p.Code = *patch.Code
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = int(*patch.Stock)
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Thumbnails != nil {
		p.Thumbnails = append([]string{}, patch.Thumbnails...)
	}
	return p
}
