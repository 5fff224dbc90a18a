package models

// CartLine pairs a product id with how many times it was added.
type CartLine struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Cart holds lines in the order products were first added.
type Cart struct {
	ID       string     `json:"id"`
	Products []CartLine `json:"products"`
}

// AddProduct increments the line for productID, appending a new line with
// quantity 1 when the product is not in the cart yet.
func (c *Cart) AddProduct(productID string) {
	for i := range c.Products {
		if c.Products[i].Product == productID {
			c.Products[i].Quantity++
			return
		}
	}
	c.Products = append(c.Products, CartLine{Product: productID, Quantity: 1})
}

// Lines returns the cart's lines, never nil.
func (c *Cart) Lines() []CartLine {
	if c.Products == nil {
		return []CartLine{}
	}
	return c.Products
}
