package domain

import "fmt"

// CartItem is a sweet waiting in the cart, priced at the time it was added.
type CartItem struct {
	SweetID  string  `json:"sweetId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Cart is a user's pending selection.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// NewCart returns an empty cart for the user.
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// Add puts quantity units of the sweet into the cart, merging with an existing line.
func (c *Cart) Add(s *Sweet, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	for i := range c.Items {
		if c.Items[i].SweetID == s.ID {
			c.Items[i].Quantity += quantity
			c.Items[i].Price = s.Price
			c.Items[i].Name = s.Name
			return nil
		}
	}
	c.Items = append(c.Items, CartItem{SweetID: s.ID, Name: s.Name, Price: s.Price, Quantity: quantity})
	return nil
}

// IsEmpty reports whether the cart has nothing to check out.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Total is the cart value rounded to cents.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return RoundCents(total)
}

// LineItems converts the cart into order line items.
func (c *Cart) LineItems() []LineItem {
	items := make([]LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, LineItem{SweetID: it.SweetID, Name: it.Name, Quantity: it.Quantity})
	}
	return items
}
