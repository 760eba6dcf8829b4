package httpapi

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
)

type sweetResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"imageUrl"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	Stars         int       `json:"stars"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toSweetResponse(s *domain.Sweet) sweetResponse {
	return sweetResponse{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Price:         s.Price,
		Category:      s.Category,
		ImageURL:      s.ImageURL,
		AverageRating: s.Rating.Average,
		ReviewCount:   s.Rating.Count,
		Stars:         s.Rating.Stars(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toSweetResponses(sweets []*domain.Sweet) []sweetResponse {
	out := make([]sweetResponse, len(sweets))
	for i, s := range sweets {
		out[i] = toSweetResponse(s)
	}
	return out
}

type lineItemResponse struct {
	SweetID  string `json:"sweetId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type orderResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	UserName   string             `json:"userName,omitempty"`
	UserEmail  string             `json:"userEmail,omitempty"`
	UserPhone  string             `json:"userPhone,omitempty"`
	Items      []lineItemResponse `json:"items"`
	TotalPrice float64            `json:"totalPrice"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]lineItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = lineItemResponse{SweetID: it.SweetID, Name: it.Name, Quantity: it.Quantity}
	}
	return orderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		UserName:   o.UserName,
		UserEmail:  o.UserEmail,
		UserPhone:  o.UserPhone,
		Items:      items,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

type reviewResponse struct {
	ID        string    `json:"id"`
	SweetID   string    `json:"sweetId"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewResponse(r *domain.Review) *reviewResponse {
	return &reviewResponse{
		ID:        r.ID,
		SweetID:   r.SweetID,
		OrderID:   r.OrderID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

type userResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, FullName: u.FullName, Email: u.Email, Phone: u.Phone, Role: u.Role, CreatedAt: u.CreatedAt}
}

type contactResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func toContactResponse(c *domain.ContactMessage) contactResponse {
	return contactResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Message: c.Message, CreatedAt: c.CreatedAt}
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func toCartResponse(c *domain.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{Items: items, Total: c.Total()}
}
