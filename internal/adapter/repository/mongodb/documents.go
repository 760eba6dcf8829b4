package mongodb

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
)

type sweetDocument struct {
	ID            string    `bson:"_id"`
	Name          string    `bson:"name"`
	Description   string    `bson:"description"`
	Price         float64   `bson:"price"`
	Category      string    `bson:"category"`
	ImageURL      string    `bson:"imageUrl"`
	AverageRating float64   `bson:"averageRating"`
	ReviewCount   int       `bson:"reviewCount"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

func fromDomainSweet(s *domain.Sweet) *sweetDocument {
	return &sweetDocument{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Price:         s.Price,
		Category:      s.Category,
		ImageURL:      s.ImageURL,
		AverageRating: s.Rating.Average,
		ReviewCount:   s.Rating.Count,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (d *sweetDocument) toDomain() *domain.Sweet {
	return &domain.Sweet{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		Rating:      domain.RatingAggregate{Average: d.AverageRating, Count: d.ReviewCount},
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type lineItemDocument struct {
	SweetID  string `bson:"sweetId"`
	Name     string `bson:"name"`
	Quantity int    `bson:"quantity"`
}

type orderDocument struct {
	ID         string             `bson:"_id"`
	UserID     string             `bson:"userId"`
	UserName   string             `bson:"userName,omitempty"`
	UserEmail  string             `bson:"userEmail,omitempty"`
	UserPhone  string             `bson:"userPhone,omitempty"`
	Items      []lineItemDocument `bson:"items"`
	TotalPrice float64            `bson:"totalPrice"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func fromDomainOrder(o *domain.Order) *orderDocument {
	items := make([]lineItemDocument, len(o.Items))
	for i, it := range o.Items {
		items[i] = lineItemDocument{SweetID: it.SweetID, Name: it.Name, Quantity: it.Quantity}
	}
	return &orderDocument{
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

func (d *orderDocument) toDomain() *domain.Order {
	items := make([]domain.LineItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = domain.LineItem{SweetID: it.SweetID, Name: it.Name, Quantity: it.Quantity}
	}
	return &domain.Order{
		ID:         d.ID,
		UserID:     d.UserID,
		UserName:   d.UserName,
		UserEmail:  d.UserEmail,
		UserPhone:  d.UserPhone,
		Items:      items,
		TotalPrice: d.TotalPrice,
		Status:     domain.OrderStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type reviewDocument struct {
	ID        string    `bson:"_id"`
	SweetID   string    `bson:"sweetId"`
	OrderID   string    `bson:"orderId,omitempty"`
	UserID    string    `bson:"userId"`
	UserName  string    `bson:"userName"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"createdAt"`
}

func fromDomainReview(r *domain.Review) *reviewDocument {
	return &reviewDocument{
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

func (d *reviewDocument) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID,
		SweetID:   d.SweetID,
		OrderID:   d.OrderID,
		UserID:    d.UserID,
		UserName:  d.UserName,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

type userDocument struct {
	ID        string    `bson:"_id"`
	FullName  string    `bson:"fullName"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone,omitempty"`
	Role      string    `bson:"role,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID,
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		Role:      d.Role,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type contactDocument struct {
	ID        string    `bson:"_id"`
	FirstName string    `bson:"firstName"`
	LastName  string    `bson:"lastName"`
	Email     string    `bson:"email"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d *contactDocument) toDomain() *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
}
