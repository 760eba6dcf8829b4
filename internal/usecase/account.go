package usecase

import (
	"context"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/validator"
	"go.uber.org/zap"
)

// AccountService covers the customer's own profile and the public contact form.
type AccountService struct {
	users    domain.UserRepository
	contacts domain.ContactRepository
	logger   *logger.Logger
}

func NewAccountService(users domain.UserRepository, contacts domain.ContactRepository, log *logger.Logger) *AccountService {
	return &AccountService{users: users, contacts: contacts, logger: log.Named("AccountService")}
}

func (s *AccountService) Profile(ctx context.Context, p *domain.Principal) (*domain.User, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.GetByID(ctx, p.UserID)
}

// ProfileInput is the self-service part of a profile.
type ProfileInput struct {
	FullName string `json:"fullName" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=30"`
}

func (s *AccountService) UpdateProfile(ctx context.Context, p *domain.Principal, in ProfileInput) (*domain.User, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	return s.users.UpsertProfile(ctx, p.UserID, domain.ProfileUpdate{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
	})
}

// ContactInput is a message submitted through the contact form.
type ContactInput struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message" validate:"notblank,max=5000"`
}

func (s *AccountService) SubmitContact(ctx context.Context, in ContactInput) (*domain.ContactMessage, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	msg := &domain.ContactMessage{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Message:   strings.TrimSpace(in.Message),
	}
	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.logger.Info("Contact message received", zap.String("contact_id", msg.ID))
	return msg, nil
}
