package service

import (
	"context"
	"strings"

	"contact-book/internal/domain"
	"contact-book/internal/repository"
)

// suggestionLimit caps how many distinct names Suggest returns.
const suggestionLimit = 5

// ContactService coordinates owner-scoped contact operations.
type ContactService interface {
	List(ctx context.Context, userID int64, search string) ([]domain.Contact, error)
	Create(ctx context.Context, userID int64, name, phone, email, address string) (int64, error)
	Update(ctx context.Context, userID, contactID int64, name, phone, email, address string) error
	Delete(ctx context.Context, userID, contactID int64) error
	Suggest(ctx context.Context, userID int64, partial string) ([]string, error)
}

type contactService struct {
	contacts repository.ContactRepository
}

func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) List(ctx context.Context, userID int64, search string) ([]domain.Contact, error) {
	return s.contacts.List(ctx, userID, strings.TrimSpace(search))
}

func (s *contactService) Create(ctx context.Context, userID int64, name, phone, email, address string) (int64, error) {
	contact, err := buildContact(userID, name, phone, email, address)
	if err != nil {
		return 0, err
	}
	return s.contacts.Create(ctx, contact)
}

func (s *contactService) Update(ctx context.Context, userID, contactID int64, name, phone, email, address string) error {
	contact, err := buildContact(userID, name, phone, email, address)
	if err != nil {
		return err
	}
	contact.ID = contactID
	return s.contacts.Update(ctx, contact)
}

func (s *contactService) Delete(ctx context.Context, userID, contactID int64) error {
	return s.contacts.Delete(ctx, userID, contactID)
}

func (s *contactService) Suggest(ctx context.Context, userID int64, partial string) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []string{}, nil
	}
	return s.contacts.SuggestNames(ctx, userID, partial, suggestionLimit)
}

func buildContact(userID int64, name, phone, email, address string) (*domain.Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if phone == "" {
		return nil, domain.NewValidationError("phone is required")
	}

	return &domain.Contact{
		UserID:  userID,
		Name:    name,
		Phone:   phone,
		Email:   strings.TrimSpace(email),
		Address: strings.TrimSpace(address),
	}, nil
}
