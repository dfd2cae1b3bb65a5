package services

import (
	"project-tracker/models"
)

// ContactService handles CRUD for contacts. Every call opens its own
// unit of work; mutations reach the store only through Save.
type ContactService struct {
	uow UnitOfWorkFactory
}

func NewContactService(uow UnitOfWorkFactory) *ContactService {
	return &ContactService{uow: uow}
}

// GetAll returns every contact. An empty slice is a valid result.
func (s *ContactService) GetAll() ([]*models.Contact, error) {
	uow := s.uow()
	defer uow.Close()

	return uow.Contacts().GetAll()
}

// GetByID returns the contact, or ErrContactNotFound.
func (s *ContactService) GetByID(id int) (*models.Contact, error) {
	uow := s.uow()
	defer uow.Close()

	contact, found, err := uow.Contacts().GetByID(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrContactNotFound
	}
	return contact, nil
}

// Create persists a new contact and returns its assigned id.
func (s *ContactService) Create(req models.ContactRequest) (int, error) {
	uow := s.uow()
	defer uow.Close()

	contact := &models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := uow.Contacts().Insert(contact); err != nil {
		return 0, err
	}
	if err := uow.Save(); err != nil {
		return 0, err
	}
	return contact.ID, nil
}

// Update replaces an existing contact's fields.
func (s *ContactService) Update(id int, req models.ContactRequest) error {
	uow := s.uow()
	defer uow.Close()

	contact, found, err := uow.Contacts().GetByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrContactNotFound
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	uow.Contacts().Update(contact)
	return uow.Save()
}

// Delete removes a contact by id.
func (s *ContactService) Delete(id int) error {
	uow := s.uow()
	defer uow.Close()

	contact, found, err := uow.Contacts().GetByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrContactNotFound
	}

	uow.Contacts().Delete(contact)
	return uow.Save()
}
