package services

import (
	"fmt"

	"project-tracker/database"
	"project-tracker/models"
)

// ProjectService handles CRUD for projects. Responses carry the
// resolved manager name when a contact is attached.
type ProjectService struct {
	uow UnitOfWorkFactory
}

func NewProjectService(uow UnitOfWorkFactory) *ProjectService {
	return &ProjectService{uow: uow}
}

func managerName(uow *database.UnitOfWork, contactID int) string {
	contact, found, err := uow.Contacts().GetByID(contactID)
	if err != nil || !found {
		return ""
	}
	return fmt.Sprintf("%s %s", contact.FirstName, contact.LastName)
}

// GetAll returns every project with manager names resolved.
func (s *ProjectService) GetAll() ([]*models.Project, error) {
	uow := s.uow()
	defer uow.Close()

	projects, err := uow.Projects().GetAll()
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ContactID != nil && *p.ContactID > 0 {
			p.ProjectManager = managerName(uow, *p.ContactID)
		}
	}
	return projects, nil
}

// GetByID returns the project, or ErrProjectNotFound.
func (s *ProjectService) GetByID(id int) (*models.Project, error) {
	uow := s.uow()
	defer uow.Close()

	project, found, err := uow.Projects().GetByID(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProjectNotFound
	}
	if project.ContactID != nil && *project.ContactID > 0 {
		project.ProjectManager = managerName(uow, *project.ContactID)
	}
	return project, nil
}

// Create persists a new project and returns its assigned id.
func (s *ProjectService) Create(req models.ProjectRequest) (int, error) {
	uow := s.uow()
	defer uow.Close()

	project := &models.Project{
		ProjectName: req.ProjectName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsSetDate:   req.IsSetDate,
		Priority:    req.Priority,
		ContactID:   req.ContactID,
	}
	if err := uow.Projects().Insert(project); err != nil {
		return 0, err
	}
	if err := uow.Save(); err != nil {
		return 0, err
	}
	return project.ID, nil
}

// Update replaces an existing project's fields.
func (s *ProjectService) Update(id int, req models.ProjectRequest) error {
	uow := s.uow()
	defer uow.Close()

	project, found, err := uow.Projects().GetByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrProjectNotFound
	}

	project.ProjectName = req.ProjectName
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate
	project.IsSetDate = req.IsSetDate
	project.Priority = req.Priority
	project.ContactID = req.ContactID
	uow.Projects().Update(project)
	return uow.Save()
}

// Delete removes a project by id.
func (s *ProjectService) Delete(id int) error {
	uow := s.uow()
	defer uow.Close()

	project, found, err := uow.Projects().GetByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrProjectNotFound
	}

	uow.Projects().Delete(project)
	return uow.Save()
}
