package services

import (
	"project-tracker/database"
	"project-tracker/models"
)

// TaskService handles CRUD for tasks, plus ending a task. Tasks may
// reference a project, a contact and a parent task; the parent
// reference is not checked for cycles at this layer.
type TaskService struct {
	uow UnitOfWorkFactory
}

func NewTaskService(uow UnitOfWorkFactory) *TaskService {
	return &TaskService{uow: uow}
}

func (s *TaskService) resolveNames(uow *database.UnitOfWork, task *models.Task) {
	if task.ContactID != nil && *task.ContactID > 0 {
		task.ContactName = managerName(uow, *task.ContactID)
	}
	if task.ProjectID != nil && *task.ProjectID > 0 {
		if project, found, err := uow.Projects().GetByID(*task.ProjectID); err == nil && found {
			task.ProjectName = project.ProjectName
		}
	}
}

// GetAll returns every task with contact and project names resolved.
func (s *TaskService) GetAll() ([]*models.Task, error) {
	uow := s.uow()
	defer uow.Close()

	tasks, err := uow.Tasks().GetAll()
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		s.resolveNames(uow, t)
	}
	return tasks, nil
}

// GetByID returns the task, or ErrTaskNotFound.
func (s *TaskService) GetByID(id int) (*models.Task, error) {
	uow := s.uow()
	defer uow.Close()

	task, found, err := uow.Tasks().GetByID(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTaskNotFound
	}
	s.resolveNames(uow, task)
	return task, nil
}

// Create persists a new task (status open) and returns its assigned id.
func (s *TaskService) Create(req models.TaskRequest) (int, error) {
	uow := s.uow()
	defer uow.Close()

	task := &models.Task{
		TaskName:     req.TaskName,
		ProjectID:    req.ProjectID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsParent:     req.IsParent,
		Priority:     req.Priority,
		ParentTaskID: req.ParentTaskID,
		Status:       models.TaskStatusOpen,
		ContactID:    req.ContactID,
	}
	if err := uow.Tasks().Insert(task); err != nil {
		return 0, err
	}
	if err := uow.Save(); err != nil {
		return 0, err
	}
	return task.ID, nil
}

// Update replaces an existing task's fields. Status is not touched
// here; End is the only way to move it.
func (s *TaskService) Update(id int, req models.TaskRequest) error {
	uow := s.uow()
	defer uow.Close()

	task, found, err := uow.Tasks().GetByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrTaskNotFound
	}

	task.TaskName = req.TaskName
	task.ProjectID = req.ProjectID
	task.StartDate = req.StartDate
	task.EndDate = req.EndDate
	task.IsParent = req.IsParent
	task.Priority = req.Priority
	task.ParentTaskID = req.ParentTaskID
	task.ContactID = req.ContactID
	uow.Tasks().Update(task)
	return uow.Save()
}

// End marks a task as ended.
func (s *TaskService) End(id int) error {
	uow := s.uow()
	defer uow.Close()

	task, found, err := uow.Tasks().GetByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrTaskNotFound
	}

	task.Status = models.TaskStatusEnded
	uow.Tasks().Update(task)
	return uow.Save()
}

// Delete removes a task by id.
func (s *TaskService) Delete(id int) error {
	uow := s.uow()
	defer uow.Close()

	task, found, err := uow.Tasks().GetByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrTaskNotFound
	}

	uow.Tasks().Delete(task)
	return uow.Save()
}
