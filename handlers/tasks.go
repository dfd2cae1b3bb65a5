package handlers

import (
	"project-tracker/app"
	"project-tracker/models"
	"project-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// GetTasks returns all tasks with contact and project names resolved.
func GetTasks(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tasks, err := a.Tasks.GetAll()
		if err != nil {
			return serverError(c, "Failed to fetch tasks", err)
		}
		if len(tasks) == 0 {
			return notFound(c, CodeCollectionEmpty, "Task not found")
		}
		return success(c, tasks)
	}
}

// GetTask returns one task by id.
func GetTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		task, err := a.Tasks.GetByID(id)
		if err != nil {
			if err == services.ErrTaskNotFound {
				return notFound(c, CodeRecordNotFound, "No task found for this id.")
			}
			return serverError(c, "Failed to fetch task", err)
		}
		return success(c, task)
	}
}

// CreateTask creates a task and returns its assigned id.
func CreateTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.TaskRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		id, err := a.Tasks.Create(req)
		if err != nil {
			return serverError(c, "Failed to create task", err)
		}
		return created(c, fiber.Map{"id": id})
	}
}

// UpdateTask replaces a task's fields.
func UpdateTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		var req models.TaskRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.Tasks.Update(id, req); err != nil {
			if err == services.ErrTaskNotFound {
				return notFound(c, CodeRecordNotFound, "No task found for this id.")
			}
			return serverError(c, "Failed to update task", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

// EndTask marks a task as ended.
func EndTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		if err := a.Tasks.End(id); err != nil {
			if err == services.ErrTaskNotFound {
				return notFound(c, CodeRecordNotFound, "No task found for this id.")
			}
			return serverError(c, "Failed to end task", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

// DeleteTask removes a task by id.
func DeleteTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		if err := a.Tasks.Delete(id); err != nil {
			if err == services.ErrTaskNotFound {
				return notFound(c, CodeAlreadyDeleted, "task is already deleted or not exist in system.")
			}
			return serverError(c, "Failed to delete task", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
