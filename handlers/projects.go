package handlers

import (
	"project-tracker/app"
	"project-tracker/models"
	"project-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// GetProjects returns all projects with manager names resolved.
func GetProjects(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projects, err := a.Projects.GetAll()
		if err != nil {
			return serverError(c, "Failed to fetch projects", err)
		}
		if len(projects) == 0 {
			return notFound(c, CodeCollectionEmpty, "Project not found")
		}
		return success(c, projects)
	}
}

// GetProject returns one project by id.
func GetProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		project, err := a.Projects.GetByID(id)
		if err != nil {
			if err == services.ErrProjectNotFound {
				return notFound(c, CodeRecordNotFound, "No project found for this id.")
			}
			return serverError(c, "Failed to fetch project", err)
		}
		return success(c, project)
	}
}

// CreateProject creates a project and returns its assigned id.
func CreateProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		id, err := a.Projects.Create(req)
		if err != nil {
			return serverError(c, "Failed to create project", err)
		}
		return created(c, fiber.Map{"id": id})
	}
}

// UpdateProject replaces a project's fields.
func UpdateProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		var req models.ProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.Projects.Update(id, req); err != nil {
			if err == services.ErrProjectNotFound {
				return notFound(c, CodeRecordNotFound, "No project found for this id.")
			}
			return serverError(c, "Failed to update project", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

// DeleteProject removes a project by id.
func DeleteProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		if err := a.Projects.Delete(id); err != nil {
			if err == services.ErrProjectNotFound {
				return notFound(c, CodeAlreadyDeleted, "project is already deleted or not exist in system.")
			}
			return serverError(c, "Failed to delete project", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
