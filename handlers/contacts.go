package handlers

import (
	"project-tracker/app"
	"project-tracker/models"
	"project-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// GetContacts returns all contacts. An empty store answers 404 with
// code 1000 rather than an empty array.
func GetContacts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contacts, err := a.Contacts.GetAll()
		if err != nil {
			return serverError(c, "Failed to fetch contacts", err)
		}
		if len(contacts) == 0 {
			return notFound(c, CodeCollectionEmpty, "Contact not found")
		}
		return success(c, contacts)
	}
}

// GetContact returns one contact by id.
func GetContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		contact, err := a.Contacts.GetByID(id)
		if err != nil {
			if err == services.ErrContactNotFound {
				return notFound(c, CodeRecordNotFound, "No contact found for this id.")
			}
			return serverError(c, "Failed to fetch contact", err)
		}
		return success(c, contact)
	}
}

// CreateContact creates a contact and returns its assigned id.
func CreateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ContactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		id, err := a.Contacts.Create(req)
		if err != nil {
			return serverError(c, "Failed to create contact", err)
		}
		return created(c, fiber.Map{"id": id})
	}
}

// UpdateContact replaces a contact's fields.
func UpdateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		var req models.ContactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.Contacts.Update(id, req); err != nil {
			if err == services.ErrContactNotFound {
				return notFound(c, CodeRecordNotFound, "No contact found for this id.")
			}
			return serverError(c, "Failed to update contact", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

// DeleteContact removes a contact by id.
func DeleteContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c)
		}

		if err := a.Contacts.Delete(id); err != nil {
			if err == services.ErrContactNotFound {
				return notFound(c, CodeAlreadyDeleted, "contact is already deleted or not exist in system.")
			}
			return serverError(c, "Failed to delete contact", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
