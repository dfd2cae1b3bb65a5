package middleware

import (
	"project-tracker/models"

	"github.com/gofiber/fiber/v2"
)

// HeaderToken is the request header carrying the opaque bearer token.
const HeaderToken = "Token"

// TokenValidator resolves an opaque token string to its user.
type TokenValidator interface {
	Validate(authToken string) (*models.User, *models.Token, error)
}

// GetUser returns the authenticated user set by RequireToken. Nil if
// the request did not pass the gate.
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserID returns the authenticated user's id. 0 if not set.
func GetUserID(c *fiber.Ctx) int {
	userID, ok := c.Locals("userID").(int)
	if !ok {
		return 0
	}
	return userID
}

// RequireToken returns a middleware that validates the Token header on
// every request and sets the resolved user in context. Missing, empty
// or invalid tokens are rejected with 401 before any handler runs.
// Every request is validated independently; nothing is cached here.
func RequireToken(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authToken := c.Get(HeaderToken)
		if authToken == "" {
			return unauthorized(c)
		}

		user, token, err := tokens.Validate(authToken)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		c.Locals("token", token)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.APIError{
		ErrorCode:        fiber.StatusUnauthorized,
		ErrorDescription: "Missing or invalid token",
	})
}
