package handlers

import (
	"encoding/base64"
	"strings"

	"project-tracker/app"

	"github.com/gofiber/fiber/v2"
)

// Login authenticates Basic credentials and issues a fresh token. The
// opaque token string is returned in the Token response header. A new
// login never revokes previously issued tokens.
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, password, ok := basicCredentials(c.Get(fiber.HeaderAuthorization))
		if !ok {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="project-tracker"`)
			return unauthorized(c, "Basic credentials required")
		}

		user, err := a.Users.Authenticate(username, password)
		if err != nil {
			return unauthorized(c, "Invalid username or password")
		}

		token, err := a.Tokens.Generate(user.ID)
		if err != nil {
			return serverError(c, "Failed to issue token", err)
		}

		c.Set("Token", token.AuthToken)
		return success(c, fiber.Map{
			"userId":    user.ID,
			"username":  user.Username,
			"name":      user.Name,
			"issuedOn":  token.IssuedOn,
			"expiresOn": token.ExpiresOn,
		})
	}
}

func basicCredentials(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(decoded), ":")
	if !ok || username == "" {
		return "", "", false
	}
	return username, password, true
}
