package httpapi

import (
	"crypto/sha256"
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const sessionAuthKey = "authenticated"

// Auth is the shared-password gate in front of the dashboard API. A login
// compares the SHA-256 digest of the submitted password against the digest of
// the configured secret and marks the session on success.
type Auth struct {
	sessions *session.Store
	digest   [sha256.Size]byte
}

// NewAuth creates the gate for the given shared secret.
func NewAuth(password string) *Auth {
	return &Auth{
		sessions: session.New(session.Config{
			Expiration:     12 * time.Hour,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
		digest: sha256.Sum256([]byte(password)),
	}
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

// Login checks the submitted password and authenticates the session.
func (a *Auth) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	submitted := sha256.Sum256([]byte(req.Password))
	if subtle.ConstantTimeCompare(submitted[:], a.digest[:]) != 1 {
		return fiber.NewError(fiber.StatusUnauthorized, "password incorrect")
	}

	sess, err := a.sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}
	sess.Set(sessionAuthKey, true)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}

	return c.JSON(fiber.Map{"authenticated": true})
}

// Logout destroys the session.
func (a *Auth) Logout(c *fiber.Ctx) error {
	sess, err := a.sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}
	if err := sess.Destroy(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}
	return c.JSON(fiber.Map{"authenticated": false})
}

// Require rejects requests whose session has not been authenticated.
func (a *Auth) Require(c *fiber.Ctx) error {
	sess, err := a.sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	if ok, _ := sess.Get(sessionAuthKey).(bool); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return c.Next()
}
