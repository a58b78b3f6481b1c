package principal

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localsKey = "principal"

// Principal is the verified identity attached to a request after token
// verification. It is derived per request and never persisted.
type Principal struct {
	ID    uuid.UUID
	Email string
}

// Set stores the principal in Fiber context locals for downstream handlers.
func Set(c *fiber.Ctx, p Principal) {
	c.Locals(localsKey, p)
}

// FromCtx extracts the principal placed in context by the auth middleware.
func FromCtx(c *fiber.Ctx) (Principal, error) {
	p, ok := c.Locals(localsKey).(Principal)
	if !ok || p.ID == uuid.Nil {
		return Principal{}, errors.New("no principal in context")
	}
	return p, nil
}
