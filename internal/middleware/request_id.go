package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDKey is the Locals key holding the request id.
const RequestIDKey = "request_id"

// RequestID reuses an incoming X-Request-ID or generates a UUID.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: RequestIDKey,
	})
}

// RequestIDFromLocals returns "" outside of the RequestID middleware.
func RequestIDFromLocals(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}
