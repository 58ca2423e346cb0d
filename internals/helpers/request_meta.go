package helper

import "github.com/gofiber/fiber/v2"

const LocRequestID = "request_id"

// RequestID returns the id assigned by the request-id middleware, or "".
func RequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRequestID).(string); ok {
		return v
	}
	return ""
}

// ClientMeta is the audit context stored with parent and admin actions.
func ClientMeta(c *fiber.Ctx) map[string]any {
	m := map[string]any{
		"method": c.Method(),
		"path":   c.Path(),
	}
	if id := RequestID(c); id != "" {
		m["request_id"] = id
	}
	if lang := c.Get(fiber.HeaderAcceptLanguage); lang != "" {
		m["accept_language"] = lang
	}
	if ips := c.IPs(); len(ips) > 0 {
		m["forwarded_for"] = ips
	}
	return m
}
