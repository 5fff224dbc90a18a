package middleware

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestLogFormat prefixes every access log line with the request id.
const RequestLogFormat = "${time} [${respHeader:X-Request-ID}] ${status} - ${latency} ${method} ${path}\n"

// RequestID tags each request with an X-Request-ID, keeping one supplied by the client.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// RequestLogger writes one access log line per request to output.
func RequestLogger(output io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		Format: RequestLogFormat,
		Output: output,
	})
}
