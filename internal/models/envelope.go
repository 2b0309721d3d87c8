package models

import "github.com/gofiber/fiber/v2"

// Envelope statuses.
const (
	StatusSuccessful = "successful"
	StatusError      = "error"
)

// Envelope is the uniform response shape for every operation.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Result  interface{} `json:"result,omitempty"`
}

// Respond writes a business-outcome envelope. The HTTP status mirrors the
// envelope code, except code 204 which is sent as HTTP 200 so the envelope
// body survives on the wire.
func Respond(c *fiber.Ctx, code int, message string) error {
	return writeEnvelope(c, Envelope{
		Status:  StatusSuccessful,
		Message: message,
		Code:    code,
	})
}

// RespondResult writes a success envelope carrying a result payload.
func RespondResult(c *fiber.Ctx, code int, message string, result interface{}) error {
	return writeEnvelope(c, Envelope{
		Status:  StatusSuccessful,
		Message: message,
		Code:    code,
		Result:  result,
	})
}

// RespondInternalError writes the generic internal-failure envelope. No
// detail from the underlying error is leaked to the caller.
func RespondInternalError(c *fiber.Ctx) error {
	return writeEnvelope(c, Envelope{
		Status:  StatusError,
		Message: "Internal server error",
		Code:    fiber.StatusInternalServerError,
	})
}

func writeEnvelope(c *fiber.Ctx, env Envelope) error {
	httpStatus := env.Code
	if httpStatus == fiber.StatusNoContent {
		httpStatus = fiber.StatusOK
	}
	return c.Status(httpStatus).JSON(env)
}
