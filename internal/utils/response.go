package utils

import (
	"translation-backend/internal/errs"

	"github.com/gofiber/fiber/v2"
)

// StandardResponse represents the standard API response format
type StandardResponse struct {
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Meta    interface{}       `json:"meta,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ListMeta represents list metadata
type ListMeta struct {
	Total int `json:"total"`
}

// SuccessResponse sends a success response
func SuccessResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// SuccessWithMetaResponse sends a success response with list meta
func SuccessWithMetaResponse(c *fiber.Ctx, code int, message string, data interface{}, meta interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	status := "error"
	if code >= 500 {
		status = "fail"
	}
	return c.Status(code).JSON(StandardResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// ValidationErrorResponse sends a 422 with the failing fields
func ValidationErrorResponse(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(StandardResponse{
		Status:  "error",
		Code:    fiber.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fields,
	})
}

// ErrorFromErr maps a service error onto its HTTP response. Server side
// failures get a generic message.
func ErrorFromErr(c *fiber.Ctx, err error) error {
	if fields := errs.Fields(err); fields != nil {
		return ValidationErrorResponse(c, fields)
	}
	code := errs.StatusCode(err)
	if code >= 500 {
		return ErrorResponse(c, code, "Internal server error")
	}
	return ErrorResponse(c, code, err.Error())
}
