// Package response implementa el sobre uniforme de la API:
// {success, data?, count?, message?, error?}
package response

import "github.com/gofiber/fiber/v2"

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

// OKCount agrega el total de filas (listados)
func OKCount(c *fiber.Ctx, data any, count int) error {
	return c.JSON(Envelope{Success: true, Data: data, Count: &count})
}

func OKMessage(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Fail(c *fiber.Ctx, status int, message, errMsg string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message, Error: errMsg})
}
