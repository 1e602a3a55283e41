package api

import "github.com/gofiber/fiber/v2"

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func JSON(c *fiber.Ctx, data any, count int) error {
	return c.JSON(Response{Success: true, Data: data, Count: count})
}

func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}
