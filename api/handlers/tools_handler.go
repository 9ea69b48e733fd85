package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/tools"
)

// ListTools returns the registered tool catalog.
func ListTools(reg *tools.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"tools": reg.List(),
		})
	}
}

// CallTool runs one tool by name. The JSON body is the tool's parameter
// map; an empty body means no parameters.
func CallTool(reg *tools.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")

		params := map[string]any{}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&params); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
			}
		}

		report, err := reg.Call(c.UserContext(), name, params)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"tool":   name,
			"result": report,
		})
	}
}
