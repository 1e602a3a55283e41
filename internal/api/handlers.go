package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rana718/fakeshop/internal/types"
	"github.com/gofiber/fiber/v2"
)

const storeErrorMessage = "internal error while reading the shop"

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   "Welcome to the fakeshop API",
		"endpoints": []string{"/products", "/users", "/orders", "/stats", "/metrics"},
	})
}

func (s *Server) handleProducts(c *fiber.Ctx) error {
	filter := types.ProductFilter{SKUs: types.All[string]()}
	updated := c.Query("date_updated")
	if updated != "" {
		d, err := types.ParseDay(updated)
		if err != nil {
			return JSONError(c, fiber.StatusBadRequest, err.Error())
		}
		filter.Updated = types.DateRange{Start: d, End: d}
	}

	products, err := s.store.Products(c.UserContext(), filter)
	if err != nil {
		return s.storeError(c, "products", err)
	}
	if len(products) == 0 {
		msg := "no products found"
		if updated != "" {
			msg = fmt.Sprintf("no products updated on %s", updated)
		}
		return JSONError(c, fiber.StatusNotFound, msg)
	}
	return JSON(c, products, len(products))
}

func (s *Server) handleUsers(c *fiber.Ctx) error {
	dates, err := types.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	users, err := s.store.Users(c.UserContext(), types.UserFilter{IDs: types.All[int64](), Created: dates})
	if err != nil {
		return s.storeError(c, "users", err)
	}
	if len(users) == 0 {
		return JSONError(c, fiber.StatusNotFound, "no users created "+describeRange(c))
	}
	return JSON(c, users, len(users))
}

func (s *Server) handleOrders(c *fiber.Ctx) error {
	dates, err := types.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	ids, err := orderIDs(c)
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	filter := types.OrderFilter{OrderIDs: types.All[int64](), Created: dates}
	if len(ids) > 0 {
		filter.OrderIDs = types.Many(ids...)
	}
	lines, err := s.store.Orders(c.UserContext(), filter)
	if err != nil {
		return s.storeError(c, "orders", err)
	}
	if len(lines) == 0 {
		msg := "no orders found " + describeRange(c)
		if len(ids) > 0 {
			msg = fmt.Sprintf("no orders found for order_id %s", strings.Join(rawOrderIDs(c), ","))
		}
		return JSONError(c, fiber.StatusNotFound, msg)
	}
	return JSON(c, lines, len(lines))
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	counts, err := s.store.Counts(c.UserContext())
	if err != nil {
		return s.storeError(c, "stats", err)
	}
	return JSON(c, counts, 0)
}

func (s *Server) storeError(c *fiber.Ctx, what string, err error) error {
	s.log.Error("Store read failed", "resource", what, "error", err)
	return JSONError(c, fiber.StatusInternalServerError, storeErrorMessage)
}

// rawOrderIDs accepts both ?order_id=1&order_id=2 and ?order_id=1,2.
func rawOrderIDs(c *fiber.Ctx) []string {
	var out []string
	for _, v := range c.Context().QueryArgs().PeekMulti("order_id") {
		for _, part := range strings.Split(string(v), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func orderIDs(c *fiber.Ctx) ([]int64, error) {
	raw := rawOrderIDs(c)
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid order_id %q", v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func describeRange(c *fiber.Ctx) string {
	start, end := c.Query("start_date"), c.Query("end_date")
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("between %s and %s", start, end)
	case start != "":
		return "since " + start
	case end != "":
		return "until " + end
	default:
		return "in the shop"
	}
}
