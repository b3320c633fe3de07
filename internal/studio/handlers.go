package studio

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/console"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/form"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/schema"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/studio/common"
	"github.com/gofiber/fiber/v2"
)

// fail maps service errors onto HTTP statuses.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, console.ErrNoData):
		return common.JSONError(c, fiber.StatusNotFound, console.ErrNoData.Error())
	case errors.Is(err, schema.ErrUnknownTable):
		return common.JSONError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, form.ErrInvalidKey),
		errors.Is(err, form.ErrInvalidValue),
		errors.Is(err, form.ErrKeyColumn),
		errors.Is(err, form.ErrUnknownColumn),
		errors.Is(err, form.ErrNoPrimaryKey),
		errors.Is(err, form.ErrNothingToUpdate):
		return common.JSONError(c, fiber.StatusBadRequest, err.Error())
	default:
		s.log.Error("request failed", "path", c.Path(), "error", err)
		return common.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.Render("templates/index", fiber.Map{
		"Title":    "TableDesk Studio",
		"Provider": s.provider,
		"Reports":  console.Reports(),
	})
}

func (s *Server) handleGetTables(c *fiber.Ctx) error {
	tables, err := s.console.ListTables(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}
	return common.JSON(c, tables)
}

func (s *Server) handleGetTableData(c *fiber.Ctx) error {
	page, err := s.console.BrowseTable(c.UserContext(), c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}
	return common.JSON(c, page)
}

func (s *Server) handleGetEditForm(c *fiber.Ctx) error {
	f, err := s.console.EditForm(c.UserContext(), c.Params("name"), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return common.JSON(c, f)
}

func (s *Server) handleUpdateRow(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}

	n, err := s.console.SubmitEdit(c.UserContext(), c.Params("name"), c.Params("id"), stringValues(body))
	if err != nil {
		return s.fail(c, err)
	}
	return common.JSONMessage(c, fmt.Sprintf("Updated %d row(s)", n))
}

func (s *Server) handleDeleteRow(c *fiber.Ctx) error {
	if _, err := s.console.DeleteRow(c.UserContext(), c.Params("name"), c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return common.JSONMessage(c, "Row deleted successfully")
}

func (s *Server) handleListReports(c *fiber.Ctx) error {
	return common.JSON(c, console.Reports())
}

func (s *Server) handleRunReport(c *fiber.Ctx) error {
	out, err := s.console.RunReport(c.UserContext(), c.Params("name"))
	switch {
	case errors.Is(err, console.ErrNoData):
		return common.JSONWarning(c, err.Error(), out)
	case err != nil:
		return s.fail(c, err)
	}
	return common.JSON(c, out)
}

func (s *Server) handleCascadeOverview(c *fiber.Ctx) error {
	vehicles, maintenance, err := s.console.CascadeOverview(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}
	return common.JSON(c, fiber.Map{"vehicles": vehicles, "maintenance": maintenance})
}

func (s *Server) handleCascadeDelete(c *fiber.Ctx) error {
	out, err := s.console.CascadeDelete(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return common.JSON(c, fiber.Map{"outcome": out, "confirmed": out.Confirmed()})
}

func (s *Server) handleGetFleet(c *fiber.Ctx) error {
	fleet, err := s.console.Fleet(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}
	return common.JSON(c, fleet)
}

func (s *Server) handleUpdateFleetWeight(c *fiber.Ctx) error {
	var req struct {
		Weight *float64 `json:"weight"`
	}
	if err := c.BodyParser(&req); err != nil || req.Weight == nil {
		return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}

	if err := s.console.UpdateFleetWeight(c.UserContext(), c.Params("id"), *req.Weight); err != nil {
		return s.fail(c, err)
	}
	return common.JSONMessage(c, "Fleet view updated")
}

func (s *Server) handleGetVehicleCosts(c *fiber.Ctx) error {
	costs, err := s.console.VehicleCosts(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}
	return common.JSON(c, costs)
}

// stringValues flattens a decoded JSON body into the text the form parsers expect.
func stringValues(body map[string]any) map[string]string {
	out := make(map[string]string, len(body))
	for k, v := range body {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
