package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/app"
	"weather-dashboard/internal/cities"
	"weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the dashboard contract into the Fiber app: the active
// view, city search/add/remove/select, autocomplete suggestions, bulk refresh
// and geolocation retry.
func RegisterRoutes(router *fiber.App, orch *app.Orchestrator) {
	v1 := router.Group("/api/v1")

	v1.Get("/view", func(c *fiber.Ctx) error {
		return c.JSON(orch.View())
	})

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"current": orch.Current(),
			"cities":  orch.Cities(),
		})
	})

	v1.Get("/cities/suggest", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"suggestions": cities.Suggest(c.Query("q")),
		})
	})

	v1.Post("/search", func(c *fiber.Ctx) error {
		req, err := parseCityRequest(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := orch.SearchCity(c.Context(), req.Name); err != nil {
			return mapCityError(err)
		}
		return c.JSON(orch.View())
	})

	v1.Post("/cities", func(c *fiber.Ctx) error {
		req, err := parseCityRequest(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := orch.AddCity(req.Name); err != nil {
			return mapCityError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"cities": orch.Cities(),
		})
	})

	v1.Post("/cities/:index/select", func(c *fiber.Ctx) error {
		index, err := parseIndex(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := orch.SelectCityAt(c.Context(), index); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(orch.View())
	})

	v1.Delete("/cities/:index", func(c *fiber.Ctx) error {
		index, err := parseIndex(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		orch.RemoveCity(index)
		return c.JSON(fiber.Map{
			"cities": orch.Cities(),
		})
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		if err := orch.RefreshAll(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(orch.View())
	})

	v1.Post("/geolocation/retry", func(c *fiber.Ctx) error {
		orch.ResolveLocation(c.Context())
		return c.JSON(orch.View())
	})
}

// cityRequest is the body for search and add-city calls.
type cityRequest struct {
	Name string `json:"name" validate:"required"`
}

func parseCityRequest(c *fiber.Ctx) (cityRequest, error) {
	var req cityRequest
	if err := c.BodyParser(&req); err != nil {
		return req, err
	}
	if err := validate.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

func parseIndex(c *fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, errors.New("index must be an integer")
	}
	return index, nil
}

// mapCityError translates lookup and dedup failures into inline HTTP errors.
// They never disturb other state.
func mapCityError(err error) error {
	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrDuplicateCity):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
