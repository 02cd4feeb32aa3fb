package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/ui"
)

var validate = validator.New()

// HistoryLister exposes the recency list.
type HistoryLister interface {
	History() []string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// Lookup outcomes, including rejected input, are display states and are
// returned with 200; only malformed query parameters produce errors.
func RegisterRoutes(app *fiber.App, controller *ui.Controller, history HistoryLister) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/search", func(c *fiber.Ctx) error {
		res := controller.Search(c.UserContext(), c.Query("q"))
		return c.JSON(res)
	})

	v1.Get("/weather/coords", func(c *fiber.Ctx) error {
		q, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := controller.ShowCoordinates(c.UserContext(), *q.Lat, *q.Lon)
		return c.JSON(res)
	})

	v1.Post("/weather/current-location", func(c *fiber.Ctx) error {
		res := controller.UseCurrentLocation(c.UserContext())
		return c.JSON(res)
	})

	v1.Get("/display", func(c *fiber.Ctx) error {
		return c.JSON(controller.View())
	})

	v1.Post("/display/focus", func(c *fiber.Ctx) error {
		return c.JSON(controller.FocusInput())
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"history": history.History(),
		})
	})
}

// coordsQuery holds query parameters for a coordinate lookup.
type coordsQuery struct {
	Lat *float64 `validate:"required,gte=-90,lte=90"`
	Lon *float64 `validate:"required,gte=-180,lte=180"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	lat, err := parseOptionalFloat(c.Query("lat"))
	if err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "lat must be a number")
	}
	lon, err := parseOptionalFloat(c.Query("lon"))
	if err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "lon must be a number")
	}
	q.Lat, q.Lon = lat, lon

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
