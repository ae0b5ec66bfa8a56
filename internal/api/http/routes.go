package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/broadway-air/airquality-dashboard/internal/airquality"
	"github.com/broadway-air/airquality-dashboard/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Everything under
// /api/v1 sits behind the shared-password session gate.
func RegisterRoutes(app *fiber.App, service *airquality.Service, auth *Auth) {
	app.Post("/auth/login", auth.Login)
	app.Post("/auth/logout", auth.Logout)

	v1 := app.Group("/api/v1", auth.Require)

	v1.Get("/series", func(c *fiber.Ctx) error {
		p, err := parsePollutantQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		series, err := service.Series(p)
		if err != nil {
			return mapStoreError(err)
		}

		return c.JSON(fiber.Map{
			"pollutant": p,
			"guideline": guidelineValue(p),
			"sensors":   series,
		})
	})

	v1.Get("/weekly", func(c *fiber.Ctx) error {
		p, err := parsePollutantQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		weekly, err := service.Weekly(p)
		if err != nil {
			return mapStoreError(err)
		}

		return c.JSON(fiber.Map{
			"pollutant": p,
			"guideline": guidelineValue(p),
			"sensors":   weekly,
		})
	})

	v1.Get("/day", func(c *fiber.Ctx) error {
		var req dayQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.SingleDay(airquality.Pollutant(req.Pollutant), req.Day)
		if err != nil {
			return mapStoreError(err)
		}

		return c.JSON(fiber.Map{
			"pollutant": req.Pollutant,
			"day":       req.Day,
			"dayName":   airquality.DayName(req.Day),
			"guideline": guidelineValue(airquality.Pollutant(req.Pollutant)),
			"sensors":   days,
		})
	})

	v1.Get("/map", func(c *fiber.Ctx) error {
		p, err := parsePollutantQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Out-of-range indexes clamp rather than error.
		t, _ := strconv.Atoi(c.Query("t", "0"))

		frame, err := service.MapFrame(p, t)
		if err != nil {
			return mapStoreError(err)
		}
		return c.JSON(frame)
	})

	v1.Get("/nav", func(c *fiber.Ctx) error {
		var req navQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(airquality.Navigate(req.T, req.Step))
	})

	v1.Get("/summary", func(c *fiber.Ctx) error {
		p, err := parsePollutantQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		stats, err := service.Summarize(p)
		if err != nil {
			return mapStoreError(err)
		}

		return c.JSON(fiber.Map{
			"pollutant": p,
			"guideline": guidelineValue(p),
			"sensors":   stats,
		})
	})

	v1.Get("/overview", func(c *fiber.Ctx) error {
		overview, err := service.Overview()
		if err != nil {
			return mapStoreError(err)
		}
		return c.JSON(overview)
	})

	v1.Get("/legend", func(c *fiber.Ctx) error {
		p, err := parsePollutantQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"pollutant": p,
			"bands":     service.Legend(p),
		})
	})

	v1.Get("/sensors", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"sensors": service.Sensors()})
	})
}

// mapStoreError translates core errors to HTTP. An empty store means nothing
// was ever loaded; empty selections over a loaded store return 200 upstream.
func mapStoreError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no measurement data loaded")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to compute view")
}

// guidelineValue renders the WHO guideline, or nil for pollutants without one.
func guidelineValue(p airquality.Pollutant) *float64 {
	if g, ok := airquality.Guideline(p); ok {
		return &g
	}
	return nil
}

// pollutantQuery holds the pollutant selector shared by most endpoints.
type pollutantQuery struct {
	Pollutant string `validate:"required,oneof=PM1 PM2.5 PM10"`
}

func parsePollutantQuery(c *fiber.Ctx) (airquality.Pollutant, error) {
	q := pollutantQuery{Pollutant: c.Query("pollutant")}
	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return airquality.ParsePollutant(q.Pollutant)
}

// dayQuery holds parameters for the single-day endpoint.
type dayQuery struct {
	Pollutant string `validate:"required,oneof=PM1 PM2.5 PM10"`
	Day       int    `validate:"min=0,max=6"`
}

func (q *dayQuery) bind(c *fiber.Ctx) error {
	q.Pollutant = c.Query("pollutant")

	day, err := strconv.Atoi(c.Query("day", "-1"))
	if err != nil {
		return errors.New("day must be an integer in 0..6 (Monday=0)")
	}
	q.Day = day

	return validate.Struct(q)
}

// navQuery holds parameters for the week-clock navigation helper.
type navQuery struct {
	T    int
	Step int `validate:"required,oneof=-24 -1 1 24"`
}

func (q *navQuery) bind(c *fiber.Ctx) error {
	t, err := strconv.Atoi(c.Query("t", "0"))
	if err != nil {
		return errors.New("t must be an integer")
	}
	q.T = t

	step, err := strconv.Atoi(c.Query("step", "0"))
	if err != nil {
		return errors.New("step must be an integer")
	}
	q.Step = step

	return validate.Struct(q)
}
