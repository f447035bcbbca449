package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/i474232898/destination-intel/internal/aggregator"
	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/obs"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

var validate = validator.New()

// Aggregator is the part of aggregator.Orchestrator the handlers need.
type Aggregator interface {
	Resolve(ctx context.Context, req aggregator.Request) (aggregator.Result, error)
}

// NewApp builds the Fiber app with middleware, the health endpoint and API routes.
func NewApp(agg Aggregator, name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		// Query values and headers reach the process-wide geocode cache and goroutines
		// that outlive the handler.
		Immutable:   true,
		ReadTimeout: 10 * time.Second,
		// Long enough for a geocode followed by the slowest fan-out call.
		WriteTimeout: 15 * time.Second,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} | ${path} | ${locals:requestid}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": name,
		})
	})

	RegisterRoutes(app, agg)
	return app
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, aggregator.ErrInvalidInput):
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, agg Aggregator) {
	v1 := app.Group("/api/v1")

	v1.Get("/destinations/intel", func(c *fiber.Ctx) error {
		var req intelRequest
		if err := req.bindQuery(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return serveIntel(c, agg, req)
	})

	v1.Post("/destinations/intel", func(c *fiber.Ctx) error {
		var req intelRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		return serveIntel(c, agg, req)
	})
}

func serveIntel(c *fiber.Ctx, agg Aggregator, req intelRequest) error {
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := agg.Resolve(c.UserContext(), req.toRequest())
	if err != nil {
		if errors.Is(err, aggregator.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate destination data")
	}

	return c.JSON(res)
}

func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.Locals("requestid", id)
		c.SetUserContext(obs.WithRequestID(c.UserContext(), id))
		return c.Next()
	}
}

// intelRequest is the wire form of aggregator.Request for both GET and POST.
type intelRequest struct {
	Name        *string          `json:"name"`
	Coordinates *geo.Coordinates `json:"coordinates"`
	Origin      *geo.Coordinates `json:"origin"`
	Mode        string           `json:"mode" validate:"omitempty,oneof=car train flight"`
}

func (r *intelRequest) bindQuery(c *fiber.Ctx) error {
	if name := c.Query("name"); name != "" {
		r.Name = &name
	}

	coords, err := parsePair(c.Query("lat"), c.Query("lon"), "lat", "lon")
	if err != nil {
		return err
	}
	r.Coordinates = coords

	origin, err := parsePair(c.Query("originLat"), c.Query("originLon"), "originLat", "originLon")
	if err != nil {
		return err
	}
	r.Origin = origin

	r.Mode = c.Query("mode")
	return nil
}

func (r intelRequest) toRequest() aggregator.Request {
	return aggregator.Request{
		Query: aggregator.PlaceQuery{
			RawName:     r.Name,
			Coordinates: r.Coordinates,
		},
		Origin: r.Origin,
		Mode:   geo.Mode(r.Mode),
	}
}

// parsePair returns nil when both values are absent and an error when only one is given.
func parsePair(latStr, lonStr, latName, lonName string) (*geo.Coordinates, error) {
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New(latName + " and " + lonName + " must be given together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("invalid " + latName)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("invalid " + lonName)
	}
	return &geo.Coordinates{Latitude: lat, Longitude: lon}, nil
}
