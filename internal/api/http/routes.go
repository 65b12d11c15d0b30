package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/billyblackk/forest-phenology-tracking-system/internal/config"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/observability"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/phenology"
)

var validate = validator.New()

// Geocoder resolves a free-text place to coordinates. It is wired only when
// a geocoding API key is configured; handlers must tolerate a nil value.
type Geocoder interface {
	Geocode(city, country string) (phenology.Location, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *phenology.QueryService, geo Geocoder, m *observability.Metrics, cfg *config.AppConfig, logger *slog.Logger) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"environment": cfg.Environment,
			"log_level":   cfg.LogLevel,
		})
	})

	ph := app.Group("/phenology")

	ph.Get("/point", func(c *fiber.Ctx) error {
		var q pointQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, err := resolveLocation(q, geo)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		logger.Info("phenology point query received",
			"lat", loc.Lat, "lon", loc.Lon, "year", q.Year)

		metric, found, err := svc.GetPointMetric(c.Context(), loc, q.Year)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch phenology data")
		}
		if !found {
			m.PointLookups.WithLabelValues("missing").Inc()
			return fiber.NewError(fiber.StatusNotFound, "no phenology data found for this location/year")
		}

		m.PointLookups.WithLabelValues("found").Inc()
		return c.JSON(metric)
	})

	ph.Get("/timeseries", func(c *fiber.Ctx) error {
		var q timeseriesQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, err := phenology.NewLocation(q.Lat, q.Lon)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		metrics, err := svc.GetPointTimeseries(c.Context(), loc, q.StartYear, q.EndYear)
		if err != nil {
			if errors.Is(err, phenology.ErrTimeseriesUnsupported) {
				return fiber.NewError(fiber.StatusNotImplemented, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch phenology timeseries")
		}
		if metrics == nil {
			metrics = []phenology.Metric{}
		}

		return c.JSON(fiber.Map{
			"location":   loc,
			"start_year": q.StartYear,
			"end_year":   q.EndYear,
			"metrics":    metrics,
		})
	})
}

// pointQuery holds query parameters for the point endpoint. Coordinate and
// year ranges are enforced here, at the boundary, not in the domain layer.
type pointQuery struct {
	Lat   *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon   *float64 `validate:"omitempty,gte=-180,lte=180"`
	Year  int      `validate:"required,gte=2000,lte=2100"`
	Place string   `validate:"-"`
}

func (q *pointQuery) bind(c *fiber.Ctx) error {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return err
	}
	lon, err := queryFloat(c, "lon")
	if err != nil {
		return err
	}
	q.Lat = lat
	q.Lon = lon
	q.Place = c.Query("place")

	yearStr := c.Query("year")
	if yearStr == "" {
		return errors.New("year query parameter is required")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return fmt.Errorf("invalid year %q", yearStr)
	}
	q.Year = year
	return nil
}

func resolveLocation(q pointQuery, geo Geocoder) (phenology.Location, error) {
	if q.Lat != nil && q.Lon != nil {
		return phenology.NewLocation(*q.Lat, *q.Lon)
	}
	if q.Place == "" {
		return phenology.Location{}, errors.New("lat and lon (or place) query parameters are required")
	}
	if geo == nil {
		return phenology.Location{}, errors.New("place lookups require a configured geocoder")
	}

	city, country, _ := strings.Cut(q.Place, ",")
	return geo.Geocode(strings.TrimSpace(city), strings.TrimSpace(country))
}

// timeseriesQuery holds query parameters for the timeseries endpoint.
type timeseriesQuery struct {
	Lat       float64 `validate:"gte=-90,lte=90"`
	Lon       float64 `validate:"gte=-180,lte=180"`
	StartYear int     `validate:"required,gte=2000,lte=2100"`
	EndYear   int     `validate:"required,gte=2000,lte=2100,gtefield=StartYear"`
}

func (q *timeseriesQuery) bind(c *fiber.Ctx) error {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return err
	}
	lon, err := queryFloat(c, "lon")
	if err != nil {
		return err
	}
	if lat == nil || lon == nil {
		return errors.New("lat and lon query parameters are required")
	}
	q.Lat = *lat
	q.Lon = *lon

	start, err := queryInt(c, "start_year")
	if err != nil {
		return err
	}
	end, err := queryInt(c, "end_year")
	if err != nil {
		return err
	}
	if start == nil || end == nil {
		return errors.New("start_year and end_year query parameters are required")
	}
	q.StartYear = *start
	q.EndYear = *end
	return nil
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, s)
	}
	return &v, nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, s)
	}
	return &v, nil
}
