package httpapi

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wanomaly/weather-anomaly/internal/analysis"
	"github.com/wanomaly/weather-anomaly/internal/dataset"
	"github.com/wanomaly/weather-anomaly/internal/season"
	"github.com/wanomaly/weather-anomaly/internal/weather"
)

var validate = validator.New()

// Handlers bundles the collaborators the HTTP surface needs. The analysis
// itself stays pure; handlers only move data between the store, the fetcher,
// and the response.
type Handlers struct {
	Store   *dataset.Store
	Fetcher weather.Fetcher
	Clock   season.Clock

	// APIKeyConfigured gates the live classification endpoint. When false,
	// the endpoint reports an informational state and no fetch is attempted.
	APIKeyConfigured bool
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h Handlers) {
	v1 := app.Group("/api/v1")

	v1.Post("/datasets", h.uploadDataset)
	v1.Get("/datasets/:id/cities", h.listCities)
	v1.Get("/datasets/:id/baselines", h.getBaselines)
	v1.Get("/datasets/:id/anomalies", h.getAnomalies)
	v1.Get("/datasets/:id/classify", h.classifyCurrent)
}

// uploadDataset ingests a CSV dataset, either as a multipart "file" part or
// as the raw request body.
func (h Handlers) uploadDataset(c *fiber.Ctx) error {
	raw, err := readUpload(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	observations, err := dataset.ReadCSV(bytes.NewReader(raw))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ds := h.Store.Add(raw, observations)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     ds.ID,
		"rows":   len(ds.Observations),
		"cities": ds.Cities(),
	})
}

func readUpload(c *fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	if len(c.Body()) == 0 {
		return nil, errors.New("upload a CSV file as multipart field \"file\" or as the request body")
	}
	return c.Body(), nil
}

func (h Handlers) listCities(c *fiber.Ctx) error {
	ds, err := h.Store.Get(c.Params("id"))
	if err != nil {
		return datasetError(err)
	}
	return c.JSON(fiber.Map{
		"id":     ds.ID,
		"cities": ds.Cities(),
	})
}

func (h Handlers) getBaselines(c *fiber.Ctx) error {
	req, err := parseCityQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ds, err := h.Store.Get(c.Params("id"))
	if err != nil {
		return datasetError(err)
	}

	baselines, err := analysis.ComputeBaselines(ds.Observations, req.City)
	if err != nil {
		return analysisError(err)
	}

	return c.JSON(fiber.Map{
		"city":      req.City,
		"baselines": baselines,
	})
}

func (h Handlers) getAnomalies(c *fiber.Ctx) error {
	req, err := parseCityQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ds, err := h.Store.Get(c.Params("id"))
	if err != nil {
		return datasetError(err)
	}

	baselines, err := analysis.ComputeBaselines(ds.Observations, req.City)
	if err != nil {
		return analysisError(err)
	}

	flagged := analysis.Detect(ds.CityObservations(req.City), baselines)
	return c.JSON(fiber.Map{
		"city":         req.City,
		"observations": flagged,
	})
}

func (h Handlers) classifyCurrent(c *fiber.Ctx) error {
	req, err := parseCityQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if !h.APIKeyConfigured {
		// Not an error state: without a key there is simply nothing to fetch.
		return c.JSON(fiber.Map{
			"classified": false,
			"message":    "OpenWeatherMap API key is not configured; live classification unavailable",
		})
	}

	ds, err := h.Store.Get(c.Params("id"))
	if err != nil {
		return datasetError(err)
	}

	baselines, err := analysis.ComputeBaselines(ds.Observations, req.City)
	if err != nil {
		return analysisError(err)
	}

	temperature, err := h.Fetcher.FetchTemperature(c.UserContext(), req.City)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	result, err := analysis.Classify(temperature, req.City, baselines, h.Clock)
	if err != nil {
		return analysisError(err)
	}

	return c.JSON(fiber.Map{
		"classified": true,
		"result":     result,
	})
}

// cityQuery holds the query parameter identifying a city.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	q := cityQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func datasetError(err error) error {
	if errors.Is(err, dataset.ErrDatasetNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no dataset with requested id")
	}
	return err
}

func analysisError(err error) error {
	switch {
	case errors.Is(err, analysis.ErrUnknownCity):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, analysis.ErrNoBaselineForSeason):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return err
}
