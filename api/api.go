package api

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gpahal/randengine/config"
	"github.com/gpahal/randengine/http/server"
	"github.com/gpahal/randengine/random"
)

type Options struct {
	// Numbers and Strings supply the values used for omitted parameters.
	Numbers  config.NumbersConfig
	Strings  config.StringsConfig
	Registry prometheus.Registerer
	// NewRandom returns the engine used for a single request. It defaults to
	// random.New, which seeds every request from the system entropy source.
	NewRandom func() (*random.Random, error)
}

type handlers struct {
	numbers   config.NumbersConfig
	strings   config.StringsConfig
	metrics   *metrics
	newRandom func() (*random.Random, error)
}

// Register mounts the generator endpoints under /v1 on r.
func Register(r server.Router, opts Options) error {
	if _, err := opts.Strings.ParsedClasses(); err != nil {
		return errors.Wrap(err, "default character classes")
	}
	if opts.NewRandom == nil {
		opts.NewRandom = random.New
	}

	h := &handlers{
		numbers:   opts.Numbers,
		strings:   opts.Strings,
		metrics:   newMetrics(opts.Registry),
		newRandom: opts.NewRandom,
	}
	server.AddSubRouter(r, "/v1", func(r server.Router) {
		r.GET("/number", h.number)
		r.GET("/numbers", h.numberList)
		r.GET("/char", h.randomChar)
		r.GET("/string", h.randomString)
		r.POST("/shuffle", h.shuffle)
	})
	return nil
}

func (h *handlers) number(c echo.Context) error {
	req := NumberRequest{Min: h.numbers.Min, Max: h.numbers.Max}
	if err := echo.QueryParamsBinder(c).Int("min", &req.Min).Int("max", &req.Max).BindError(); err != nil {
		return server.NewBadRequestError(err)
	}

	rnd, err := h.newRandom()
	if err != nil {
		return h.fail(opNumber, err)
	}
	n, err := rnd.Number(req.Min, req.Max)
	if err != nil {
		return h.fail(opNumber, err)
	}

	h.succeed(c, opNumber)
	return c.JSON(http.StatusOK, NumberResponse{Number: n})
}

func (h *handlers) numberList(c echo.Context) error {
	req := NumbersRequest{Count: h.numbers.Count, Min: h.numbers.Min, Max: h.numbers.Max}
	err := echo.QueryParamsBinder(c).
		Int("count", &req.Count).
		Int("min", &req.Min).
		Int("max", &req.Max).
		Bool("shuffle", &req.Shuffle).
		BindError()
	if err != nil {
		return server.NewBadRequestError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rnd, err := h.newRandom()
	if err != nil {
		return h.fail(opNumbers, err)
	}
	numbers, err := rnd.Numbers(req.Count, req.Min, req.Max, req.Shuffle)
	if err != nil {
		return h.fail(opNumbers, err)
	}

	h.succeed(c, opNumbers)
	return c.JSON(http.StatusOK, NumbersResponse{Numbers: numbers})
}

func (h *handlers) randomChar(c echo.Context) error {
	req := CharRequest{Classes: queryParamOr(c, "classes", h.strings.Classes)}

	classes, err := random.ParseClasses(req.Classes)
	if err != nil {
		return h.fail(opChar, err)
	}
	rnd, err := h.newRandom()
	if err != nil {
		return h.fail(opChar, err)
	}
	ch, err := rnd.Char(classes)
	if err != nil {
		return h.fail(opChar, err)
	}

	h.succeed(c, opChar)
	return c.JSON(http.StatusOK, CharResponse{Char: string(ch)})
}

func (h *handlers) randomString(c echo.Context) error {
	req := StringRequest{Classes: queryParamOr(c, "classes", h.strings.Classes), Length: h.strings.Length}
	if err := echo.QueryParamsBinder(c).Int("length", &req.Length).BindError(); err != nil {
		return server.NewBadRequestError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	classes, err := random.ParseClasses(req.Classes)
	if err != nil {
		return h.fail(opString, err)
	}
	rnd, err := h.newRandom()
	if err != nil {
		return h.fail(opString, err)
	}
	s, err := rnd.String(classes, req.Length)
	if err != nil {
		return h.fail(opString, err)
	}

	h.succeed(c, opString)
	return c.JSON(http.StatusOK, StringResponse{String: s})
}

func (h *handlers) shuffle(c echo.Context) error {
	var req ShuffleRequest
	if err := server.GetContext(c).BindValid(&req); err != nil {
		return err
	}
	if req.Items == nil {
		req.Items = []json.RawMessage{}
	}

	rnd, err := h.newRandom()
	if err != nil {
		return h.fail(opShuffle, err)
	}

	h.succeed(c, opShuffle)
	return c.JSON(http.StatusOK, ShuffleResponse{Items: random.ShuffleWith(rnd, req.Items)})
}

// queryParamOr returns the named query parameter, or def if it is absent. A
// present but empty parameter is returned as is.
func queryParamOr(c echo.Context, name, def string) string {
	if values, ok := c.QueryParams()[name]; ok && len(values) > 0 {
		return values[0]
	}
	return def
}

func (h *handlers) succeed(c echo.Context, op string) {
	h.metrics.generated.WithLabelValues(op).Inc()
	server.GetContext(c).ServerLogger.Debug().Str("operation", op).Msg("generated")
}

func (h *handlers) fail(op string, err error) error {
	h.metrics.failed.WithLabelValues(op).Inc()
	if errors.Is(err, random.ErrInvalidArgument) {
		return server.NewBadRequestError(err)
	}
	return server.NewHttpErrorWithInternal(http.StatusInternalServerError, "generation failed", err)
}
