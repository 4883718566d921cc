package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	models "FinCast/internal/domain/models"
	"FinCast/internal/usecase"
	xhttp "FinCast/pkg/http"
	xlogger "FinCast/pkg/logger"
	"FinCast/pkg/util"
)

// DashboardEchoHandler serves the HTML dashboard and the JSON API.
type DashboardEchoHandler struct {
	logger     *xlogger.Logger
	dashboard  *usecase.Dashboard
	forecasts  *usecase.ForecastService
	maxHorizon int
	renderer   *templateRenderer
}

func NewDashboardEchoHandler(
	logger *xlogger.Logger,
	dashboard *usecase.Dashboard,
	forecasts *usecase.ForecastService,
	maxHorizon int,
) (*DashboardEchoHandler, error) {
	r, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}
	return &DashboardEchoHandler{
		logger:     logger,
		dashboard:  dashboard,
		forecasts:  forecasts,
		maxHorizon: maxHorizon,
		renderer:   r,
	}, nil
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = h.renderer
	e.GET("/", h.Index)
	e.GET("/about", h.About)
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/forecast", h.Forecast)
	g.GET("/metrics", h.Metrics)
}

type indexView struct {
	Horizons      []int
	Horizon       int
	LastDate      string
	ForecastDate  string
	LastActual    string
	ForecastPrice string
	ForecastLow   string
	ForecastHigh  string
	PctChange     string
	Up            bool
	MAE           string
	RMSE          string
	MAPE          string
	Directional   string
	TrainRows     int
	TestRows      int
	RunID         string
}

func (h *DashboardEchoHandler) Index(c echo.Context) error {
	horizon := util.ParseIntDefault(c.QueryParam("horizon"), models.DefaultHorizon)

	s, err := h.dashboard.Summary(c.Request().Context(), horizon)
	if err != nil {
		h.logger.Error("dashboard summary error", xlogger.Int("horizon", horizon), xlogger.Error(err))
		if errors.Is(err, models.ErrNotReady) {
			return c.String(http.StatusInternalServerError, "Error: application not properly initialized. Check the server logs.")
		}
		return c.String(http.StatusInternalServerError, "Error: forecast unavailable.")
	}

	return c.Render(http.StatusOK, "index.html", indexView{
		Horizons:      models.DashboardHorizons,
		Horizon:       s.Horizon,
		LastDate:      util.FormatDate(s.LastDate),
		ForecastDate:  util.FormatDate(s.ForecastDate),
		LastActual:    formatPrice(s.LastActual),
		ForecastPrice: formatPrice(s.ForecastPrice),
		ForecastLow:   formatPrice(s.ForecastLow),
		ForecastHigh:  formatPrice(s.ForecastHigh),
		PctChange:     formatPct(s.PctChange),
		Up:            s.PctChange >= 0,
		MAE:           formatPrice(s.Metrics.MAE),
		RMSE:          formatPrice(s.Metrics.RMSE),
		MAPE:          strconv.FormatFloat(round2(s.Metrics.MAPE), 'f', 2, 64) + "%",
		Directional:   strconv.FormatFloat(round2(s.Metrics.DirectionalAccuracy), 'f', 2, 64) + "%",
		TrainRows:     s.TrainRows,
		TestRows:      s.TestRows,
		RunID:         s.RunID,
	})
}

func (h *DashboardEchoHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", nil)
}

func (h *DashboardEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.Horizon > h.maxHorizon {
		return xhttp.AppErrorResponse(c,
			xhttp.BadRequestErrorf("horizon must be at most %d days", h.maxHorizon).WithParam("max", h.maxHorizon))
	}

	table, err := h.forecasts.Forecast(c.Request().Context(), req.Horizon)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.Int("horizon", req.Horizon), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}

	tail := table.Tail(req.Horizon)
	res := models.ForecastResponse{
		Dates:       make([]string, len(tail)),
		Predictions: make([]float64, len(tail)),
		UpperBound:  make([]float64, len(tail)),
		LowerBound:  make([]float64, len(tail)),
	}
	for i, r := range tail {
		res.Dates[i] = util.FormatDate(r.DS)
		res.Predictions[i] = round2(r.YHat)
		res.UpperBound[i] = round2(r.YHatUpper)
		res.LowerBound[i] = round2(r.YHatLower)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return c.JSON(http.StatusOK, res)
}

func (h *DashboardEchoHandler) Metrics(c echo.Context) error {
	st := h.forecasts.State()
	if st == nil || st.Model == nil {
		return xhttp.AppErrorResponse(c, mapError(models.ErrNotReady))
	}
	ev := st.Evaluation
	return c.JSON(http.StatusOK, models.MetricsResponse{
		MAE:                 round2(ev.MAE),
		RMSE:                round2(ev.RMSE),
		MAPE:                round2(ev.MAPE),
		DirectionalAccuracy: round2(ev.DirectionalAccuracy),
	})
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	st := h.forecasts.State()
	if st == nil || st.Model == nil {
		return c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		RunID:   st.RunID,
		ModelID: st.ModelID,
	})
}

func mapError(err error) *xhttp.AppError {
	if errors.Is(err, models.ErrNotReady) {
		return xhttp.InternalError("model not initialized").WithError(err)
	}
	return xhttp.InternalError("forecast failed").WithError(err)
}
