package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/dwdclimate/internal/climate"
	"github.com/guttosm/dwdclimate/internal/domain/dto"
	"github.com/guttosm/dwdclimate/internal/ingestion"
	"github.com/guttosm/dwdclimate/internal/middleware"
	"github.com/guttosm/dwdclimate/internal/service"
)

const maxHistoryLimit = 500

// Handler provides HTTP handlers for the climate endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Call the climate service
//   - Translate results into response DTOs
//   - Map domain errors onto HTTP status codes
type Handler struct {
	svc            service.ClimateService
	defaultStation string
	historyLimit   int
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc: climate service.
//   - defaultStation: station used when the request names none ("" = required).
//   - historyLimit: rows returned by /history when no limit is given.
func NewHandler(svc service.ClimateService, defaultStation string, historyLimit int) *Handler {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Handler{svc: svc, defaultStation: defaultStation, historyLimit: historyLimit}
}

// GetAverage handles GET /api/v1/average requests.
//
// GetAverage godoc
// @Summary      Average daily extremes for a calendar day
// @Description  Downloads the station's hourly air temperature history and averages the daily minimum and maximum of day/month over every year
// @Tags         climate
// @Produce      json
// @Param        station  query     string  false  "Station name or 5-digit DWD id" example(Osnabrück)
// @Param        day      query     int     true   "Day of month (1-31)" example(24)
// @Param        month    query     int     true   "Month (1-12)" example(12)
// @Success      200      {object}  dto.AverageResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse    "Unknown station or no data"
// @Failure      422      {object}  dto.ErrorResponse    "Invalid station data"
// @Failure      502      {object}  dto.ErrorResponse    "Upstream failure"
// @Failure      504      {object}  dto.ErrorResponse    "Timeout"
// @Router       /api/v1/average [get]
func (h *Handler) GetAverage(c *gin.Context) {
	station := strings.TrimSpace(c.Query("station"))
	if station == "" {
		station = h.defaultStation
	}
	if station == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "station is required", nil)
		return
	}

	day, err := intParam(c, "day", 1, 31)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	month, err := intParam(c, "month", 1, 12)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	avg, err := h.svc.GetAverage(c.Request.Context(), station, day, month)
	if err != nil {
		status, msg := averageErrorStatus(err)
		middleware.AbortWithError(c, status, msg, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAverageResponse(avg))
}

// ListStations handles GET /api/v1/stations.
//
// ListStations godoc
// @Summary      Configured stations
// @Tags         climate
// @Produce      json
// @Success      200  {object}  dto.StationsResponse
// @Router       /api/v1/stations [get]
func (h *Handler) ListStations(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StationsResponse{Stations: h.svc.Stations()})
}

// GetHistory handles GET /api/v1/history.
//
// GetHistory godoc
// @Summary      Recently computed averages
// @Tags         climate
// @Produce      json
// @Param        station  query     string  false  "Station name or 5-digit DWD id"
// @Param        limit    query     int     false  "Maximum rows (1-500)"
// @Success      200      {object}  dto.HistoryResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      503      {object}  dto.ErrorResponse
// @Router       /api/v1/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	limit := h.historyLimit
	if c.Query("limit") != "" {
		n, err := intParam(c, "limit", 1, maxHistoryLimit)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
			return
		}
		limit = n
	}

	avgs, err := h.svc.History(c.Request.Context(), strings.TrimSpace(c.Query("station")), limit)
	switch {
	case errors.Is(err, service.ErrHistoryDisabled):
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "history unavailable", err)
		return
	case errors.Is(err, ingestion.ErrUnknownStation):
		middleware.AbortWithError(c, http.StatusNotFound, "unknown station", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to load history", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoryResponse(avgs))
}

func intParam(c *gin.Context, name string, lo, hi int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	}
	return n, nil
}

func averageErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ingestion.ErrUnknownStation):
		return http.StatusNotFound, "unknown station"
	case errors.Is(err, ingestion.ErrArchiveNotFound):
		return http.StatusNotFound, "no archive published for station"
	case errors.Is(err, climate.ErrNoYearsWithData):
		return http.StatusNotFound, "no year has data for the requested day"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	case errors.Is(err, climate.ErrNonFiniteTemperature):
		return http.StatusUnprocessableEntity, "station data contains invalid temperatures"
	case errors.Is(err, climate.ErrContractViolation):
		return http.StatusInternalServerError, "internal error"
	default:
		return http.StatusBadGateway, "failed to compute average"
	}
}
