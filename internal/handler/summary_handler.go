package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ketotrack/internal/service"
)

// SummaryHandler serves daily aggregates and the calendar range view.
type SummaryHandler struct {
	svc service.SummaryService
}

// NewSummaryHandler creates a summary handler.
func NewSummaryHandler(svc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// GetDaily godoc
// @Summary Daily calorie aggregate for one date
// @Description Dates with no entries return a zero aggregate.
// @Tags summary
// @Produce json
// @Security APIToken
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} service.DaySummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/summary/{date} [get]
func (h *SummaryHandler) GetDaily(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return err
	}
	date, err := parseDate(c.Param("date"))
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.svc.Daily(c.Request().Context(), pid, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetCalendar godoc
// @Summary Per-day aggregates over a date range
// @Description One element per day, ascending; absent days are zero, not omitted.
// @Tags summary
// @Produce json
// @Security APIToken
// @Param start query string true "Range start (YYYY-MM-DD)"
// @Param end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} service.DaySummary
// @Failure 400 {object} errors.ErrorResponse
// @Router /v1/calendar [get]
func (h *SummaryHandler) GetCalendar(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return err
	}
	start, err := parseDate(c.QueryParam("start"))
	if err != nil {
		return respondError(c, err)
	}
	end, err := parseDate(c.QueryParam("end"))
	if err != nil {
		return respondError(c, err)
	}

	summaries, err := h.svc.Calendar(c.Request().Context(), pid, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}
