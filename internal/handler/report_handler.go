package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ketotrack/internal/service"
)

// ReportHandler accepts report requests and acknowledges the enqueue.
type ReportHandler struct {
	svc service.ReportService
}

// NewReportHandler creates a report handler.
func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ReportRequest asks for a PDF report over [start, end] mailed to Email.
// A single-day report uses start == end.
type ReportRequest struct {
	Start string `json:"start_date" validate:"required"`
	End   string `json:"end_date" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// RequestReport godoc
// @Summary Request an emailed PDF report
// @Description Enqueues an asynchronous report task; the response only acknowledges acceptance.
// @Tags reports
// @Accept json
// @Produce json
// @Security APIToken
// @Param report body ReportRequest true "Report request"
// @Success 202 {object} service.ReportAck
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /v1/reports [post]
func (h *ReportHandler) RequestReport(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return err
	}

	var req ReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := parseDate(req.Start)
	if err != nil {
		return respondError(c, err)
	}
	end, err := parseDate(req.End)
	if err != nil {
		return respondError(c, err)
	}

	ack, err := h.svc.Request(c.Request().Context(), pid, start, end, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusAccepted, ack)
}
