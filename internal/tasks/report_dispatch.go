package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "ketotrack/internal/errors"
	"ketotrack/internal/mail"
	"ketotrack/internal/report"
	"ketotrack/internal/repository"
)

// ReportDispatchHandler executes one report request: load the range, render
// the PDF and mail it. Missing profile or an empty range is terminal; a
// failing mail transport is left to the queue's retry policy.
type ReportDispatchHandler struct {
	profiles  repository.ProfileRepository
	products  repository.ProductRepository
	generator *report.Generator
	mailer    mail.Mailer
	logger    *logrus.Logger
}

// NewReportDispatchHandler wires the handler.
func NewReportDispatchHandler(
	profiles repository.ProfileRepository,
	products repository.ProductRepository,
	generator *report.Generator,
	mailer mail.Mailer,
	logger *logrus.Logger,
) *ReportDispatchHandler {
	return &ReportDispatchHandler{
		profiles:  profiles,
		products:  products,
		generator: generator,
		mailer:    mailer,
		logger:    logger,
	}
}

// ProcessTask implements asynq.Handler.
func (h *ReportDispatchHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ReportDispatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal report payload: %v: %w", err, asynq.SkipRetry)
	}

	start, err := time.Parse(taskDateLayout, payload.Start)
	if err != nil {
		return fmt.Errorf("parse start date: %v: %w", err, asynq.SkipRetry)
	}
	end, err := time.Parse(taskDateLayout, payload.End)
	if err != nil {
		return fmt.Errorf("parse end date: %v: %w", err, asynq.SkipRetry)
	}

	log := h.logger.WithFields(logrus.Fields{
		"profile_id": payload.ProfileID,
		"start":      payload.Start,
		"end":        payload.End,
	})
	log.Info("generating PDF report")

	if _, err := h.profiles.FindByID(ctx, payload.ProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%v: %w", apperrors.ErrProfileNotFound, asynq.SkipRetry)
		}
		return fmt.Errorf("load profile: %w", err)
	}

	data, err := h.buildReportData(ctx, payload.ProfileID, start, end)
	if err != nil {
		return err
	}

	pdf, err := h.generator.Generate(data)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoEntries) {
			// Nothing to report; retrying cannot change that.
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("generate report: %w", err)
	}

	subject := fmt.Sprintf("KetoTrack report for dates between %s and %s.", payload.Start, payload.End)
	body := "Please find the report attached in PDF format."
	filename := fmt.Sprintf("report_%s_%s.pdf", payload.Start, payload.End)

	if err := h.mailer.Send(payload.Email, subject, body, filename, pdf); err != nil {
		// Transport errors are transient; the queue retries them.
		return err
	}

	log.WithField("email", payload.Email).Info("PDF report generated and sent")
	return nil
}

func (h *ReportDispatchHandler) buildReportData(ctx context.Context, profileID uint, start, end time.Time) (report.Data, error) {
	entries, err := h.products.ListByDateRange(ctx, profileID, start, end)
	if err != nil {
		return report.Data{}, fmt.Errorf("list entries: %w", err)
	}
	totals, err := h.products.SumByDateRange(ctx, profileID, start, end)
	if err != nil {
		return report.Data{}, fmt.Errorf("sum entries: %w", err)
	}

	totalsByDate := make(map[string]repository.DayTotals, len(totals))
	for _, t := range totals {
		totalsByDate[t.Date.Format(taskDateLayout)] = t
	}

	data := report.Data{Start: start, End: end}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(taskDateLayout)
		day := report.Day{Date: d}
		for _, entry := range entries {
			if entry.Date.Format(taskDateLayout) == key {
				day.Entries = append(day.Entries, entry)
			}
		}
		if t, ok := totalsByDate[key]; ok {
			day.TotalKcal = t.Kcal
			day.TotalCarbG = t.CarbG
			day.TotalFatG = t.FatG
			day.TotalProteinG = t.ProteinG
		}
		data.Days = append(data.Days, day)
	}
	return data, nil
}
