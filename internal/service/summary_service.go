package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "ketotrack/internal/errors"
	"ketotrack/internal/repository"
)

// DaySummary is the derived aggregate for one (profile, date) pair. It is
// never persisted; every read recomputes it from the entry store.
type DaySummary struct {
	Date          string `json:"date"`
	TotalKcal     uint   `json:"total_kcal"`
	TotalCarbG    uint   `json:"total_carb_g"`
	TotalFatG     uint   `json:"total_fat_g"`
	TotalProteinG uint   `json:"total_protein_g"`
	// DeltaKcal is total minus the profile's daily requirement: negative
	// while under budget, positive when over.
	DeltaKcal int `json:"delta_kcal"`
}

// SummaryService computes daily aggregates and calendar-range views.
type SummaryService interface {
	Daily(ctx context.Context, profileID uint, date time.Time) (DaySummary, error)
	Calendar(ctx context.Context, profileID uint, start, end time.Time) ([]DaySummary, error)
}

type summaryService struct {
	profiles repository.ProfileRepository
	products repository.ProductRepository
}

// NewSummaryService creates a summary service.
func NewSummaryService(profiles repository.ProfileRepository, products repository.ProductRepository) SummaryService {
	return &summaryService{profiles: profiles, products: products}
}

const summaryDateLayout = "2006-01-02"

// Daily returns the aggregate for one date. Dates with no entries yield a
// zero aggregate, not an error.
func (s *summaryService) Daily(ctx context.Context, profileID uint, date time.Time) (DaySummary, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DaySummary{}, apperrors.ErrProfileNotFound
		}
		return DaySummary{}, err
	}

	totals, err := s.products.SumByDate(ctx, profileID, date)
	if err != nil {
		return DaySummary{}, fmt.Errorf("sum entries: %w", err)
	}

	return DaySummary{
		Date:          date.Format(summaryDateLayout),
		TotalKcal:     totals.Kcal,
		TotalCarbG:    totals.CarbG,
		TotalFatG:     totals.FatG,
		TotalProteinG: totals.ProteinG,
		DeltaKcal:     int(totals.Kcal) - int(profile.DailyKcal),
	}, nil
}

// Calendar returns one aggregate per day over [start, end], ascending,
// with absent days zero-filled. Each call recomputes from the store.
func (s *summaryService) Calendar(ctx context.Context, profileID uint, start, end time.Time) ([]DaySummary, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if start.After(end) {
		return nil, apperrors.ErrInvalidDateRange
	}

	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}

	totals, err := s.products.SumByDateRange(ctx, profileID, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum entries: %w", err)
	}

	byDate := make(map[string]repository.DayTotals, len(totals))
	for _, t := range totals {
		byDate[t.Date.Format(summaryDateLayout)] = t
	}

	days := int(end.Sub(start).Hours()/24) + 1
	summaries := make([]DaySummary, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(summaryDateLayout)
		t := byDate[key] // zero value covers absent days
		summaries = append(summaries, DaySummary{
			Date:          key,
			TotalKcal:     t.Kcal,
			TotalCarbG:    t.CarbG,
			TotalFatG:     t.FatG,
			TotalProteinG: t.ProteinG,
			DeltaKcal:     int(t.Kcal) - int(profile.DailyKcal),
		})
	}
	return summaries, nil
}
