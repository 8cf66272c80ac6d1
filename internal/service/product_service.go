package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"gorm.io/gorm"

	apperrors "ketotrack/internal/errors"
	"ketotrack/internal/model"
	"ketotrack/internal/nutrition"
	"ketotrack/internal/repository"
)

// ProductService manages product entries. Creation and weight updates go
// through the nutrition API so stored macros always match the logged grams.
type ProductService interface {
	Create(ctx context.Context, profileID uint, name string, grams uint, date time.Time) (*model.ProductEntry, error)
	UpdateGrams(ctx context.Context, profileID, entryID, grams uint) (*model.ProductEntry, error)
	Delete(ctx context.Context, profileID, entryID uint) error
	Get(ctx context.Context, profileID, entryID uint) (*model.ProductEntry, error)
	ListByDate(ctx context.Context, profileID uint, date time.Time) ([]model.ProductEntry, error)
	List(ctx context.Context, profileID uint, nameFilter string) ([]model.ProductEntry, error)
}

type productService struct {
	products  repository.ProductRepository
	nutrition nutrition.Client
}

// NewProductService creates a product service.
func NewProductService(products repository.ProductRepository, client nutrition.Client) ProductService {
	return &productService{products: products, nutrition: client}
}

func (s *productService) Create(ctx context.Context, profileID uint, name string, grams uint, date time.Time) (*model.ProductEntry, error) {
	if err := validateProductInput(name, grams); err != nil {
		return nil, err
	}

	macros, err := s.nutrition.Lookup(ctx, name, grams)
	if err != nil {
		return nil, err
	}

	entry := &model.ProductEntry{
		ProfileID: profileID,
		Date:      truncateToDay(date),
		Name:      name,
		Grams:     grams,
		Kcal:      macros.Kcal,
		CarbG:     macros.CarbG,
		FatG:      macros.FatG,
		ProteinG:  macros.ProteinG,
	}
	if err := s.products.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

// UpdateGrams changes an entry's weight and refreshes its macros from the
// nutrition API, keeping the stored name and date.
func (s *productService) UpdateGrams(ctx context.Context, profileID, entryID, grams uint) (*model.ProductEntry, error) {
	if grams == 0 {
		return nil, fmt.Errorf("%w: grams must be positive", apperrors.ErrValidation)
	}

	entry, err := s.Get(ctx, profileID, entryID)
	if err != nil {
		return nil, err
	}

	macros, err := s.nutrition.Lookup(ctx, entry.Name, grams)
	if err != nil {
		return nil, err
	}

	entry.Grams = grams
	entry.Kcal = macros.Kcal
	entry.CarbG = macros.CarbG
	entry.FatG = macros.FatG
	entry.ProteinG = macros.ProteinG

	if err := s.products.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return entry, nil
}

func (s *productService) Delete(ctx context.Context, profileID, entryID uint) error {
	if _, err := s.Get(ctx, profileID, entryID); err != nil {
		return err
	}
	return s.products.Delete(ctx, entryID)
}

// Get loads an entry and enforces ownership: entries of other profiles are
// reported as missing, never as forbidden.
func (s *productService) Get(ctx context.Context, profileID, entryID uint) (*model.ProductEntry, error) {
	entry, err := s.products.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, err
	}
	if entry.ProfileID != profileID {
		return nil, apperrors.ErrEntryNotFound
	}
	return entry, nil
}

func (s *productService) ListByDate(ctx context.Context, profileID uint, date time.Time) ([]model.ProductEntry, error) {
	return s.products.ListByDate(ctx, profileID, truncateToDay(date))
}

func (s *productService) List(ctx context.Context, profileID uint, nameFilter string) ([]model.ProductEntry, error) {
	return s.products.ListByProfile(ctx, profileID, nameFilter)
}

func validateProductInput(name string, grams uint) error {
	if name == "" {
		return fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	for _, r := range name {
		if unicode.IsDigit(r) {
			return fmt.Errorf("%w: product name can not contain digits", apperrors.ErrValidation)
		}
	}
	if grams == 0 {
		return fmt.Errorf("%w: grams must be positive", apperrors.ErrValidation)
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
