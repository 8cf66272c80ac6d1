package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "ketotrack/internal/errors"
	"ketotrack/internal/model"
	"ketotrack/internal/repository"
)

// ProfileUpdate carries the physical attributes a user may change.
type ProfileUpdate struct {
	WeightKg uint
	HeightCm uint
	Age      uint
	Sex      string
	Activity string
}

// ProfileService manages nutrition profiles and their computed daily
// requirement.
type ProfileService interface {
	GetByUser(ctx context.Context, userID uint) (*model.Profile, error)
	Update(ctx context.Context, userID uint, update ProfileUpdate) (*model.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService creates a profile service.
func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) GetByUser(ctx context.Context, userID uint) (*model.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Update applies new physical attributes and recomputes the daily
// requirement in the same write.
func (s *profileService) Update(ctx context.Context, userID uint, update ProfileUpdate) (*model.Profile, error) {
	if err := validateProfileUpdate(update); err != nil {
		return nil, err
	}

	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.WeightKg = update.WeightKg
	profile.HeightCm = update.HeightCm
	profile.Age = update.Age
	profile.Sex = update.Sex
	profile.Activity = update.Activity
	ApplyRequirement(profile)

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

func validateProfileUpdate(u ProfileUpdate) error {
	if u.WeightKg == 0 || u.HeightCm == 0 || u.Age == 0 {
		return fmt.Errorf("%w: weight, height and age must be positive", apperrors.ErrValidation)
	}
	if u.Sex != model.SexMale && u.Sex != model.SexFemale {
		return fmt.Errorf("%w: unknown sex %q", apperrors.ErrValidation, u.Sex)
	}
	if _, ok := model.ActivityFactors[u.Activity]; !ok {
		return fmt.Errorf("%w: unknown activity level %q", apperrors.ErrValidation, u.Activity)
	}
	return nil
}

// CalculateBMR computes the basal metabolic rate from physical attributes.
func CalculateBMR(weightKg, heightCm, age uint, sex string) float64 {
	bmr := 9.99*float64(weightKg) + 6.25*float64(heightCm) - 4.92*float64(age)
	if sex == model.SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// CalculateDailyKcal scales BMR by the activity factor and truncates to
// whole calories.
func CalculateDailyKcal(bmr float64, activity string) uint {
	factor, ok := model.ActivityFactors[activity]
	if !ok {
		return 0
	}
	return uint(bmr * factor)
}

// ApplyRequirement recomputes the daily requirement columns in place.
// Macro split: 5% of calories from carbs (4 kcal/g), 80% from fat
// (9 kcal/g), 15% from protein (4 kcal/g).
func ApplyRequirement(p *model.Profile) {
	if !p.Complete() {
		return
	}
	kcal := CalculateDailyKcal(CalculateBMR(p.WeightKg, p.HeightCm, p.Age, p.Sex), p.Activity)
	p.DailyKcal = kcal
	p.CarbsG = uint(float64(kcal) * 0.05 / 4)
	p.FatG = uint(float64(kcal) * 0.8 / 9)
	p.ProteinG = uint(float64(kcal) * 0.15 / 4)
}
