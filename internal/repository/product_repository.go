package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ketotrack/internal/model"
)

const dateLayout = "2006-01-02"

// DayTotals carries the summed macros for one (profile, date) pair as
// returned by the grouped aggregation query.
type DayTotals struct {
	Date     time.Time `gorm:"column:date"`
	Kcal     uint      `gorm:"column:kcal"`
	CarbG    uint      `gorm:"column:carb_g"`
	FatG     uint      `gorm:"column:fat_g"`
	ProteinG uint      `gorm:"column:protein_g"`
}

// ProductRepository defines persistence operations for product entries,
// including the read-time aggregation queries used by the summary service.
type ProductRepository interface {
	Create(ctx context.Context, entry *model.ProductEntry) error
	Update(ctx context.Context, entry *model.ProductEntry) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.ProductEntry, error)
	ListByProfile(ctx context.Context, profileID uint, nameFilter string) ([]model.ProductEntry, error)
	ListByDate(ctx context.Context, profileID uint, date time.Time) ([]model.ProductEntry, error)
	ListByDateRange(ctx context.Context, profileID uint, start, end time.Time) ([]model.ProductEntry, error)
	SumByDate(ctx context.Context, profileID uint, date time.Time) (DayTotals, error)
	SumByDateRange(ctx context.Context, profileID uint, start, end time.Time) ([]DayTotals, error)
	ExistsInRange(ctx context.Context, profileID uint, start, end time.Time) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a GORM-backed repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, entry *model.ProductEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *productRepository) Update(ctx context.Context, entry *model.ProductEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ProductEntry{}, id).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.ProductEntry, error) {
	var entry model.ProductEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *productRepository) ListByProfile(ctx context.Context, profileID uint, nameFilter string) ([]model.ProductEntry, error) {
	q := r.db.WithContext(ctx).Where("profile_id = ?", profileID)
	if nameFilter != "" {
		q = q.Where("name = ?", nameFilter)
	}
	var entries []model.ProductEntry
	if err := q.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *productRepository) ListByDate(ctx context.Context, profileID uint, date time.Time) ([]model.ProductEntry, error) {
	var entries []model.ProductEntry
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND date = ?", profileID, date.Format(dateLayout)).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *productRepository) ListByDateRange(ctx context.Context, profileID uint, start, end time.Time) ([]model.ProductEntry, error) {
	var entries []model.ProductEntry
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND date BETWEEN ? AND ?", profileID, start.Format(dateLayout), end.Format(dateLayout)).
		Order("date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *productRepository) SumByDate(ctx context.Context, profileID uint, date time.Time) (DayTotals, error) {
	var totals DayTotals
	err := r.db.WithContext(ctx).
		Model(&model.ProductEntry{}).
		Select("COALESCE(SUM(kcal),0) AS kcal, COALESCE(SUM(carb_g),0) AS carb_g, COALESCE(SUM(fat_g),0) AS fat_g, COALESCE(SUM(protein_g),0) AS protein_g").
		Where("profile_id = ? AND date = ?", profileID, date.Format(dateLayout)).
		Scan(&totals).Error
	if err != nil {
		return DayTotals{}, err
	}
	totals.Date = date
	return totals, nil
}

func (r *productRepository) SumByDateRange(ctx context.Context, profileID uint, start, end time.Time) ([]DayTotals, error) {
	var totals []DayTotals
	err := r.db.WithContext(ctx).
		Model(&model.ProductEntry{}).
		Select("date, COALESCE(SUM(kcal),0) AS kcal, COALESCE(SUM(carb_g),0) AS carb_g, COALESCE(SUM(fat_g),0) AS fat_g, COALESCE(SUM(protein_g),0) AS protein_g").
		Where("profile_id = ? AND date BETWEEN ? AND ?", profileID, start.Format(dateLayout), end.Format(dateLayout)).
		Group("date").
		Order("date ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *productRepository) ExistsInRange(ctx context.Context, profileID uint, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductEntry{}).
		Where("profile_id = ? AND date BETWEEN ? AND ?", profileID, start.Format(dateLayout), end.Format(dateLayout)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
