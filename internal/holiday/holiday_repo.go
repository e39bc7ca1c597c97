package holiday

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Year        int
	IsRecurring *bool
	Page        int
	PerPage     int
}

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	FindByID(ctx context.Context, id string) (*Holiday, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Holiday, int64, error)
	FindForDate(ctx context.Context, date time.Time) ([]Holiday, error)
	FindCandidatesForRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	Update(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Holiday, int64, error) {
	db := r.db.WithContext(ctx).Model(&Holiday{})

	switch {
	case filter.StartDate != nil && filter.EndDate != nil:
		db = db.Where("date BETWEEN ? AND ?",
			filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02"))
	case filter.Year != 0:
		db = db.Where("EXTRACT(YEAR FROM date) = ? OR is_recurring = true", filter.Year)
	default:
		db = db.Where("EXTRACT(YEAR FROM date) = ? OR is_recurring = true", time.Now().Year())
	}

	if filter.IsRecurring != nil {
		db = db.Where("is_recurring = ?", *filter.IsRecurring)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var holidays []Holiday
	err := db.Order("date ASC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&holidays).Error
	return holidays, total, err
}

func (r *repository) FindForDate(ctx context.Context, date time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("date = ? OR (is_recurring = true AND EXTRACT(MONTH FROM date) = ? AND EXTRACT(DAY FROM date) = ?)",
			date.Format("2006-01-02"), int(date.Month()), date.Day()).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

// FindCandidatesForRange returns holidays dated inside [start, end] plus
// every recurring holiday. Callers match recurring rows per day in memory.
func (r *repository) FindCandidatesForRange(ctx context.Context, start, end time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("(date BETWEEN ? AND ?) OR is_recurring = true",
			start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) Update(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id).Error
}
