package leavequota

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	Year    int
	UserID  *uuid.UUID
	Page    int
	PerPage int
}

//go:generate mockgen -source=leavequota_repo.go -destination=mock/leavequota_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, q *LeaveQuota) error
	FindByID(ctx context.Context, id string) (*LeaveQuota, error)
	FindByUserAndYear(ctx context.Context, userID uuid.UUID, year int) (*LeaveQuota, error)
	FindOrCreateLocked(ctx context.Context, userID uuid.UUID, year, defaultTotal int) (*LeaveQuota, error)
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveQuota, int64, error)
	Update(ctx context.Context, q *LeaveQuota) error
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

func (r *repository) Create(ctx context.Context, q *LeaveQuota) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveQuota, error) {
	var q LeaveQuota
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	return &q, err
}

func (r *repository) FindByUserAndYear(ctx context.Context, userID uuid.UUID, year int) (*LeaveQuota, error) {
	var q LeaveQuota
	err := r.db.WithContext(ctx).
		First(&q, "user_id = ? AND year = ?", userID, year).Error
	return &q, err
}

// FindOrCreateLocked returns the user's quota row for year under a row
// lock, creating it with defaultTotal when missing. Callers mutate the
// row and Update inside the same transaction.
func (r *repository) FindOrCreateLocked(ctx context.Context, userID uuid.UUID, year, defaultTotal int) (*LeaveQuota, error) {
	var q LeaveQuota
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&q, "user_id = ? AND year = ?", userID, year).Error
	if err == nil {
		return &q, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	q = LeaveQuota{UserID: userID, Year: year, TotalQuota: defaultTotal}
	if err := r.db.WithContext(ctx).Create(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveQuota, int64, error) {
	db := r.db.WithContext(ctx).Model(&LeaveQuota{})
	if filter.Year != 0 {
		db = db.Where("year = ?", filter.Year)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotas []LeaveQuota
	err := db.Order("year DESC, user_id ASC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&quotas).Error
	return quotas, total, err
}

func (r *repository) Update(ctx context.Context, q *LeaveQuota) error {
	return r.db.WithContext(ctx).Save(q).Error
}
