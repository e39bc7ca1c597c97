package workinghour

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=workinghour_repo.go -destination=mock/workinghour_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, w *WorkingHour) error
	FindByID(ctx context.Context, id string) (*WorkingHour, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]WorkingHour, error)
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, dayOfWeek string) (*WorkingHour, error)
	FindByDayOfWeek(ctx context.Context, dayOfWeek string) ([]WorkingHour, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error
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

// Upsert inserts the schedule entry, replacing the time window when the
// user already has one for that day.
func (r *repository) Upsert(ctx context.Context, w *WorkingHour) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "updated_at"}),
		}).
		Create(w).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*WorkingHour, error) {
	var w WorkingHour
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	return &w, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]WorkingHour, error) {
	var entries []WorkingHour
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, dayOfWeek string) (*WorkingHour, error) {
	var w WorkingHour
	err := r.db.WithContext(ctx).
		First(&w, "user_id = ? AND day_of_week = ?", userID, dayOfWeek).Error
	return &w, err
}

func (r *repository) FindByDayOfWeek(ctx context.Context, dayOfWeek string) ([]WorkingHour, error) {
	var entries []WorkingHour
	err := r.db.WithContext(ctx).
		Where("day_of_week = ?", dayOfWeek).
		Order("user_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&WorkingHour{}, "user_id = ?", userID).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&WorkingHour{}, "id = ?", id).Error
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&WorkingHour{}, "id IN ?", ids).Error
}
