package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	ClockType string
	Method    string
	SortBy    string
	SortDir   string
	Page      int
	PerPage   int
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByUserDateAndType(ctx context.Context, userID uuid.UUID, date time.Time, clockType string) (*Attendance, error)
	FindAllByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]Attendance, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)
	FindAllByUserBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]Attendance, error)

	CreateTaskLog(ctx context.Context, tl *TaskLog) error
	FindTaskLogByID(ctx context.Context, id string) (*TaskLog, error)
	FindTaskLogsByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]TaskLog, error)
	UpdateTaskLog(ctx context.Context, tl *TaskLog) error
	DeleteTaskLog(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func (r *repository) FindByUserDateAndType(ctx context.Context, userID uuid.UUID, date time.Time, clockType string) (*Attendance, error) {
	start, end := dayBounds(date)
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND clock_type = ? AND created_at >= ? AND created_at < ?",
			userID, clockType, start, end).
		Order("created_at ASC").
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]Attendance, error) {
	start, end := dayBounds(date)
	var records []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, int64, error) {
	db := r.db.WithContext(ctx).Model(&Attendance{}).
		Where("user_id = ?", filter.UserID).
		Where("created_at >= ? AND created_at < ?", filter.StartDate, filter.EndDate)

	if filter.ClockType != "" {
		db = db.Where("clock_type = ?", filter.ClockType)
	}
	if filter.Method != "" {
		db = db.Where("method = ?", filter.Method)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []Attendance
	err := db.Order(filter.SortBy + " " + filter.SortDir).
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&records).Error
	return records, total, err
}

func (r *repository) FindAllByUserBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]Attendance, error) {
	var records []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?",
			userID, start, end.AddDate(0, 0, 1)).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) CreateTaskLog(ctx context.Context, tl *TaskLog) error {
	return r.db.WithContext(ctx).Create(tl).Error
}

func (r *repository) FindTaskLogByID(ctx context.Context, id string) (*TaskLog, error) {
	var tl TaskLog
	err := r.db.WithContext(ctx).First(&tl, "id = ?", id).Error
	return &tl, err
}

func (r *repository) FindTaskLogsByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]TaskLog, error) {
	var logs []TaskLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *repository) UpdateTaskLog(ctx context.Context, tl *TaskLog) error {
	return r.db.WithContext(ctx).Save(tl).Error
}

func (r *repository) DeleteTaskLog(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TaskLog{}, "id = ?", id).Error
}
