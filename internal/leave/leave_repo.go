package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	UserID  *uuid.UUID
	Status  string
	Type    string
	Year    int
	Page    int
	PerPage int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
	FindAllByUserAndYear(ctx context.Context, userID uuid.UUID, year int) ([]LeaveRequest, error)
	FindUpcoming(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]LeaveRequest, error)
	FindApprovedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]LeaveRequest, error)
	HasOverlap(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error

	CreateProof(ctx context.Context, p *LeaveRequestProof) error
	FindProofByID(ctx context.Context, id string) (*LeaveRequestProof, error)
	CountProofs(ctx context.Context, leaveRequestID uuid.UUID) (int64, error)
	UpdateProof(ctx context.Context, p *LeaveRequestProof) error
	DeleteProof(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Proofs").
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.Year != 0 {
		db = db.Where("EXTRACT(YEAR FROM start_date) = ?", filter.Year)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []LeaveRequest
	err := db.Preload("Proofs").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindAllByUserAndYear(ctx context.Context, userID uuid.UUID, year int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND EXTRACT(YEAR FROM start_date) = ?", userID, year).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindUpcoming(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_date >= ? AND status <> ?",
			userID, from.Format("2006-01-02"), StatusRejected).
		Order("start_date ASC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindApprovedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)",
			start.Format("2006-01-02"), end.Format("2006-01-02")).
		Find(&requests).Error
	return requests, err
}

// HasOverlap reports whether a non-rejected request of this user touches
// [start, end].
func (r *repository) HasOverlap(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{}).
		Where("user_id = ? AND status <> ?", userID, StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).Model(&LeaveRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}

func (r *repository) CreateProof(ctx context.Context, p *LeaveRequestProof) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindProofByID(ctx context.Context, id string) (*LeaveRequestProof, error) {
	var p LeaveRequestProof
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) CountProofs(ctx context.Context, leaveRequestID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LeaveRequestProof{}).
		Where("leave_request_id = ?", leaveRequestID).
		Count(&count).Error
	return count, err
}

func (r *repository) UpdateProof(ctx context.Context, p *LeaveRequestProof) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeleteProof(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequestProof{}, "id = ?", id).Error
}
