package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/shared/response"
	"go-absensi/internal/storage"
)

const (
	defaultListDays = 30
	photoURLTTL     = 15 * time.Minute
)

// allowed sort columns for the attendance list
var sortColumns = map[string]bool{
	"created_at": true,
	"clock_type": true,
	"method":     true,
	"location":   true,
}

type PhotoUpload struct {
	Data     []byte
	Filename string
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	RecordClock(ctx context.Context, userID string, req RecordClockRequest) (AttendanceResponse, error)
	GetToday(ctx context.Context, userID string) (TodayResponse, error)
	List(ctx context.Context, userID string, query ListQuery) ([]AttendanceResponse, *response.PaginationMeta, error)

	AddTaskLog(ctx context.Context, userID string, req CreateTaskLogRequest, photo *PhotoUpload) (TaskLogResponse, error)
	UpdateTaskLog(ctx context.Context, userID, taskLogID string, req UpdateTaskLogRequest, photo *PhotoUpload) (TaskLogResponse, error)
	DeleteTaskLog(ctx context.Context, userID, taskLogID string) error
	GetTaskLogs(ctx context.Context, userID string, date time.Time) ([]TaskLogResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	objects storage.ObjectStorage
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, objects storage.ObjectStorage, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{db: db, repo: repo, objects: objects, logger: l}
}

func (s *service) RecordClock(ctx context.Context, userID string, req RecordClockRequest) (AttendanceResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidClockType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()

	switch req.ClockType {
	case ClockTypeIn:
		_, err := qtx.FindByUserDateAndType(ctx, uid, now, ClockTypeIn)
		if err == nil {
			return AttendanceResponse{}, attendanceerrors.ErrDuplicateClockIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, err
		}
	case ClockTypeOut:
		if _, err := qtx.FindByUserDateAndType(ctx, uid, now, ClockTypeIn); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AttendanceResponse{}, attendanceerrors.ErrMissingClockIn
			}
			return AttendanceResponse{}, err
		}
		_, err := qtx.FindByUserDateAndType(ctx, uid, now, ClockTypeOut)
		if err == nil {
			return AttendanceResponse{}, attendanceerrors.ErrDuplicateClockOut
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, err
		}
	default:
		return AttendanceResponse{}, attendanceerrors.ErrInvalidClockType
	}

	record := &Attendance{
		UserID:    uid,
		ClockType: req.ClockType,
		Method:    req.Method,
		Location:  req.Location,
		CreatedAt: now,
	}
	if record.Method == "" {
		record.Method = MethodManual
	}
	if record.Location == "" {
		record.Location = DefaultLocation
	}

	if err := qtx.Create(ctx, record); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock tercatat",
		zap.String("user_id", userID),
		zap.String("clock_type", record.ClockType),
		zap.String("method", record.Method))
	return toResponse(*record), nil
}

func (s *service) GetToday(ctx context.Context, userID string) (TodayResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return TodayResponse{}, attendanceerrors.ErrInvalidClockType
	}

	now := time.Now().UTC()
	records, err := s.repo.FindAllByUserAndDate(ctx, uid, now)
	if err != nil {
		return TodayResponse{}, err
	}

	resp := TodayResponse{
		Date:    now.Format("2006-01-02"),
		Records: make([]AttendanceResponse, 0, len(records)),
	}

	var clockIn, clockOut *time.Time
	for _, r := range records {
		resp.Records = append(resp.Records, toResponse(r))
		switch r.ClockType {
		case ClockTypeIn:
			if clockIn == nil {
				t := r.CreatedAt
				clockIn = &t
			}
		case ClockTypeOut:
			t := r.CreatedAt
			clockOut = &t
		}
	}
	resp.ClockedIn = clockIn != nil
	resp.ClockedOut = clockOut != nil
	resp.WorkDuration = computeDuration(clockIn, clockOut)
	return resp, nil
}

func computeDuration(clockIn, clockOut *time.Time) WorkDuration {
	if clockIn == nil || clockOut == nil {
		return WorkDuration{}
	}
	minutes := int(clockOut.Sub(*clockIn).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return WorkDuration{
		Hours:        minutes / 60,
		Minutes:      minutes % 60,
		TotalMinutes: minutes,
	}
}

func (s *service) List(ctx context.Context, userID string, query ListQuery) ([]AttendanceResponse, *response.PaginationMeta, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil, attendanceerrors.ErrInvalidClockType
	}

	filter := ListFilter{
		UserID:    uid,
		ClockType: query.ClockType,
		Method:    query.Method,
		SortBy:    query.SortBy,
		SortDir:   query.SortDir,
		Page:      query.Page,
		PerPage:   query.PerPage,
	}
	if !sortColumns[filter.SortBy] {
		filter.SortBy = "created_at"
	}
	if filter.SortDir != "asc" && filter.SortDir != "desc" {
		filter.SortDir = "desc"
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 15
	}

	// prioritas filter: days, lalu rentang, lalu satu tanggal, lalu default
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case query.Days > 0:
		filter.StartDate = today.AddDate(0, 0, -query.Days+1)
		filter.EndDate = today.AddDate(0, 0, 1)
	case query.StartDate != "" && query.EndDate != "":
		start, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFilter
		}
		end, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFilter
		}
		filter.StartDate = start
		filter.EndDate = end.AddDate(0, 0, 1)
	case query.Date != "":
		date, err := time.Parse("2006-01-02", query.Date)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFilter
		}
		filter.StartDate = date
		filter.EndDate = date.AddDate(0, 0, 1)
	default:
		filter.StartDate = today.AddDate(0, 0, -defaultListDays+1)
		filter.EndDate = today.AddDate(0, 0, 1)
	}

	records, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	items := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toResponse(r))
	}
	meta := response.NewPaginationMeta(total, filter.Page, filter.PerPage)
	return items, &meta, nil
}

func (s *service) AddTaskLog(ctx context.Context, userID string, req CreateTaskLogRequest, photo *PhotoUpload) (TaskLogResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return TaskLogResponse{}, attendanceerrors.ErrTaskLogNotFound
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return TaskLogResponse{}, attendanceerrors.ErrInvalidDateFilter
	}

	tl := &TaskLog{UserID: uid, Date: date, Description: req.Description}

	if photo != nil {
		path := taskLogPhotoPath(photo.Filename)
		if _, err := s.objects.Put(ctx, path, photo.Data, storage.VisibilityPrivate); err != nil {
			s.logger.Error("gagal mengunggah foto task log", zap.Error(err))
			return TaskLogResponse{}, err
		}
		tl.PhotoPath = &path
	}

	if err := s.repo.CreateTaskLog(ctx, tl); err != nil {
		if tl.PhotoPath != nil {
			s.cleanupObject(ctx, *tl.PhotoPath)
		}
		return TaskLogResponse{}, err
	}
	return s.toTaskLogResponse(ctx, *tl), nil
}

func (s *service) UpdateTaskLog(ctx context.Context, userID, taskLogID string, req UpdateTaskLogRequest, photo *PhotoUpload) (TaskLogResponse, error) {
	tl, err := s.ownedTaskLog(ctx, userID, taskLogID)
	if err != nil {
		return TaskLogResponse{}, err
	}

	if req.Description != nil {
		tl.Description = *req.Description
	}

	var stalePath *string
	switch {
	case photo != nil:
		path := taskLogPhotoPath(photo.Filename)
		if _, err := s.objects.Put(ctx, path, photo.Data, storage.VisibilityPrivate); err != nil {
			return TaskLogResponse{}, err
		}
		stalePath = tl.PhotoPath
		tl.PhotoPath = &path
	case req.RemovePhoto:
		stalePath = tl.PhotoPath
		tl.PhotoPath = nil
	}

	if err := s.repo.UpdateTaskLog(ctx, tl); err != nil {
		if photo != nil && tl.PhotoPath != nil {
			s.cleanupObject(ctx, *tl.PhotoPath)
		}
		return TaskLogResponse{}, err
	}
	if stalePath != nil {
		s.cleanupObject(ctx, *stalePath)
	}
	return s.toTaskLogResponse(ctx, *tl), nil
}

func (s *service) DeleteTaskLog(ctx context.Context, userID, taskLogID string) error {
	tl, err := s.ownedTaskLog(ctx, userID, taskLogID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTaskLog(ctx, taskLogID); err != nil {
		return err
	}
	if tl.PhotoPath != nil {
		s.cleanupObject(ctx, *tl.PhotoPath)
	}
	return nil
}

func (s *service) GetTaskLogs(ctx context.Context, userID string, date time.Time) ([]TaskLogResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, attendanceerrors.ErrTaskLogNotFound
	}

	logs, err := s.repo.FindTaskLogsByUserAndDate(ctx, uid, date)
	if err != nil {
		return nil, err
	}

	items := make([]TaskLogResponse, 0, len(logs))
	for _, tl := range logs {
		items = append(items, s.toTaskLogResponse(ctx, tl))
	}
	return items, nil
}

func (s *service) ownedTaskLog(ctx context.Context, userID, taskLogID string) (*TaskLog, error) {
	tl, err := s.repo.FindTaskLogByID(ctx, taskLogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrTaskLogNotFound
		}
		return nil, err
	}
	if tl.UserID.String() != userID {
		return nil, attendanceerrors.ErrTaskLogForbidden
	}
	return tl, nil
}

// cleanupObject removes an orphaned or replaced object. Failures are
// logged only, the database row is already the source of truth.
func (s *service) cleanupObject(ctx context.Context, path string) {
	if err := s.objects.Delete(ctx, path); err != nil {
		s.logger.Warn("gagal menghapus objek", zap.String("path", path), zap.Error(err))
	}
}

func taskLogPhotoPath(filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("task-logs/%s%s", uuid.NewString(), ext)
}

func (s *service) toTaskLogResponse(ctx context.Context, tl TaskLog) TaskLogResponse {
	resp := TaskLogResponse{
		ID:          tl.ID.String(),
		UserID:      tl.UserID.String(),
		Date:        tl.Date.Format("2006-01-02"),
		Description: tl.Description,
		HasPhoto:    tl.PhotoPath != nil,
	}
	if tl.PhotoPath != nil {
		url, err := s.objects.TemporaryURL(ctx, *tl.PhotoPath, photoURLTTL)
		if err != nil {
			s.logger.Warn("gagal membuat temporary url", zap.Error(err))
		} else {
			resp.PhotoURL = &url
		}
	}
	return resp
}

func toResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		ClockType: a.ClockType,
		Method:    a.Method,
		Location:  a.Location,
		CreatedAt: a.CreatedAt,
	}
}
