package workinghour

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-absensi/internal/holiday"
	workinghourerrors "go-absensi/internal/workinghour/errors"
)

// conflictScanDays bounds how far ahead the bulk-assign holiday scan
// looks for collisions.
const conflictScanDays = 90

// HolidayCalendar is the slice of the holiday module needed to warn
// admins about schedules landing on holidays.
type HolidayCalendar interface {
	ResolveRange(ctx context.Context, start, end time.Time) (map[string][]holiday.Holiday, error)
}

//go:generate mockgen -source=workinghour_service.go -destination=mock/workinghour_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, req AssignWorkingHoursRequest) (AssignResultResponse, error)
	UpdateUserSchedule(ctx context.Context, userID string, req UpdateUserScheduleRequest) ([]WorkingHourResponse, error)
	GetWeek(ctx context.Context, userID string) (WeekScheduleResponse, error)
	ScheduleFor(ctx context.Context, userID uuid.UUID, date time.Time) (*WorkingHour, error)
	Delete(ctx context.Context, id string) error

	// adapter surface consumed by the holiday module
	SchedulesForDay(ctx context.Context, dayOfWeek string) ([]holiday.AffectedSchedule, error)
	RemoveSchedules(ctx context.Context, workingHourIDs []string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	calendar HolidayCalendar
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, calendar HolidayCalendar, logger ...*zap.Logger) Service {
	l := zap.L().Named("workinghour_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{db: db, repo: repo, calendar: calendar, logger: l}
}

func validateSchedules(schedules []ScheduleInput) error {
	seen := make(map[string]bool, len(schedules))
	for i := range schedules {
		day := strings.ToLower(strings.TrimSpace(schedules[i].DayOfWeek))
		schedules[i].DayOfWeek = day
		if !validDays[day] {
			return workinghourerrors.ErrInvalidDayOfWeek
		}
		if seen[day] {
			return workinghourerrors.ErrDuplicateDay
		}
		seen[day] = true
		if _, err := time.Parse(timeLayout, schedules[i].StartTime); err != nil {
			return workinghourerrors.ErrInvalidTimeFormat
		}
		if _, err := time.Parse(timeLayout, schedules[i].EndTime); err != nil {
			return workinghourerrors.ErrInvalidTimeFormat
		}
	}
	return nil
}

func (s *service) Assign(ctx context.Context, req AssignWorkingHoursRequest) (AssignResultResponse, error) {
	if err := validateSchedules(req.Schedules); err != nil {
		return AssignResultResponse{}, err
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return AssignResultResponse{}, workinghourerrors.ErrWorkingHourNotFound
		}
		userIDs = append(userIDs, id)
	}

	result := AssignResultResponse{AssignedUsers: len(userIDs)}
	for _, userID := range userIDs {
		for _, in := range req.Schedules {
			day := strings.ToLower(in.DayOfWeek)
			entry := &WorkingHour{
				UserID:    userID,
				DayOfWeek: day,
				StartTime: in.StartTime,
				EndTime:   in.EndTime,
			}
			if err := s.repo.Upsert(ctx, entry); err != nil {
				s.logger.Error("gagal menyimpan jam kerja",
					zap.String("user_id", userID.String()),
					zap.String("day", day),
					zap.Error(err))
				return AssignResultResponse{}, err
			}
			result.AssignedEntries++
			result.Entries = append(result.Entries, toResponse(*entry))
		}
	}

	if req.CheckHolidays && s.calendar != nil {
		conflicts, err := s.scanHolidayConflicts(ctx, req.Schedules)
		if err != nil {
			s.logger.Warn("gagal memindai konflik hari libur", zap.Error(err))
		} else {
			result.HolidayConflicts = conflicts
		}
	}

	s.logger.Info("jam kerja ditetapkan",
		zap.Int("users", result.AssignedUsers),
		zap.Int("entries", result.AssignedEntries))
	return result, nil
}

func (s *service) scanHolidayConflicts(ctx context.Context, schedules []ScheduleInput) ([]HolidayConflict, error) {
	assignedDays := make(map[string]bool, len(schedules))
	for _, in := range schedules {
		assignedDays[strings.ToLower(in.DayOfWeek)] = true
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, conflictScanDays)
	resolved, err := s.calendar.ResolveRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var conflicts []HolidayConflict
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		entries, ok := resolved[key]
		if !ok {
			continue
		}
		weekday := strings.ToLower(d.Weekday().String())
		if !assignedDays[weekday] {
			continue
		}
		for _, h := range entries {
			conflicts = append(conflicts, HolidayConflict{
				Date:        key,
				DayOfWeek:   weekday,
				HolidayName: h.Name,
			})
		}
	}
	return conflicts, nil
}

func (s *service) UpdateUserSchedule(ctx context.Context, userID string, req UpdateUserScheduleRequest) ([]WorkingHourResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, workinghourerrors.ErrWorkingHourNotFound
	}
	if err := validateSchedules(req.Schedules); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if req.ReplaceAll {
		if err := qtx.DeleteByUser(ctx, uid); err != nil {
			return nil, err
		}
	}

	responses := make([]WorkingHourResponse, 0, len(req.Schedules))
	for _, in := range req.Schedules {
		entry := &WorkingHour{
			UserID:    uid,
			DayOfWeek: strings.ToLower(in.DayOfWeek),
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		}
		if err := qtx.Upsert(ctx, entry); err != nil {
			return nil, err
		}
		responses = append(responses, toResponse(*entry))
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *service) GetWeek(ctx context.Context, userID string) (WeekScheduleResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return WeekScheduleResponse{}, workinghourerrors.ErrWorkingHourNotFound
	}

	entries, err := s.repo.FindAllByUser(ctx, uid)
	if err != nil {
		return WeekScheduleResponse{}, err
	}

	byDay := make(map[string]*WorkingHourResponse, len(WeekDays))
	for _, day := range WeekDays {
		byDay[day] = nil
	}
	for _, entry := range entries {
		resp := toResponse(entry)
		byDay[entry.DayOfWeek] = &resp
	}
	return WeekScheduleResponse{UserID: userID, Schedule: byDay}, nil
}

// ScheduleFor resolves the user's schedule entry for the weekday of date.
// A missing entry means the day is unscheduled and is not an error.
func (s *service) ScheduleFor(ctx context.Context, userID uuid.UUID, date time.Time) (*WorkingHour, error) {
	day := strings.ToLower(date.Weekday().String())
	entry, err := s.repo.FindByUserAndDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workinghourerrors.ErrWorkingHourNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SchedulesForDay(ctx context.Context, dayOfWeek string) ([]holiday.AffectedSchedule, error) {
	entries, err := s.repo.FindByDayOfWeek(ctx, strings.ToLower(dayOfWeek))
	if err != nil {
		return nil, err
	}

	affected := make([]holiday.AffectedSchedule, 0, len(entries))
	for _, entry := range entries {
		affected = append(affected, holiday.AffectedSchedule{
			UserID:        entry.UserID.String(),
			WorkingHourID: entry.ID.String(),
			StartTime:     entry.StartTime,
			EndTime:       entry.EndTime,
		})
	}
	return affected, nil
}

func (s *service) RemoveSchedules(ctx context.Context, workingHourIDs []string) error {
	return s.repo.DeleteByIDs(ctx, workingHourIDs)
}

func toResponse(w WorkingHour) WorkingHourResponse {
	return WorkingHourResponse{
		ID:              w.ID.String(),
		UserID:          w.UserID.String(),
		DayOfWeek:       w.DayOfWeek,
		StartTime:       w.StartTime,
		EndTime:         w.EndTime,
		DurationMinutes: w.DurationMinutes(),
	}
}
