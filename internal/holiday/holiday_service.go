package holiday

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	holidayerrors "go-absensi/internal/holiday/errors"
	"go-absensi/internal/shared/response"
)

const dateLayout = "2006-01-02"

// ScheduleSource exposes the slice of the work schedule registry the
// holiday module needs. Wired in the app registry to avoid a package
// cycle with workinghour.
type ScheduleSource interface {
	SchedulesForDay(ctx context.Context, dayOfWeek string) ([]AffectedSchedule, error)
	RemoveSchedules(ctx context.Context, workingHourIDs []string) error
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Get(ctx context.Context, id string) (HolidayDetailResponse, error)
	List(ctx context.Context, query ListHolidaysQuery) ([]HolidayResponse, *response.PaginationMeta, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	IsHoliday(ctx context.Context, date time.Time) (bool, *Holiday, error)
	ResolveRange(ctx context.Context, start, end time.Time) (map[string][]Holiday, error)
	ProcessConflicts(ctx context.Context, req ProcessConflictsRequest) (ProcessConflictsResult, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	schedules ScheduleSource
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, schedules ScheduleSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{db: db, repo: repo, schedules: schedules, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	h := &Holiday{
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("gagal membuat hari libur", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("hari libur dibuat", zap.String("id", h.ID.String()), zap.String("date", req.Date))
	return toResponse(*h), nil
}

func (s *service) Get(ctx context.Context, id string) (HolidayDetailResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayDetailResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayDetailResponse{}, err
	}

	detail := HolidayDetailResponse{Holiday: toResponse(*h)}

	if s.schedules != nil {
		day := strings.ToLower(h.Date.Weekday().String())
		affected, err := s.schedules.SchedulesForDay(ctx, day)
		if err != nil {
			s.logger.Warn("gagal memuat jadwal terdampak", zap.Error(err))
		} else if len(affected) > 0 {
			detail.AffectedWorkingHours = &AffectedWorkingHours{
				Date:      h.Date.Format(dateLayout),
				DayOfWeek: day,
				UserCount: len(affected),
				Users:     affected,
			}
		}
	}
	return detail, nil
}

func (s *service) List(ctx context.Context, query ListHolidaysQuery) ([]HolidayResponse, *response.PaginationMeta, error) {
	filter := ListFilter{
		Year:        query.Year,
		IsRecurring: query.IsRecurring,
		Page:        query.Page,
		PerPage:     query.PerPage,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 15
	}

	if query.StartDate != "" || query.EndDate != "" {
		start, err := time.Parse(dateLayout, query.StartDate)
		if err != nil {
			return nil, nil, holidayerrors.ErrInvalidDateFormat
		}
		end, err := time.Parse(dateLayout, query.EndDate)
		if err != nil {
			return nil, nil, holidayerrors.ErrInvalidDateFormat
		}
		if end.Before(start) {
			return nil, nil, holidayerrors.ErrInvalidDateRange
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	holidays, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	items := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		items = append(items, toResponse(h))
	}
	meta := response.NewPaginationMeta(total, filter.Page, filter.PerPage)
	return items, &meta, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
		}
		h.Date = date
	}
	if req.Description != nil {
		h.Description = req.Description
	}
	if req.IsRecurring != nil {
		h.IsRecurring = *req.IsRecurring
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return HolidayResponse{}, err
	}
	return toResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// IsHoliday resolves whether date falls on any holiday. Returns the first
// matching entry ordered by date when more than one applies.
func (s *service) IsHoliday(ctx context.Context, date time.Time) (bool, *Holiday, error) {
	holidays, err := s.repo.FindForDate(ctx, date)
	if err != nil {
		return false, nil, err
	}
	for i := range holidays {
		if holidays[i].Matches(date) {
			return true, &holidays[i], nil
		}
	}
	return false, nil, nil
}

// ResolveRange maps every date in [start, end] that is a holiday to the
// entries covering it. Keys use the YYYY-MM-DD layout. A single candidate
// query feeds the whole range so report generation stays one round trip.
func (s *service) ResolveRange(ctx context.Context, start, end time.Time) (map[string][]Holiday, error) {
	candidates, err := s.repo.FindCandidatesForRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string][]Holiday)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, h := range candidates {
			if h.Matches(d) {
				resolved[d.Format(dateLayout)] = append(resolved[d.Format(dateLayout)], h)
			}
		}
	}
	return resolved, nil
}

func (s *service) ProcessConflicts(ctx context.Context, req ProcessConflictsRequest) (ProcessConflictsResult, error) {
	h, err := s.repo.FindByID(ctx, req.HolidayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProcessConflictsResult{}, holidayerrors.ErrHolidayNotFound
		}
		return ProcessConflictsResult{}, err
	}

	day := strings.ToLower(h.Date.Weekday().String())
	affected, err := s.schedules.SchedulesForDay(ctx, day)
	if err != nil {
		return ProcessConflictsResult{}, err
	}

	result := ProcessConflictsResult{Action: req.Action, Conflicts: len(affected)}
	if req.Action == "skip" || len(affected) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(affected))
	for _, a := range affected {
		ids = append(ids, a.WorkingHourID)
	}
	if err := s.schedules.RemoveSchedules(ctx, ids); err != nil {
		return ProcessConflictsResult{}, err
	}
	result.Removed = len(ids)

	s.logger.Info("konflik jadwal diproses",
		zap.String("holiday_id", req.HolidayID),
		zap.Int("removed", result.Removed))
	return result, nil
}

func toResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format(dateLayout),
		Description: h.Description,
		IsRecurring: h.IsRecurring,
	}
}
