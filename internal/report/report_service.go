package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-absensi/internal/attendance"
	"go-absensi/internal/holiday"
	"go-absensi/internal/leave"
	"go-absensi/internal/leavequota"
	reporterrors "go-absensi/internal/report/errors"
	"go-absensi/internal/workinghour"
)

const (
	dateLayout = "2006-01-02"

	// maxRangeDays bounds one report request to a year.
	maxRangeDays = 366
)

type AttendanceSource interface {
	FindAllByUserBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]attendance.Attendance, error)
}

type LeaveSource interface {
	FindApprovedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]leave.LeaveRequest, error)
}

type HolidaySource interface {
	ResolveRange(ctx context.Context, start, end time.Time) (map[string][]holiday.Holiday, error)
}

type ScheduleSource interface {
	ScheduleFor(ctx context.Context, userID uuid.UUID, date time.Time) (*workinghour.WorkingHour, error)
}

type QuotaSource interface {
	GetMine(ctx context.Context, userID string, year int) (leavequota.QuotaResponse, error)
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, userID string, query ReportQuery) (ReportResponse, error)
}

type service struct {
	attendances AttendanceSource
	leaves      LeaveSource
	holidays    HolidaySource
	schedules   ScheduleSource
	quotas      QuotaSource
	group       singleflight.Group
	logger      *zap.Logger
}

func NewService(
	attendances AttendanceSource,
	leaves LeaveSource,
	holidays HolidaySource,
	schedules ScheduleSource,
	quotas QuotaSource,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		attendances: attendances,
		leaves:      leaves,
		holidays:    holidays,
		schedules:   schedules,
		quotas:      quotas,
		logger:      l,
	}
}

// Generate builds the per-day attendance report. Identical concurrent
// requests share one computation via singleflight.
func (s *service) Generate(ctx context.Context, userID string, query ReportQuery) (ReportResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidDateRange
	}

	start, err := time.Parse(dateLayout, query.StartDate)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, query.EndDate)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return ReportResponse{}, reporterrors.ErrInvalidDateRange
	}
	if int(end.Sub(start).Hours()/24)+1 > maxRangeDays {
		return ReportResponse{}, reporterrors.ErrRangeTooLarge
	}

	key := fmt.Sprintf("%s|%s|%s", userID, query.StartDate, query.EndDate)
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generate(ctx, uid, start, end)
	})
	if err != nil {
		return ReportResponse{}, err
	}
	return result.(ReportResponse), nil
}

func (s *service) generate(ctx context.Context, userID uuid.UUID, start, end time.Time) (ReportResponse, error) {
	holidays, err := s.holidays.ResolveRange(ctx, start, end)
	if err != nil {
		return ReportResponse{}, err
	}
	leaves, err := s.leaves.FindApprovedBetween(ctx, userID, start, end)
	if err != nil {
		return ReportResponse{}, err
	}
	records, err := s.attendances.FindAllByUserBetween(ctx, userID, start, end)
	if err != nil {
		return ReportResponse{}, err
	}

	// indeks kehadiran per tanggal, satu kali jalan
	type dayClocks struct {
		in  *time.Time
		out *time.Time
	}
	clocksByDate := make(map[string]*dayClocks)
	for i := range records {
		key := records[i].CreatedAt.Format(dateLayout)
		dc, ok := clocksByDate[key]
		if !ok {
			dc = &dayClocks{}
			clocksByDate[key] = dc
		}
		t := records[i].CreatedAt
		switch records[i].ClockType {
		case attendance.ClockTypeIn:
			if dc.in == nil {
				dc.in = &t
			}
		case attendance.ClockTypeOut:
			dc.out = &t
		}
	}

	leaveTypeFor := func(date time.Time) string {
		for i := range leaves {
			if !date.Before(leaves[i].StartDate) && !date.After(leaves[i].EndDate) {
				return leaves[i].Type
			}
		}
		return ""
	}

	resp := ReportResponse{
		UserID:    userID.String(),
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		day := DayReport{
			Date:      key,
			DayOfWeek: strings.ToLower(d.Weekday().String()),
		}

		schedule, err := s.schedules.ScheduleFor(ctx, userID, d)
		if err != nil {
			return ReportResponse{}, err
		}

		dayHolidays := holidays[key]
		isHoliday := len(dayHolidays) > 0
		leaveType := leaveTypeFor(d)

		if isHoliday {
			resp.Summary.HolidayCount++
			day.Status = DayStatusHoliday
			day.HolidayName = dayHolidays[0].Name
			resp.Days = append(resp.Days, day)
			continue
		}

		// hari kerja tidak terpengaruh cuti
		workDay := schedule != nil
		if workDay {
			resp.Summary.WorkDays++
			day.ScheduledMinutes = schedule.DurationMinutes()
			resp.Summary.ScheduledMinutes += day.ScheduledMinutes
		}

		if leaveType != "" {
			resp.Summary.LeaveDays++
			day.Status = DayStatusLeave
			day.LeaveType = leaveType
			resp.Days = append(resp.Days, day)
			continue
		}

		if !workDay {
			day.Status = DayStatusOff
			resp.Days = append(resp.Days, day)
			continue
		}

		dc := clocksByDate[key]
		if dc == nil || dc.in == nil {
			resp.Summary.AbsentDays++
			day.Status = DayStatusAbsent
			resp.Days = append(resp.Days, day)
			continue
		}

		resp.Summary.PresentDays++
		day.Status = DayStatusPresent
		in := dc.in.Format("15:04")
		day.ClockIn = &in
		if dc.out != nil {
			out := dc.out.Format("15:04")
			day.ClockOut = &out
			worked := int(dc.out.Sub(*dc.in).Minutes())
			if worked < 0 {
				worked = 0
			}
			day.WorkedMinutes = worked
			resp.Summary.WorkedMinutes += worked

			day.DeltaMinutes = worked - day.ScheduledMinutes
			switch {
			case day.DeltaMinutes > 0:
				day.Delta = DeltaOvertime
				resp.Summary.OvertimeMinutes += day.DeltaMinutes
			case day.DeltaMinutes < 0:
				day.Delta = DeltaUndertime
				resp.Summary.UndertimeMinutes += -day.DeltaMinutes
			default:
				day.Delta = DeltaExact
			}
		}
		resp.Days = append(resp.Days, day)
	}

	if resp.Summary.PresentDays > 0 {
		resp.Summary.AvgWorkedMinutes = resp.Summary.WorkedMinutes / resp.Summary.PresentDays
	}

	quota, err := s.quotas.GetMine(ctx, userID.String(), start.Year())
	if err != nil {
		return ReportResponse{}, err
	}
	resp.Quota = QuotaSnapshot{
		Year:       quota.Year,
		TotalQuota: quota.TotalQuota,
		UsedQuota:  quota.UsedQuota,
		Remaining:  quota.Remaining,
	}

	s.logger.Info("laporan kehadiran dibuat",
		zap.String("user_id", userID.String()),
		zap.String("start", resp.StartDate),
		zap.String("end", resp.EndDate),
		zap.Int("work_days", resp.Summary.WorkDays))
	return resp, nil
}
