package holiday_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-absensi/internal/holiday"
	holidayerrors "go-absensi/internal/holiday/errors"
)

type fakeRepo struct {
	createFn                 func(ctx context.Context, h *holiday.Holiday) error
	findByIDFn               func(ctx context.Context, id string) (*holiday.Holiday, error)
	findAllFn                func(ctx context.Context, filter holiday.ListFilter) ([]holiday.Holiday, int64, error)
	findForDateFn            func(ctx context.Context, date time.Time) ([]holiday.Holiday, error)
	findCandidatesForRangeFn func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error)
	updateFn                 func(ctx context.Context, h *holiday.Holiday) error
	deleteFn                 func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) holiday.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, h *holiday.Holiday) error {
	return f.createFn(ctx, h)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*holiday.Holiday, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context, filter holiday.ListFilter) ([]holiday.Holiday, int64, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeRepo) FindForDate(ctx context.Context, date time.Time) ([]holiday.Holiday, error) {
	return f.findForDateFn(ctx, date)
}
func (f *fakeRepo) FindCandidatesForRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	return f.findCandidatesForRangeFn(ctx, start, end)
}
func (f *fakeRepo) Update(ctx context.Context, h *holiday.Holiday) error {
	return f.updateFn(ctx, h)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeScheduleSource struct {
	schedulesForDayFn func(ctx context.Context, dayOfWeek string) ([]holiday.AffectedSchedule, error)
	removeSchedulesFn func(ctx context.Context, workingHourIDs []string) error
}

func (f *fakeScheduleSource) SchedulesForDay(ctx context.Context, dayOfWeek string) ([]holiday.AffectedSchedule, error) {
	return f.schedulesForDayFn(ctx, dayOfWeek)
}
func (f *fakeScheduleSource) RemoveSchedules(ctx context.Context, workingHourIDs []string) error {
	return f.removeSchedulesFn(ctx, workingHourIDs)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)
	return d
}

func TestCreateHoliday(t *testing.T) {
	t.Run("berhasil membuat hari libur", func(t *testing.T) {
		repo := &fakeRepo{
			createFn: func(ctx context.Context, h *holiday.Holiday) error {
				h.ID = uuid.New()
				return nil
			},
		}
		svc := holiday.NewService(nil, repo, nil)

		resp, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{
			Name: "Hari Kemerdekaan",
			Date: "2025-08-17",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Hari Kemerdekaan", resp.Name)
		assert.Equal(t, "2025-08-17", resp.Date)
	})

	t.Run("format tanggal salah", func(t *testing.T) {
		svc := holiday.NewService(nil, &fakeRepo{}, nil)

		_, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{
			Name: "Invalid",
			Date: "17-08-2025",
		})
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
	})
}

func TestIsHoliday(t *testing.T) {
	newYear := holiday.Holiday{
		ID:          uuid.New(),
		Name:        "Tahun Baru",
		Date:        mustDate(t, "2024-01-01"),
		IsRecurring: true,
	}

	t.Run("recurring cocok pada tahun berbeda", func(t *testing.T) {
		repo := &fakeRepo{
			findForDateFn: func(ctx context.Context, date time.Time) ([]holiday.Holiday, error) {
				return []holiday.Holiday{newYear}, nil
			},
		}
		svc := holiday.NewService(nil, repo, nil)

		ok, h, err := svc.IsHoliday(context.Background(), mustDate(t, "2026-01-01"))
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Tahun Baru", h.Name)
	})

	t.Run("tanggal biasa bukan hari libur", func(t *testing.T) {
		repo := &fakeRepo{
			findForDateFn: func(ctx context.Context, date time.Time) ([]holiday.Holiday, error) {
				return nil, nil
			},
		}
		svc := holiday.NewService(nil, repo, nil)

		ok, h, err := svc.IsHoliday(context.Background(), mustDate(t, "2026-03-04"))
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, h)
	})

	t.Run("non-recurring hanya cocok pada tahun yang sama", func(t *testing.T) {
		oneOff := holiday.Holiday{
			ID:   uuid.New(),
			Name: "Cuti Bersama",
			Date: mustDate(t, "2025-04-01"),
		}
		repo := &fakeRepo{
			findForDateFn: func(ctx context.Context, date time.Time) ([]holiday.Holiday, error) {
				return []holiday.Holiday{oneOff}, nil
			},
		}
		svc := holiday.NewService(nil, repo, nil)

		ok, _, err := svc.IsHoliday(context.Background(), mustDate(t, "2026-04-01"))
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestResolveRange(t *testing.T) {
	recurring := holiday.Holiday{
		ID:          uuid.New(),
		Name:        "Tahun Baru",
		Date:        mustDate(t, "2020-01-01"),
		IsRecurring: true,
	}
	oneOff := holiday.Holiday{
		ID:   uuid.New(),
		Name: "Pemilu",
		Date: mustDate(t, "2026-01-03"),
	}

	repo := &fakeRepo{
		findCandidatesForRangeFn: func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
			return []holiday.Holiday{recurring, oneOff}, nil
		},
	}
	svc := holiday.NewService(nil, repo, nil)

	resolved, err := svc.ResolveRange(context.Background(), mustDate(t, "2026-01-01"), mustDate(t, "2026-01-05"))
	assert.NoError(t, err)
	assert.Len(t, resolved, 2)
	assert.Equal(t, "Tahun Baru", resolved["2026-01-01"][0].Name)
	assert.Equal(t, "Pemilu", resolved["2026-01-03"][0].Name)
	assert.NotContains(t, resolved, "2026-01-02")
}

func TestGetHoliday(t *testing.T) {
	t.Run("tidak ditemukan", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*holiday.Holiday, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := holiday.NewService(nil, repo, nil)

		_, err := svc.Get(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, holidayerrors.ErrHolidayNotFound)
	})

	t.Run("menyertakan jadwal terdampak", func(t *testing.T) {
		h := holiday.Holiday{
			ID:   uuid.New(),
			Name: "Hari Buruh",
			Date: mustDate(t, "2026-05-01"), // jumat
		}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*holiday.Holiday, error) {
				return &h, nil
			},
		}
		schedules := &fakeScheduleSource{
			schedulesForDayFn: func(ctx context.Context, dayOfWeek string) ([]holiday.AffectedSchedule, error) {
				assert.Equal(t, "friday", dayOfWeek)
				return []holiday.AffectedSchedule{
					{UserID: uuid.NewString(), WorkingHourID: uuid.NewString(), StartTime: "09:00", EndTime: "17:00"},
				}, nil
			},
		}
		svc := holiday.NewService(nil, repo, schedules)

		detail, err := svc.Get(context.Background(), h.ID.String())
		assert.NoError(t, err)
		assert.NotNil(t, detail.AffectedWorkingHours)
		assert.Equal(t, 1, detail.AffectedWorkingHours.UserCount)
		assert.Equal(t, "friday", detail.AffectedWorkingHours.DayOfWeek)
	})
}

func TestListHolidays(t *testing.T) {
	t.Run("rentang tanggal terbalik ditolak", func(t *testing.T) {
		svc := holiday.NewService(nil, &fakeRepo{}, nil)

		_, _, err := svc.List(context.Background(), holiday.ListHolidaysQuery{
			StartDate: "2026-02-01",
			EndDate:   "2026-01-01",
		})
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateRange)
	})

	t.Run("per_page di luar batas kembali ke default", func(t *testing.T) {
		var captured holiday.ListFilter
		repo := &fakeRepo{
			findAllFn: func(ctx context.Context, filter holiday.ListFilter) ([]holiday.Holiday, int64, error) {
				captured = filter
				return nil, 0, nil
			},
		}
		svc := holiday.NewService(nil, repo, nil)

		_, meta, err := svc.List(context.Background(), holiday.ListHolidaysQuery{PerPage: 500})
		assert.NoError(t, err)
		assert.Equal(t, 15, captured.PerPage)
		assert.Equal(t, 1, captured.Page)
		assert.NotNil(t, meta)
	})
}

func TestProcessConflicts(t *testing.T) {
	h := holiday.Holiday{
		ID:   uuid.New(),
		Name: "Hari Buruh",
		Date: mustDate(t, "2026-05-01"),
	}
	affected := []holiday.AffectedSchedule{
		{UserID: uuid.NewString(), WorkingHourID: uuid.NewString()},
		{UserID: uuid.NewString(), WorkingHourID: uuid.NewString()},
	}

	t.Run("skip tidak menghapus apa pun", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*holiday.Holiday, error) { return &h, nil },
		}
		schedules := &fakeScheduleSource{
			schedulesForDayFn: func(ctx context.Context, dayOfWeek string) ([]holiday.AffectedSchedule, error) {
				return affected, nil
			},
			removeSchedulesFn: func(ctx context.Context, ids []string) error {
				t.Fatal("remove tidak boleh dipanggil untuk aksi skip")
				return nil
			},
		}
		svc := holiday.NewService(nil, repo, schedules)

		result, err := svc.ProcessConflicts(context.Background(), holiday.ProcessConflictsRequest{
			HolidayID: h.ID.String(),
			Action:    "skip",
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Conflicts)
		assert.Equal(t, 0, result.Removed)
	})

	t.Run("delete menghapus jadwal terdampak", func(t *testing.T) {
		var removed []string
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*holiday.Holiday, error) { return &h, nil },
		}
		schedules := &fakeScheduleSource{
			schedulesForDayFn: func(ctx context.Context, dayOfWeek string) ([]holiday.AffectedSchedule, error) {
				return affected, nil
			},
			removeSchedulesFn: func(ctx context.Context, ids []string) error {
				removed = ids
				return nil
			},
		}
		svc := holiday.NewService(nil, repo, schedules)

		result, err := svc.ProcessConflicts(context.Background(), holiday.ProcessConflictsRequest{
			HolidayID: h.ID.String(),
			Action:    "delete",
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Removed)
		assert.Len(t, removed, 2)
	})
}
