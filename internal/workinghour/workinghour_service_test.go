package workinghour

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-absensi/internal/holiday"
	workinghourerrors "go-absensi/internal/workinghour/errors"
)

type fakeRepo struct {
	upsertFn           func(ctx context.Context, w *WorkingHour) error
	findByIDFn         func(ctx context.Context, id string) (*WorkingHour, error)
	findAllByUserFn    func(ctx context.Context, userID uuid.UUID) ([]WorkingHour, error)
	findByUserAndDayFn func(ctx context.Context, userID uuid.UUID, dayOfWeek string) (*WorkingHour, error)
	findByDayOfWeekFn  func(ctx context.Context, dayOfWeek string) ([]WorkingHour, error)
	deleteByUserFn     func(ctx context.Context, userID uuid.UUID) error
	deleteFn           func(ctx context.Context, id string) error
	deleteByIDsFn      func(ctx context.Context, ids []string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                     { return f }
func (f *fakeRepo) Upsert(ctx context.Context, w *WorkingHour) error { return f.upsertFn(ctx, w) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*WorkingHour, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]WorkingHour, error) {
	return f.findAllByUserFn(ctx, userID)
}
func (f *fakeRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, dayOfWeek string) (*WorkingHour, error) {
	return f.findByUserAndDayFn(ctx, userID, dayOfWeek)
}
func (f *fakeRepo) FindByDayOfWeek(ctx context.Context, dayOfWeek string) ([]WorkingHour, error) {
	return f.findByDayOfWeekFn(ctx, dayOfWeek)
}
func (f *fakeRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return f.deleteByUserFn(ctx, userID)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	return f.deleteByIDsFn(ctx, ids)
}

type fakeCalendar struct {
	resolveRangeFn func(ctx context.Context, start, end time.Time) (map[string][]holiday.Holiday, error)
}

func (f *fakeCalendar) ResolveRange(ctx context.Context, start, end time.Time) (map[string][]holiday.Holiday, error) {
	return f.resolveRangeFn(ctx, start, end)
}

func TestDurationMinutes(t *testing.T) {
	t.Run("shift biasa", func(t *testing.T) {
		w := WorkingHour{StartTime: "09:00", EndTime: "17:30"}
		assert.Equal(t, 510, w.DurationMinutes())
	})

	t.Run("shift melewati tengah malam", func(t *testing.T) {
		w := WorkingHour{StartTime: "22:00", EndTime: "06:00"}
		assert.Equal(t, 480, w.DurationMinutes())
	})
}

func TestService_Assign(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()

	t.Run("multi user multi hari", func(t *testing.T) {
		var upserts []WorkingHour
		repo := &fakeRepo{
			upsertFn: func(ctx context.Context, w *WorkingHour) error {
				w.ID = uuid.New()
				upserts = append(upserts, *w)
				return nil
			},
		}
		svc := NewService(nil, repo, nil)

		resp, err := svc.Assign(context.Background(), AssignWorkingHoursRequest{
			UserIDs: []string{userA.String(), userB.String()},
			Schedules: []ScheduleInput{
				{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "17:00"},
				{DayOfWeek: "tuesday", StartTime: "09:00", EndTime: "17:00"},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, resp.AssignedUsers)
		assert.Equal(t, 4, resp.AssignedEntries)
		assert.Len(t, upserts, 4)
		assert.Equal(t, "monday", upserts[0].DayOfWeek)
	})

	t.Run("hari tidak valid ditolak", func(t *testing.T) {
		svc := NewService(nil, &fakeRepo{}, nil)

		_, err := svc.Assign(context.Background(), AssignWorkingHoursRequest{
			UserIDs:   []string{userA.String()},
			Schedules: []ScheduleInput{{DayOfWeek: "funday", StartTime: "09:00", EndTime: "17:00"}},
		})
		assert.ErrorIs(t, err, workinghourerrors.ErrInvalidDayOfWeek)
	})

	t.Run("hari duplikat ditolak", func(t *testing.T) {
		svc := NewService(nil, &fakeRepo{}, nil)

		_, err := svc.Assign(context.Background(), AssignWorkingHoursRequest{
			UserIDs: []string{userA.String()},
			Schedules: []ScheduleInput{
				{DayOfWeek: "monday", StartTime: "09:00", EndTime: "17:00"},
				{DayOfWeek: "monday", StartTime: "10:00", EndTime: "18:00"},
			},
		})
		assert.ErrorIs(t, err, workinghourerrors.ErrDuplicateDay)
	})

	t.Run("memindai konflik hari libur", func(t *testing.T) {
		repo := &fakeRepo{
			upsertFn: func(ctx context.Context, w *WorkingHour) error { return nil },
		}

		// cari tanggal monday terdekat di depan
		next := time.Now().UTC().Truncate(24 * time.Hour)
		for next.Weekday() != time.Monday {
			next = next.AddDate(0, 0, 1)
		}
		calendar := &fakeCalendar{
			resolveRangeFn: func(ctx context.Context, start, end time.Time) (map[string][]holiday.Holiday, error) {
				return map[string][]holiday.Holiday{
					next.Format("2006-01-02"): {{Name: "Hari Libur Nasional"}},
				}, nil
			},
		}
		svc := NewService(nil, repo, calendar)

		resp, err := svc.Assign(context.Background(), AssignWorkingHoursRequest{
			UserIDs:       []string{userA.String()},
			Schedules:     []ScheduleInput{{DayOfWeek: "monday", StartTime: "09:00", EndTime: "17:00"}},
			CheckHolidays: true,
		})
		assert.NoError(t, err)
		assert.Len(t, resp.HolidayConflicts, 1)
		assert.Equal(t, "Hari Libur Nasional", resp.HolidayConflicts[0].HolidayName)
		assert.Equal(t, "monday", resp.HolidayConflicts[0].DayOfWeek)
	})
}

func TestService_UpdateUserSchedule(t *testing.T) {
	userID := uuid.New()

	t.Run("replace_all menghapus jadwal lama dalam transaksi", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		deleted := false
		var upserts int
		repo := &fakeRepo{
			deleteByUserFn: func(ctx context.Context, id uuid.UUID) error {
				assert.Equal(t, userID, id)
				deleted = true
				return nil
			},
			upsertFn: func(ctx context.Context, w *WorkingHour) error {
				upserts++
				return nil
			},
		}
		svc := NewService(db, repo, nil)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.UpdateUserSchedule(context.Background(), userID.String(), UpdateUserScheduleRequest{
			ReplaceAll: true,
			Schedules: []ScheduleInput{
				{DayOfWeek: "monday", StartTime: "08:00", EndTime: "16:00"},
				{DayOfWeek: "friday", StartTime: "08:00", EndTime: "14:00"},
			},
		})
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, 2, upserts)
		assert.Len(t, resp, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("format jam salah membatalkan transaksi", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, nil)

		_, err := svc.UpdateUserSchedule(context.Background(), userID.String(), UpdateUserScheduleRequest{
			Schedules: []ScheduleInput{{DayOfWeek: "monday", StartTime: "8 pagi", EndTime: "16:00"}},
		})
		assert.ErrorIs(t, err, workinghourerrors.ErrInvalidTimeFormat)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_GetWeek(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{
		findAllByUserFn: func(ctx context.Context, id uuid.UUID) ([]WorkingHour, error) {
			return []WorkingHour{
				{ID: uuid.New(), UserID: userID, DayOfWeek: "monday", StartTime: "09:00", EndTime: "17:00"},
			}, nil
		},
	}
	svc := NewService(nil, repo, nil)

	resp, err := svc.GetWeek(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.Len(t, resp.Schedule, 7)
	assert.NotNil(t, resp.Schedule["monday"])
	assert.Equal(t, 480, resp.Schedule["monday"].DurationMinutes)
	assert.Nil(t, resp.Schedule["sunday"])
}

func TestService_ScheduleFor(t *testing.T) {
	userID := uuid.New()

	t.Run("hari tanpa jadwal bukan error", func(t *testing.T) {
		repo := &fakeRepo{
			findByUserAndDayFn: func(ctx context.Context, id uuid.UUID, day string) (*WorkingHour, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(nil, repo, nil)

		entry, err := svc.ScheduleFor(context.Background(), userID, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("weekday diturunkan dari tanggal", func(t *testing.T) {
		repo := &fakeRepo{
			findByUserAndDayFn: func(ctx context.Context, id uuid.UUID, day string) (*WorkingHour, error) {
				assert.Equal(t, "wednesday", day)
				return &WorkingHour{UserID: userID, DayOfWeek: day, StartTime: "09:00", EndTime: "17:00"}, nil
			},
		}
		svc := NewService(nil, repo, nil)

		entry, err := svc.ScheduleFor(context.Background(), userID, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.NotNil(t, entry)
	})
}
