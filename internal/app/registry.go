package app

import (
	"context"
	"database/sql"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-absensi/internal/attendance"
	"go-absensi/internal/holiday"
	"go-absensi/internal/leave"
	"go-absensi/internal/leavequota"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/middleware"
	"go-absensi/internal/qrcode"
	"go-absensi/internal/rbac"
	"go-absensi/internal/report"
	"go-absensi/internal/storage"
	"go-absensi/internal/workinghour"
)

// scheduleSourceRelay memutus siklus konstruksi: service holiday dan
// working hour saling membutuhkan, jadi holiday dibangun dengan relay
// yang baru diisi setelah service working hour ada.
type scheduleSourceRelay struct {
	inner holiday.ScheduleSource
}

func (r *scheduleSourceRelay) SchedulesForDay(ctx context.Context, dayOfWeek string) ([]holiday.AffectedSchedule, error) {
	if r.inner == nil {
		return nil, nil
	}
	return r.inner.SchedulesForDay(ctx, dayOfWeek)
}

func (r *scheduleSourceRelay) RemoveSchedules(ctx context.Context, workingHourIDs []string) error {
	if r.inner == nil {
		return nil
	}
	return r.inner.RemoveSchedules(ctx, workingHourIDs)
}

func defaultAnnualQuota() int {
	if raw := os.Getenv("DEFAULT_ANNUAL_QUOTA"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return leavequota.DefaultAnnualQuota
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	objects storage.ObjectStorage,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	quotaRepo := leavequota.NewRepository(gormDB)
	workingHourRepo := workinghour.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	relay := &scheduleSourceRelay{}
	holidayService := holiday.NewService(db, holidayRepo, relay)
	workingHourService := workinghour.NewService(db, workingHourRepo, holidayService)
	relay.inner = workingHourService

	quotaService := leavequota.NewService(db, quotaRepo, leavequota.Config{
		DefaultAnnualQuota: defaultAnnualQuota(),
	})
	attendanceService := attendance.NewService(db, attendanceRepo, objects)
	leaveService := leave.NewService(db, leaveRepo, quotaService, objects, outboxRepo)
	reportService := report.NewService(
		attendanceRepo,
		leaveRepo,
		holidayService,
		workingHourService,
		quotaService,
	)
	qrService := qrcode.NewService(rdb, attendanceService)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService)
	quotaHandler := leavequota.NewHandler(quotaService)
	qrHandler := qrcode.NewHandler(qrService)
	reportHandler := report.NewHandler(reportService)
	workingHourHandler := workinghour.NewHandler(workingHourService)

	// --- Routes Registration ---
	// Request ID dipropagasi lewat context, dipakai antara lain sebagai
	// idempotency key event outbox.
	router.Use(middleware.ContextLogger(zap.L().Named("http")))

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(20), 50))
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		leavequota.RegisterRoutes(api, quotaHandler, rbacService)
		qrcode.RegisterRoutes(api, qrHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService)
		workinghour.RegisterRoutes(api, workingHourHandler, rbacService)
	}

	return nil
}
