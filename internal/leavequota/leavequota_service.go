package leavequota

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	leavequotaerrors "go-absensi/internal/leavequota/errors"
	"go-absensi/internal/shared/response"
)

// DefaultAnnualQuota is used when a quota row has to be materialized on
// first use (approval or summary) and no admin-assigned total exists.
const DefaultAnnualQuota = 12

type Config struct {
	DefaultAnnualQuota int
}

// Ledger is the transactional surface the leave module drives when a
// request is approved or an approval is revoked.
type Ledger interface {
	Available(ctx context.Context, userID uuid.UUID, year int) (int, error)
	ApplyApproval(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error
	ApplyRevocation(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error
}

//go:generate mockgen -source=leavequota_service.go -destination=mock/leavequota_service_mock.go -package=mock
type Service interface {
	Ledger

	Create(ctx context.Context, req CreateQuotaRequest) (QuotaResponse, error)
	GetMine(ctx context.Context, userID string, year int) (QuotaResponse, error)
	List(ctx context.Context, query ListQuotasQuery) ([]QuotaResponse, *response.PaginationMeta, error)
	SetTotal(ctx context.Context, id string, req UpdateQuotaRequest) (QuotaResponse, error)
	Generate(ctx context.Context, req GenerateQuotasRequest) (GenerateQuotasResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	cfg    Config
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cfg Config, logger ...*zap.Logger) Service {
	if cfg.DefaultAnnualQuota <= 0 {
		cfg.DefaultAnnualQuota = DefaultAnnualQuota
	}
	l := zap.L().Named("leavequota_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{db: db, repo: repo, cfg: cfg, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateQuotaRequest) (QuotaResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return QuotaResponse{}, leavequotaerrors.ErrQuotaNotFound
	}

	if _, err := s.repo.FindByUserAndYear(ctx, userID, req.Year); err == nil {
		return QuotaResponse{}, leavequotaerrors.ErrQuotaExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return QuotaResponse{}, err
	}

	q := &LeaveQuota{UserID: userID, Year: req.Year, TotalQuota: req.TotalQuota}
	if err := s.repo.Create(ctx, q); err != nil {
		return QuotaResponse{}, err
	}

	s.logger.Info("kuota cuti dibuat",
		zap.String("user_id", req.UserID),
		zap.Int("year", req.Year),
		zap.Int("total", req.TotalQuota))
	return toResponse(*q), nil
}

func (s *service) GetMine(ctx context.Context, userID string, year int) (QuotaResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return QuotaResponse{}, leavequotaerrors.ErrQuotaNotFound
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	q, err := s.repo.FindByUserAndYear(ctx, uid, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// belum ada baris: tampilkan kuota default yang belum terpakai
			return QuotaResponse{
				UserID:     userID,
				Year:       year,
				TotalQuota: s.cfg.DefaultAnnualQuota,
				Remaining:  s.cfg.DefaultAnnualQuota,
			}, nil
		}
		return QuotaResponse{}, err
	}
	return toResponse(*q), nil
}

func (s *service) List(ctx context.Context, query ListQuotasQuery) ([]QuotaResponse, *response.PaginationMeta, error) {
	filter := ListFilter{Year: query.Year, Page: query.Page, PerPage: query.PerPage}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 15
	}
	if query.UserID != "" {
		uid, err := uuid.Parse(query.UserID)
		if err != nil {
			return nil, nil, leavequotaerrors.ErrQuotaNotFound
		}
		filter.UserID = &uid
	}

	quotas, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	items := make([]QuotaResponse, 0, len(quotas))
	for _, q := range quotas {
		items = append(items, toResponse(q))
	}
	meta := response.NewPaginationMeta(total, filter.Page, filter.PerPage)
	return items, &meta, nil
}

func (s *service) SetTotal(ctx context.Context, id string, req UpdateQuotaRequest) (QuotaResponse, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuotaResponse{}, leavequotaerrors.ErrQuotaNotFound
		}
		return QuotaResponse{}, err
	}

	if req.TotalQuota < q.UsedQuota {
		return QuotaResponse{}, leavequotaerrors.ErrBelowUsed
	}

	q.TotalQuota = req.TotalQuota
	if err := s.repo.Update(ctx, q); err != nil {
		return QuotaResponse{}, err
	}
	return toResponse(*q), nil
}

func (s *service) Generate(ctx context.Context, req GenerateQuotasRequest) (GenerateQuotasResponse, error) {
	total := s.cfg.DefaultAnnualQuota
	if req.TotalQuota != nil {
		total = *req.TotalQuota
	}

	result := GenerateQuotasResponse{Year: req.Year}
	for _, raw := range req.UserIDs {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return GenerateQuotasResponse{}, leavequotaerrors.ErrQuotaNotFound
		}

		_, err = s.repo.FindByUserAndYear(ctx, userID, req.Year)
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return GenerateQuotasResponse{}, err
		}

		q := &LeaveQuota{UserID: userID, Year: req.Year, TotalQuota: total}
		if err := s.repo.Create(ctx, q); err != nil {
			return GenerateQuotasResponse{}, err
		}
		result.Created++
	}

	s.logger.Info("kuota tahunan digenerate",
		zap.Int("year", req.Year),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *service) Available(ctx context.Context, userID uuid.UUID, year int) (int, error) {
	q, err := s.repo.FindByUserAndYear(ctx, userID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.cfg.DefaultAnnualQuota, nil
		}
		return 0, err
	}
	return q.Remaining(), nil
}

func (s *service) ApplyApproval(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error {
	qtx := s.repo.WithTx(tx)
	q, err := qtx.FindOrCreateLocked(ctx, userID, year, s.cfg.DefaultAnnualQuota)
	if err != nil {
		return err
	}
	if days > q.Remaining() {
		return leavequotaerrors.ErrInsufficientQuota
	}
	q.UsedQuota += days
	return qtx.Update(ctx, q)
}

func (s *service) ApplyRevocation(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error {
	qtx := s.repo.WithTx(tx)
	q, err := qtx.FindOrCreateLocked(ctx, userID, year, s.cfg.DefaultAnnualQuota)
	if err != nil {
		return err
	}
	q.UsedQuota -= days
	if q.UsedQuota < 0 {
		q.UsedQuota = 0
	}
	return qtx.Update(ctx, q)
}

func toResponse(q LeaveQuota) QuotaResponse {
	return QuotaResponse{
		ID:         q.ID.String(),
		UserID:     q.UserID.String(),
		Year:       q.Year,
		TotalQuota: q.TotalQuota,
		UsedQuota:  q.UsedQuota,
		Remaining:  q.Remaining(),
	}
}
