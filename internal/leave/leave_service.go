package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-absensi/internal/events"
	leaveerrors "go-absensi/internal/leave/errors"
	"go-absensi/internal/leavequota"
	leavequotaerrors "go-absensi/internal/leavequota/errors"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/middleware"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/response"
	"go-absensi/internal/storage"
)

const (
	dateLayout  = "2006-01-02"
	proofURLTTL = 15 * time.Minute
)

// QuotaLedger is the slice of the quota module the leave flow drives.
// leavequota.Service satisfies it.
type QuotaLedger interface {
	Available(ctx context.Context, userID uuid.UUID, year int) (int, error)
	ApplyApproval(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error
	ApplyRevocation(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error
	GetMine(ctx context.Context, userID string, year int) (leavequota.QuotaResponse, error)
}

type ProofUpload struct {
	Data     []byte
	Filename string
	MimeType string
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateLeaveRequest, proofs []ProofUpload) (LeaveResponse, error)
	Get(ctx context.Context, userID, role, id string) (LeaveResponse, error)
	List(ctx context.Context, userID, role string, query ListLeavesQuery) ([]LeaveResponse, *response.PaginationMeta, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, userID, id string) (LeaveResponse, error)
	Destroy(ctx context.Context, id string) error
	Summary(ctx context.Context, userID string, year int) (SummaryResponse, error)

	AddProof(ctx context.Context, userID, leaveID string, upload ProofUpload) (ProofResponse, error)
	DeleteProof(ctx context.Context, userID, role, proofID string) error
	VerifyProof(ctx context.Context, adminID, proofID string) (ProofResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	quota   QuotaLedger
	objects storage.ObjectStorage
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	quota QuotaLedger,
	objects storage.ObjectStorage,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{db: db, repo: repo, quota: quota, objects: objects, outbox: outbox, logger: l}
}

// InitialStatus decides the status a new request starts in. Sick leave
// is trusted and auto-approved, annual leave waits for an admin.
func InitialStatus(leaveType string) string {
	if leaveType == TypeSakit {
		return StatusApproved
	}
	return StatusPending
}

func (s *service) Create(ctx context.Context, userID string, req CreateLeaveRequest, proofs []ProofUpload) (LeaveResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if req.Type != TypeSakit && req.Type != TypeCuti {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if len(proofs) > MaxProofs {
		return LeaveResponse{}, leaveerrors.ErrProofLimit
	}

	lr := &LeaveRequest{
		UserID:    uid,
		Type:      req.Type,
		Status:    InitialStatus(req.Type),
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}
	duration := lr.DurationDays()
	year := start.Year()

	// kedua jenis cuti memotong kuota yang sama
	available, err := s.quota.Available(ctx, uid, year)
	if err != nil {
		return LeaveResponse{}, err
	}
	if duration > available {
		return LeaveResponse{}, leavequotaerrors.ErrInsufficientQuota
	}

	overlap, err := s.repo.HasOverlap(ctx, uid, start, end, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrOverlappingRequest
	}

	uploaded := make([]string, 0, len(proofs))
	cleanup := func() {
		for _, path := range uploaded {
			if err := s.objects.Delete(ctx, path); err != nil {
				s.logger.Warn("gagal menghapus bukti yatim", zap.String("path", path), zap.Error(err))
			}
		}
	}

	proofRows := make([]LeaveRequestProof, 0, len(proofs))
	for _, upload := range proofs {
		path := proofObjectPath(upload.Filename)
		if _, err := s.objects.Put(ctx, path, upload.Data, storage.VisibilityPrivate); err != nil {
			cleanup()
			return LeaveResponse{}, err
		}
		uploaded = append(uploaded, path)
		proofRows = append(proofRows, LeaveRequestProof{
			Path:     path,
			Filename: upload.Filename,
			MimeType: upload.MimeType,
			Size:     int64(len(upload.Data)),
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		cleanup()
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, lr); err != nil {
		cleanup()
		return LeaveResponse{}, err
	}
	for i := range proofRows {
		proofRows[i].LeaveRequestID = lr.ID
		if err := qtx.CreateProof(ctx, &proofRows[i]); err != nil {
			cleanup()
			return LeaveResponse{}, err
		}
	}

	if lr.Status == StatusApproved {
		if err := s.quota.ApplyApproval(ctx, tx, uid, year, duration); err != nil {
			cleanup()
			return LeaveResponse{}, err
		}
	}
	if err := s.recordStatusEvent(ctx, tx, lr, "", lr.Status); err != nil {
		cleanup()
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		cleanup()
		return LeaveResponse{}, err
	}

	lr.Proofs = proofRows
	s.logger.Info("pengajuan cuti dibuat",
		zap.String("id", lr.ID.String()),
		zap.String("type", lr.Type),
		zap.String("status", lr.Status),
		zap.Int("duration_days", duration))
	return s.toResponse(ctx, *lr, false), nil
}

func (s *service) Get(ctx context.Context, userID, role, id string) (LeaveResponse, error) {
	lr, err := s.findLeave(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if role != middleware.RoleAdmin && lr.UserID.String() != userID {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}
	return s.toResponse(ctx, *lr, true), nil
}

func (s *service) List(ctx context.Context, userID, role string, query ListLeavesQuery) ([]LeaveResponse, *response.PaginationMeta, error) {
	filter := ListFilter{
		Status:  query.Status,
		Type:    query.Type,
		Year:    query.Year,
		Page:    query.Page,
		PerPage: query.PerPage,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 15
	}

	// admin boleh melihat semua user, employee hanya miliknya
	if role == middleware.RoleAdmin {
		if query.UserID != "" {
			uid, err := uuid.Parse(query.UserID)
			if err != nil {
				return nil, nil, leaveerrors.ErrLeaveNotFound
			}
			filter.UserID = &uid
		}
	} else {
		uid, err := uuid.Parse(userID)
		if err != nil {
			return nil, nil, leaveerrors.ErrLeaveNotFound
		}
		filter.UserID = &uid
	}

	requests, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	items := make([]LeaveResponse, 0, len(requests))
	for _, lr := range requests {
		items = append(items, s.toResponse(ctx, lr, false))
	}
	meta := response.NewPaginationMeta(total, filter.Page, filter.PerPage)
	return items, &meta, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (LeaveResponse, error) {
	lr, err := s.findLeave(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	// idempoten: status sama bukan error
	if lr.Status == req.Status {
		return s.toResponse(ctx, *lr, false), nil
	}
	if lr.Status == StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrImmutable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	duration := lr.DurationDays()
	year := lr.StartDate.Year()
	switch {
	case req.Status == StatusApproved:
		if err := s.quota.ApplyApproval(ctx, tx, lr.UserID, year, duration); err != nil {
			return LeaveResponse{}, err
		}
	case req.Status == StatusRejected && lr.Status == StatusApproved:
		if err := s.quota.ApplyRevocation(ctx, tx, lr.UserID, year, duration); err != nil {
			return LeaveResponse{}, err
		}
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateStatus(ctx, id, req.Status); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.recordStatusEvent(ctx, tx, lr, lr.Status, req.Status); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("status cuti diubah",
		zap.String("id", id),
		zap.String("from", lr.Status),
		zap.String("to", req.Status))
	lr.Status = req.Status
	return s.toResponse(ctx, *lr, false), nil
}

func (s *service) Cancel(ctx context.Context, userID, id string) (LeaveResponse, error) {
	lr, err := s.findLeave(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if lr.UserID.String() != userID {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}
	if lr.Status == StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrAlreadyRejected
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !lr.StartDate.After(today) {
		return LeaveResponse{}, leaveerrors.ErrCannotCancelStarted
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if lr.Status == StatusApproved {
		if err := s.quota.ApplyRevocation(ctx, tx, lr.UserID, lr.StartDate.Year(), lr.DurationDays()); err != nil {
			return LeaveResponse{}, err
		}
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateStatus(ctx, id, StatusRejected); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.recordStatusEvent(ctx, tx, lr, lr.Status, StatusRejected); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	lr.Status = StatusRejected
	return s.toResponse(ctx, *lr, false), nil
}

func (s *service) Destroy(ctx context.Context, id string) error {
	lr, err := s.findLeave(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if lr.Status == StatusApproved {
		if err := s.quota.ApplyRevocation(ctx, tx, lr.UserID, lr.StartDate.Year(), lr.DurationDays()); err != nil {
			return err
		}
	}
	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	// baris sudah hilang, objek bukti dibersihkan best-effort
	for _, p := range lr.Proofs {
		if err := s.objects.Delete(ctx, p.Path); err != nil {
			s.logger.Warn("gagal menghapus objek bukti", zap.String("path", p.Path), zap.Error(err))
		}
	}

	s.logger.Info("pengajuan cuti dihapus", zap.String("id", id))
	return nil
}

func (s *service) Summary(ctx context.Context, userID string, year int) (SummaryResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return SummaryResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	quota, err := s.quota.GetMine(ctx, userID, year)
	if err != nil {
		return SummaryResponse{}, err
	}

	requests, err := s.repo.FindAllByUserAndYear(ctx, uid, year)
	if err != nil {
		return SummaryResponse{}, err
	}

	summary := SummaryResponse{
		Year: year,
		Quota: QuotaSnapshot{
			Year:       year,
			TotalQuota: quota.TotalQuota,
			UsedQuota:  quota.UsedQuota,
			Remaining:  quota.Remaining,
		},
		ByStatus:   map[string]int{StatusPending: 0, StatusApproved: 0, StatusRejected: 0},
		ByType:     map[string]int{TypeSakit: 0, TypeCuti: 0},
		ByDuration: map[string]int{TypeSakit: 0, TypeCuti: 0},
	}
	for _, lr := range requests {
		summary.ByStatus[lr.Status]++
		summary.ByType[lr.Type]++
		if lr.Status == StatusApproved {
			summary.ByDuration[lr.Type] += lr.DurationDays()
		}
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	upcoming, err := s.repo.FindUpcoming(ctx, uid, today, 5)
	if err != nil {
		return SummaryResponse{}, err
	}
	summary.Upcoming = make([]LeaveResponse, 0, len(upcoming))
	for _, lr := range upcoming {
		summary.Upcoming = append(summary.Upcoming, s.toResponse(ctx, lr, false))
	}
	return summary, nil
}

func (s *service) AddProof(ctx context.Context, userID, leaveID string, upload ProofUpload) (ProofResponse, error) {
	lr, err := s.findLeave(ctx, leaveID)
	if err != nil {
		return ProofResponse{}, err
	}
	if lr.UserID.String() != userID {
		return ProofResponse{}, leaveerrors.ErrForbidden
	}
	if lr.Status == StatusRejected {
		return ProofResponse{}, leaveerrors.ErrAlreadyRejected
	}

	count, err := s.repo.CountProofs(ctx, lr.ID)
	if err != nil {
		return ProofResponse{}, err
	}
	if count >= MaxProofs {
		return ProofResponse{}, leaveerrors.ErrProofLimit
	}

	path := proofObjectPath(upload.Filename)
	if _, err := s.objects.Put(ctx, path, upload.Data, storage.VisibilityPrivate); err != nil {
		return ProofResponse{}, err
	}

	proof := &LeaveRequestProof{
		LeaveRequestID: lr.ID,
		Path:           path,
		Filename:       upload.Filename,
		MimeType:       upload.MimeType,
		Size:           int64(len(upload.Data)),
	}
	if err := s.repo.CreateProof(ctx, proof); err != nil {
		if delErr := s.objects.Delete(ctx, path); delErr != nil {
			s.logger.Warn("gagal menghapus bukti yatim", zap.String("path", path), zap.Error(delErr))
		}
		return ProofResponse{}, err
	}
	return s.toProofResponse(ctx, *proof, true), nil
}

func (s *service) DeleteProof(ctx context.Context, userID, role, proofID string) error {
	proof, err := s.repo.FindProofByID(ctx, proofID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrProofNotFound
		}
		return err
	}

	lr, err := s.findLeave(ctx, proof.LeaveRequestID.String())
	if err != nil {
		return err
	}
	if role != middleware.RoleAdmin && lr.UserID.String() != userID {
		return leaveerrors.ErrForbidden
	}

	if err := s.repo.DeleteProof(ctx, proofID); err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, proof.Path); err != nil {
		s.logger.Warn("gagal menghapus objek bukti", zap.String("path", proof.Path), zap.Error(err))
	}
	return nil
}

func (s *service) VerifyProof(ctx context.Context, adminID, proofID string) (ProofResponse, error) {
	proof, err := s.repo.FindProofByID(ctx, proofID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProofResponse{}, leaveerrors.ErrProofNotFound
		}
		return ProofResponse{}, err
	}

	verifier, err := uuid.Parse(adminID)
	if err != nil {
		return ProofResponse{}, leaveerrors.ErrProofNotFound
	}

	proof.IsVerified = true
	proof.VerifiedBy = &verifier
	if err := s.repo.UpdateProof(ctx, proof); err != nil {
		return ProofResponse{}, err
	}
	return s.toProofResponse(ctx, *proof, true), nil
}

func (s *service) findLeave(ctx context.Context, id string) (*LeaveRequest, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return lr, nil
}

func (s *service) recordStatusEvent(ctx context.Context, tx *sql.Tx, lr *LeaveRequest, oldStatus, newStatus string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveStatusChangedEvent{
		EventType:      "leave.status_changed",
		LeaveRequestID: lr.ID.String(),
		UserID:         lr.UserID.String(),
		LeaveType:      lr.Type,
		OldStatus:      oldStatus,
		NewStatus:      newStatus,
		DurationDays:   lr.DurationDays(),
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     "leave.status_changed",
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func proofObjectPath(filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("leave-proofs/%s%s", uuid.NewString(), ext)
}

func (s *service) toProofResponse(ctx context.Context, p LeaveRequestProof, includeURL bool) ProofResponse {
	resp := ProofResponse{
		ID:         p.ID.String(),
		Filename:   p.Filename,
		MimeType:   p.MimeType,
		Size:       p.Size,
		IsVerified: p.IsVerified,
	}
	if includeURL {
		url, err := s.objects.TemporaryURL(ctx, p.Path, proofURLTTL)
		if err != nil {
			s.logger.Warn("gagal membuat temporary url bukti", zap.Error(err))
		} else {
			resp.URL = &url
		}
	}
	return resp
}

func (s *service) toResponse(ctx context.Context, lr LeaveRequest, includeProofURLs bool) LeaveResponse {
	resp := LeaveResponse{
		ID:           lr.ID.String(),
		UserID:       lr.UserID.String(),
		Type:         lr.Type,
		Status:       lr.Status,
		StartDate:    lr.StartDate.Format(dateLayout),
		EndDate:      lr.EndDate.Format(dateLayout),
		DurationDays: lr.DurationDays(),
		Reason:       lr.Reason,
		CreatedAt:    lr.CreatedAt,
	}
	for _, p := range lr.Proofs {
		resp.Proofs = append(resp.Proofs, s.toProofResponse(ctx, p, includeProofURLs))
	}
	return resp
}
