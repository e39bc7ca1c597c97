package leave

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	leaveerrors "go-absensi/internal/leave/errors"
	"go-absensi/internal/leavequota"
	leavequotaerrors "go-absensi/internal/leavequota/errors"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/storage"
)

type fakeRepo struct {
	createFn               func(ctx context.Context, lr *LeaveRequest) error
	findByIDFn             func(ctx context.Context, id string) (*LeaveRequest, error)
	findAllFn              func(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
	findAllByUserAndYearFn func(ctx context.Context, userID uuid.UUID, year int) ([]LeaveRequest, error)
	findUpcomingFn         func(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]LeaveRequest, error)
	findApprovedBetweenFn  func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]LeaveRequest, error)
	hasOverlapFn           func(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	updateStatusFn         func(ctx context.Context, id string, status string) error
	deleteFn               func(ctx context.Context, id string) error
	createProofFn          func(ctx context.Context, p *LeaveRequestProof) error
	findProofByIDFn        func(ctx context.Context, id string) (*LeaveRequestProof, error)
	countProofsFn          func(ctx context.Context, leaveRequestID uuid.UUID) (int64, error)
	updateProofFn          func(ctx context.Context, p *LeaveRequestProof) error
	deleteProofFn          func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, lr *LeaveRequest) error {
	return f.createFn(ctx, lr)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeRepo) FindAllByUserAndYear(ctx context.Context, userID uuid.UUID, year int) ([]LeaveRequest, error) {
	return f.findAllByUserAndYearFn(ctx, userID, year)
}
func (f *fakeRepo) FindUpcoming(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]LeaveRequest, error) {
	return f.findUpcomingFn(ctx, userID, from, limit)
}
func (f *fakeRepo) FindApprovedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]LeaveRequest, error) {
	return f.findApprovedBetweenFn(ctx, userID, start, end)
}
func (f *fakeRepo) HasOverlap(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	return f.hasOverlapFn(ctx, userID, start, end, excludeID)
}
func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return f.updateStatusFn(ctx, id, status)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) CreateProof(ctx context.Context, p *LeaveRequestProof) error {
	return f.createProofFn(ctx, p)
}
func (f *fakeRepo) FindProofByID(ctx context.Context, id string) (*LeaveRequestProof, error) {
	return f.findProofByIDFn(ctx, id)
}
func (f *fakeRepo) CountProofs(ctx context.Context, leaveRequestID uuid.UUID) (int64, error) {
	return f.countProofsFn(ctx, leaveRequestID)
}
func (f *fakeRepo) UpdateProof(ctx context.Context, p *LeaveRequestProof) error {
	return f.updateProofFn(ctx, p)
}
func (f *fakeRepo) DeleteProof(ctx context.Context, id string) error {
	return f.deleteProofFn(ctx, id)
}

type fakeQuota struct {
	availableFn       func(ctx context.Context, userID uuid.UUID, year int) (int, error)
	applyApprovalFn   func(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error
	applyRevocationFn func(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error
	getMineFn         func(ctx context.Context, userID string, year int) (leavequota.QuotaResponse, error)
}

func (f *fakeQuota) Available(ctx context.Context, userID uuid.UUID, year int) (int, error) {
	return f.availableFn(ctx, userID, year)
}
func (f *fakeQuota) ApplyApproval(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error {
	return f.applyApprovalFn(ctx, tx, userID, year, days)
}
func (f *fakeQuota) ApplyRevocation(ctx context.Context, tx *sql.Tx, userID uuid.UUID, year, days int) error {
	return f.applyRevocationFn(ctx, tx, userID, year, days)
}
func (f *fakeQuota) GetMine(ctx context.Context, userID string, year int) (leavequota.QuotaResponse, error) {
	return f.getMineFn(ctx, userID, year)
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                 { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestDurationDays(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2026-06-01")
	end, _ := time.Parse("2006-01-02", "2026-06-03")
	lr := LeaveRequest{StartDate: start, EndDate: end}
	assert.Equal(t, 3, lr.DurationDays())

	same := LeaveRequest{StartDate: start, EndDate: start}
	assert.Equal(t, 1, same.DurationDays())
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, InitialStatus(TypeSakit))
	assert.Equal(t, StatusPending, InitialStatus(TypeCuti))
}

func TestService_Create(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	okQuota := func() *fakeQuota {
		return &fakeQuota{
			availableFn: func(ctx context.Context, id uuid.UUID, year int) (int, error) { return 12, nil },
			applyApprovalFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID, year, days int) error {
				return nil
			},
		}
	}

	t.Run("sakit otomatis approved dan memotong kuota", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		applied := 0
		quota := okQuota()
		quota.applyApprovalFn = func(ctx context.Context, tx *sql.Tx, id uuid.UUID, year, days int) error {
			applied = days
			return nil
		}
		outbox := &fakeOutbox{}
		repo := &fakeRepo{
			createFn: func(ctx context.Context, lr *LeaveRequest) error {
				lr.ID = uuid.New()
				return nil
			},
			hasOverlapFn: func(ctx context.Context, id uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
				return false, nil
			},
		}
		svc := NewService(db, repo, quota, storage.NewMemory(), outbox)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Create(ctx, userID.String(), CreateLeaveRequest{
			Type: "sakit", StartDate: "2026-06-01", EndDate: "2026-06-02", Reason: "demam",
		}, nil)
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.Equal(t, 2, resp.DurationDays)
		assert.Equal(t, 2, applied)
		assert.Len(t, outbox.events, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cuti menunggu persetujuan tanpa memotong kuota", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		quota := okQuota()
		quota.applyApprovalFn = func(ctx context.Context, tx *sql.Tx, id uuid.UUID, year, days int) error {
			t.Fatal("kuota tidak boleh dipotong untuk status pending")
			return nil
		}
		repo := &fakeRepo{
			createFn: func(ctx context.Context, lr *LeaveRequest) error {
				lr.ID = uuid.New()
				return nil
			},
			hasOverlapFn: func(ctx context.Context, id uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
				return false, nil
			},
		}
		svc := NewService(db, repo, quota, storage.NewMemory(), &fakeOutbox{})

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Create(ctx, userID.String(), CreateLeaveRequest{
			Type: "cuti", StartDate: "2026-07-01", EndDate: "2026-07-03", Reason: "liburan",
		}, nil)
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, resp.Status)
	})

	t.Run("kuota tidak cukup ditolak di awal", func(t *testing.T) {
		quota := &fakeQuota{
			availableFn: func(ctx context.Context, id uuid.UUID, year int) (int, error) { return 2, nil },
		}
		svc := NewService(nil, &fakeRepo{}, quota, storage.NewMemory(), nil)

		_, err := svc.Create(ctx, userID.String(), CreateLeaveRequest{
			Type: "cuti", StartDate: "2026-07-01", EndDate: "2026-07-05", Reason: "liburan",
		}, nil)
		assert.ErrorIs(t, err, leavequotaerrors.ErrInsufficientQuota)
	})

	t.Run("rentang tumpang tindih ditolak", func(t *testing.T) {
		repo := &fakeRepo{
			hasOverlapFn: func(ctx context.Context, id uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
				return true, nil
			},
		}
		svc := NewService(nil, repo, okQuota(), storage.NewMemory(), nil)

		_, err := svc.Create(ctx, userID.String(), CreateLeaveRequest{
			Type: "cuti", StartDate: "2026-07-01", EndDate: "2026-07-02", Reason: "liburan",
		}, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrOverlappingRequest)
	})

	t.Run("tanggal terbalik ditolak", func(t *testing.T) {
		svc := NewService(nil, &fakeRepo{}, okQuota(), storage.NewMemory(), nil)

		_, err := svc.Create(ctx, userID.String(), CreateLeaveRequest{
			Type: "cuti", StartDate: "2026-07-05", EndDate: "2026-07-01", Reason: "liburan",
		}, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("bukti terunggah dibersihkan saat insert gagal", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		objects := storage.NewMemory()
		repo := &fakeRepo{
			createFn: func(ctx context.Context, lr *LeaveRequest) error {
				return errors.New("insert gagal")
			},
			hasOverlapFn: func(ctx context.Context, id uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
				return false, nil
			},
		}
		svc := NewService(db, repo, okQuota(), objects, &fakeOutbox{})

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Create(ctx, userID.String(), CreateLeaveRequest{
			Type: "cuti", StartDate: "2026-07-01", EndDate: "2026-07-02", Reason: "liburan",
		}, []ProofUpload{{Data: []byte("pdf"), Filename: "surat.pdf"}})
		assert.Error(t, err)
		assert.Equal(t, 0, objects.Len())
	})

	t.Run("lebih dari lima bukti ditolak", func(t *testing.T) {
		svc := NewService(nil, &fakeRepo{}, okQuota(), storage.NewMemory(), nil)

		proofs := make([]ProofUpload, 6)
		_, err := svc.Create(ctx, userID.String(), CreateLeaveRequest{
			Type: "cuti", StartDate: "2026-07-01", EndDate: "2026-07-02", Reason: "liburan",
		}, proofs)
		assert.ErrorIs(t, err, leaveerrors.ErrProofLimit)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	newLeave := func(status string) *LeaveRequest {
		start, _ := time.Parse("2006-01-02", "2026-07-01")
		end, _ := time.Parse("2006-01-02", "2026-07-03")
		return &LeaveRequest{
			ID: uuid.New(), UserID: userID, Type: TypeCuti, Status: status,
			StartDate: start, EndDate: end, Reason: "liburan",
		}
	}

	t.Run("status sama adalah no-op", func(t *testing.T) {
		lr := newLeave(StatusApproved)
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
			updateStatusFn: func(ctx context.Context, id, status string) error {
				t.Fatal("update tidak boleh dipanggil")
				return nil
			},
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		resp, err := svc.UpdateStatus(ctx, lr.ID.String(), UpdateStatusRequest{Status: StatusApproved})
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
	})

	t.Run("rejected bersifat final", func(t *testing.T) {
		lr := newLeave(StatusRejected)
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		_, err := svc.UpdateStatus(ctx, lr.ID.String(), UpdateStatusRequest{Status: StatusApproved})
		assert.ErrorIs(t, err, leaveerrors.ErrImmutable)
	})

	t.Run("approve memotong kuota", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		lr := newLeave(StatusPending)
		applied := 0
		quota := &fakeQuota{
			applyApprovalFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID, year, days int) error {
				applied = days
				return nil
			},
		}
		outbox := &fakeOutbox{}
		repo := &fakeRepo{
			findByIDFn:     func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
			updateStatusFn: func(ctx context.Context, id, status string) error { return nil },
		}
		svc := NewService(db, repo, quota, storage.NewMemory(), outbox)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.UpdateStatus(ctx, lr.ID.String(), UpdateStatusRequest{Status: StatusApproved})
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.Equal(t, 3, applied)
		assert.Len(t, outbox.events, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reject setelah approve mengembalikan kuota", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		lr := newLeave(StatusApproved)
		revoked := 0
		quota := &fakeQuota{
			applyRevocationFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID, year, days int) error {
				revoked = days
				return nil
			},
		}
		repo := &fakeRepo{
			findByIDFn:     func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
			updateStatusFn: func(ctx context.Context, id, status string) error { return nil },
		}
		svc := NewService(db, repo, quota, storage.NewMemory(), &fakeOutbox{})

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.UpdateStatus(ctx, lr.ID.String(), UpdateStatusRequest{Status: StatusRejected})
		assert.NoError(t, err)
		assert.Equal(t, StatusRejected, resp.Status)
		assert.Equal(t, 3, revoked)
	})

	t.Run("approve gagal saat kuota habis", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		lr := newLeave(StatusPending)
		quota := &fakeQuota{
			applyApprovalFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID, year, days int) error {
				return leavequotaerrors.ErrInsufficientQuota
			},
		}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
		}
		svc := NewService(db, repo, quota, storage.NewMemory(), &fakeOutbox{})

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.UpdateStatus(ctx, lr.ID.String(), UpdateStatusRequest{Status: StatusApproved})
		assert.ErrorIs(t, err, leavequotaerrors.ErrInsufficientQuota)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	future := time.Now().UTC().AddDate(0, 0, 10)
	past := time.Now().UTC().AddDate(0, 0, -1)

	t.Run("cancel pengajuan yang sudah mulai ditolak", func(t *testing.T) {
		lr := &LeaveRequest{ID: uuid.New(), UserID: userID, Status: StatusPending, StartDate: past, EndDate: past}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		_, err := svc.Cancel(ctx, userID.String(), lr.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrCannotCancelStarted)
	})

	t.Run("cancel pengajuan rejected ditolak", func(t *testing.T) {
		lr := &LeaveRequest{ID: uuid.New(), UserID: userID, Status: StatusRejected, StartDate: future, EndDate: future}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		_, err := svc.Cancel(ctx, userID.String(), lr.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyRejected)
	})

	t.Run("cancel approved mengembalikan kuota", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		lr := &LeaveRequest{
			ID: uuid.New(), UserID: userID, Type: TypeCuti, Status: StatusApproved,
			StartDate: future, EndDate: future.AddDate(0, 0, 1),
		}
		revoked := 0
		quota := &fakeQuota{
			applyRevocationFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID, year, days int) error {
				revoked = days
				return nil
			},
		}
		repo := &fakeRepo{
			findByIDFn:     func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
			updateStatusFn: func(ctx context.Context, id, status string) error { return nil },
		}
		svc := NewService(db, repo, quota, storage.NewMemory(), &fakeOutbox{})

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Cancel(ctx, userID.String(), lr.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, StatusRejected, resp.Status)
		assert.Equal(t, 2, revoked)
	})

	t.Run("bukan pemilik ditolak", func(t *testing.T) {
		lr := &LeaveRequest{ID: uuid.New(), UserID: uuid.New(), Status: StatusPending, StartDate: future, EndDate: future}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		_, err := svc.Cancel(ctx, userID.String(), lr.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrForbidden)
	})
}

func TestService_Destroy(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("hapus approved mengembalikan kuota dan membersihkan bukti", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		objects := storage.NewMemory()
		path, err := objects.Put(ctx, "leave-proofs/x.pdf", []byte("pdf"), storage.VisibilityPrivate)
		assert.NoError(t, err)

		start, _ := time.Parse("2006-01-02", "2026-07-01")
		lr := &LeaveRequest{
			ID: uuid.New(), UserID: userID, Type: TypeCuti, Status: StatusApproved,
			StartDate: start, EndDate: start,
			Proofs: []LeaveRequestProof{{ID: uuid.New(), Path: path, Filename: "x.pdf"}},
		}
		revoked := false
		quota := &fakeQuota{
			applyRevocationFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID, year, days int) error {
				revoked = true
				return nil
			},
		}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
			deleteFn:   func(ctx context.Context, id string) error { return nil },
		}
		svc := NewService(db, repo, quota, objects, &fakeOutbox{})

		mock.ExpectBegin()
		mock.ExpectCommit()
		err = svc.Destroy(ctx, lr.ID.String())
		assert.NoError(t, err)
		assert.True(t, revoked)
		assert.Equal(t, 0, objects.Len())
	})
}

func TestService_Summary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	start, _ := time.Parse("2006-01-02", "2026-02-01")
	requests := []LeaveRequest{
		{Type: TypeSakit, Status: StatusApproved, StartDate: start, EndDate: start.AddDate(0, 0, 1)},
		{Type: TypeCuti, Status: StatusApproved, StartDate: start.AddDate(0, 1, 0), EndDate: start.AddDate(0, 1, 2)},
		{Type: TypeCuti, Status: StatusPending, StartDate: start.AddDate(0, 2, 0), EndDate: start.AddDate(0, 2, 0)},
		{Type: TypeCuti, Status: StatusRejected, StartDate: start.AddDate(0, 3, 0), EndDate: start.AddDate(0, 3, 0)},
	}

	quota := &fakeQuota{
		getMineFn: func(ctx context.Context, id string, year int) (leavequota.QuotaResponse, error) {
			return leavequota.QuotaResponse{Year: year, TotalQuota: 12, UsedQuota: 5, Remaining: 7}, nil
		},
	}
	repo := &fakeRepo{
		findAllByUserAndYearFn: func(ctx context.Context, id uuid.UUID, year int) ([]LeaveRequest, error) {
			return requests, nil
		},
		findUpcomingFn: func(ctx context.Context, id uuid.UUID, from time.Time, limit int) ([]LeaveRequest, error) {
			assert.Equal(t, 5, limit)
			return requests[2:3], nil
		},
	}
	svc := NewService(nil, repo, quota, storage.NewMemory(), nil)

	summary, err := svc.Summary(ctx, userID.String(), 2026)
	assert.NoError(t, err)
	assert.Equal(t, 7, summary.Quota.Remaining)
	assert.Equal(t, 2, summary.ByStatus[StatusApproved])
	assert.Equal(t, 1, summary.ByStatus[StatusPending])
	assert.Equal(t, 3, summary.ByType[TypeCuti])
	assert.Equal(t, 2, summary.ByDuration[TypeSakit])
	assert.Equal(t, 3, summary.ByDuration[TypeCuti])
	assert.Len(t, summary.Upcoming, 1)
}

func TestService_Proofs(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	lr := &LeaveRequest{ID: uuid.New(), UserID: userID, Status: StatusPending,
		StartDate: time.Now(), EndDate: time.Now()}

	t.Run("melebihi batas bukti ditolak", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn:    func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
			countProofsFn: func(ctx context.Context, id uuid.UUID) (int64, error) { return 5, nil },
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		_, err := svc.AddProof(ctx, userID.String(), lr.ID.String(), ProofUpload{Data: []byte("x"), Filename: "a.pdf"})
		assert.ErrorIs(t, err, leaveerrors.ErrProofLimit)
	})

	t.Run("verifikasi menandai bukti", func(t *testing.T) {
		admin := uuid.New()
		proof := &LeaveRequestProof{ID: uuid.New(), LeaveRequestID: lr.ID, Path: "leave-proofs/a.pdf", Filename: "a.pdf"}
		var updated *LeaveRequestProof
		repo := &fakeRepo{
			findProofByIDFn: func(ctx context.Context, id string) (*LeaveRequestProof, error) { return proof, nil },
			updateProofFn: func(ctx context.Context, p *LeaveRequestProof) error {
				updated = p
				return nil
			},
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		resp, err := svc.VerifyProof(ctx, admin.String(), proof.ID.String())
		assert.NoError(t, err)
		assert.True(t, resp.IsVerified)
		assert.NotNil(t, updated.VerifiedBy)
		assert.Equal(t, admin, *updated.VerifiedBy)
	})

	t.Run("hapus bukti milik user lain ditolak", func(t *testing.T) {
		proof := &LeaveRequestProof{ID: uuid.New(), LeaveRequestID: lr.ID, Path: "leave-proofs/a.pdf"}
		repo := &fakeRepo{
			findProofByIDFn: func(ctx context.Context, id string) (*LeaveRequestProof, error) { return proof, nil },
			findByIDFn:      func(ctx context.Context, id string) (*LeaveRequest, error) { return lr, nil },
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		err := svc.DeleteProof(ctx, uuid.NewString(), "employee", proof.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrForbidden)
	})

	t.Run("bukti tidak ditemukan", func(t *testing.T) {
		repo := &fakeRepo{
			findProofByIDFn: func(ctx context.Context, id string) (*LeaveRequestProof, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(nil, repo, &fakeQuota{}, storage.NewMemory(), nil)

		err := svc.DeleteProof(ctx, userID.String(), "employee", uuid.NewString())
		assert.ErrorIs(t, err, leaveerrors.ErrProofNotFound)
	})
}
