package qrcode

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	qrcodegen "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"go-absensi/internal/attendance"
	qrcodeerrors "go-absensi/internal/qrcode/errors"
)

const (
	// DefaultTTL bounds how long a generated token stays scannable.
	DefaultTTL = 10 * time.Minute

	tokenKeyPrefix = "qr:clock:"
	pngSize        = 256
)

// ClockRecorder is the attendance entry point a scan drives.
type ClockRecorder interface {
	RecordClock(ctx context.Context, userID string, req attendance.RecordClockRequest) (attendance.AttendanceResponse, error)
}

//go:generate mockgen -source=qrcode_service.go -destination=mock/qrcode_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, req GenerateTokenRequest) (TokenResponse, error)
	Scan(ctx context.Context, userID string, req ScanRequest) (attendance.AttendanceResponse, error)
}

type service struct {
	rdb    *redis.Client
	clocks ClockRecorder
	logger *zap.Logger
}

func NewService(rdb *redis.Client, clocks ClockRecorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("qrcode_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{rdb: rdb, clocks: clocks, logger: l}
}

func (s *service) Generate(ctx context.Context, req GenerateTokenRequest) (TokenResponse, error) {
	ttl := DefaultTTL
	if req.TTLSeconds > 0 {
		ttl = time.Duration(req.TTLSeconds) * time.Second
	}

	payload, err := json.Marshal(tokenPayload{ClockType: req.ClockType, Location: req.Location})
	if err != nil {
		return TokenResponse{}, err
	}

	token := uuid.NewString()
	if err := s.rdb.Set(ctx, tokenKeyPrefix+token, payload, ttl).Err(); err != nil {
		s.logger.Error("gagal menyimpan token qr", zap.Error(err))
		return TokenResponse{}, qrcodeerrors.ErrTokenStore
	}

	png, err := qrcodegen.Encode(token, qrcodegen.Medium, pngSize)
	if err != nil {
		return TokenResponse{}, err
	}

	s.logger.Info("token qr dibuat",
		zap.String("clock_type", req.ClockType),
		zap.Duration("ttl", ttl))
	return TokenResponse{
		Token:     token,
		ClockType: req.ClockType,
		Location:  req.Location,
		ExpiresAt: time.Now().UTC().Add(ttl),
		PNGBase64: base64.StdEncoding.EncodeToString(png),
	}, nil
}

// Scan redeems a token exactly once. GETDEL makes consumption atomic,
// a second scan of the same token behaves like an expired one.
func (s *service) Scan(ctx context.Context, userID string, req ScanRequest) (attendance.AttendanceResponse, error) {
	raw, err := s.rdb.GetDel(ctx, tokenKeyPrefix+req.Token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return attendance.AttendanceResponse{}, qrcodeerrors.ErrTokenInvalid
		}
		s.logger.Error("gagal membaca token qr", zap.Error(err))
		return attendance.AttendanceResponse{}, qrcodeerrors.ErrTokenStore
	}

	var payload tokenPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return attendance.AttendanceResponse{}, qrcodeerrors.ErrTokenInvalid
	}

	return s.clocks.RecordClock(ctx, userID, attendance.RecordClockRequest{
		ClockType: payload.ClockType,
		Method:    attendance.MethodQRCode,
		Location:  payload.Location,
	})
}
