package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "github.com/ruzzhdontmiss/hrms-lite/internal/attendance/errors"
	"github.com/ruzzhdontmiss/hrms-lite/internal/employee"
	"github.com/ruzzhdontmiss/hrms-lite/internal/events"
	"github.com/ruzzhdontmiss/hrms-lite/internal/messaging/kafka"
	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/contextutil"
	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/datetime"
	"github.com/ruzzhdontmiss/hrms-lite/internal/summary"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory resolves an external badge code to an employee row. The
// employee repository satisfies it.
type EmployeeDirectory interface {
	FindByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetAll(ctx context.Context, dateFilter string) ([]AttendanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, directory, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		rdb:       rdb,
		logger:    l,
	}
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	parsed, err := datetime.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("mark attendance invalid date", zap.String("date", req.Date), zap.Error(err))
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	empl, err := s.directory.FindByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("mark attendance employee not found", zap.String("employee_id", req.EmployeeID))
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		s.logger.Error("mark attendance resolve employee failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	day := datetime.StartOfDay(parsed)

	// Early exit for the common double-mark. The unique index enforces the
	// invariant under concurrent marks; a late collision surfaces as the
	// same conflict error through mapRepositoryError.
	_, err = s.repo.FindByEmployeeAndDay(ctx, empl.ID.String(), day)
	if err == nil {
		s.logger.Warn("mark attendance duplicate",
			zap.String("employee_id", req.EmployeeID),
			zap.Time("day", day),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyMarked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("mark attendance duplicate check failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empl.ID,
		AttendanceDate: day,
		Status:         req.Status,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("mark attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.AttendanceMarkedEvent{
			EventType:    "attendance_marked",
			RequestID:    rid,
			AttendanceID: row.ID.String(),
			EmployeeID:   empl.ID.String(),
			Date:         day.Format("2006-01-02"),
			Status:       row.Status,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return AttendanceResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attendance",
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.AttendanceMarkedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("mark attendance outbox persist failed",
				zap.String("attendance_id", row.ID.String()),
				zap.Error(err),
			)
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.invalidateSummaryCache(ctx, day)

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("attendance_id", row.ID.String()),
		zap.Time("day", day),
	)

	row.Employee = &EmployeeRef{
		ID:         empl.ID,
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Department: empl.Department,
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	s.logger.Debug("get attendance by employee requested", zap.String("employee_id", employeeID))

	empl, err := s.directory.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		s.logger.Error("get attendance resolve employee failed", zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.FindAllByEmployee(ctx, empl.ID.String())
	if err != nil {
		s.logger.Error("get attendance by employee failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	ref := &EmployeeRef{
		ID:         empl.ID,
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Department: empl.Department,
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		r.Employee = ref
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetAll(ctx context.Context, dateFilter string) ([]AttendanceResponse, error) {
	s.logger.Debug("get all attendance requested", zap.String("date", dateFilter))

	var (
		rows []Attendance
		err  error
	)
	if dateFilter == "" {
		rows, err = s.repo.FindAll(ctx)
	} else {
		parsed, parseErr := datetime.ParseDate(dateFilter)
		if parseErr != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		start, end := datetime.DayWindow(parsed)
		rows, err = s.repo.FindAllInWindow(ctx, start, end)
	}
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) invalidateSummaryCache(ctx context.Context, day time.Time) {
	if s.rdb == nil {
		return
	}
	cacheKey := summary.CacheKey(day)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate summary cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        a.ID.String(),
		Date:      a.AttendanceDate.Format("2006-01-02"),
		Status:    a.Status,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.Employee != nil {
		resp.Employee = AttendanceEmployee{
			ID:         a.Employee.ID.String(),
			EmployeeID: a.Employee.EmployeeID,
			FullName:   a.Employee.FullName,
			Department: a.Employee.Department,
		}
	} else {
		// Orphaned reference after a hard employee delete. The badge code was
		// deleted with the employee row, so only the placeholder name is set.
		resp.Employee = AttendanceEmployee{FullName: "Unknown"}
	}
	return resp
}
