package summary

import (
	"context"
	"encoding/json"
	"time"

	attendanceerrors "github.com/ruzzhdontmiss/hrms-lite/internal/attendance/errors"
	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/datetime"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheTTL = 5 * time.Minute

// EmployeeCounter and AttendanceCounter are the two read surfaces the
// dashboard needs; the employee and attendance repositories satisfy them.
type EmployeeCounter interface {
	Count(ctx context.Context) (int64, error)
}

type AttendanceCounter interface {
	CountByStatusInWindow(ctx context.Context, status string, start, end time.Time) (int64, error)
}

type Service interface {
	GetSummary(ctx context.Context, dateFilter string) (SummaryResponse, error)
}

type service struct {
	employees  EmployeeCounter
	attendance AttendanceCounter
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	employees EmployeeCounter,
	attendance AttendanceCounter,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("summary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.service")
	}
	return &service{
		employees:  employees,
		attendance: attendance,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

// GetSummary tallies the directory total plus the day's explicit Present and
// Absent marks. An employee with no record that day is counted in neither
// bucket; absence is a recorded status, not an inference.
func (s *service) GetSummary(ctx context.Context, dateFilter string) (SummaryResponse, error) {
	day := datetime.StartOfDay(time.Now())
	if dateFilter != "" {
		parsed, err := datetime.ParseDate(dateFilter)
		if err != nil {
			return SummaryResponse{}, attendanceerrors.ErrInvalidDate
		}
		day = datetime.StartOfDay(parsed)
	}

	cacheKey := CacheKey(day)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Collapse a dashboard refresh storm into one store read per day key.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.compute(ctx, day)
		if err != nil {
			return SummaryResponse{}, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, cacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return SummaryResponse{}, err
	}

	return v.(SummaryResponse), nil
}

func (s *service) compute(ctx context.Context, day time.Time) (SummaryResponse, error) {
	total, err := s.employees.Count(ctx)
	if err != nil {
		s.logger.Error("summary count employees failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	start, end := datetime.DayWindow(day)

	present, err := s.attendance.CountByStatusInWindow(ctx, "Present", start, end)
	if err != nil {
		s.logger.Error("summary count present failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	absent, err := s.attendance.CountByStatusInWindow(ctx, "Absent", start, end)
	if err != nil {
		s.logger.Error("summary count absent failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	return SummaryResponse{
		Date:           day.Format("2006-01-02"),
		TotalEmployees: total,
		Present:        present,
		Absent:         absent,
	}, nil
}
