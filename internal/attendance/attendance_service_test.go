package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "github.com/ruzzhdontmiss/hrms-lite/internal/attendance/errors"
	"github.com/ruzzhdontmiss/hrms-lite/internal/employee"
	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/datetime"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDayFn  func(ctx context.Context, employeeID string, day time.Time) (*Attendance, error)
	findAllByEmployeeFn     func(ctx context.Context, employeeID string) ([]Attendance, error)
	findAllFn               func(ctx context.Context) ([]Attendance, error)
	findAllInWindowFn       func(ctx context.Context, start, end time.Time) ([]Attendance, error)
	countByStatusInWindowFn func(ctx context.Context, status string, start, end time.Time) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDayFn(ctx, employeeID, day)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Attendance, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindAllInWindow(ctx context.Context, start, end time.Time) ([]Attendance, error) {
	return f.findAllInWindowFn(ctx, start, end)
}
func (f *fakeRepo) CountByStatusInWindow(ctx context.Context, status string, start, end time.Time) (int64, error) {
	return f.countByStatusInWindowFn(ctx, status, start, end)
}

type fakeDirectory struct {
	byBadge map[string]*employee.Employee
}

func (f *fakeDirectory) FindByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if e, ok := f.byBadge[employeeID]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestEmployee(badge string) *employee.Employee {
	return &employee.Employee{
		ID:         uuid.New(),
		EmployeeID: badge,
		FullName:   "John Doe",
		Email:      badge + "@example.com",
		Department: "Engineering",
	}
}

func TestService_Mark(t *testing.T) {
	ctx := context.Background()
	empl := newTestEmployee("E1")
	dir := &fakeDirectory{byBadge: map[string]*employee.Employee{"E1": empl}}

	t.Run("success normalizes date to start of day", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		var saved Attendance
		repo := &fakeRepo{}
		repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
		repo.findByEmployeeAndDayFn = func(ctx context.Context, employeeID string, day time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }

		svc := NewService(db, repo, dir)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: "E1",
			Date:       "2024-01-05T14:30:00Z",
			Status:     StatusPresent,
		})

		assert.NoError(t, err)
		want := datetime.StartOfDay(time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC).Local())
		assert.Equal(t, want, saved.AttendanceDate)
		assert.Equal(t, empl.ID, saved.EmployeeID)
		assert.Equal(t, StatusPresent, saved.Status)
		assert.Equal(t, "John Doe", resp.Employee.FullName)
		assert.Equal(t, StatusPresent, resp.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate same day any time of day", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findByEmployeeAndDayFn = func(ctx context.Context, employeeID string, day time.Time) (*Attendance, error) {
			// A record already exists for the normalized day.
			return &Attendance{ID: uuid.New()}, nil
		}

		svc := NewService(db, repo, dir)

		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: "E1",
			Date:       "2024-01-05T23:59:00Z",
			Status:     StatusAbsent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyMarked)
	})

	t.Run("different day succeeds independently", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		marked := map[string]bool{"2024-01-05": true}
		repo := &fakeRepo{}
		repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
		repo.findByEmployeeAndDayFn = func(ctx context.Context, employeeID string, day time.Time) (*Attendance, error) {
			if marked[day.Format("2006-01-02")] {
				return &Attendance{ID: uuid.New()}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(ctx context.Context, a *Attendance) error { return nil }

		svc := NewService(db, repo, dir)

		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: "E1",
			Date:       "2024-01-06",
			Status:     StatusAbsent,
		})

		assert.NoError(t, err)
	})

	t.Run("employee not found", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, dir)

		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: "GHOST",
			Date:       "2024-01-05",
			Status:     StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid date", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, dir)

		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: "E1",
			Date:       "05/01/2024",
			Status:     StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("late unique violation maps to already marked", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
		repo.findByEmployeeAndDayFn = func(ctx context.Context, employeeID string, day time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(ctx context.Context, a *Attendance) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}
		}

		svc := NewService(db, repo, dir)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Mark(ctx, MarkAttendanceRequest{
			EmployeeID: "E1",
			Date:       "2024-01-05",
			Status:     StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyMarked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_GetByEmployee(t *testing.T) {
	ctx := context.Background()
	empl := newTestEmployee("E1")
	dir := &fakeDirectory{byBadge: map[string]*employee.Employee{"E1": empl}}

	t.Run("returns records newest day first", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findAllByEmployeeFn = func(ctx context.Context, employeeID string) ([]Attendance, error) {
			assert.Equal(t, empl.ID.String(), employeeID)
			return []Attendance{
				{ID: uuid.New(), EmployeeID: empl.ID, AttendanceDate: time.Date(2024, 1, 6, 0, 0, 0, 0, time.Local), Status: StatusAbsent},
				{ID: uuid.New(), EmployeeID: empl.ID, AttendanceDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local), Status: StatusPresent},
			}, nil
		}

		svc := NewService(db, repo, dir)

		resp, err := svc.GetByEmployee(ctx, "E1")

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "2024-01-06", resp[0].Date)
		assert.Equal(t, "2024-01-05", resp[1].Date)
		assert.Equal(t, "John Doe", resp[0].Employee.FullName)
	})

	t.Run("unknown badge", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, dir)

		_, err := svc.GetByEmployee(ctx, "GHOST")

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})
}

func TestService_GetAll(t *testing.T) {
	ctx := context.Background()
	dir := &fakeDirectory{byBadge: map[string]*employee.Employee{}}

	t.Run("date filter queries the inclusive day window", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		var gotStart, gotEnd time.Time
		repo := &fakeRepo{}
		repo.findAllInWindowFn = func(ctx context.Context, start, end time.Time) ([]Attendance, error) {
			gotStart, gotEnd = start, end
			return []Attendance{
				{
					ID:             uuid.New(),
					AttendanceDate: start,
					Status:         StatusPresent,
					Employee: &EmployeeRef{
						ID:         uuid.New(),
						EmployeeID: "E1",
						FullName:   "John Doe",
						Department: "Engineering",
					},
				},
			}, nil
		}

		svc := NewService(db, repo, dir)

		resp, err := svc.GetAll(ctx, "2024-01-05")

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local), gotStart)
		assert.Equal(t, datetime.EndOfDay(gotStart), gotEnd)
		assert.Len(t, resp, 1)
		assert.Equal(t, "John Doe", resp[0].Employee.FullName)
		assert.Equal(t, "Engineering", resp[0].Employee.Department)
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findAllFn = func(ctx context.Context) ([]Attendance, error) {
			return []Attendance{
				{ID: uuid.New(), AttendanceDate: time.Now(), Status: StatusPresent},
				{ID: uuid.New(), AttendanceDate: time.Now(), Status: StatusAbsent},
			}, nil
		}

		svc := NewService(db, repo, dir)

		resp, err := svc.GetAll(ctx, "")

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("orphaned employee renders as Unknown", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{}
		repo.findAllFn = func(ctx context.Context) ([]Attendance, error) {
			return []Attendance{
				{ID: uuid.New(), EmployeeID: uuid.New(), AttendanceDate: time.Now(), Status: StatusPresent},
			}, nil
		}

		svc := NewService(db, repo, dir)

		resp, err := svc.GetAll(ctx, "")

		assert.NoError(t, err)
		assert.Equal(t, "Unknown", resp[0].Employee.FullName)
		assert.Empty(t, resp[0].Employee.EmployeeID)
	})

	t.Run("bad filter", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, dir)

		_, err := svc.GetAll(ctx, "not-a-date")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})
}
