package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/ruzzhdontmiss/hrms-lite/internal/employee"
	employeeerrors "github.com/ruzzhdontmiss/hrms-lite/internal/employee/errors"
	employeeMock "github.com/ruzzhdontmiss/hrms-lite/internal/employee/mock"
	"github.com/ruzzhdontmiss/hrms-lite/internal/messaging/kafka"
	kafkaMock "github.com/ruzzhdontmiss/hrms-lite/internal/messaging/kafka/mock"
	"github.com/ruzzhdontmiss/hrms-lite/internal/summary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	redisMock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewServiceWithOutbox(db, repo, outboxRepo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redisMock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	req := employee.CreateEmployeeRequest{
		EmployeeID: "E1",
		FullName:   "John Doe",
		Email:      "john@example.com",
		Department: "Engineering",
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		newID := uuid.New()

		deps.repo.EXPECT().
			FindByEmployeeIDOrEmail(ctx, req.EmployeeID, req.Email).
			Return(nil, gorm.ErrRecordNotFound)

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, req.EmployeeID, e.EmployeeID)
				assert.Equal(t, req.FullName, e.FullName)
				assert.Equal(t, req.Email, e.Email)
				assert.Equal(t, req.Department, e.Department)
				e.ID = newID
				return nil
			})

		deps.outbox.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.outbox)

		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, "employee_created", ev.EventType)
				assert.Equal(t, "employee", ev.AggregateType)
				assert.Equal(t, newID.String(), ev.AggregateID)
				assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
				return nil
			})

		deps.redisMock.ExpectDel(summary.CacheKey(time.Now())).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, newID.String(), resp.ID)
		assert.Equal(t, "E1", resp.EmployeeID)
		assert.Equal(t, "John Doe", resp.FullName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate id or email", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmployeeIDOrEmail(ctx, req.EmployeeID, req.Email).
			Return(&employee.Employee{ID: uuid.New()}, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("late unique violation maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmployeeIDOrEmail(ctx, req.EmployeeID, req.Email).
			Return(nil, gorm.ErrRecordNotFound)

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("pre-check failure propagates", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		boom := errors.New("connection reset")
		deps.repo.EXPECT().
			FindByEmployeeIDOrEmail(ctx, req.EmployeeID, req.Email).
			Return(nil, boom)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, boom)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	rows := []employee.Employee{
		{ID: uuid.New(), EmployeeID: "E2", FullName: "Newer", Email: "n@x.com", Department: "HR"},
		{ID: uuid.New(), EmployeeID: "E1", FullName: "Older", Email: "o@x.com", Department: "HR"},
	}

	deps.repo.EXPECT().
		FindAll(ctx).
		Return(rows, nil)

	resp, err := deps.service.GetAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "E2", resp[0].EmployeeID)
	assert.Equal(t, "E1", resp[1].EmployeeID)
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New().String()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, id).
			Return(&employee.Employee{}, nil)

		deps.repo.EXPECT().
			Delete(ctx, id).
			Return(nil)

		deps.redisMock.ExpectDel(summary.CacheKey(time.Now())).SetVal(1)

		resp, err := deps.service.Delete(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New().String()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, id).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Delete(ctx, id)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
