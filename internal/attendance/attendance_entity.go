package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Attendance holds one status per employee per calendar day. AttendanceDate
// is always the start-of-day instant produced by datetime.StartOfDay; the
// composite unique index is the final arbiter of the one-per-day rule.
type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:timestamptz;not null;uniqueIndex:uq_attendance_employee_date;index"`
	Status         string       `gorm:"column:status;type:varchar(10);not null"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	// constraint:- keeps the migrator from adding an enforcing foreign key;
	// employee deletes must leave ledger rows behind as orphans.
	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;constraint:-"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// EmployeeRef is the read-side projection of the employees table used when
// joining identity into ledger results. Nil after a hard employee delete.
type EmployeeRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID string    `gorm:"column:employee_id"`
	FullName   string    `gorm:"column:full_name"`
	Department string    `gorm:"column:department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
