package attendance

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=Present Absent"`
}

type AttendanceEmployee struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
}

type AttendanceResponse struct {
	ID        string             `json:"id"`
	Employee  AttendanceEmployee `json:"employee"`
	Date      string             `json:"date"`
	Status    string             `json:"status"`
	CreatedAt string             `json:"createdAt"`
}
