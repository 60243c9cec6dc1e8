package employee

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	FullName   string `json:"fullName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"createdAt"`
}

type DeleteEmployeeResponse struct {
	ID string `json:"id"`
}
