package entity

import "time"

// Roles de miembro de la empresa.
const (
	EmployeeRoleOwner   = "owner"
	EmployeeRoleAdmin   = "admin"
	EmployeeRoleManager = "manager"
	EmployeeRoleStaff   = "staff"
	EmployeeRoleDriver  = "driver"
)

// Estados de miembro.
const (
	EmployeeStatusActive    = "active"
	EmployeeStatusInvited   = "invited"
	EmployeeStatusSuspended = "suspended"
)

// Employee miembro del equipo del proveedor (tabla company_members).
type Employee struct {
	Tenancy
	UserID   *string    `json:"user_id"`
	FullName string     `json:"full_name"`
	Email    string     `json:"email"`
	Phone    *string    `json:"phone"`
	Role     string     `json:"role"`
	Status   string     `json:"status"`
	BranchID *string    `json:"branch_id"`
	JoinedAt *time.Time `json:"joined_at"`
}
