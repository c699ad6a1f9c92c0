package dto

// PostMessageRequest mensaje nuevo en un ticket.
type PostMessageRequest struct {
	Message string `json:"message"`
}

// InviteEmployeeRequest invitación de un miembro del equipo.
type InviteEmployeeRequest struct {
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	BranchID *string `json:"branch_id"`
}
