package portal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
)

// InviteInput alta de un miembro del equipo.
type InviteInput struct {
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	BranchID *string `json:"branch_id"`
}

var inviteRoles = map[string]bool{
	entity.EmployeeRoleAdmin:   true,
	entity.EmployeeRoleManager: true,
	entity.EmployeeRoleStaff:   true,
	entity.EmployeeRoleDriver:  true,
}

// Validate el rol owner no se puede otorgar por invitación.
func (in InviteInput) Validate() error {
	if !strings.Contains(in.Email, "@") {
		return domain.NewValidationError("email", "formato de email inválido")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return domain.NewValidationError("full_name", "requerido")
	}
	if !inviteRoles[in.Role] {
		return domain.NewValidationError("role", "rol inválido")
	}
	return nil
}

// InviteEmployee agrega un miembro vía el procedimiento add_company_member (crea usuario y
// membresía en una sola operación remota). En demo devuelve el miembro invitado sin persistir.
func (p *Portal) InviteEmployee(ctx context.Context, in InviteInput) (*entity.Employee, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	tenant, err := p.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if p.sc.Demo {
		now := p.now()
		return &entity.Employee{
			Tenancy:  entity.Tenancy{ID: uuid.NewString(), CompanyID: tenant, CreatedAt: now, UpdatedAt: now},
			FullName: in.FullName,
			Email:    strings.ToLower(in.Email),
			Role:     in.Role,
			Status:   entity.EmployeeStatusInvited,
			BranchID: in.BranchID,
		}, nil
	}
	args := map[string]any{
		"p_email":     strings.ToLower(in.Email),
		"p_full_name": in.FullName,
		"p_role":      in.Role,
		"p_branch_id": in.BranchID,
	}
	var member entity.Employee
	if err := p.callScoped(ctx, repository.ProcAddCompanyMember, args, &member); err != nil {
		return nil, fmt.Errorf("add_company_member: %w", err)
	}
	return &member, nil
}
