package portal

import (
	"context"
	"fmt"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
	"github.com/jhoicas/gasable-portal/pkg/taxid"
)

// demoCompany perfil demo con el id y nombre de la identidad simulada.
func (p *Portal) demoCompany(tenant string) *entity.Company {
	c := fixtures.Company()
	c.ID = tenant
	if id := p.sc.Identity; id != nil && id.Metadata.CompanyName != "" {
		c.Name = id.Metadata.CompanyName
	}
	return c
}

// Company perfil de la empresa de la sesión.
func (p *Portal) Company(ctx context.Context) (*entity.Company, error) {
	tenant, err := p.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if p.sc.Demo {
		return p.demoCompany(tenant), nil
	}
	var rows []*entity.Company
	q := query.New().Eq("id", tenant).WithLimit(1)
	if err := p.backend.Select(ctx, repository.TableCompanies, q, &rows); err != nil {
		return nil, fmt.Errorf("leer empresa: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrCompanyNotFound
	}
	return rows[0], nil
}

// UpdateCompany edita el perfil. En demo devuelve el perfil con los cambios sin persistirlos.
func (p *Portal) UpdateCompany(ctx context.Context, upd entity.CompanyUpdate) (*entity.Company, error) {
	if upd.Name != nil && *upd.Name == "" {
		return nil, domain.NewValidationError("name", "no puede quedar vacío")
	}
	if upd.VATNumber != nil && *upd.VATNumber != "" {
		if err := taxid.ValidateVATNumber(*upd.VATNumber); err != nil {
			return nil, domain.NewValidationError("vat_number", err.Error())
		}
		v := taxid.Normalize(*upd.VATNumber)
		upd.VATNumber = &v
	}
	if upd.CRNumber != nil && *upd.CRNumber != "" {
		if err := taxid.ValidateCRNumber(*upd.CRNumber); err != nil {
			return nil, domain.NewValidationError("cr_number", err.Error())
		}
		v := taxid.Normalize(*upd.CRNumber)
		upd.CRNumber = &v
	}
	tenant, err := p.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if p.sc.Demo {
		updated := upd.Apply(*p.demoCompany(tenant), p.now())
		return &updated, nil
	}
	patch := patchFields(upd)
	patch["updated_at"] = p.now()
	var rows []*entity.Company
	if err := p.backend.Update(ctx, repository.TableCompanies, query.New().Eq("id", tenant), patch, &rows); err != nil {
		return nil, fmt.Errorf("actualizar empresa: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrCompanyNotFound
	}
	return rows[0], nil
}

func patchFields(u entity.CompanyUpdate) map[string]any {
	out := map[string]any{}
	set := func(k string, v *string) {
		if v != nil {
			out[k] = *v
		}
	}
	set("name", u.Name)
	set("legal_name", u.LegalName)
	set("cr_number", u.CRNumber)
	set("vat_number", u.VATNumber)
	set("email", u.Email)
	set("phone", u.Phone)
	set("city", u.City)
	set("address", u.Address)
	set("logo_url", u.LogoURL)
	return out
}

// Invoice factura del tenant por id (demo: fixture). ErrNotFound si no existe.
func (p *Portal) Invoice(ctx context.Context, id string) (*entity.Invoice, error) {
	if _, err := p.Tenant(ctx); err != nil {
		return nil, err
	}
	q := query.New().Eq("id", id).WithLimit(1)
	rows, err := fetch(ctx, p, repository.TableInvoices, q, fixtures.Invoices)
	if err != nil {
		return nil, fmt.Errorf("leer factura: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0], nil
}
