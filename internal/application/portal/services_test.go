package portal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasable-portal/internal/application/portal"
	"github.com/jhoicas/gasable-portal/internal/application/session"
	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/domain/subscription"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
)

func strPtr(s string) *string { return &s }

func TestTicketMessages_SinTicketNoConsulta(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	for _, p := range []*portal.Portal{livePortal(b), demoPortal(b)} {
		res := p.TicketMessages(ctx, nil)
		assert.NotNil(t, res.Messages)
		assert.Empty(t, res.Messages)
		assert.False(t, res.Loading)
		assert.Nil(t, res.Error)

		res = p.TicketMessages(ctx, strPtr(""))
		assert.Empty(t, res.Messages)
	}
	assert.Zero(t, b.totalCalls())
}

func TestTicketMessages_DemoOrdenCronologico(t *testing.T) {
	res := demoPortal(newFakeBackend()).TicketMessages(context.Background(), strPtr(fixtures.TicketDelivery))
	require.Len(t, res.Messages, 3)
	for i := 1; i < len(res.Messages); i++ {
		assert.False(t, res.Messages[i].CreatedAt.Before(res.Messages[i-1].CreatedAt))
	}
	for _, m := range res.Messages {
		assert.Equal(t, "co-demo-1", m.CompanyID)
	}
}

func TestTicketMessages_RealFiltraPorTicketYTenant(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	for _, m := range fixtures.Stamp(fixtures.TicketMessages(), tenant) {
		b.seed(repository.TableTicketMessages, m)
	}
	p := livePortal(b)
	res := p.TicketMessages(ctx, strPtr(fixtures.TicketBilling))
	require.Nil(t, res.Error)
	assert.Len(t, res.Messages, 2)

	msg, err := p.PostTicketMessage(ctx, fixtures.TicketBilling, "Gracias")
	require.NoError(t, err)
	assert.Equal(t, "u-1", msg.SenderID)
	assert.Len(t, p.TicketMessages(ctx, strPtr(fixtures.TicketBilling)).Messages, 3)

	_, err = p.PostTicketMessage(ctx, fixtures.TicketBilling, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompany_DemoUsaIdentidadSimulada(t *testing.T) {
	ctx := context.Background()
	p := demoPortal(newFakeBackend())
	c, err := p.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, "co-demo-1", c.ID)
	assert.Equal(t, "Acme Demo", c.Name)

	city := "Jeddah"
	updated, err := p.UpdateCompany(ctx, entity.CompanyUpdate{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Jeddah", *updated.City)

	again, err := p.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Riyadh", *again.City, "demo no persiste cambios")
}

func TestCompany_Real(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	company := fixtures.Company()
	company.ID = tenant
	b.seed(repository.TableCompanies, company)
	p := livePortal(b)

	c, err := p.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, tenant, c.ID)

	name := "Gasable Trading"
	updated, err := p.UpdateCompany(ctx, entity.CompanyUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	empty := ""
	_, err = p.UpdateCompany(ctx, entity.CompanyUpdate{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCompany_IdentificadoresFiscales(t *testing.T) {
	ctx := context.Background()
	p := demoPortal(newFakeBackend())

	bad := "123"
	_, err := p.UpdateCompany(ctx, entity.CompanyUpdate{VATNumber: &bad})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "vat_number", ve.Field)

	_, err = p.UpdateCompany(ctx, entity.CompanyUpdate{CRNumber: &bad})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cr_number", ve.Field)

	vat, cr := "300 1234 5670 0003", "1010-123456"
	updated, err := p.UpdateCompany(ctx, entity.CompanyUpdate{VATNumber: &vat, CRNumber: &cr})
	require.NoError(t, err)
	require.NotNil(t, updated.VATNumber)
	assert.Equal(t, "300123456700003", *updated.VATNumber)
	assert.Equal(t, "1010123456", *updated.CRNumber)
}

func TestCompany_RealInexistente(t *testing.T) {
	_, err := livePortal(newFakeBackend()).Company(context.Background())
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestInviteEmployee_RealLlamaAlRPC(t *testing.T) {
	b := newFakeBackend()
	b.results[repository.ProcAddCompanyMember] = map[string]any{
		"id": "m-1", "company_id": tenant, "full_name": "Layla", "email": "layla@acme.sa",
		"role": "staff", "status": "invited",
	}
	m, err := livePortal(b).InviteEmployee(context.Background(), portal.InviteInput{
		Email: "Layla@acme.sa", FullName: "Layla", Role: entity.EmployeeRoleStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, "m-1", m.ID)

	require.Len(t, b.rpcs, 1)
	assert.Equal(t, repository.ProcAddCompanyMember, b.rpcs[0].proc)
	assert.Equal(t, tenant, b.rpcs[0].args["p_company_id"])
	assert.Equal(t, "layla@acme.sa", b.rpcs[0].args["p_email"])
}

func TestInviteEmployee_DemoYValidacion(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	p := demoPortal(b)
	m, err := p.InviteEmployee(ctx, portal.InviteInput{Email: "a@b.sa", FullName: "A", Role: entity.EmployeeRoleDriver})
	require.NoError(t, err)
	assert.Equal(t, entity.EmployeeStatusInvited, m.Status)
	assert.Equal(t, "co-demo-1", m.CompanyID)

	_, err = p.InviteEmployee(ctx, portal.InviteInput{Email: "a@b.sa", FullName: "A", Role: entity.EmployeeRoleOwner})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, b.totalCalls())
}

func TestPerformance(t *testing.T) {
	ctx := context.Background()
	m, err := demoPortal(newFakeBackend()).Performance(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, portal.DefaultPerformanceDays, m.PeriodDays)
	assert.Equal(t, "co-demo-1", m.CompanyID)

	b := newFakeBackend()
	b.results[repository.ProcGetPerformanceMetrics] = map[string]any{"fulfillment_rate": 88.5}
	m, err = livePortal(b).Performance(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 88.5, m.FulfillmentRate)
	assert.Equal(t, 7, m.PeriodDays)
	assert.Equal(t, tenant, m.CompanyID)
	assert.Equal(t, 7, b.rpcs[0].args["p_days"])

	b.fail[repository.ProcGetPerformanceMetrics] = errors.New("boom")
	_, err = livePortal(b).Performance(ctx, 7)
	assert.Error(t, err)
}

func TestSubscription_DemoConBanner(t *testing.T) {
	view, err := demoPortal(newFakeBackend()).Subscription(context.Background())
	require.NoError(t, err)
	require.NotNil(t, view.Plan)
	assert.Equal(t, "Starter", view.Plan.Name)
	require.NotNil(t, view.Snapshot)
	assert.True(t, view.HighUsage)

	banner := view.Banner()
	assert.True(t, banner.Visible)
	assert.Equal(t, []string{"9 of 10 products (90%)"}, banner.Lines)
}

func TestSubscription_RealSinSuscripcionNoMuestraBanner(t *testing.T) {
	view, err := livePortal(newFakeBackend()).Subscription(context.Background())
	require.NoError(t, err)
	assert.Nil(t, view.Subscription)
	assert.False(t, view.Banner().Visible)
}

func TestSubscription_RealCompleta(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	sub := fixtures.Subscription()
	sub.CompanyID = tenant
	b.seed(repository.TableSubscriptions, sub)
	for _, p := range fixtures.Plans() {
		b.seed(repository.TablePlans, p)
	}
	for _, tr := range fixtures.Tiers() {
		b.seed(repository.TableTiers, tr)
	}
	clock := fixtures.ReferenceTime
	usage := &entity.Usage{
		Tenancy: entity.Tenancy{ID: "u-live", CompanyID: tenant, CreatedAt: clock},
		Month:   clock.Format("2006-01"), ProductsUsed: 1, OrdersUsed: 1, GMVUsed: decimal.NewFromInt(10),
		BranchesUsed: 1, UsersUsed: 1,
	}
	b.seed(repository.TableUsage, usage)

	p := portal.New(session.Context{Identity: liveIdentity()}, portal.Deps{Backend: b, Log: zerolog.Nop(), Clock: func() time.Time { return clock }})
	view, err := p.Subscription(ctx)
	require.NoError(t, err)
	require.NotNil(t, view.Tier)
	require.NotNil(t, view.Usage)
	assert.Equal(t, fixtures.PlanStarter, view.Tier.PlanID)
	assert.False(t, view.HighUsage)
	assert.False(t, view.Banner().Visible)
}

func TestTiers_DemoOrdenadosYRecomendado(t *testing.T) {
	tiers := demoPortal(newFakeBackend()).Tiers(context.Background())
	require.Len(t, tiers, 4)
	names := []string{tiers[0].Name, tiers[1].Name, tiers[2].Name, tiers[3].Name}
	assert.Equal(t, []string{"Free", "Starter", "Advanced", "Enterprise"}, names)
	assert.True(t, tiers[2].Recommended)
	assert.Equal(t, "10%", tiers[2].YearlyDiscount)
	assert.Equal(t, "Unlimited", tiers[3].Products)
	assert.Equal(t, subscription.NoYearlyDiscount, tiers[3].YearlyDiscount)
}

func TestTiers_FalloUsaPlanGratuito(t *testing.T) {
	b := newFakeBackend()
	b.fail[repository.TablePlans] = errors.New("timeout")
	tiers := livePortal(b).Tiers(context.Background())
	assert.Equal(t, subscription.FallbackTiers(), tiers)
}

func TestSubscription_FalloDelCatalogoUsaPlanGratuito(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	sub := fixtures.Subscription()
	sub.CompanyID = tenant
	b.seed(repository.TableSubscriptions, sub)
	clock := fixtures.ReferenceTime
	b.seed(repository.TableUsage, &entity.Usage{
		Tenancy: entity.Tenancy{ID: "u-live", CompanyID: tenant, CreatedAt: clock},
		Month:   clock.Format("2006-01"), ProductsUsed: subscription.FreeTier.ProductLimit, GMVUsed: decimal.Zero,
	})
	b.fail[repository.TablePlans] = errors.New("plans down")

	p := portal.New(session.Context{Identity: liveIdentity()}, portal.Deps{Backend: b, Log: zerolog.Nop(), Clock: func() time.Time { return clock }})
	view, err := p.Subscription(ctx)
	require.NoError(t, err)
	require.NotNil(t, view.Plan)
	require.NotNil(t, view.Tier)
	assert.Equal(t, subscription.FreePlan.ID, view.Plan.ID)
	assert.Equal(t, subscription.FreeTier.ProductLimit, view.Tier.ProductLimit)
	require.NotNil(t, view.Usage)
	require.NotNil(t, view.Snapshot)
	assert.True(t, view.HighUsage)
	assert.True(t, view.Banner().Visible)
}

func TestDashboard_Demo(t *testing.T) {
	m := demoPortal(newFakeBackend()).Dashboard(context.Background(), 30)
	assert.False(t, m.Partial)
	assert.Equal(t, 4, m.TotalOrders)
	assert.Equal(t, 1, m.PendingOrders)
	assert.Equal(t, 3, m.ActiveLocations)
	assert.Equal(t, "2398.33", m.Revenue.String())
	assert.Equal(t, "799.44", m.AverageOrderValue.String())
	assert.Equal(t, float64(100), m.OrdersChange)
	assert.Equal(t, 37.4, m.RevenueChange)
	assert.Equal(t, fixtures.ReferenceTime, m.PeriodEnd)
}

func TestDashboard_FalloParcial(t *testing.T) {
	b := newFakeBackend()
	seedFixtures(b)
	b.fail[repository.TableBranches] = errors.New("branches down")
	clock := fixtures.ReferenceTime
	p := portal.New(session.Context{Identity: liveIdentity()}, portal.Deps{Backend: b, Log: zerolog.Nop(), Clock: func() time.Time { return clock }})

	m := p.Dashboard(context.Background(), 30)
	assert.True(t, m.Partial)
	assert.Equal(t, 0, m.ActiveLocations)
	assert.Equal(t, 4, m.TotalOrders)
}

func TestInvoice_PorID(t *testing.T) {
	ctx := context.Background()
	p := demoPortal(newFakeBackend())
	want := fixtures.Invoices()[2]

	inv, err := p.Invoice(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.InvoiceNumber, inv.InvoiceNumber)
	assert.Equal(t, "co-demo-1", inv.CompanyID)

	_, err = p.Invoice(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_SinIdentidad(t *testing.T) {
	p := portal.New(session.Context{}, portal.Deps{Backend: newFakeBackend(), Log: zerolog.Nop()})
	_, err := p.Invoice(context.Background(), "f1")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
