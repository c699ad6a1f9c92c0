package portal_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasable-portal/internal/application/portal"
	"github.com/jhoicas/gasable-portal/internal/application/session"
	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/flagstore"
)

const tenant = "co-live-1"

func liveIdentity() *entity.Identity {
	return &entity.Identity{ID: "u-1", Email: "owner@acme.sa", Metadata: entity.IdentityMetadata{CompanyID: tenant}}
}

func demoIdentity() *entity.Identity {
	return &entity.Identity{ID: "demo-1", Email: "x@demo.gasable", Metadata: entity.IdentityMetadata{
		CompanyID: "co-demo-1", CompanyName: "Acme Demo", Demo: true,
	}}
}

func livePortal(b *fakeBackend) *portal.Portal {
	return portal.New(session.Context{Demo: false, Identity: liveIdentity()}, portal.Deps{Backend: b, Log: zerolog.Nop()})
}

func demoPortal(b *fakeBackend) *portal.Portal {
	return portal.New(session.Context{Demo: true, Identity: demoIdentity()}, portal.Deps{Backend: b, Log: zerolog.Nop()})
}

// seedFixtures copia los fixtures al backend como filas del tenant real.
func seedFixtures(b *fakeBackend) {
	for _, s := range fixtures.Stamp(fixtures.Stores(), tenant) {
		b.seed(repository.TableStores, s)
	}
	for _, p := range fixtures.Stamp(fixtures.Products(), tenant) {
		b.seed(repository.TableProducts, p)
	}
	for _, o := range fixtures.Stamp(fixtures.Orders(), tenant) {
		b.seed(repository.TableOrders, o)
	}
	for _, br := range fixtures.Stamp(fixtures.Branches(), tenant) {
		b.seed(repository.TableBranches, br)
	}
}

func TestOptions_QueryRespetaOrdenDeFiltros(t *testing.T) {
	opts := portal.Options{
		Filters: map[string]string{"store_id": "s1", "status": "active", "desconocido": "x", "category": " "},
		SortBy:  "price",
		Limit:   5,
	}
	q := opts.Query(portal.ProductSpec.Filters)
	require.Len(t, q.Filters, 2)
	assert.Equal(t, "status", q.Filters[0].Field)
	assert.Equal(t, "store_id", q.Filters[1].Field)
	require.NotNil(t, q.Order)
	assert.Equal(t, query.Desc, q.Order.Direction)
	assert.Equal(t, 5, q.Limit)
}

func TestDemoYRealDevuelvenLosMismosRegistros(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)

	opts := portal.Options{
		Filters:       map[string]string{"status": entity.ProductStatusActive},
		SortBy:        "price",
		SortDirection: query.Asc,
		Limit:         3,
	}
	demo := demoPortal(newFakeBackend()).Products(opts).Load(ctx)
	live := livePortal(b).Products(opts).Load(ctx)
	require.Nil(t, demo.Error)
	require.Nil(t, live.Error)
	require.Len(t, demo.Records, 3)

	// Misma forma e iguales filas salvo el tenant.
	for _, r := range demo.Records {
		r.CompanyID = tenant
	}
	demoJSON, err := json.Marshal(demo.Records)
	require.NoError(t, err)
	liveJSON, err := json.Marshal(live.Records)
	require.NoError(t, err)
	assert.JSONEq(t, string(demoJSON), string(liveJSON))

	// Orden numérico: 1.66 < 2.18 < 12.
	assert.Equal(t, []string{"DSL-1L", "G91-1L", "WTR-19L"}, []string{demo.Records[0].SKU, demo.Records[1].SKU, demo.Records[2].SKU})
}

func TestModoDemo_NuncaLlamaAlBackend(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	p := demoPortal(b)

	stores := p.Stores(portal.Options{})
	res := stores.Load(ctx)
	require.NotEmpty(t, res.Records)

	created, err := stores.Create(ctx, &entity.Store{Name: "Nueva", Status: entity.StoreStatusActive})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "co-demo-1", created.CompanyID)

	updated, err := stores.Update(ctx, fixtures.StoreRiyadhLPG, map[string]any{"name": "Renombrada"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renombrada", updated.Name)
	require.NoError(t, stores.Delete(ctx, fixtures.StoreRiyadhLPG))

	assert.Zero(t, b.totalCalls())
	assert.Len(t, stores.Snapshot().Records, len(fixtures.Stores()), "la lista no cambia en demo")
	assert.Equal(t, "Riyadh LPG Express", fixtures.Stores()[0].Name, "los fixtures no cambian")
}

func TestModoDemo_RegistrosDelTenantDeLaSesion(t *testing.T) {
	res := demoPortal(newFakeBackend()).Orders(portal.Options{}).Load(context.Background())
	require.NotEmpty(t, res.Records)
	for _, o := range res.Records {
		assert.Equal(t, "co-demo-1", o.CompanyID)
	}
}

func TestModoReal_ConsultaFiltradaPorTenant(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)
	b.seed(repository.TableStores, &entity.Store{Tenancy: entity.Tenancy{ID: "ajena", CompanyID: "otra-empresa"}, Name: "Ajena", Status: "active"})

	res := livePortal(b).Stores(portal.Options{Filters: map[string]string{"status": "active"}}).Load(ctx)
	require.Nil(t, res.Error)
	for _, s := range res.Records {
		assert.Equal(t, tenant, s.CompanyID)
	}
	assert.Len(t, res.Records, 2)

	require.Len(t, b.selects, 1)
	f := b.selects[0].q.Filters
	require.Len(t, f, 2)
	assert.Equal(t, query.Filter{Field: "company_id", Op: query.OpEq, Value: tenant}, f[0])
	assert.Equal(t, "status", f[1].Field)
}

func TestSinIdentidad_LecturaVaciaEscrituraConError(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)
	p := portal.New(session.Context{}, portal.Deps{Backend: b, Log: zerolog.Nop()})

	stores := p.Stores(portal.Options{})
	res := stores.Load(ctx)
	assert.Nil(t, res.Error)
	assert.Empty(t, res.Records)
	assert.Zero(t, b.totalCalls())

	_, err := stores.Create(ctx, &entity.Store{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.EqualError(t, err, "User not authenticated")
}

func TestTenantDesdeTablaUsers_Cacheado(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)
	b.seed(repository.TableUsers, map[string]any{"id": "u-2", "company_id": tenant})
	cache := portal.NewTenantCache()
	sc := session.Context{Identity: &entity.Identity{ID: "u-2", Email: "staff@acme.sa"}}

	for i := 0; i < 2; i++ {
		p := portal.New(sc, portal.Deps{Backend: b, Tenants: cache, Log: zerolog.Nop()})
		got, err := p.Tenant(ctx)
		require.NoError(t, err)
		assert.Equal(t, tenant, got)
	}
	assert.Equal(t, 1, b.selectCount(repository.TableUsers))
}

func TestTenantNoEncontrado(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.seed(repository.TableUsers, map[string]any{"id": "u-3", "company_id": nil})
	p := portal.New(session.Context{Identity: &entity.Identity{ID: "u-3"}}, portal.Deps{Backend: b, Log: zerolog.Nop()})

	_, err := p.Tenant(ctx)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	err = p.Stores(portal.Options{}).Delete(ctx, "x")
	assert.EqualError(t, err, "Company ID not found")
	assert.Equal(t, 0, b.selectCount(repository.TableStores))
}

func TestFalloRemoto_ErrorYListaVacia(t *testing.T) {
	b := newFakeBackend()
	seedFixtures(b)
	p := livePortal(b)
	stores := p.Stores(portal.Options{})
	require.NotEmpty(t, stores.Load(context.Background()).Records)

	b.fail[repository.TableStores] = errors.New("connection refused")
	res := stores.Refresh(context.Background())
	require.NotNil(t, res.Error)
	assert.Equal(t, "connection refused", *res.Error)
	assert.Empty(t, res.Records)
	assert.False(t, res.Loading)
}

func TestModoReal_EscriturasActualizanLaLista(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)
	stores := livePortal(b).Stores(portal.Options{})
	initial := len(stores.Load(ctx).Records)

	created, err := stores.Create(ctx, &entity.Store{Name: "Tabuk Gas", Category: "lpg", Status: entity.StoreStatusActive, City: "Tabuk"})
	require.NoError(t, err)
	assert.Equal(t, tenant, created.CompanyID)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, stores.Snapshot().Records, initial+1)

	updated, err := stores.Update(ctx, created.ID, map[string]any{"status": entity.StoreStatusInactive, "company_id": "hack"})
	require.NoError(t, err)
	assert.Equal(t, entity.StoreStatusInactive, updated.Status)
	assert.Equal(t, tenant, updated.CompanyID)

	var found *entity.Store
	for _, s := range stores.Snapshot().Records {
		if s.ID == created.ID {
			found = s
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, entity.StoreStatusInactive, found.Status)

	require.NoError(t, stores.Delete(ctx, created.ID))
	assert.Len(t, stores.Snapshot().Records, initial)
	assert.Equal(t, []string{"insert:stores", "update:stores", "delete:stores"}, b.writes)
}

func TestVistasSonDeSoloLectura(t *testing.T) {
	_, err := demoPortal(newFakeBackend()).OrderSummaries(portal.Options{}).Create(context.Background(), &entity.OrderSummary{})
	assert.ErrorIs(t, err, portal.ErrReadOnly)
}

func TestResultadoObsoletoSeDescarta(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)

	entered := make(chan struct{})
	release := make(chan struct{})
	b.onSelect = func(n int, _ string) {
		if n == 1 {
			close(entered)
			<-release
		}
	}
	stores := livePortal(b).Stores(portal.Options{Filters: map[string]string{"status": entity.StoreStatusPending}})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stores.Refresh(ctx)
	}()
	<-entered

	fresh := stores.Refresh(ctx)
	require.Len(t, fresh.Records, 1)

	// La consulta lenta verá una fila más, pero su generación ya no es la vigente.
	b.seed(repository.TableStores, &entity.Store{Tenancy: entity.Tenancy{ID: "tardia", CompanyID: tenant}, Name: "Tardía", Status: entity.StoreStatusPending})
	close(release)
	wg.Wait()

	assert.Len(t, stores.Snapshot().Records, 1)
}

func TestCloseDescartaFetchEnCurso(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)

	entered := make(chan struct{})
	release := make(chan struct{})
	b.onSelect = func(n int, _ string) {
		if n == 1 {
			close(entered)
			<-release
		}
	}
	stores := livePortal(b).Stores(portal.Options{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		stores.Load(ctx)
	}()
	<-entered
	stores.Close()
	close(release)
	<-done

	assert.Empty(t, stores.Snapshot().Records)
	after := stores.Refresh(ctx)
	assert.Empty(t, after.Records)
	assert.Equal(t, 1, b.selectCount(repository.TableStores))
}

func TestInstanciasIndependientes(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)
	p := livePortal(b)

	p.Stores(portal.Options{}).Load(ctx)
	p.Stores(portal.Options{}).Load(ctx)
	assert.Equal(t, 2, b.selectCount(repository.TableStores))
}

func TestDesactivarDemo_NoQuedanRegistrosDelTenantSimulado(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)
	for _, s := range fixtures.Stamp(fixtures.Stores(), "co-seed") {
		b.seed(repository.TableStores, s)
	}
	r := session.NewResolver(flagstore.NewMemoryStore(), nil, session.Options{JWTSecret: "secret"}, zerolog.Nop())

	_, err := r.SetDemoMode(ctx, "s1", true, &session.Seed{CompanyID: "co-seed", CompanyName: "Semilla"})
	require.NoError(t, err)
	demo := portal.New(r.Context(ctx, "s1", nil), portal.Deps{Backend: b, Log: zerolog.Nop()})
	require.True(t, demo.Demo())
	require.NotEmpty(t, demo.Stores(portal.Options{}).Load(ctx).Records)

	_, err = r.SetDemoMode(ctx, "s1", false, nil)
	require.NoError(t, err)

	// sin identidad real: lectura vacía
	anon := portal.New(r.Context(ctx, "s1", nil), portal.Deps{Backend: b, Log: zerolog.Nop()})
	assert.False(t, anon.Demo())
	assert.Empty(t, anon.Stores(portal.Options{}).Load(ctx).Records)

	// con identidad real: solo filas de su tenant
	live := portal.New(r.Context(ctx, "s1", liveIdentity()), portal.Deps{Backend: b, Log: zerolog.Nop()})
	res := live.Stores(portal.Options{}).Load(ctx)
	require.NotEmpty(t, res.Records)
	for _, s := range res.Records {
		assert.NotEqual(t, "co-seed", s.CompanyID)
	}
}

func TestModoReal_NoEscribeRegistrosDeOtroTenant(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)
	foreign := &entity.Product{Name: "Cilindro ajeno", Status: entity.ProductStatusActive}
	foreign.ID, foreign.CompanyID = "p-otro", "co-otro"
	b.seed(repository.TableProducts, foreign)

	products := livePortal(b).Products(portal.Options{})
	products.Load(ctx)

	updated, err := products.Update(ctx, "p-otro", map[string]any{"name": "Renombrado"})
	require.NoError(t, err)
	assert.Nil(t, updated, "un id de otro tenant no se actualiza")

	err = products.Delete(ctx, "p-otro")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var rest []*entity.Product
	require.NoError(t, b.Select(ctx, repository.TableProducts, query.New().Eq("id", "p-otro"), &rest))
	require.Len(t, rest, 1)
	assert.Equal(t, "Cilindro ajeno", rest[0].Name)
	assert.Equal(t, "co-otro", rest[0].CompanyID)
	for _, p := range products.Snapshot().Records {
		assert.Equal(t, tenant, p.CompanyID)
	}
}

func TestCreateTrasCloseNoModificaLaLista(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	seedFixtures(b)
	stores := livePortal(b).Stores(portal.Options{})
	initial := len(stores.Load(ctx).Records)
	stores.Close()

	created, err := stores.Create(ctx, &entity.Store{Name: "Abha Gas", Status: entity.StoreStatusActive})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, stores.Snapshot().Records, initial)
}
