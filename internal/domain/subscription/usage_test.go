package subscription_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/subscription"
)

func TestUsagePercent_AcotadoYSinDivisionPorCero(t *testing.T) {
	cases := []struct {
		name        string
		used, limit int64
		want        int
	}{
		{"mitad", 50, 100, 50},
		{"redondeo", 2, 3, 67},
		{"excedido se acota a 100", 250, 100, 100},
		{"limite cero", 10, 0, 0},
		{"limite negativo", 10, -1, 0},
		{"ilimitado", 1_000_000, subscription.Unlimited, 0},
		{"uso negativo", -5, 100, 0},
		{"lleno", 5, 5, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := subscription.UsagePercent(tc.used, tc.limit)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestUsagePercentDecimal(t *testing.T) {
	assert.Equal(t, 25, subscription.UsagePercentDecimal(decimal.NewFromInt(2500), 10000))
	assert.Equal(t, 100, subscription.UsagePercentDecimal(decimal.NewFromInt(20000), 10000))
	assert.Equal(t, 0, subscription.UsagePercentDecimal(decimal.NewFromInt(20000), 0))
	assert.Equal(t, 0, subscription.UsagePercentDecimal(decimal.NewFromInt(20000), subscription.Unlimited))
}

func tier(products, orders, gmv, branches, users int64) entity.Tier {
	return entity.Tier{ProductLimit: products, OrderLimit: orders, GMVLimit: gmv, BranchLimit: branches, UserLimit: users}
}

func usage(products, orders, gmv, branches, users int64) entity.Usage {
	return entity.Usage{
		ProductsUsed: products, OrdersUsed: orders, GMVUsed: decimal.NewFromInt(gmv),
		BranchesUsed: branches, UsersUsed: users,
	}
}

func TestHasHighUsage_UnaMetricaSobreElUmbral(t *testing.T) {
	snap := subscription.NewSnapshot(tier(100, 100, 100, 100, 100), usage(81, 10, 10, 10, 10))
	assert.True(t, subscription.HasHighUsage(snap))
}

func TestHasHighUsage_ExactamenteOchentaNoAlerta(t *testing.T) {
	snap := subscription.NewSnapshot(tier(100, 100, 100, 100, 100), usage(80, 80, 80, 80, 80))
	assert.False(t, subscription.HasHighUsage(snap))
}

func TestHasHighUsage_CadaMetricaCuenta(t *testing.T) {
	for i := 0; i < 5; i++ {
		u := []int64{10, 10, 10, 10, 10}
		u[i] = 90
		snap := subscription.NewSnapshot(tier(100, 100, 100, 100, 100), usage(u[0], u[1], u[2], u[3], u[4]))
		assert.True(t, subscription.HasHighUsage(snap), "métrica %d", i)
	}
}

func TestHasHighUsage_IlimitadoNuncaAlerta(t *testing.T) {
	u := subscription.Unlimited
	snap := subscription.NewSnapshot(tier(u, u, u, u, u), usage(999999, 999999, 999999, 999999, 999999))
	assert.False(t, subscription.HasHighUsage(snap))
}

func TestBuildBanner_CincoDeCincoProductos(t *testing.T) {
	tr := tier(5, 100, 10000, 3, 5)
	us := usage(5, 10, 100, 1, 1)
	sub := &entity.Subscription{}
	plan := &entity.Plan{Name: "Starter"}

	assert.Equal(t, 100, subscription.UsagePercent(us.ProductsUsed, tr.ProductLimit))
	assert.True(t, subscription.HasHighUsage(subscription.NewSnapshot(tr, us)))

	b := subscription.BuildBanner(sub, plan, &tr, &us)
	require.True(t, b.Visible)
	require.Len(t, b.Lines, 1)
	assert.Contains(t, b.Lines[0], "5 of 5 products (100%)")
	assert.Equal(t, subscription.UpgradeCallToAction, b.CallToAction)
}

func TestBuildBanner_UnaLineaPorMetricaAlta(t *testing.T) {
	tr := tier(100, 100, 10000, 100, 100)
	us := usage(90, 10, 9500, 10, 85)
	b := subscription.BuildBanner(&entity.Subscription{}, &entity.Plan{}, &tr, &us)
	require.True(t, b.Visible)
	assert.Equal(t, []string{
		"90 of 100 products (90%)",
		"9500 of 10000 SAR GMV (95%)",
		"85 of 100 users (85%)",
	}, b.Lines)
}

func TestBuildBanner_FaltanDatosNoRenderiza(t *testing.T) {
	tr := tier(5, 5, 5, 5, 5)
	us := usage(5, 5, 5, 5, 5)
	sub := &entity.Subscription{}
	plan := &entity.Plan{}

	for name, b := range map[string]subscription.Banner{
		"sin suscripción": subscription.BuildBanner(nil, plan, &tr, &us),
		"sin plan":        subscription.BuildBanner(sub, nil, &tr, &us),
		"sin tier":        subscription.BuildBanner(sub, plan, nil, &us),
		"sin uso":         subscription.BuildBanner(sub, plan, &tr, nil),
	} {
		assert.False(t, b.Visible, name)
		assert.Empty(t, b.Lines, name)
	}
}

func TestBuildBanner_UsoBajoNoRenderiza(t *testing.T) {
	tr := tier(100, 100, 100, 100, 100)
	us := usage(1, 1, 1, 1, 1)
	b := subscription.BuildBanner(&entity.Subscription{}, &entity.Plan{}, &tr, &us)
	assert.False(t, b.Visible)
	assert.Empty(t, b.CallToAction)
}
