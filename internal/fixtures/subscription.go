package fixtures

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// IDs de planes demo.
const (
	PlanFree       = "p1000000-0000-4000-8000-000000000001"
	PlanStarter    = "p1000000-0000-4000-8000-000000000002"
	PlanAdvanced   = "p1000000-0000-4000-8000-000000000003"
	PlanEnterprise = "p1000000-0000-4000-8000-000000000004"
)

// unlimited coincide con subscription.Unlimited (máximo int4).
const unlimited int64 = 2147483647

// Plans catálogo de planes ordenado por SortOrder.
func Plans() []*entity.Plan {
	p := func(id, name, desc, monthly, yearly string, order int) *entity.Plan {
		return &entity.Plan{
			ID: id, Name: name, Description: str(desc),
			MonthlyPrice: dec(monthly), YearlyPrice: dec(yearly),
			Currency: "SAR", IsActive: true, SortOrder: order,
		}
	}
	return []*entity.Plan{
		p(PlanFree, "Free", "Try the portal with one store", "0", "0", 1),
		p(PlanStarter, "Starter", "For small suppliers getting online", "250", "2700", 2),
		p(PlanAdvanced, "Advanced", "For growing multi-branch suppliers", "750", "8100", 3),
		p(PlanEnterprise, "Enterprise", "Unlimited scale with dedicated support", "2000", "0", 4),
	}
}

// Tiers límites y features de cada plan.
func Tiers() []*entity.Tier {
	return []*entity.Tier{
		{
			ID: "t1000000-0000-4000-8000-000000000001", PlanID: PlanFree,
			ProductLimit: 10, OrderLimit: 50, GMVLimit: 10000, BranchLimit: 1, UserLimit: 1,
			Features: []string{"basic_inventory", "email_support", "trial_7_days"},
		},
		{
			ID: "t1000000-0000-4000-8000-000000000002", PlanID: PlanStarter,
			ProductLimit: 10, OrderLimit: 500, GMVLimit: 100000, BranchLimit: 5, UserLimit: 5,
			Features: []string{"basic_inventory", "basic_compliance", "marketing", "analytics",
				"integrations", "email_support", "trial_14_days", "online_training"},
		},
		{
			ID: "t1000000-0000-4000-8000-000000000003", PlanID: PlanAdvanced,
			ProductLimit: 500, OrderLimit: 5000, GMVLimit: 1000000, BranchLimit: 20, UserLimit: 25,
			Features: []string{"advanced_inventory", "full_compliance", "advanced_marketing",
				"basic_analytics", "api_access", "priority_support", "trial_30_days", "online_training"},
		},
		{
			ID: "t1000000-0000-4000-8000-000000000004", PlanID: PlanEnterprise,
			ProductLimit: unlimited, OrderLimit: unlimited, GMVLimit: unlimited,
			BranchLimit: unlimited, UserLimit: unlimited,
			Features: []string{"advanced_inventory", "full_compliance", "advanced_marketing",
				"full_analytics", "custom_integrations", "dedicated_support", "onsite_training"},
		},
	}
}

// Subscription suscripción demo (plan Starter, cerca del límite de productos).
func Subscription() *entity.Subscription {
	return &entity.Subscription{
		Tenancy:            tenancy("s1000000-0000-4000-8000-000000000001", ago(90, 0)),
		PlanID:             PlanStarter,
		Status:             entity.SubscriptionStatusActive,
		BillingCycle:       "monthly",
		CurrentPeriodStart: ago(14, 0),
		CurrentPeriodEnd:   agoPtr(-16, 0),
	}
}

// Usage uso del mes en curso.
func Usage() *entity.Usage {
	return &entity.Usage{
		Tenancy:      tenancy("u1000000-0000-4000-8000-000000000001", ago(14, 0)),
		Month:        ReferenceTime.Format("2006-01"),
		ProductsUsed: 9,
		OrdersUsed:   212,
		GMVUsed:      decimal.RequireFromString("48350.75"),
		BranchesUsed: 4,
		UsersUsed:    4,
	}
}
